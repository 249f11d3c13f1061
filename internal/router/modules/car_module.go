package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/motorline/dealership-backend/internal/domain/repository"
	handlers "github.com/motorline/dealership-backend/internal/interface/http"
	"github.com/motorline/dealership-backend/internal/interface/middleware"
	"github.com/motorline/dealership-backend/pkg/helpers"
)

// CarModule wires the admin inventory endpoints under /api/admin/cars.
// Every route requires an authenticated admin.
type CarModule struct {
	Handler *handlers.CarHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
	Users   repository.UserRepository
}

func NewCarModule(h *handlers.CarHandler, jwt *helpers.JWTManager, rdb *redis.Client, users repository.UserRepository) *CarModule {
	return &CarModule{Handler: h, JWT: jwt, Redis: rdb, Users: users}
}

func (m *CarModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin/cars")
	admin.Use(
		middleware.Auth(m.Redis, m.JWT),
		middleware.AdminOnly(m.Users),
		middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		admin.POST("", m.Handler.Create)
		admin.GET("", m.Handler.List)
		admin.DELETE("/:id", m.Handler.Delete)
		admin.PATCH("/:id/status", m.Handler.UpdateStatus)
		admin.POST("/extract", m.Handler.Extract)
	}
}
