package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/motorline/dealership-backend/internal/domain/repository"
	handlers "github.com/motorline/dealership-backend/internal/interface/http"
	"github.com/motorline/dealership-backend/internal/interface/middleware"
	"github.com/motorline/dealership-backend/pkg/helpers"
)

// SettingsModule wires the dealership settings endpoints under
// /api/admin/settings. Reads need a session; mutations need an admin.
type SettingsModule struct {
	Handler *handlers.SettingsHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
	Users   repository.UserRepository
}

func NewSettingsModule(h *handlers.SettingsHandler, jwt *helpers.JWTManager, rdb *redis.Client, users repository.UserRepository) *SettingsModule {
	return &SettingsModule{Handler: h, JWT: jwt, Redis: rdb, Users: users}
}

func (m *SettingsModule) Register(rg *gin.RouterGroup) {
	settings := rg.Group("/admin/settings")
	settings.Use(middleware.Auth(m.Redis, m.JWT))
	{
		// Dealership info is readable by any signed-in user; the services
		// enforce admin on mutations a second time.
		settings.GET("/dealership", m.Handler.GetDealership)

		admin := settings.Group("/")
		admin.Use(middleware.AdminOnly(m.Users))
		{
			admin.PUT("/hours", m.Handler.SaveHours)
			admin.GET("/users", m.Handler.ListUsers)
			admin.PUT("/users/:id/role", m.Handler.UpdateUserRole)
		}
	}
}
