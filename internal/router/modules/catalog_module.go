package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/motorline/dealership-backend/internal/interface/http"
	"github.com/motorline/dealership-backend/internal/interface/middleware"
)

// CatalogModule wires the public storefront endpoints under /api/cars.
// No authentication; generous per-IP limits keep scrapers in check. The
// image-search endpoint additionally enforces its own per-IP quota inside
// the service.
type CatalogModule struct {
	Handler *handlers.CarHandler
	Redis   *redis.Client
}

func NewCatalogModule(h *handlers.CarHandler, rdb *redis.Client) *CatalogModule {
	return &CatalogModule{Handler: h, Redis: rdb}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	browseLimiter := middleware.RateLimit(m.Redis, 300, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())

	cars := rg.Group("/cars")
	{
		cars.GET("/featured", browseLimiter, m.Handler.Featured)
		cars.GET("/search", browseLimiter, m.Handler.Search)
		cars.POST("/image-search", m.Handler.ImageSearch)
	}
}
