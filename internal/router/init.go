package router

import (
	"github.com/motorline/dealership-backend/internal/application"
	"github.com/motorline/dealership-backend/internal/container"
	"github.com/motorline/dealership-backend/internal/infrastructure/cache"
	"github.com/motorline/dealership-backend/internal/infrastructure/postgres"
	"github.com/motorline/dealership-backend/internal/infrastructure/ratelimit"
	"github.com/motorline/dealership-backend/internal/infrastructure/search"
	handlers "github.com/motorline/dealership-backend/internal/interface/http"
	"github.com/motorline/dealership-backend/internal/router/modules"
)

// InitModules builds the repositories, services, and handlers, then adds
// every feature module to the registry. All wiring flows from the container;
// nothing is pulled from globals.
func InitModules(r *Registry, c *container.Container) {
	cfg := c.Cfg

	userRepo := postgres.NewUserRepository(c.PG)
	carRepo := postgres.NewCarRepository(c.PG)
	dealershipRepo := postgres.NewDealershipRepository(c.PG)

	// Optional backends stay nil interfaces when their client is missing so
	// the services can degrade instead of panicking on a typed nil.
	var index application.CarIndex
	if c.ES != nil {
		index = search.NewCarIndex(c.ES, cfg.ESCarsIndex)
	}
	var pub application.Publisher
	if c.Publisher != nil {
		pub = c.Publisher
	}

	listCache := cache.NewCarListCache(c.Redis, 0, c.Logger)
	limiter := ratelimit.NewRedisLimiter(c.Redis, cfg.ImageSearchQuota, cfg.ImageSearchWindow, "rl:imgsearch:")

	authSvc := application.NewAuthService(userRepo, c.JWT, c.Redis, pub, c.Logger, cfg.DealershipName)
	carSvc := application.NewCarService(carRepo, userRepo, c.Storage, c.Extractor, index, listCache, limiter, c.Logger)
	settingsSvc := application.NewSettingsService(userRepo, dealershipRepo, pub, c.Logger, application.DealershipDefaults{
		Name:    cfg.DealershipName,
		Address: cfg.DealershipAddress,
		Phone:   cfg.DealershipPhone,
		Email:   cfg.DealershipEmail,
	})

	authHandler := handlers.NewAuthHandler(authSvc, c.Logger, cfg.CookieDomain, cfg.CookieSecure)
	carHandler := handlers.NewCarHandler(carSvc, c.Logger)
	settingsHandler := handlers.NewSettingsHandler(settingsSvc, c.Logger)

	r.Add(modules.NewAuthModule(authHandler, c.JWT, c.Redis))
	r.Add(modules.NewCarModule(carHandler, c.JWT, c.Redis, userRepo))
	r.Add(modules.NewCatalogModule(carHandler, c.Redis))
	r.Add(modules.NewSettingsModule(settingsHandler, c.JWT, c.Redis, userRepo))
}
