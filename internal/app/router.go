// Package app provides router configuration.
package app

import (
	"crypto/rsa"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/loadsim-service/config"
	"github.com/guttosm/loadsim-service/internal/http"
	"github.com/guttosm/loadsim-service/internal/middleware"
	"github.com/guttosm/loadsim-service/internal/service"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler           *http.Handler
	HealthHandler     *http.HealthHandler
	Config            http.RouterConfig
	SimulationService service.SimulationService
}

// InitializeRouter initializes HTTP handlers and router configuration.
func InitializeRouter(
	dbComponents *DatabaseComponents,
	cfg config.Config,
) *RouterComponents {
	var loggingService service.LoggingService
	var simulationService service.SimulationService
	var handler *http.Handler
	if dbComponents != nil {
		loggingService = dbComponents.LoggingService

		opts := []service.SimulationOption{
			service.WithResolverDepth(cfg.Editor.ResolverMaxDepth),
		}
		if cfg.Editor.SceneCacheSize > 0 {
			opts = append(opts, service.WithSceneCache(cfg.Editor.SceneCacheSize, cfg.Editor.SceneCacheTTL))
		}
		if loggingService != nil {
			opts = append(opts, service.WithAuditLogging(loggingService))
		}
		simulationService = service.NewSimulationService(dbComponents.SimulationsRepo, opts...)
		handler = http.NewHandler(simulationService)
	}

	healthHandler := http.NewHealthHandler()

	// Register circuit breakers for health monitoring
	if dbComponents != nil {
		if dbComponents.SimulationsCircuitBreaker != nil {
			healthHandler.RegisterCircuitBreaker("mongodb_simulations", dbComponents.SimulationsCircuitBreaker)
		}
		if dbComponents.LogsCircuitBreaker != nil {
			healthHandler.RegisterCircuitBreaker("mongodb_logs", dbComponents.LogsCircuitBreaker)
		}
	}

	routerCfg := http.RouterConfig{
		RateLimit:         cfg.Server.RateLimit,
		RateWindow:        cfg.Server.RateWindow,
		EnableAuth:        cfg.Auth.Enabled,
		APIKeys:           cfg.Auth.APIKeys,
		EnableIdempotency: true,
		CORSOrigins:       cfg.Server.CORSOrigins,
		SwaggerUser:       cfg.Server.SwaggerUser,
		SwaggerPass:       cfg.Server.SwaggerPass,
		LoggingService:    loggingService,
		SimulationService: simulationService,
		JWTPublicKey:      loadJWTPublicKey(cfg.Auth),
	}

	return &RouterComponents{
		Handler:           handler,
		HealthHandler:     healthHandler,
		Config:            routerCfg,
		SimulationService: simulationService,
	}
}

// loadJWTPublicKey parses the configured identity-service public key.
func loadJWTPublicKey(cfg config.AuthConfig) *rsa.PublicKey {
	if cfg.JWTPublicKeyPEM == "" {
		return nil
	}
	key, err := middleware.ParseRSAPublicKey([]byte(cfg.JWTPublicKeyPEM))
	if err != nil {
		log.Warn().Err(err).Msg("Invalid JWT public key - bearer-token validation disabled")
		return nil
	}
	return key
}
