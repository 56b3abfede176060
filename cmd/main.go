// Package main is the entry point for the loadsim-service application.
//
// @title           Load Simulation Service API
// @version         1.0.0
// @description     API for editing 3D load placements with collision-constrained dragging.
//
//	This service assembles scene graphs from load simulation snapshots and
//	resolves item drags against container bounds and neighboring items.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/loadsim-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key for authentication. Required if authentication is enabled.
//
// @tag.name        Simulations
// @tag.description Simulation retrieval operations
//
// @tag.name        Editor
// @tag.description Placement editor operations
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	_ "github.com/guttosm/loadsim-service/docs" // swagger docs

	"github.com/guttosm/loadsim-service/config"
	"github.com/guttosm/loadsim-service/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()

	router := app.InitializeApp(cfg)
	server := app.NewServer(router, cfg.Server.Port)

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
