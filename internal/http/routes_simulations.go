package http

import (
	"github.com/gin-gonic/gin"
)

// SimulationRoutes handles simulation-related route registration.
type SimulationRoutes struct {
	handler *Handler
}

// NewSimulationRoutes creates a new SimulationRoutes instance.
func NewSimulationRoutes(handler *Handler) *SimulationRoutes {
	return &SimulationRoutes{handler: handler}
}

// RegisterRoutes registers the simulation viewing and editing routes.
func (r *SimulationRoutes) RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	sims := rg.Group("/simulations")
	sims.GET("", r.handler.ListSimulations)
	sims.POST("", r.handler.CreateSimulation)
	sims.GET("/:id", r.handler.GetSimulation)

	batches := sims.Group("/:id/batches/:bid")
	batches.GET("/scene", r.handler.GetScene)
	batches.POST("/select", r.handler.SelectItem)
	batches.POST("/move", r.handler.MoveItem)
	batches.POST("/rotate", r.handler.RotateItem)
}

// GetHandler returns the underlying simulation handler.
func (r *SimulationRoutes) GetHandler() *Handler {
	return r.handler
}
