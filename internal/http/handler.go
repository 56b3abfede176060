package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/loadsim-service/internal/domain/dto"
	"github.com/guttosm/loadsim-service/internal/editor"
	"github.com/guttosm/loadsim-service/internal/geometry"
	"github.com/guttosm/loadsim-service/internal/i18n"
	"github.com/guttosm/loadsim-service/internal/service"
)

// Handler provides HTTP handlers for simulation viewing and editing routes.
type Handler struct {
	simulations service.SimulationService
}

// NewHandler creates a new Handler instance.
func NewHandler(simulations service.SimulationService) *Handler {
	return &Handler{
		simulations: simulations,
	}
}

// ListSimulations handles GET /api/simulations requests.
//
// @Summary      List simulations
// @Description  Returns summaries of stored simulations, newest first. The optional limit query parameter caps the result size.
// @Tags         Simulations
// @Produce      json
// @Param        limit query int false "Maximum number of summaries to return"
// @Success      200 {object} dto.SuccessResponse "Simulation summaries"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid limit"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     ApiKeyAuth
// @Router       /api/simulations [get]
func (h *Handler) ListSimulations(c *gin.Context) {
	builder := NewResponseBuilder(c)

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
			return
		}
		limit = parsed
	}

	summaries, err := h.simulations.ListSimulations(c.Request.Context(), limit)
	if err != nil {
		h.serviceError(builder, err)
		return
	}
	builder.SuccessOK(summaries)
}

// CreateSimulation handles POST /api/simulations requests.
//
// @Summary      Ingest a simulation
// @Description  Stores a packing result as a new simulation at version 1. The batch trees are persisted verbatim so they round-trip losslessly. Reusing an existing simulation id is rejected.
// @Tags         Simulations
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateSimulationRequest true "Packing result"
// @Success      201 {object} dto.SuccessResponse "Stored simulation"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      409 {object} dto.ErrorResponse "Simulation id already in use"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     ApiKeyAuth
// @Router       /api/simulations [post]
func (h *Handler) CreateSimulation(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.CreateSimulationRequest](c)
	if err != nil {
		if errors.Is(err, dto.ErrMissingSimulationID) || errors.Is(err, dto.ErrMissingBatches) {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		} else {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		}
		return
	}

	view, err := h.simulations.CreateSimulation(c.Request.Context(), req.SimulationID, req.Name, req.Batches)
	if err != nil {
		h.serviceError(builder, err)
		return
	}
	builder.SuccessCreated(view)
}

// GetSimulation handles GET /api/simulations/:id requests.
//
// @Summary      Get a simulation
// @Description  Returns the stored simulation with all its batch trees, exactly as produced by the packing backend plus any editor writes.
// @Tags         Simulations
// @Produce      json
// @Param        id path string true "Simulation id"
// @Success      200 {object} dto.SuccessResponse "Simulation with batches"
// @Failure      404 {object} dto.ErrorResponse "Simulation not found"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     ApiKeyAuth
// @Router       /api/simulations/{id} [get]
func (h *Handler) GetSimulation(c *gin.Context) {
	builder := NewResponseBuilder(c)

	view, err := h.simulations.GetSimulation(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.serviceError(builder, err)
		return
	}
	builder.SuccessOK(view)
}

// GetScene handles GET /api/simulations/:id/batches/:bid/scene requests.
//
// @Summary      Get a batch scene
// @Description  Returns the flattened, render-ready item list of one batch: sub-pallets as opaque nodes with children, bare orders exploded into boxes, positions as centers relative to the load-volume center.
// @Tags         Scenes
// @Produce      json
// @Param        id path string true "Simulation id"
// @Param        bid path int true "Batch id"
// @Success      200 {object} dto.SuccessResponse "Flattened scene"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid batch id"
// @Failure      404 {object} dto.ErrorResponse "Simulation or batch not found"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     ApiKeyAuth
// @Router       /api/simulations/{id}/batches/{bid}/scene [get]
func (h *Handler) GetScene(c *gin.Context) {
	builder := NewResponseBuilder(c)

	batchID, ok := h.batchID(c, builder)
	if !ok {
		return
	}
	view, err := h.simulations.GetScene(c.Request.Context(), c.Param("id"), batchID)
	if err != nil {
		h.serviceError(builder, err)
		return
	}
	builder.SuccessOK(view)
}

// SelectItem handles POST /api/simulations/:id/batches/:bid/select requests.
//
// @Summary      Select an item
// @Description  Moves the single selection to the given item (empty itemid clears it) and toggles edit mode. Selection persists across edit-mode toggles.
// @Tags         Editing
// @Accept       json
// @Produce      json
// @Param        id path string true "Simulation id"
// @Param        bid path int true "Batch id"
// @Param        request body dto.SelectItemRequest true "Selection transition"
// @Success      200 {object} dto.SuccessResponse "Updated scene"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      404 {object} dto.ErrorResponse "Simulation, batch or item not found"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     ApiKeyAuth
// @Router       /api/simulations/{id}/batches/{bid}/select [post]
func (h *Handler) SelectItem(c *gin.Context) {
	builder := NewResponseBuilder(c)

	batchID, ok := h.batchID(c, builder)
	if !ok {
		return
	}
	req, err := BuildRequest[dto.SelectItemRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	view, err := h.simulations.Select(c.Request.Context(), c.Param("id"), batchID, req.ItemID, req.EditMode)
	if err != nil {
		h.serviceError(builder, err)
		return
	}
	builder.SuccessOK(view)
}

// MoveItem handles POST /api/simulations/:id/batches/:bid/move requests.
//
// @Summary      Move an item (drag end)
// @Description  Clamps the raw drag target to the container, slides it clear of every other item along the axis of least penetration, patches the batch tree and persists it. When the resolver hits its depth ceiling the item snaps back and the outcome reports resolved=false; this is a 200, not an error. Supports idempotency via Idempotency-Key header.
// @Tags         Editing
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        id path string true "Simulation id"
// @Param        bid path int true "Batch id"
// @Param        request body dto.MoveItemRequest true "Drag target"
// @Success      200 {object} dto.SuccessResponse "Resolved position"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      404 {object} dto.ErrorResponse "Simulation, batch or item not found"
// @Failure      409 {object} dto.ErrorResponse "Item not selected or edit mode off"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     ApiKeyAuth
// @Router       /api/simulations/{id}/batches/{bid}/move [post]
func (h *Handler) MoveItem(c *gin.Context) {
	builder := NewResponseBuilder(c)

	batchID, ok := h.batchID(c, builder)
	if !ok {
		return
	}
	req, err := BuildRequestAndValidate[dto.MoveItemRequest](c)
	if err != nil {
		if errors.Is(err, dto.ErrMissingItemID) {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyValidationItem, err)
		} else {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		}
		return
	}

	outcome, err := h.simulations.Move(c.Request.Context(), c.Param("id"), batchID, service.MoveCommand{
		ItemID: req.ItemID,
		Target: geometry.Vec3{X: req.Target.X, Y: req.Target.Y, Z: req.Target.Z},
	})
	if err != nil {
		h.serviceError(builder, err)
		return
	}
	builder.SuccessOK(outcome)
}

// RotateItem handles POST /api/simulations/:id/batches/:bid/rotate requests.
//
// @Summary      Rotate an item
// @Description  Flips the selected item along the horizontal (yaw) or vertical (pitch) cycle and persists the batch. Vertical rotation is refused for sub-pallets. Rotation does not re-run collision resolution; overlap introduced by a rotation stays until the next drag. Supports idempotency via Idempotency-Key header.
// @Tags         Editing
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        id path string true "Simulation id"
// @Param        bid path int true "Batch id"
// @Param        request body dto.RotateItemRequest true "Rotation command"
// @Success      200 {object} dto.SuccessResponse "Updated scene"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      404 {object} dto.ErrorResponse "Simulation, batch or item not found"
// @Failure      409 {object} dto.ErrorResponse "Item not selected, edit mode off, or rotation not allowed"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     ApiKeyAuth
// @Router       /api/simulations/{id}/batches/{bid}/rotate [post]
func (h *Handler) RotateItem(c *gin.Context) {
	builder := NewResponseBuilder(c)

	batchID, ok := h.batchID(c, builder)
	if !ok {
		return
	}
	req, err := BuildRequestAndValidate[dto.RotateItemRequest](c)
	if err != nil {
		switch {
		case errors.Is(err, dto.ErrMissingItemID):
			builder.Error(http.StatusBadRequest, i18n.ErrKeyValidationItem, err)
		case errors.Is(err, dto.ErrInvalidDirection):
			builder.Error(http.StatusBadRequest, i18n.ErrKeyValidationDirection, err)
		default:
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		}
		return
	}

	view, err := h.simulations.Rotate(c.Request.Context(), c.Param("id"), batchID, service.RotateCommand{
		ItemID:    req.ItemID,
		Direction: editor.RotationDirection(req.Direction),
	})
	if err != nil {
		h.serviceError(builder, err)
		return
	}
	builder.SuccessOK(view)
}

// batchID parses the :bid path parameter.
func (h *Handler) batchID(c *gin.Context, builder *ResponseBuilder) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("bid"), 10, 64)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return 0, false
	}
	return id, true
}

// serviceError maps service and editor errors to HTTP statuses.
func (h *Handler) serviceError(builder *ResponseBuilder, err error) {
	switch {
	case errors.Is(err, service.ErrSimulationNotFound):
		builder.Error(http.StatusNotFound, i18n.ErrKeySimulationNotFound, err)
	case errors.Is(err, service.ErrSimulationExists):
		builder.Error(http.StatusConflict, i18n.ErrKeySimulationExists, err)
	case errors.Is(err, service.ErrBatchNotFound):
		builder.Error(http.StatusNotFound, i18n.ErrKeyBatchNotFound, err)
	case errors.Is(err, editor.ErrItemNotFound):
		builder.Error(http.StatusNotFound, i18n.ErrKeyItemNotFound, err)
	case errors.Is(err, editor.ErrNotSelected):
		builder.Error(http.StatusConflict, i18n.ErrKeyItemNotSelected, err)
	case errors.Is(err, editor.ErrEditModeOff):
		builder.Error(http.StatusConflict, i18n.ErrKeyEditModeOff, err)
	case errors.Is(err, editor.ErrVerticalRotation):
		builder.Error(http.StatusConflict, i18n.ErrKeyVerticalRotation, err)
	default:
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
	}
}
