// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import "github.com/guttosm/loadsim-service/internal/domain/model"

// Position is a 3D point in model units, relative to the center of the
// batch's usable load volume.
type Position struct {
	X float64 `json:"x" example:"150"`
	Y float64 `json:"y" example:"0"`
	Z float64 `json:"z" example:"0"`
} // @name Position

// SelectItemRequest represents the JSON request body for the selection endpoint.
//
// An empty item id clears the selection (a click on empty space).
//
// @Description Request to select an item and toggle edit mode
// @Example {"itemid": "a1b2c3", "edit_mode": true}
type SelectItemRequest struct {
	// ItemID identifies the batch-level item to select; empty clears
	// the selection.
	ItemID string `json:"itemid" example:"a1b2c3"`
	// EditMode enables or disables edit controls for the session.
	EditMode bool `json:"edit_mode" example:"true"`
} // @name SelectItemRequest

// MoveItemRequest represents the JSON request body for the drag-end endpoint.
//
// Target is the raw drag target center; the resolver clamps it to the
// container and slides it clear of other items.
//
// @Description Request to move an item to a drag target
// @Example {"itemid": "a1b2c3", "target": {"x": 150, "y": 0, "z": 0}}
type MoveItemRequest struct {
	// ItemID identifies the dragged item. Must be the current selection.
	ItemID string `json:"itemid" binding:"required" example:"a1b2c3"`
	// Target is the raw drag target center in model units.
	Target Position `json:"target"`
} // @name MoveItemRequest

// RotateItemRequest represents the JSON request body for the rotation endpoint.
//
// @Description Request to flip an item along one of the fixed rotation cycles
// @Example {"itemid": "a1b2c3", "direction": "horizontal"}
type RotateItemRequest struct {
	// ItemID identifies the item to rotate. Must be the current selection.
	ItemID string `json:"itemid" binding:"required" example:"a1b2c3"`
	// Direction is "horizontal" (yaw flip) or "vertical" (pitch flip,
	// boxes only).
	Direction string `json:"direction" binding:"required,oneof=horizontal vertical" example:"horizontal"`
} // @name RotateItemRequest

// CreateSimulationRequest represents the JSON request body for the
// simulation ingest endpoint.
//
// Batches must match the packing backend's output shape exactly; the
// snapshot is stored as-is so it round-trips losslessly.
//
// @Description Request to ingest a packing result as a new simulation
type CreateSimulationRequest struct {
	// SimulationID is the external id assigned by the packing backend.
	SimulationID string `json:"simulation_id" binding:"required" example:"sim-1"`
	// Name is an optional display name.
	Name string `json:"name" example:"Week 35 load plan"`
	// Batches are the packed batch trees, stored verbatim as version 1.
	Batches []*model.Batch `json:"batches" binding:"required"`
} // @name CreateSimulationRequest

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

var (
	// ErrMissingItemID is returned when itemid is absent on an
	// operation that requires one.
	ErrMissingItemID = &ValidationError{
		Field:   "itemid",
		Message: "must not be empty",
	}
	// ErrInvalidDirection is returned when direction is not one of the
	// two rotation cycles.
	ErrInvalidDirection = &ValidationError{
		Field:   "direction",
		Message: "must be \"horizontal\" or \"vertical\"",
	}
	// ErrMissingSimulationID is returned when an ingest omits the
	// simulation id.
	ErrMissingSimulationID = &ValidationError{
		Field:   "simulation_id",
		Message: "must not be empty",
	}
	// ErrMissingBatches is returned when an ingest carries no batches.
	ErrMissingBatches = &ValidationError{
		Field:   "batches",
		Message: "must contain at least one batch",
	}
)

// Validate performs custom validation on the request.
// Returns an error if validation fails, nil otherwise.
func (r *MoveItemRequest) Validate() error {
	if r.ItemID == "" {
		return ErrMissingItemID
	}
	return nil
}

// Validate performs custom validation on the request.
func (r *RotateItemRequest) Validate() error {
	if r.ItemID == "" {
		return ErrMissingItemID
	}
	if r.Direction != "horizontal" && r.Direction != "vertical" {
		return ErrInvalidDirection
	}
	return nil
}

// Validate performs custom validation on the request.
func (r *CreateSimulationRequest) Validate() error {
	if r.SimulationID == "" {
		return ErrMissingSimulationID
	}
	if len(r.Batches) == 0 {
		return ErrMissingBatches
	}
	return nil
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
