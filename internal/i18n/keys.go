// Package i18n provides internationalization support for the load simulation service.
package i18n

// Error message translation keys.
const (
	// ErrKeyInvalidRequest indicates an invalid request.
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidRequestBody indicates an invalid request body.
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	// ErrKeyInternalError indicates an internal server error.
	ErrKeyInternalError = "error.internal_error"
	// ErrKeyUnauthorized indicates missing or invalid authentication.
	ErrKeyUnauthorized = "error.unauthorized"
	// ErrKeyAPIKeyRequired indicates that an API key is required.
	ErrKeyAPIKeyRequired = "error.api_key_required"
	// ErrKeyInvalidAPIKey indicates an invalid API key.
	ErrKeyInvalidAPIKey = "error.invalid_api_key"
	// ErrKeyForbidden indicates insufficient permissions.
	ErrKeyForbidden = "error.forbidden"
	// ErrKeyNotFound indicates a resource was not found.
	ErrKeyNotFound = "error.not_found"
	// ErrKeySimulationNotFound indicates the simulation id is unknown.
	ErrKeySimulationNotFound = "error.simulation_not_found"
	// ErrKeySimulationExists indicates an ingest reused an existing id.
	ErrKeySimulationExists = "error.simulation_exists"
	// ErrKeyBatchNotFound indicates the batch id is not in the simulation.
	ErrKeyBatchNotFound = "error.batch_not_found"
	// ErrKeyItemNotFound indicates the item id is not in the batch.
	ErrKeyItemNotFound = "error.item_not_found"
	// ErrKeyItemNotSelected indicates the operation targets an unselected item.
	ErrKeyItemNotSelected = "error.item_not_selected"
	// ErrKeyEditModeOff indicates edit mode is disabled for the session.
	ErrKeyEditModeOff = "error.edit_mode_off"
	// ErrKeyVerticalRotation indicates a sub-pallet was asked to flip vertically.
	ErrKeyVerticalRotation = "error.vertical_rotation"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyConflict indicates a conflict with current state.
	ErrKeyConflict = "error.conflict"
	// ErrKeyValidationItem indicates an invalid or missing item id.
	ErrKeyValidationItem = "error.validation.itemid"
	// ErrKeyValidationDirection indicates an invalid rotation direction.
	ErrKeyValidationDirection = "error.validation.direction"
	// ErrKeyInvalidToken indicates an invalid or expired JWT token.
	ErrKeyInvalidToken = "error.invalid_token"
	// ErrKeyTokenRequired indicates that a JWT token is required.
	ErrKeyTokenRequired = "error.token_required"
	// ErrKeyTimeout indicates a request timeout.
	ErrKeyTimeout = "error.timeout"
)
