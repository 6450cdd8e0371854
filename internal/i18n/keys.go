// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess            = "success"
	KeyError              = "error"
	KeyInternalError      = "error.internal"
	KeyStoreUnavailable   = "error.store_unavailable"
	KeyConflict           = "error.conflict"
	KeyRateLimitExceeded  = "error.rate_limited"
	KeyInvalidRequestBody = "error.invalid_body"

	// Products
	KeyProductCreated  = "product.created"
	KeyProductUpdated  = "product.updated"
	KeyProductDeleted  = "product.deleted"
	KeyProductNotFound = "product.not_found"

	// Orders
	KeyOrderCreated         = "order.created"
	KeyOrderUpdated         = "order.updated"
	KeyOrderDeleted         = "order.deleted"
	KeyOrderNotFound        = "order.not_found"
	KeyOrderExists          = "order.exists"
	KeyOrderScreenshotLarge = "order.screenshot_too_large"

	// Tracking
	KeyTrackingCreated  = "tracking.created"
	KeyTrackingUpdated  = "tracking.updated"
	KeyTrackingDeleted  = "tracking.deleted"
	KeyTrackingNotFound = "tracking.not_found"
	KeyTrackingExists   = "tracking.exists"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"

	// Notifications
	KeyNotificationSent   = "notification.sent"
	KeyNotificationFailed = "notification.failed"
)
