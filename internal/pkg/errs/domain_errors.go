package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers.
//
// Validation errors are caller mistakes and surface immediately; resource
// errors are recoverable business conditions that leave the order in its
// prior state; durability errors abort the operation with no partial effect.
var (
	// Validation errors
	ErrInvalidRule  = errors.New("invalid tax or discount rule")
	ErrEmptyOrder   = errors.New("order has no lines")
	ErrInvalidState = errors.New("operation not allowed in current order state")

	// Resource errors
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInsufficientCredit = errors.New("insufficient store credit")
	ErrPaymentMismatch    = errors.New("payments do not match order total")

	// Lookup errors
	ErrOrderNotFound    = errors.New("order not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrLineNotFound     = errors.New("order line not found")

	// Durability errors
	ErrDurabilityFailure = errors.New("durable log append failed")

	// Auth errors
	ErrAuthenticationFailed = errors.New("authentication failed")
)
