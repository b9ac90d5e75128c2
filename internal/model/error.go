package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON     = "INVALID_JSON"
	ErrCodeMissingField    = "MISSING_FIELD"
	ErrCodeInvalidQuantity = "INVALID_QUANTITY"
	ErrCodeInvalidPrice    = "INVALID_PRICE"
	ErrCodeInvalidStation  = "INVALID_STATION"
	ErrCodeEmptyOrder      = "EMPTY_ORDER"
	ErrCodeInvalidTotal    = "INVALID_TOTAL"
	ErrCodeItemNotFound    = "ITEM_NOT_FOUND"
	ErrCodeMenuIntegrity   = "MENU_INTEGRITY"
	ErrCodeUnauthorised    = "UNAUTHORIZED"
	ErrCodeInternalError   = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrInvalidQuantity = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be at least 1")
	ErrInvalidPrice    = NewDomainError(ErrCodeInvalidPrice, "Price must be greater than zero")
	ErrInvalidStation  = NewDomainError(ErrCodeInvalidStation, "Station must be one of kitchen, bar, dessert or coffee")
	ErrEmptyOrder      = NewDomainError(ErrCodeEmptyOrder, "Order must contain at least one item")
	ErrInvalidTotal    = NewDomainError(ErrCodeInvalidTotal, "Total price must be greater than zero")
	ErrItemNotFound    = NewDomainError(ErrCodeItemNotFound, "Menu item not found")
	ErrMenuIntegrity   = NewDomainError(ErrCodeMenuIntegrity, "Menu data failed integrity validation")
)
