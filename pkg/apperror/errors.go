package apperror

import (
	"errors"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound       = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrBadRequest     = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrConflict       = &AppError{Code: http.StatusConflict, Message: "Resource already exists"}
	ErrUnprocessable  = &AppError{Code: http.StatusUnprocessableEntity, Message: "Unprocessable entity"}

	// ErrEmptySelection is returned when an order is submitted with no priced items.
	ErrEmptySelection = &AppError{Code: http.StatusUnprocessableEntity, Message: "No products selected for this order"}
	// ErrInvalidVariant is returned when a quantity change targets a price
	// variant the product does not offer.
	ErrInvalidVariant = &AppError{Code: http.StatusUnprocessableEntity, Message: "Product does not offer the requested price variant"}
	// ErrRegisterClosed is returned when the backend rejects an order because
	// the cash register is not open. The backend message is passed through
	// verbatim via NewRegisterClosedError so the operator sees the real reason.
	ErrRegisterClosed = &AppError{Code: http.StatusConflict, Message: "Cash register is not open"}
	// ErrSubmissionFailed covers any other backend rejection or network
	// failure while creating an order.
	ErrSubmissionFailed = &AppError{Code: http.StatusBadGateway, Message: "Order could not be sent to the backend"}
	// ErrPrintFailed reports a ticket that could not be transmitted. It never
	// invalidates an already-created order; callers report it as a warning.
	ErrPrintFailed = &AppError{Code: http.StatusServiceUnavailable, Message: "Ticket could not be printed"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// NewRegisterClosedError wraps the backend's register-closed message without
// rewording it.
func NewRegisterClosedError(backendMessage string) *AppError {
	if backendMessage == "" {
		return ErrRegisterClosed
	}
	return &AppError{
		Code:    http.StatusConflict,
		Message: backendMessage,
	}
}

// NewSubmissionError creates a submission failure carrying the backend detail.
func NewSubmissionError(detail string) *AppError {
	if detail == "" {
		return ErrSubmissionFailed
	}
	return &AppError{
		Code:    http.StatusBadGateway,
		Message: "Order could not be sent to the backend: " + detail,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
