package errors

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error represents an application error rendered as {"error": message}
type Error struct {
	Code    int               `json:"-"`
	Message string            `json:"error"`
	Fields  map[string]string `json:"fields,omitempty"`
	Err     error             `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// JSON returns the error as a JSON string
func (e *Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Wrap copies base and attaches err, leaving the shared value untouched
func Wrap(base *Error, err error) *Error {
	cp := *base
	cp.Err = err
	return &cp
}

// WithFields copies base and attaches per-field messages
func WithFields(base *Error, message string, fields map[string]string) *Error {
	cp := *base
	cp.Message = message
	cp.Fields = fields
	return &cp
}

// Common error types
var (
	ErrBadRequest         = New(http.StatusBadRequest, "Bad request", nil)
	ErrNotFound           = New(http.StatusNotFound, "Not found", nil)
	ErrValidation         = New(http.StatusUnprocessableEntity, "Validation error", nil)
	ErrTooManyRequests    = New(http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
	ErrInternalServer     = New(http.StatusInternalServerError, "Internal server error", nil)
	ErrServiceUnavailable = New(http.StatusServiceUnavailable, "Service unavailable", nil)
)

// Session store error types
var (
	ErrSessionStore = New(http.StatusServiceUnavailable, "Session store unavailable", nil)
)

// Checkout error types
var (
	ErrCartEmpty       = New(http.StatusConflict, "Cart is empty", nil)
	ErrInvalidStep     = New(http.StatusConflict, "Action not allowed at the current checkout step", nil)
	ErrOrderPlaced     = New(http.StatusConflict, "Order has already been placed", nil)
	ErrNoConfirmation  = New(http.StatusNotFound, "No order has been placed", nil)
	ErrProductNotFound = New(http.StatusNotFound, "Product not found", nil)
)

// From converts any error into an *Error, defaulting to 500
func From(err error) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}
	return Wrap(ErrInternalServer, err)
}

// ErrorMiddleware renders the last error attached to the gin context
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		appErr := From(c.Errors.Last().Err)
		c.AbortWithStatusJSON(appErr.Code, appErr)
	}
}
