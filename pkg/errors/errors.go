package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error is an application error that knows which HTTP status it maps to.
// Derived errors made with Wrap or WithMessage remember their base value,
// so errors.Is against the package-level values keeps working.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
	base    *Error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the error itself, its base, or any Error with the same code
// and message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e == t || e.base == t || (e.Code == t.Code && e.Message == t.Message)
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Wrap attaches a cause to a base error without mutating the package-level value.
func Wrap(base *Error, err error) *Error {
	return &Error{Code: base.Code, Message: base.Message, Err: err, base: base}
}

// WithMessage keeps the base status but swaps in a more specific message.
func WithMessage(base *Error, message string) *Error {
	return &Error{Code: base.Code, Message: message, base: base}
}

// Common error types
var (
	ErrInvalidInput      = New(http.StatusBadRequest, "Invalid input", nil)
	ErrUnauthorized      = New(http.StatusUnauthorized, "Unauthorized", nil)
	ErrForbidden         = New(http.StatusForbidden, "Access denied: Admins only", nil)
	ErrNotFound          = New(http.StatusNotFound, "Not found", nil)
	ErrInternalServer    = New(http.StatusInternalServerError, "Internal server error", nil)
	ErrStoreUnavailable  = New(http.StatusServiceUnavailable, "Data store unavailable", nil)
	ErrEmptyCart         = New(http.StatusBadRequest, "Cart is empty", nil)
	ErrProductNotFound   = New(http.StatusNotFound, "Product no longer exists", nil)
	ErrInsufficientStock = New(http.StatusBadRequest, "Insufficient stock", nil)
	ErrInvalidToken      = New(http.StatusUnauthorized, "Invalid token", nil)
)

// Respond writes err as a JSON response on the Gin context. Unknown error
// values are reported generically as 500s so internals never leak to callers.
func Respond(c *gin.Context, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = Wrap(ErrInternalServer, err)
	}
	c.JSON(appErr.Code, gin.H{"message": appErr.Message})
}

// Is reports whether err is (or derives from) the given application error.
func Is(err error, target *Error) bool {
	return errors.Is(err, target)
}
