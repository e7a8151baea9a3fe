package router

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound       = errors.New("route not found")
	ErrDuplicateRoute = errors.New("route already registered")
	ErrInvalidPattern = errors.New("invalid path pattern")
	ErrInvalidMethod  = errors.New("invalid method")
	ErrNilHandler     = errors.New("nil handler")
)

var wellKnownErrors = map[error]int{
	ErrNotFound: http.StatusNotFound,
}

// ConfigurationError is returned when a route cannot be registered.
// It is fatal at startup.
type ConfigurationError struct {
	Method  string
	Pattern string
	Err     error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("route %s %q: %v", e.Method, e.Pattern, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func newConfigurationError(method, pattern string, err error) *ConfigurationError {
	return &ConfigurationError{
		Method:  method,
		Pattern: pattern,
		Err:     err,
	}
}

// IsConfigurationError reports whether err is, or wraps, a ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

// getErrorStatusCode returns the status code for the given error.
func getErrorStatusCode(err error) int {
	for wellKnown, status := range wellKnownErrors {
		if errors.Is(err, wellKnown) {
			return status
		}
	}

	return http.StatusInternalServerError
}

// ErrorResponse converts err into a response with an empty body.
// The error itself is never written to the caller.
func ErrorResponse(err error) Response {
	return Response{
		StatusCode: getErrorStatusCode(err),
		Header:     make(http.Header),
	}
}
