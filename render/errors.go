package render

import (
	"errors"
	"fmt"
)

var ErrTemplateNotFound = errors.New("template not found")

// RenderError is returned when a template cannot be rendered, either
// because it does not exist, it failed to parse or its execution failed.
type RenderError struct {
	Name string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %q: %v", e.Name, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

func newRenderError(name string, err error) *RenderError {
	return &RenderError{
		Name: name,
		Err:  err,
	}
}

// IsRenderError reports whether err is, or wraps, a RenderError.
func IsRenderError(err error) bool {
	var renderErr *RenderError
	return errors.As(err, &renderErr)
}
