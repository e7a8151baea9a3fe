package router

import (
	"context"
	"net/http"
)

// Request represents an incoming request.
type Request struct {
	Method string
	Path   string
	Header http.Header

	// Params holds the path variables of the matched route.
	Params map[string]string
}

// Response represents an outgoing response.
type Response struct {
	StatusCode int
	Body       []byte
	Header     http.Header
}

// Handler is the interface for handling requests.
type Handler interface {
	Handle(ctx context.Context, request Request) Response
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc func(ctx context.Context, request Request) Response

// Handle calls f(ctx, request).
func (f HandlerFunc) Handle(ctx context.Context, request Request) Response {
	return f(ctx, request)
}

// Route associates a method and a path pattern with a handler.
type Route struct {
	Method  string
	Pattern string
	Name    string
	Handler Handler
}

// NewResponse creates a response with the given status, content type and body.
func NewResponse(status int, contentType string, body []byte) Response {
	header := make(http.Header)
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}

	return Response{
		StatusCode: status,
		Body:       body,
		Header:     header,
	}
}
