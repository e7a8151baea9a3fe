package server

import (
	"net/http"
	"strings"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/lambda-feedback/landing/router"
	"github.com/lambda-feedback/landing/util/logging"
)

// HandlerParams defines the dependencies for the http handler.
type HandlerParams struct {
	fx.In

	Router *router.Router
	Logger *zap.Logger
}

// NewHandler creates the http.Handler shared by all transports. Requests
// pass sentry, request id and access log middleware before they are
// dispatched to the router.
func NewHandler(params HandlerParams) http.Handler {
	log := params.Logger.Named("http")

	var handler http.Handler = NewDispatchHandler(params.Router, log)

	handler = WithLogging(handler, log)
	handler = WithRequestID(handler)

	return sentryhttp.New(sentryhttp.Options{}).Handle(handler)
}

// DispatchHandler adapts a router to net/http.
type DispatchHandler struct {
	router router.Handler
	log    *zap.Logger
}

func NewDispatchHandler(r router.Handler, log *zap.Logger) *DispatchHandler {
	return &DispatchHandler{
		router: r,
		log:    log,
	}
}

func (h *DispatchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	request := router.Request{
		Path:   r.URL.Path,
		Method: strings.ToUpper(r.Method),
		Header: r.Header,
	}

	// Dispatch the request
	response := h.router.Handle(r.Context(), request)

	// Map response headers
	for k, v := range response.Header {
		for _, vv := range v {
			w.Header().Add(k, vv)
		}
	}

	// Write response headers and status code
	w.WriteHeader(response.StatusCode)

	if len(response.Body) == 0 {
		return
	}

	// Write response body
	if _, err := w.Write(response.Body); err != nil {
		logging.WithRequestID(r.Context(), h.log).Debug("failed to write response", zap.Error(err))
	}
}
