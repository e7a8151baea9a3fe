package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/lambda-feedback/landing/util/logging"
	"github.com/lambda-feedback/landing/util/report"
)

var errInvalidStatus = errors.New("invalid response status")

var placeholder = http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})

// Router dispatches requests to the handler registered for their method
// and path. Routes are matched in registration order.
type Router struct {
	mu sync.RWMutex

	mux    *mux.Router
	routes []*Route
	byMux  map[*mux.Route]*Route
	keys   map[string]struct{}

	log *zap.Logger
}

var _ Handler = (*Router)(nil)

// New creates an empty router.
func New(log *zap.Logger) *Router {
	if log == nil {
		log = zap.NewNop()
	}

	return &Router{
		mux:   mux.NewRouter(),
		byMux: make(map[*mux.Route]*Route),
		keys:  make(map[string]struct{}),
		log:   log,
	}
}

// Register maps method and pattern to handler. Registering the same
// method and pattern twice returns a *ConfigurationError.
func (r *Router) Register(method, pattern string, handler Handler) error {
	return r.RegisterRoute(Route{
		Method:  method,
		Pattern: pattern,
		Handler: handler,
	})
}

// RegisterRoute registers a fully described route.
func (r *Router) RegisterRoute(route Route) error {
	route.Method = strings.ToUpper(strings.TrimSpace(route.Method))

	if route.Method == "" {
		return newConfigurationError(route.Method, route.Pattern, ErrInvalidMethod)
	}

	if route.Handler == nil {
		return newConfigurationError(route.Method, route.Pattern, ErrNilHandler)
	}

	if err := validatePattern(route.Pattern); err != nil {
		return newConfigurationError(route.Method, route.Pattern, err)
	}

	if route.Name == "" {
		route.Name = route.Method + " " + route.Pattern
	}

	key := route.Method + " " + route.Pattern

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.keys[key]; ok {
		return newConfigurationError(route.Method, route.Pattern, ErrDuplicateRoute)
	}

	// mux only clears a method mismatch from an earlier route when the
	// matching route carries a handler; dispatch never calls it
	muxRoute := r.mux.NewRoute().
		Path(route.Pattern).
		Methods(route.Method).
		Handler(placeholder)
	if err := muxRoute.GetError(); err != nil {
		return newConfigurationError(route.Method, route.Pattern, fmt.Errorf("%w: %v", ErrInvalidPattern, err))
	}

	stored := &route
	r.keys[key] = struct{}{}
	r.routes = append(r.routes, stored)
	r.byMux[muxRoute] = stored

	r.log.Debug("registered route",
		zap.String("name", route.Name),
		zap.String("method", route.Method),
		zap.String("pattern", route.Pattern),
	)

	return nil
}

// Routes returns the registered routes in registration order.
func (r *Router) Routes() []Route {
	r.mu.RLock()
	defer r.mu.RUnlock()

	routes := make([]Route, 0, len(r.routes))
	for _, route := range r.routes {
		routes = append(routes, *route)
	}

	return routes
}

// Handle implements Handler.
func (r *Router) Handle(ctx context.Context, req Request) Response {
	return r.Dispatch(ctx, req)
}

// Dispatch invokes the first route matching the request. Unmatched
// requests get an empty 404 response. Handler panics and invalid status
// codes are turned into an empty 500 response.
func (r *Router) Dispatch(ctx context.Context, req Request) (res Response) {
	log := logging.WithRequestID(ctx, r.log).With(
		zap.String("method", req.Method),
		zap.String("path", req.Path),
	)

	route, params, ok := r.match(ctx, req)
	if !ok {
		log.Debug("no route matched")
		return ErrorResponse(ErrNotFound)
	}

	log = log.With(zap.String("route", route.Name))
	req.Params = params

	defer func() {
		rec := recover()
		if rec == nil {
			return
		}

		log.Error("handler panicked", zap.Any("panic", rec))
		report.Recover(ctx, rec)

		res = ErrorResponse(fmt.Errorf("handler panicked: %v", rec))
	}()

	res = route.Handler.Handle(ctx, req)

	if res.StatusCode < 100 || res.StatusCode > 599 {
		log.Error("handler returned invalid status", zap.Int("status", res.StatusCode))
		return ErrorResponse(errInvalidStatus)
	}

	if res.Header == nil {
		res.Header = make(http.Header)
	}

	return res
}

func (r *Router) match(ctx context.Context, req Request) (*Route, map[string]string, bool) {
	httpReq := (&http.Request{
		Method: strings.ToUpper(req.Method),
		URL:    &url.URL{Path: req.Path},
		Header: req.Header,
	}).WithContext(ctx)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var match mux.RouteMatch
	if !r.mux.Match(httpReq, &match) {
		return nil, nil, false
	}

	route, ok := r.byMux[match.Route]
	if !ok {
		return nil, nil, false
	}

	return route, match.Vars, true
}

func validatePattern(pattern string) error {
	if !strings.HasPrefix(pattern, "/") {
		return fmt.Errorf("%w: must start with /", ErrInvalidPattern)
	}

	// check the template on a scratch router so a broken route never
	// ends up in the live one
	if err := mux.NewRouter().NewRoute().Path(pattern).GetError(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}

	return nil
}
