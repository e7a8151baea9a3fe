package router

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// RouteResult puts a route into the "routes" value group.
type RouteResult struct {
	fx.Out

	Route *Route `group:"routes"`
}

// AsRoute wraps a handler into a route for the "routes" value group.
func AsRoute(method, pattern string, handler Handler) RouteResult {
	return AsNamedRoute("", method, pattern, handler)
}

// AsNamedRoute is like AsRoute but also sets the route name.
func AsNamedRoute(name, method, pattern string, handler Handler) RouteResult {
	return RouteResult{
		Route: &Route{
			Name:    name,
			Method:  method,
			Pattern: pattern,
			Handler: handler,
		},
	}
}

// Params defines the dependencies for the router.
type Params struct {
	fx.In

	// Routes are all routes provided to the "routes" group
	Routes []*Route `group:"routes"`

	// Log is the logger to use for the router
	Log *zap.Logger
}

// NewFromRoutes creates a router and registers all grouped routes. A
// *ConfigurationError aborts the construction of the application.
func NewFromRoutes(params Params) (*Router, error) {
	r := New(params.Log.Named("router"))

	for _, route := range params.Routes {
		if route == nil {
			continue
		}

		if err := r.RegisterRoute(*route); err != nil {
			params.Log.Error("failed to register route", zap.Error(err))
			return nil, err
		}
	}

	return r, nil
}

// Module provides the router.
func Module() fx.Option {
	return fx.Module(
		"router",
		// provide router built from the routes group
		fx.Provide(NewFromRoutes),
	)
}
