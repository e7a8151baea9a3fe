package router_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/lambda-feedback/landing/router"
)

func staticHandler(status int, body string) router.Handler {
	return router.HandlerFunc(func(context.Context, router.Request) router.Response {
		return router.NewResponse(status, "text/plain", []byte(body))
	})
}

func setupRouter(t *testing.T) *router.Router {
	r := router.New(zaptest.NewLogger(t))
	require.NoError(t, r.Register(http.MethodGet, "/", staticHandler(http.StatusOK, "index")))
	return r
}

func createRequest(method, path string) router.Request {
	return router.Request{
		Method: method,
		Path:   path,
		Header: http.Header{},
	}
}

func TestRouter_Dispatch_MatchesRoot(t *testing.T) {
	r := setupRouter(t)

	res := r.Dispatch(context.Background(), createRequest(http.MethodGet, "/"))

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "index", string(res.Body))
	assert.Equal(t, "text/plain", res.Header.Get("Content-Type"))
}

func TestRouter_Dispatch_LowercaseMethod(t *testing.T) {
	r := setupRouter(t)

	res := r.Dispatch(context.Background(), createRequest("get", "/"))

	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestRouter_Dispatch_NotFound(t *testing.T) {
	r := setupRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"post on root", http.MethodPost, "/"},
		{"put on root", http.MethodPut, "/"},
		{"head on root", http.MethodHead, "/"},
		{"unknown path", http.MethodGet, "/missing"},
		{"trailing segment", http.MethodGet, "/index/"},
		{"empty path", http.MethodGet, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Dispatch(context.Background(), createRequest(tt.method, tt.path))

			assert.Equal(t, http.StatusNotFound, res.StatusCode)
			assert.Empty(t, res.Body)
		})
	}
}

func TestRouter_Register_Duplicate(t *testing.T) {
	r := setupRouter(t)

	err := r.Register("GET", "/", staticHandler(http.StatusOK, "other"))
	require.Error(t, err)

	var cfgErr *router.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, http.MethodGet, cfgErr.Method)
	assert.Equal(t, "/", cfgErr.Pattern)
	assert.ErrorIs(t, err, router.ErrDuplicateRoute)

	// the first registration still serves
	res := r.Dispatch(context.Background(), createRequest(http.MethodGet, "/"))
	assert.Equal(t, "index", string(res.Body))
}

func TestRouter_Register_SamePatternOtherMethod(t *testing.T) {
	r := setupRouter(t)

	require.NoError(t, r.Register(http.MethodPost, "/", staticHandler(http.StatusCreated, "created")))

	res := r.Dispatch(context.Background(), createRequest(http.MethodPost, "/"))
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	res = r.Dispatch(context.Background(), createRequest(http.MethodGet, "/"))
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestRouter_Register_Invalid(t *testing.T) {
	r := router.New(zaptest.NewLogger(t))

	tests := []struct {
		name    string
		method  string
		pattern string
		handler router.Handler
		want    error
	}{
		{"empty method", "", "/", staticHandler(http.StatusOK, ""), router.ErrInvalidMethod},
		{"nil handler", http.MethodGet, "/", nil, router.ErrNilHandler},
		{"relative pattern", http.MethodGet, "index", staticHandler(http.StatusOK, ""), router.ErrInvalidPattern},
		{"unbalanced braces", http.MethodGet, "/{name", staticHandler(http.StatusOK, ""), router.ErrInvalidPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.Register(tt.method, tt.pattern, tt.handler)

			assert.True(t, router.IsConfigurationError(err))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	assert.Empty(t, r.Routes())
}

func TestRouter_Dispatch_PathParams(t *testing.T) {
	r := router.New(zaptest.NewLogger(t))

	var got map[string]string
	err := r.Register(http.MethodGet, "/pages/{name}", router.HandlerFunc(
		func(_ context.Context, req router.Request) router.Response {
			got = req.Params
			return router.NewResponse(http.StatusOK, "", nil)
		},
	))
	require.NoError(t, err)

	res := r.Dispatch(context.Background(), createRequest(http.MethodGet, "/pages/about"))

	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, map[string]string{"name": "about"}, got)
}

func TestRouter_Dispatch_FirstMatchWins(t *testing.T) {
	r := router.New(zaptest.NewLogger(t))

	require.NoError(t, r.Register(http.MethodGet, "/pages/about", staticHandler(http.StatusOK, "static")))
	require.NoError(t, r.Register(http.MethodGet, "/pages/{name}", staticHandler(http.StatusOK, "dynamic")))

	res := r.Dispatch(context.Background(), createRequest(http.MethodGet, "/pages/about"))
	assert.Equal(t, "static", string(res.Body))

	res = r.Dispatch(context.Background(), createRequest(http.MethodGet, "/pages/other"))
	assert.Equal(t, "dynamic", string(res.Body))
}

func TestRouter_Dispatch_HandlerPanics(t *testing.T) {
	r := router.New(zaptest.NewLogger(t))

	err := r.Register(http.MethodGet, "/", router.HandlerFunc(
		func(context.Context, router.Request) router.Response {
			panic("boom")
		},
	))
	require.NoError(t, err)

	var res router.Response
	require.NotPanics(t, func() {
		res = r.Dispatch(context.Background(), createRequest(http.MethodGet, "/"))
	})

	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Empty(t, res.Body)
}

func TestRouter_Dispatch_InvalidStatus(t *testing.T) {
	r := router.New(zaptest.NewLogger(t))

	require.NoError(t, r.Register(http.MethodGet, "/low", staticHandler(42, "nope")))
	require.NoError(t, r.Register(http.MethodGet, "/high", staticHandler(600, "nope")))

	for _, path := range []string{"/low", "/high"} {
		res := r.Dispatch(context.Background(), createRequest(http.MethodGet, path))

		assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
		assert.Empty(t, res.Body)
	}
}

func TestRouter_Dispatch_NilHeaderIsInitialised(t *testing.T) {
	r := router.New(zaptest.NewLogger(t))

	err := r.Register(http.MethodGet, "/", router.HandlerFunc(
		func(context.Context, router.Request) router.Response {
			return router.Response{StatusCode: http.StatusNoContent}
		},
	))
	require.NoError(t, err)

	res := r.Dispatch(context.Background(), createRequest(http.MethodGet, "/"))

	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	assert.NotNil(t, res.Header)
}

func TestRouter_Dispatch_Concurrent(t *testing.T) {
	r := setupRouter(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := r.Dispatch(context.Background(), createRequest(http.MethodGet, "/"))
			assert.Equal(t, http.StatusOK, res.StatusCode)
			assert.Equal(t, "index", string(res.Body))
		}()
	}
	wg.Wait()
}

func TestRouter_Routes(t *testing.T) {
	r := setupRouter(t)
	require.NoError(t, r.RegisterRoute(router.Route{
		Name:    "health",
		Method:  "get",
		Pattern: "/health",
		Handler: staticHandler(http.StatusOK, "ok"),
	}))

	routes := r.Routes()

	require.Len(t, routes, 2)
	assert.Equal(t, "GET /", routes[0].Name)
	assert.Equal(t, "health", routes[1].Name)
	assert.Equal(t, http.MethodGet, routes[1].Method)
	assert.Equal(t, "/health", routes[1].Pattern)
}

func TestErrorResponse(t *testing.T) {
	res := router.ErrorResponse(router.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Empty(t, res.Body)

	res = router.ErrorResponse(errors.New("template exploded"))
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Empty(t, res.Body)
}
