package app_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/lambda-feedback/landing/app"
	"github.com/lambda-feedback/landing/config"
	"github.com/lambda-feedback/landing/render"
	"github.com/lambda-feedback/landing/router"
)

func testConfig() config.Config {
	return config.Config{
		LogLevel:  "debug",
		LogFormat: "development",
		Render: render.Config{
			Extension: render.DefaultExtension,
		},
	}
}

func TestModule_ServesIndex(t *testing.T) {
	var r *router.Router

	fxApp := fxtest.New(t,
		fx.Supply(zaptest.NewLogger(t)),
		fx.Supply(fx.Annotate(context.Background(), fx.As(new(context.Context)))),
		app.Module(testConfig()),
		fx.Populate(&r),
	)
	defer fxApp.RequireStart().RequireStop()

	res := r.Dispatch(context.Background(), router.Request{
		Method: http.MethodGet,
		Path:   "/",
	})

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", res.Header.Get("Content-Type"))
	assert.Contains(t, string(res.Body), "<title>Welcome!</title>")
}

func TestModule_Routes(t *testing.T) {
	var r *router.Router

	fxApp := fxtest.New(t,
		fx.Supply(zap.NewNop()),
		fx.Supply(fx.Annotate(context.Background(), fx.As(new(context.Context)))),
		app.Module(testConfig()),
		fx.Populate(&r),
	)
	defer fxApp.RequireStart().RequireStop()

	names := make([]string, 0)
	for _, route := range r.Routes() {
		names = append(names, route.Name)
	}

	assert.ElementsMatch(t, []string{"index", "health"}, names)
}

func TestModule_MissingTemplateDir(t *testing.T) {
	cfg := testConfig()
	cfg.Render.Dir = t.TempDir()

	var r *router.Router

	fxApp := fxtest.New(t,
		fx.Supply(zaptest.NewLogger(t)),
		fx.Supply(fx.Annotate(context.Background(), fx.As(new(context.Context)))),
		app.Module(cfg),
		fx.Populate(&r),
	)
	require.NoError(t, fxApp.Err())
	defer fxApp.RequireStart().RequireStop()

	res := r.Dispatch(context.Background(), router.Request{
		Method: http.MethodGet,
		Path:   "/",
	})

	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Empty(t, res.Body)
}
