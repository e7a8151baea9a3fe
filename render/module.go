package render

import (
	"context"
	"io/fs"
	"os"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/lambda-feedback/landing/util/logging"
)

// Config is the configuration of the template renderer.
type Config struct {
	// Dir is the directory to load templates from. The embedded default
	// templates are used if it is empty.
	Dir string `conf:"dir"`

	// Extension is the file extension of template sources.
	Extension string `conf:"extension"`

	// Watch reloads templates when files in Dir change.
	Watch bool `conf:"watch"`
}

// Params defines the dependencies for the renderer.
type Params struct {
	fx.In

	Config Config

	Log *zap.Logger
}

// NewRenderer creates a template renderer from the config.
func NewRenderer(params Params) (*TemplateRenderer, error) {
	var fsys fs.FS
	if params.Config.Dir != "" {
		fsys = os.DirFS(params.Config.Dir)
	} else {
		fsys = DefaultFS()
	}

	return NewTemplateRenderer(fsys, params.Config.Extension, params.Log)
}

// NewLifecycleRenderer creates a renderer and, if configured, attaches a
// template watcher to the application lifecycle.
func NewLifecycleRenderer(params Params, lc fx.Lifecycle) (Renderer, error) {
	r, err := NewRenderer(params)
	if err != nil {
		return nil, err
	}

	if !params.Config.Watch {
		return r, nil
	}

	if params.Config.Dir == "" {
		params.Log.Warn("template watching requires a template directory")
		return r, nil
	}

	watcher := NewWatcher(params.Config.Dir, r, params.Log)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return watcher.Start()
		},
		OnStop: func(context.Context) error {
			return watcher.Stop()
		},
	})

	return r, nil
}

// Module provides the renderer.
func Module(config Config) fx.Option {
	return fx.Module(
		"render",
		// rename logger for module
		logging.DecorateLogger("render"),
		// provide renderer config
		fx.Supply(config),
		// provide renderer
		fx.Provide(NewLifecycleRenderer),
	)
}
