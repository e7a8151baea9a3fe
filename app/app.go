package app

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"github.com/lambda-feedback/landing/config"
	"github.com/lambda-feedback/landing/handler"
	"github.com/lambda-feedback/landing/internal/shell"
	"github.com/lambda-feedback/landing/render"
	"github.com/lambda-feedback/landing/router"
	"github.com/lambda-feedback/landing/util/conf"
	"github.com/lambda-feedback/landing/util/logging"
)

// Module provides everything a transport needs to serve requests: the
// config, the renderer, the router and the routes.
func Module(cfg config.Config) fx.Option {
	return fx.Module(
		"shared",
		// provide global config
		fx.Supply(cfg),
		// provide renderer
		render.Module(cfg.Render),
		// provide router
		router.Module(),
		// provide handlers and their routes
		handler.Module(),
	)
}

func New(ctx *cli.Context) (*shell.Shell, error) {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return nil, err
	}

	config, err := conf.GetConfigFromContext[config.Config](ctx.Context)
	if err != nil {
		return nil, err
	}

	return shell.New(log, Module(config)), nil
}
