package handler

import (
	"go.uber.org/fx"

	"github.com/lambda-feedback/landing/util/logging"
)

func Module() fx.Option {
	return fx.Module("handler",
		// rename logger for module
		logging.DecorateLogger("handler"),
		// provide index handler
		fx.Provide(NewIndexHandler),
		// provide routes
		fx.Provide(NewIndexRoute),
		fx.Provide(NewHealthRoute),
	)
}
