package lambda

import (
	"go.uber.org/fx"

	"github.com/lambda-feedback/landing/internal/server"
	"github.com/lambda-feedback/landing/util/logging"
)

func Module(config Config) fx.Option {
	return fx.Module(
		"lambda",
		// provide lambda config
		fx.Supply(config),
		// rename logger for module
		logging.DecorateLogger("lambda"),
		// provide http handler
		fx.Provide(server.NewHandler),
		// provide lambda handler
		fx.Provide(NewLifecycleHandler),
		// invoke lambda handler
		fx.Invoke(func(*LambdaHandler) {}),
	)
}
