package standalone

import (
	"go.uber.org/fx"

	"github.com/lambda-feedback/landing/internal/server"
	"github.com/lambda-feedback/landing/util/logging"
)

func Module(config Config) fx.Option {
	return fx.Module(
		"serve",
		// rename logger for module
		logging.DecorateLogger("serve"),
		// provide http handler and server
		server.Module(config.HttpConfig),
	)
}
