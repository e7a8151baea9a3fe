package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/lambda-feedback/landing/app"
	"github.com/lambda-feedback/landing/app/standalone"
	"github.com/lambda-feedback/landing/internal/server"
	"github.com/lambda-feedback/landing/util/conf"
	"github.com/lambda-feedback/landing/util/logging"
)

var (
	serveCmdDescription = `The serve command starts a http server that answers GET /
with the rendered base template.

The command will launch the http server and blocks indefin-
itely, processing incoming http requests.`
	serveCmd = &cli.Command{
		Name:        "serve",
		Usage:       "Start a http server serving the landing page.",
		Description: serveCmdDescription,
		Action:      serveAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "host",
				Aliases:  []string{"H"},
				Usage:    "The host to listen on.",
				Value:    "localhost",
				Category: "http",
				EnvVars:  []string{"LANDING_HTTP_HOST", "HTTP_HOST"},
			},
			&cli.IntFlag{
				Name:     "port",
				Aliases:  []string{"P"},
				Usage:    "The port to listen on.",
				Value:    8080,
				Category: "http",
				EnvVars:  []string{"LANDING_HTTP_PORT", "HTTP_PORT"},
			},
			&cli.BoolFlag{
				Name:     "h2c",
				Usage:    "Enable HTTP/2 cleartext upgrade.",
				Value:    false,
				Category: "http",
				EnvVars:  []string{"LANDING_HTTP_H2C", "HTTP_H2C"},
			},
			&cli.DurationFlag{
				Name:     "read-header-timeout",
				Usage:    "The time allowed to read request headers.",
				Value:    server.DefaultReadHeaderTimeout,
				Category: "http",
				EnvVars:  []string{"LANDING_HTTP_READ_HEADER_TIMEOUT"},
			},
		},
	}
)

func serveAction(ctx *cli.Context) error {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return err
	}

	app, err := app.New(ctx)
	if err != nil {
		return err
	}

	cfg, err := conf.Parse[standalone.Config](conf.ParseOptions{
		Defaults: conf.DefaultConfig{
			"host":                "localhost",
			"port":                8080,
			"read_header_timeout": server.DefaultReadHeaderTimeout,
		},
		Log: log,
		Cli: ctx,
	})
	if err != nil {
		return err
	}

	log.Info("starting http server")

	return app.Run(ctx.Context, standalone.Module(cfg))
}

func init() {
	rootApp.Commands = append(rootApp.Commands, serveCmd)
}
