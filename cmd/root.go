package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/lambda-feedback/landing/config"
	"github.com/lambda-feedback/landing/internal/shell"
	"github.com/lambda-feedback/landing/util/conf"
	"github.com/lambda-feedback/landing/util/logging"
)

var (
	appName  = "landing"
	appUsage = `Serve the landing page of the site, rendered from the base
template, over http or as an AWS Lambda function.`
	rootApp = &cli.App{
		Name:            appName,
		Usage:           appUsage,
		HideHelpCommand: true,
		Args:            true,
		Flags: []cli.Flag{
			// general flags
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "set the log level. Options: debug, info, warn, error, panic, fatal.",
				EnvVars: []string{"LANDING_LOG_LEVEL", "LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "set the log format. Options: production, development.",
				EnvVars: []string{"LANDING_LOG_FORMAT", "LOG_FORMAT"},
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "the JSON configuration file to load.",
				Aliases: []string{"C"},
				EnvVars: []string{"LANDING_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "env-file",
				Usage:   "the dotenv file to load, skipped if it does not exist.",
				Value:   ".env",
				EnvVars: []string{"LANDING_ENV_FILE"},
			},
			// template flags
			&cli.StringFlag{
				Name:     "template-dir",
				Usage:    "the directory to load templates from. The built-in templates are used if empty.",
				Aliases:  []string{"t"},
				Category: "render",
			},
			&cli.BoolFlag{
				Name:     "template-watch",
				Usage:    "reload templates when files in the template directory change.",
				Category: "render",
			},
		},
		Before: func(ctx *cli.Context) error {
			// bootstrap logger for config errors
			bootLog, err := createLogger(ctx.String("log-level"), ctx.String("log-format"))
			if err != nil {
				return err
			}

			// parse config using defaults, file, env and flags
			cfg, err := conf.Parse[config.Config](conf.ParseOptions{
				Defaults:  config.DefaultConfig,
				EnvPrefix: config.EnvPrefix,
				EnvFile:   ctx.String("env-file"),
				FileName:  ctx.String("config"),
				Schema:    config.Schema,
				Cli:       ctx,
				CliMap: map[string]string{
					"template-dir":   "render.dir",
					"template-watch": "render.watch",
				},
				Log: bootLog,
			})
			if err != nil {
				return err
			}

			// create the logger from the resolved config
			log, err := createLogger(cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}

			// inject logger and config into cli context
			ctx.Context = logging.ContextWithLogger(ctx.Context, log)
			ctx.Context = conf.ContextWithConfig(ctx.Context, cfg)

			return nil
		},
		After: func(ctx *cli.Context) error {
			log, err := logging.LoggerFromContext(ctx.Context)
			if err != nil {
				return nil
			}

			log.Sync()

			return nil
		},
	}
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:               "version",
		Usage:              "print the version",
		DisableDefaultText: true,
	}
}

type ExecuteParams struct {
	Version  string
	Compiled time.Time
}

func Execute(params ExecuteParams) {
	rootApp.Version = params.Version
	rootApp.Compiled = params.Compiled

	run(context.Background(), os.Args)
}

func run(ctx context.Context, args []string) {
	err := rootApp.RunContext(ctx, args)

	code := shell.ExitCode(err)
	if code == 0 {
		return
	}

	// the shell logs its own failures
	if !shell.IsExitError(err) {
		fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
	}

	os.Exit(code)
}

func createLogger(level, format string) (*zap.Logger, error) {
	var config zap.Config
	if format == "development" {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}

	config.InitialFields = map[string]any{
		"app": appName,
	}

	config.Level = parseLogLevel(level)

	return config.Build()
}

func parseLogLevel(lvl string) zap.AtomicLevel {
	if atom, err := zap.ParseAtomicLevel(lvl); err == nil && lvl != "" {
		return atom
	}

	return zap.NewAtomicLevelAt(zap.InfoLevel)
}
