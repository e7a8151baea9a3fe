package config

import (
	_ "embed"

	"github.com/lambda-feedback/landing/render"
	"github.com/lambda-feedback/landing/util/conf"
)

// EnvPrefix is the prefix of all environment variables read into Config.
const EnvPrefix = "LANDING_"

// Schema is the JSON schema of the configuration file.
//
//go:embed schema.json
var Schema []byte

type Config struct {
	// LogLevel is the log level for the application
	LogLevel string `conf:"log_level"`

	// LogFormat is the log format for the application
	LogFormat string `conf:"log_format"`

	// Render is the template renderer configuration
	Render render.Config `conf:"render"`
}

// DefaultConfig holds the lowest precedence configuration values.
var DefaultConfig = defaults(
	conf.DefaultConfig{
		"log_level":  "info",
		"log_format": "production",
	},
	conf.MergeDefaults("render", conf.DefaultConfig{
		"dir":       "",
		"extension": render.DefaultExtension,
		"watch":     false,
	}),
)

func defaults(maps ...conf.DefaultConfig) conf.DefaultConfig {
	merged := make(conf.DefaultConfig)
	for _, m := range maps {
		for key, val := range m {
			merged[key] = val
		}
	}

	return merged
}
