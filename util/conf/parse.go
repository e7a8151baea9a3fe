package conf

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/lambda-feedback/landing/util/cliflags"
)

// DefaultConfig maps dotted config keys to their default values.
type DefaultConfig = map[string]any

type ParseOptions struct {
	// Cli is the cli.Context from urfave/cli
	Cli *cli.Context

	// CliMap is a map of cli flag names to config keys
	CliMap map[string]string

	// Defaults is a map of default values
	Defaults DefaultConfig

	// EnvPrefix is the prefix for env vars
	EnvPrefix string

	// EnvFile is the name of a dotenv file to load. It is skipped if it
	// does not exist.
	EnvFile string

	// FileName is the name of the JSON configuration file to load
	FileName string

	// Schema is a JSON schema the configuration file is validated against
	Schema []byte

	// Log is the logger to use
	Log *zap.Logger
}

// Parse loads the configuration from, in increasing precedence, the
// defaults, the config file, the dotenv file, the environment and the
// cli flags.
func Parse[C any](opt ParseOptions) (C, error) {
	var config C

	var log *zap.Logger
	if opt.Log != nil {
		log = opt.Log
	} else {
		log = zap.NewNop()
	}

	k := koanf.New(".")

	if opt.Defaults != nil {
		if err := k.Load(confmap.Provider(opt.Defaults, "."), nil); err != nil {
			log.Error("error loading defaults", zap.Error(err))
			return config, err
		}
	}

	if opt.FileName != "" {
		log := log.With(zap.String("file", opt.FileName))

		if opt.Schema != nil {
			if err := validateFile(opt.FileName, opt.Schema); err != nil {
				log.Error("invalid config file", zap.Error(err))
				return config, err
			}
		}

		if err := k.Load(file.Provider(opt.FileName), json.Parser()); err != nil {
			log.Error("error parsing file", zap.Error(err))
			return config, err
		}
	}

	transformPrefixedEnv := func(s string) string {
		return transformEnv(s, opt.EnvPrefix)
	}

	if opt.EnvFile != "" {
		if _, err := os.Stat(opt.EnvFile); err == nil {
			parser := dotenv.ParserEnv(opt.EnvPrefix, ".", transformPrefixedEnv)
			if err := k.Load(file.Provider(opt.EnvFile), parser); err != nil {
				log.Error("error parsing env file",
					zap.Error(err),
					zap.String("file", opt.EnvFile),
				)
				return config, err
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return config, err
		}
	}

	if err := k.Load(env.Provider(opt.EnvPrefix, ".", transformPrefixedEnv), nil); err != nil {
		log.Error("error parsing env vars", zap.Error(err))
		return config, err
	}

	if opt.Cli != nil {
		transformFlag := func(s string) string {
			if opt.CliMap != nil {
				if name, ok := opt.CliMap[s]; ok {
					return name
				}
			}

			// replace - with _
			return strings.ReplaceAll(strings.ToLower(s), "-", "_")
		}

		if err := k.Load(cliflags.Provider(opt.Cli, ".", transformFlag), nil); err != nil {
			log.Error("error parsing cli flags", zap.Error(err))
			return config, err
		}
	}

	if err := k.UnmarshalWithConf("", &config, koanf.UnmarshalConf{Tag: "conf"}); err != nil {
		log.Error("error unmarshalling config", zap.Error(err))
		return config, err
	}

	return config, nil
}

func transformEnv(s, prefix string) string {
	// pop prefix if it is set
	s = strings.TrimPrefix(s, prefix)
	// allow specifying nested env vars w/ __
	return strings.ReplaceAll(strings.ToLower(s), "__", ".")
}
