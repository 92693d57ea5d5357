package cli

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const envPrefix = "DLCTL"

// Config holds the settings shared by all subcommands. Values come from, in
// decreasing priority: flags, DLCTL_* environment variables, the config file.
type Config struct {
	Curve    string
	Output   string
	LogLevel string
}

func registerFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a YAML config file")
	fs.String("curve", "sm2", "curve to operate on (sm2, secp256k1)")
	fs.StringP("output", "o", formatText, "output format (text, json, yaml)")
	fs.String("log-level", "warn", "log level (debug, info, warn, error)")
}

func loadConfig(v *viper.Viper, fs *pflag.FlagSet) (*Config, error) {
	if err := v.BindPFlags(fs); err != nil {
		return nil, errors.Wrap(err, "binding flags")
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config %s", path)
		}
	}

	cfg := &Config{
		Curve:    strings.ToLower(v.GetString("curve")),
		Output:   strings.ToLower(v.GetString("output")),
		LogLevel: v.GetString("log-level"),
	}
	switch cfg.Output {
	case formatText, formatJSON, formatYAML:
	default:
		return nil, errors.Errorf("unknown output format %q", cfg.Output)
	}
	return cfg, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrap(err, "parsing log level")
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}
