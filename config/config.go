package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix = "OAS_FILTER"

	defaultLogLevel  = "info"
	defaultLogFormat = "plain"
)

var (
	ErrMissingInputFile  = errors.New("input file is required")
	ErrMissingOutputFile = errors.New("output file is required")

	logFormats = map[string]logging.Format{
		"plain":  logging.Plain,
		"colors": logging.Colors,
		"json":   logging.JSON,
	}
)

type Config struct {
	InputFile   string   `json:"input-file"`
	OutputFile  string   `json:"output-file"`
	Keep        []string `json:"keep"`
	LogLevel    string   `json:"log-level"`
	LogFormat   string   `json:"log-format"`
	WarnUnknown bool     `json:"warn-unknown"`
}

// BuildViper layers the parsed flags over OAS_FILTER_* environment variables
// and the optional config file.
func BuildViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("couldn't bind flags: %w", err)
	}

	if configFile := v.GetString(ConfigFileKey); configFile != "" {
		v.SetConfigFile(configFile)
		if filepath.Ext(configFile) == "" {
			v.SetConfigType("json")
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("couldn't read config file %s: %w", configFile, err)
		}
	}
	return v, nil
}

// NewConfig reads the configuration out of v. Positional args fill in the
// input and output files when they were not set otherwise; any remaining args
// are appended to the keep list.
func NewConfig(v *viper.Viper, args []string) (Config, error) {
	cfg := Config{
		InputFile:   v.GetString(InputFileKey),
		OutputFile:  v.GetString(OutputFileKey),
		Keep:        v.GetStringSlice(KeepKey),
		LogLevel:    v.GetString(LogLevelKey),
		LogFormat:   v.GetString(LogFormatKey),
		WarnUnknown: v.GetBool(WarnUnknownKey),
	}

	rest := args
	if cfg.InputFile == "" && len(rest) > 0 {
		cfg.InputFile, rest = rest[0], rest[1:]
	}
	if cfg.OutputFile == "" && len(rest) > 0 {
		cfg.OutputFile, rest = rest[0], rest[1:]
	}
	cfg.Keep = append(cfg.Keep, rest...)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.InputFile == "" {
		return ErrMissingInputFile
	}
	if c.OutputFile == "" {
		return ErrMissingOutputFile
	}
	if _, err := logging.ToLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid %s: %w", LogLevelKey, err)
	}
	if _, ok := logFormats[strings.ToLower(c.LogFormat)]; !ok {
		return fmt.Errorf("invalid %s: %q", LogFormatKey, c.LogFormat)
	}
	return nil
}

// Level returns the parsed log level. It assumes the config was validated.
func (c Config) Level() logging.Level {
	level, err := logging.ToLevel(c.LogLevel)
	if err != nil {
		return logging.Info
	}
	return level
}

// Format returns the log format. It assumes the config was validated.
func (c Config) Format() logging.Format {
	return logFormats[strings.ToLower(c.LogFormat)]
}
