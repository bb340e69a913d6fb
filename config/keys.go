package config

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

const (
	// Command line option keys and flags
	ConfigFileKey = "config-file"
	VersionKey    = "version"
	HelpKey       = "help"

	InputFileKey   = "input-file"
	OutputFileKey  = "output-file"
	KeepKey        = "keep"
	LogLevelKey    = "log-level"
	LogFormatKey   = "log-format"
	WarnUnknownKey = "warn-unknown"
)

func BuildFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("oas-filter", pflag.ExitOnError)
	fs.Bool(HelpKey, false, "Display this help message and exit")
	fs.Bool(VersionKey, false, "Display the version and exit")
	fs.String(ConfigFileKey, "", "Path to the config file")

	fs.String(InputFileKey, "", "Input OpenAPI specification JSON file")
	fs.String(OutputFileKey, "", "Output file for the filtered specification")
	fs.StringArray(KeepKey, nil, "Schema name to keep, or path to a file of newline-separated schema names (repeatable)")
	fs.String(LogLevelKey, defaultLogLevel, "Log level")
	fs.String(LogFormatKey, defaultLogFormat, "Log format: plain or json")
	fs.Bool(WarnUnknownKey, false, "Warn about unknown keep names, unmatched SObjectType values and dangling schema references")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <input-file> <output-file> [keep ...]\n\n", os.Args[0])
		fs.PrintDefaults()
	}
	return fs
}
