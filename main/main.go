package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"

	"github.com/ava-labs/oas-filter/config"
	"github.com/ava-labs/oas-filter/filter"
	"github.com/ava-labs/oas-filter/keeplist"
	"github.com/ava-labs/oas-filter/spec"
)

const version = "v0.1.0"

// nopCloser lets the logger write to a stream it does not own.
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := config.BuildFlagSet()
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("couldn't parse flags: %w", err)
	}

	// If the help flag is set, output the usage text then exit
	help, err := fs.GetBool(config.HelpKey)
	if err != nil {
		return fmt.Errorf("error reading %s flag value: %w", config.HelpKey, err)
	}
	if help {
		fs.Usage()
		return nil
	}

	showVersion, err := fs.GetBool(config.VersionKey)
	if err != nil {
		return fmt.Errorf("error reading %s flag value: %w", config.VersionKey, err)
	}
	if showVersion {
		fmt.Fprintln(stdout, version)
		return nil
	}

	v, err := config.BuildViper(fs)
	if err != nil {
		return fmt.Errorf("couldn't configure flags: %w", err)
	}

	cfg, err := config.NewConfig(v, fs.Args())
	if err != nil {
		return fmt.Errorf("couldn't build config: %w", err)
	}

	log := logging.NewLogger(
		"oas-filter",
		logging.NewWrappedCore(cfg.Level(), nopCloser{stderr}, cfg.Format().ConsoleEncoder()),
	)

	if err := filterSpec(cfg, keeplist.NewResolver(), log); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Successfully filtered specification. Output written to %s\n", cfg.OutputFile)
	return nil
}

func filterSpec(cfg config.Config, resolver *keeplist.Resolver, log logging.Logger) error {
	keep, err := resolver.Resolve(cfg.Keep)
	if err != nil {
		return fmt.Errorf("error reading objects file: %w", err)
	}
	log.Debug("resolved keep list", zap.Strings("names", keep))

	doc, err := spec.ReadFile(resolver.Fs, cfg.InputFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("could not find input file %s", cfg.InputFile)
	case errors.Is(err, spec.ErrInvalidJSON):
		return fmt.Errorf("invalid JSON in input file %s: %w", cfg.InputFile, err)
	case err != nil:
		return fmt.Errorf("couldn't read input file %s: %w", cfg.InputFile, err)
	}

	if doc.Schemas() == nil {
		log.Info("no components.schemas in input, leaving it unchanged",
			zap.String("path", cfg.InputFile),
		)
	}

	res := filter.Apply(doc, keep)
	log.Info("filtered schemas",
		zap.Int("retained", len(res.Retained)),
		zap.Int("removed", len(res.Removed)),
	)
	log.Debug("removed schemas", zap.Strings("names", res.Removed))

	if cfg.WarnUnknown {
		if err := warnUnknown(doc, res, log); err != nil {
			return err
		}
	}

	if err := spec.WriteFile(cfg.OutputFile, doc); err != nil {
		return fmt.Errorf("couldn't write output file %s: %w", cfg.OutputFile, err)
	}
	return nil
}

func warnUnknown(doc *spec.Document, res *filter.Result, log logging.Logger) error {
	for _, name := range res.Unknown {
		log.Warn("keep-list name is not a schema", zap.String("name", name))
	}
	for _, value := range res.UnmatchedEnum {
		log.Warn("enum value names no schema",
			zap.String("schema", filter.TypeSchemaName),
			zap.String("value", value),
		)
	}

	refs, err := filter.DanglingRefs(doc)
	if err != nil {
		return fmt.Errorf("couldn't collect schema references: %w", err)
	}
	for _, ref := range refs {
		log.Warn("reference to a removed schema", zap.String("ref", ref))
	}
	return nil
}
