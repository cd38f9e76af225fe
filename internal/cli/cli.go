package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/confjson/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Invocation is a parsed command line.
type Invocation struct {
	Config       *app.Config
	DocumentPath string // "-" reads the document from stdin
}

// Parse processes command-line arguments. It returns a populated Invocation,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*Invocation, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("confjson", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
confjson - Check and normalise typed JSON configuration documents.

Usage:
  confjson [options] DOCUMENT

Arguments:
  DOCUMENT
    Path to a JSON configuration document, or - for stdin.

Options:
`)
		flagSet.PrintDefaults()
	}

	manifestsFlag := flagSet.String("manifests", "types", "Comma-separated .hcl files or directories declaring configuration types.")
	mFlag := flagSet.String("m", "", "Manifest paths (shorthand).")
	checkTypesFlag := flagSet.Bool("check-types", false, "Check every item against its declared property type.")
	strictNamesFlag := flagSet.Bool("strict-names", false, "Reject documents that repeat a key, when reading or writing.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		slog.Debug("No document provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: "expected exactly one document, got " + fmt.Sprint(flagSet.NArg())}
	}

	manifests := *manifestsFlag
	if *mFlag != "" {
		manifests = *mFlag
	}

	config, err := app.NewConfig(app.Config{
		ManifestPaths: splitPaths(manifests),
		LogFormat:     *logFormatFlag,
		LogLevel:      *logLevelFlag,
		StrictNames:   *strictNamesFlag,
		CheckTypes:    *checkTypesFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return &Invocation{Config: config, DocumentPath: flagSet.Arg(0)}, false, nil
}

func splitPaths(s string) []string {
	var paths []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}
