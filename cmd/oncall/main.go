// oncall generates on-call rosters from a declarative YAML configuration,
// enforcing role coverage, availability, workload, and weekend-fairness
// constraints via a block-decomposed constraint solver.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := run(logger, os.Args[1:]); err != nil {
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, args []string) error {
	if len(args) == 0 {
		printUsage()
		return nil
	}

	switch args[0] {
	case "validate":
		return runValidate(logger, args[1:])
	case "generate":
		return runGenerate(logger, args[1:])
	case "-h", "--help", "help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `oncall — on-call roster generator

Usage:
  oncall validate --config PATH
  oncall generate --config PATH [--output-dir DIR]

Commands:
  validate   Load and check a configuration file without solving anything
  generate   Solve for a roster and write the configured export formats
`)
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: oncall %s [flags]\n\n", name)
		fs.PrintDefaults()
	}
	return fs
}
