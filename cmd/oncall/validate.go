package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/onduty-eng/oncall-roster/internal/apperr"
	"github.com/onduty-eng/oncall-roster/internal/config"
	"github.com/onduty-eng/oncall-roster/internal/csvio"
	"github.com/onduty-eng/oncall-roster/internal/domain"
	"github.com/onduty-eng/oncall-roster/internal/report"
	"github.com/onduty-eng/oncall-roster/internal/validate"
)

// runValidate implements `oncall validate --config PATH`: exit code 0 if
// configuration and availability are loadable and no validator error is
// present, nonzero otherwise. Warnings never affect the exit code.
func runValidate(logger *slog.Logger, args []string) error {
	fs := newFlagSet("validate")
	configPath := fs.String("config", "", "path to the YAML configuration file (required)")
	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return apperr.NewConfigError("%v", err)
	}
	if *configPath == "" {
		return apperr.NewConfigError("--config is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	var records []domain.UnavailabilityRecord
	if cfg.Files.UnavailabilityCSV != "" {
		records, err = csvio.LoadUnavailability(cfg.Files.UnavailabilityCSV)
		if err != nil {
			return err
		}
	}

	problems := validate.Run(cfg, records)
	fmt.Fprintln(os.Stdout, report.RenderProblems(problems))

	if validate.HasErrors(problems) {
		return apperr.NewConfigError("validation failed")
	}

	logger.Info("configuration is valid", "config", *configPath)
	return nil
}
