package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"

	"github.com/onduty-eng/oncall-roster/internal/apperr"
	"github.com/onduty-eng/oncall-roster/internal/config"
	"github.com/onduty-eng/oncall-roster/internal/csvio"
	"github.com/onduty-eng/oncall-roster/internal/domain"
	"github.com/onduty-eng/oncall-roster/internal/export"
	"github.com/onduty-eng/oncall-roster/internal/orchestrator"
	"github.com/onduty-eng/oncall-roster/internal/report"
	"github.com/onduty-eng/oncall-roster/internal/validate"
)

// runGenerate implements `oncall generate --config PATH [--output-dir DIR]`:
// exit code 0 on feasible solve and successful emit, nonzero on validator
// error, solver infeasibility, solver timeout, or I/O error.
func runGenerate(logger *slog.Logger, args []string) error {
	fs := newFlagSet("generate")
	configPath := fs.String("config", "", "path to the YAML configuration file (required)")
	outputDir := fs.String("output-dir", "", "override directory for schedule.csv and schedule.ics")
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
	if validate.HasErrors(problems) {
		fmt.Fprintln(os.Stdout, report.RenderProblems(problems))
		return apperr.NewConfigError("configuration failed validation")
	}

	started := time.Now()
	result, warnings, err := orchestrator.Run(context.Background(), cfg, records)
	if err != nil {
		return err
	}
	logger.Info("solve complete", "blocks", result.BlocksSolved, "shifts", len(result.Shifts), "elapsed", time.Since(started))

	csvPath, icalPath := resolveOutputPaths(cfg, *outputDir)

	for _, format := range cfg.Files.ExportFormats {
		switch format {
		case "csv":
			if err := export.WriteScheduleCSV(result.Shifts, cfg.Zone, csvPath); err != nil {
				return err
			}
		case "ical":
			if err := export.WriteICal(result.Shifts, cfg.Zone, icalPath); err != nil {
				return err
			}
		default:
			return apperr.NewConfigError("files.export_formats: unknown format %q", format)
		}
	}

	fmt.Fprintln(os.Stdout, report.RenderSchedule(result.Shifts))
	fmt.Fprintln(os.Stdout, report.RenderSummary(result.BlocksSolved, len(result.Shifts), warnings))
	return nil
}

// resolveOutputPaths applies §6's --output-dir override: when set, it
// replaces the directory component of both configured export paths,
// keeping their file names. The config paths remain the defaults.
func resolveOutputPaths(cfg *config.Config, outputDir string) (csvPath, icalPath string) {
	csvPath = cfg.Files.ScheduleCSVOutput
	icalPath = cfg.Files.ICalOutput
	if outputDir == "" {
		return csvPath, icalPath
	}
	if csvPath != "" {
		csvPath = filepath.Join(outputDir, filepath.Base(csvPath))
	}
	if icalPath != "" {
		icalPath = filepath.Join(outputDir, filepath.Base(icalPath))
	}
	return csvPath, icalPath
}
