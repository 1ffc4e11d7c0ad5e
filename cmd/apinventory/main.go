// Package main provides the apinventory command-line tool: it turns a JSON
// WiFi scan capture into a CSV baseline inventory with rogue AP scores.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"apinventory/internal/config"
	"apinventory/internal/logger"
	"apinventory/internal/pipeline"
)

type options struct {
	inputJSON  string
	outputCSV  string
	configPath string
	logLevel   string
	report     bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "apinventory --input-json <path>",
		Short: "Build a baseline AP inventory CSV with heuristic rogue AP scores",
		Long: `apinventory reads a JSON array of WiFi access point scan records
(line comments and trailing commas allowed), normalizes every record,
scores it against the rogue AP heuristics and writes a CSV inventory.

The input may be a glob such as "captures/**/*.json".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, stdout, stderr)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.inputJSON, "input-json", "", "JSON capture file to analyze (required)")
	flags.StringVar(&opts.outputCSV, "output-csv", config.DefaultOutputCSV, "CSV inventory to write (overwritten)")
	flags.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.BoolVar(&opts.report, "report", false, "Print a Markdown table of scores to stdout")

	_ = cmd.MarkFlagRequired("input-json")

	return cmd
}

func run(cmd *cobra.Command, opts *options, stdout, stderr io.Writer) error {
	cfg := config.Default()

	if opts.configPath != "" {
		loaded, err := config.LoadConfig(opts.configPath)
		if err != nil {
			return err
		}

		cfg = loaded
	}

	if cmd.Flags().Changed("output-csv") {
		cfg.Inventory.OutputCSV = opts.outputCSV
	}

	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}

	if opts.report {
		cfg.Inventory.Report = true
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	log, runID := logger.New(stderr, cfg.Logging.Level, cfg.Logging.Format).WithRun()
	log.Debug("Configuration", "config", cfg.String())

	runOpts := pipeline.Options{
		InputPattern: opts.inputJSON,
		OutputCSV:    cfg.Inventory.OutputCSV,
	}

	if cfg.Inventory.Report {
		runOpts.ReportWriter = stdout
	}

	summary, err := pipeline.New(cfg, log).Run(runOpts)
	if err != nil {
		return fmt.Errorf("run %s: %w", runID, err)
	}

	log.Info("Done",
		"records", len(summary.Scored),
		"flagged", summary.Flagged,
		"warnings", len(summary.Warnings),
		"elapsed", summary.Elapsed,
	)

	return nil
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
