// Package pipeline wires loading, normalization, scoring and export.
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"time"

	"apinventory/internal/capture"
	"apinventory/internal/config"
	"apinventory/internal/exporter"
	"apinventory/internal/formatter"
	"apinventory/internal/logger"
	"apinventory/internal/models"
	"apinventory/internal/normalizer"
	"apinventory/internal/scorer"
	"apinventory/pkg/metadata"
)

// ErrNoOutputPath is returned when Options carries no destination.
var ErrNoOutputPath = errors.New("output CSV path is required")

// Options select the input, the output and the optional report.
type Options struct {
	// ReportWriter receives the triage table when non-nil.
	ReportWriter io.Writer
	InputPattern string
	OutputCSV    string
}

// Summary describes a completed run.
type Summary struct {
	Sources  []metadata.Source
	Scored   []models.Scored
	Warnings []normalizer.Warning
	Elapsed  time.Duration
	Flagged  int
}

// Pipeline runs one inventory export.
type Pipeline struct {
	loader    *capture.Loader
	processor *normalizer.Processor
	scorer    *scorer.Scorer
	log       *logger.Logger
}

// New builds a pipeline from the configuration.
func New(cfg *config.Config, log *logger.Logger) *Pipeline {
	return &Pipeline{
		loader:    capture.NewLoader(),
		processor: normalizer.NewProcessor(),
		scorer:    scorer.New(cfg.Scoring),
		log:       log,
	}
}

// Run loads the capture, normalizes and scores every record and writes the
// inventory. Nothing is written unless every record is valid.
func (p *Pipeline) Run(opts Options) (*Summary, error) {
	if opts.OutputCSV == "" {
		return nil, ErrNoOutputPath
	}

	start := time.Now()

	// 1. Ingestion
	loaded, err := p.loader.Load(opts.InputPattern)
	if err != nil {
		return nil, fmt.Errorf("input error: %w", err)
	}

	for _, src := range loaded.Sources {
		p.log.Info("Capture loaded",
			"path", src.Path,
			"records", src.Records,
			"bytes", src.Size,
			"sha256", src.ShortHash(),
			"loaded_at", src.LoadedAt.Format(time.RFC3339),
		)
	}

	// 2. Normalization
	batch, err := p.processor.Process(loaded.Records)
	if err != nil {
		var batchErr *normalizer.BatchError
		if errors.As(err, &batchErr) {
			for _, f := range batchErr.Failures {
				p.log.Error("Invalid record", "index", f.Index, "source", f.Source, "field", f.Field, "error", f.Err)
			}
		}

		return nil, fmt.Errorf("record error: %w", err)
	}

	for _, w := range batch.Warnings {
		p.log.Warn("Optional field ignored", "index", w.Index, "field", w.Field, "reason", w.Reason)
	}

	// 3. Scoring
	scored := p.scorer.ScoreAll(batch.Records)

	flagged := 0

	for _, s := range scored {
		if s.Scores.TotalScore > 0 {
			flagged++
		}

		p.log.Debug("Record scored",
			"bssid", s.Record.BSSID,
			"ssid", s.Record.SSID,
			models.ScoreTotal, s.Scores.TotalScore,
		)
	}

	// 4. Export
	if err := exporter.WriteFile(opts.OutputCSV, batch.Records); err != nil {
		return nil, fmt.Errorf("output error: %w", err)
	}

	p.log.Info("Inventory written", "path", opts.OutputCSV, "rows", len(batch.Records), "flagged", flagged)

	if opts.ReportWriter != nil {
		if _, err := io.WriteString(opts.ReportWriter, formatter.Report(scored)); err != nil {
			return nil, fmt.Errorf("failed to write report: %w", err)
		}
	}

	return &Summary{
		Sources:  loaded.Sources,
		Scored:   scored,
		Warnings: batch.Warnings,
		Elapsed:  time.Since(start),
		Flagged:  flagged,
	}, nil
}
