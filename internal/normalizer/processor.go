// Package normalizer turns raw scan records into typed inventory rows.
package normalizer

import (
	"fmt"

	"apinventory/internal/models"
)

// Processor validates a whole batch before transforming any record, so a
// bad record aborts the run with every failure listed.
type Processor struct {
	validator   *Validator
	transformer *Transformer
}

// NewProcessor creates a new processor instance.
func NewProcessor() *Processor {
	return &Processor{
		validator:   NewValidator(),
		transformer: NewTransformer(),
	}
}

// Batch is the normalized form of a capture, in input order.
type Batch struct {
	Records  []models.NormalizedRecord
	Warnings []Warning
}

// Process normalizes all records or none.
func (p *Processor) Process(records []models.RawRecord) (*Batch, error) {
	// 1. Validate every record
	if err := p.validator.Validate(records); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// 2. Transform
	batch := &Batch{
		Records: make([]models.NormalizedRecord, 0, len(records)),
	}

	for _, rec := range records {
		normalized, warnings, err := p.transformer.Transform(rec)
		if err != nil {
			return nil, fmt.Errorf("transformation failed: %w", err)
		}

		batch.Records = append(batch.Records, normalized)
		batch.Warnings = append(batch.Warnings, warnings...)
	}

	return batch, nil
}
