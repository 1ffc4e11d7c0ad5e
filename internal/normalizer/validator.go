package normalizer

import "apinventory/internal/models"

// Validator checks the required fields of raw records.
type Validator struct{}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks every record and returns a *BatchError listing all
// failures, or nil when the whole batch is usable.
func (v *Validator) Validate(records []models.RawRecord) error {
	var failures []*FieldError

	for _, rec := range records {
		failures = append(failures, v.ValidateRecord(rec)...)
	}

	if len(failures) > 0 {
		return &BatchError{Failures: failures}
	}

	return nil
}

// ValidateRecord returns the field errors of a single record.
func (v *Validator) ValidateRecord(rec models.RawRecord) []*FieldError {
	var failures []*FieldError

	fail := func(field string, err error) {
		failures = append(failures, &FieldError{
			Err:    err,
			Source: rec.Source,
			Field:  field,
			Index:  rec.Index,
		})
	}

	if _, err := requireString(rec, FieldSSID); err != nil {
		fail(FieldSSID, err)
	}

	if raw, err := requireString(rec, FieldTimestamp); err != nil {
		fail(FieldTimestamp, err)
	} else if _, err := ParseTimestamp(raw); err != nil {
		fail(FieldTimestamp, err)
	}

	if raw, ok := rec.Lookup(FieldIEInfo); !ok {
		fail(FieldIEInfo, ErrFieldMissing)
	} else if _, err := objectKeys(raw); err != nil {
		fail(FieldIEInfo, err)
	}

	// Optional, but a present value of the wrong type cannot be displayed.
	for _, field := range []string{FieldMACAddr, FieldVendor} {
		if _, err := optionalString(rec, field); err != nil {
			fail(field, err)
		}
	}

	return failures
}

func requireString(rec models.RawRecord, field string) (string, error) {
	raw, ok := rec.Lookup(field)
	if !ok {
		return "", ErrFieldMissing
	}

	return decodeString(raw)
}

func optionalString(rec models.RawRecord, field string) (string, error) {
	raw, ok := rec.Lookup(field)
	if !ok {
		return "", nil
	}

	return decodeString(raw)
}
