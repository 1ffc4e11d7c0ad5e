package normalizer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Field errors.
var (
	ErrFieldMissing   = errors.New("required field missing")
	ErrFieldMalformed = errors.New("field malformed")
)

// Raw record keys.
const (
	FieldTimestamp    = "timestamp"
	FieldMACAddr      = "mac_addr"
	FieldVendor       = "vendor"
	FieldSSID         = "ssid"
	FieldChannel      = "channel"
	FieldBandwidth    = "bandwidth"
	FieldBeaconInt    = "beacon_int"
	FieldRSSIs        = "rssis"
	FieldIEInfo       = "ie_info"
	FieldMultiChannel = "multi_channel"

	rssiAllKey = "all"
	rsnKey     = "RSN"
)

// timestampLayouts are tried in order. Zone offsets are accepted but dropped.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp parses s into a timezone-naive instant: the wall clock is
// kept and the location is set to UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}

		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC), nil
	}

	return time.Time{}, fmt.Errorf("%w: unrecognized timestamp %q", ErrFieldMalformed, s)
}

// FieldError is a problem with one field of one record.
type FieldError struct {
	Err    error
	Source string
	Field  string
	Index  int
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("record %d: %s: %v", e.Index, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// BatchError lists every record failure found while validating a batch.
type BatchError struct {
	Failures []*FieldError
}

func (e *BatchError) Error() string {
	msgs := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		msgs = append(msgs, f.Error())
	}

	return fmt.Sprintf("%d invalid field(s): %s", len(e.Failures), strings.Join(msgs, "; "))
}

func (e *BatchError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f)
	}

	return errs
}

// Warning reports an optional field that fell back to its default.
type Warning struct {
	Field  string
	Reason string
	Index  int
}

func (w Warning) String() string {
	return fmt.Sprintf("record %d: %s: %s", w.Index, w.Field, w.Reason)
}

// jsonKind returns the JSON type of raw: "string", "number", "bool", "array",
// "object" or "null".
func jsonKind(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "null"
	}

	switch trimmed[0] {
	case '"':
		return "string"
	case '[':
		return "array"
	case '{':
		return "object"
	case 't', 'f':
		return "bool"
	case 'n':
		return "null"
	default:
		return "number"
	}
}

func decodeString(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%w: expected string, got %s", ErrFieldMalformed, jsonKind(raw))
	}

	return s, nil
}

// decodeFloat accepts a JSON number or a numeric string. NaN is reported as
// ok=false so that it never reaches the output as a value.
func decodeFloat(raw json.RawMessage) (float64, bool, error) {
	var text string

	switch jsonKind(raw) {
	case "number":
		text = string(bytes.TrimSpace(raw))
	case "string":
		s, err := decodeString(raw)
		if err != nil {
			return 0, false, err
		}

		text = strings.TrimSpace(s)
	default:
		return 0, false, fmt.Errorf("%w: expected number, got %s", ErrFieldMalformed, jsonKind(raw))
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %q is not numeric", ErrFieldMalformed, text)
	}

	if math.IsNaN(v) {
		return 0, false, nil
	}

	return v, true, nil
}

// objectKeys returns the keys of a JSON object in document order.
func objectKeys(raw json.RawMessage) ([]string, error) {
	if jsonKind(raw) != "object" {
		return nil, fmt.Errorf("%w: expected object, got %s", ErrFieldMalformed, jsonKind(raw))
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFieldMalformed, err)
	}

	keys := []string{}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFieldMalformed, err)
		}

		key, _ := tok.(string)
		keys = append(keys, key)

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFieldMalformed, err)
		}
	}

	return keys, nil
}

// truthy follows the usual scripting rules: false, null, zero, and empty
// strings, lists and objects are false.
func truthy(raw json.RawMessage) bool {
	switch jsonKind(raw) {
	case "bool":
		return string(bytes.TrimSpace(raw)) == "true"
	case "number":
		v, err := strconv.ParseFloat(string(bytes.TrimSpace(raw)), 64)
		return err == nil && v != 0
	case "string":
		s, err := decodeString(raw)
		return err == nil && s != ""
	case "array":
		var items []json.RawMessage
		return json.Unmarshal(raw, &items) == nil && len(items) > 0
	case "object":
		var fields map[string]json.RawMessage
		return json.Unmarshal(raw, &fields) == nil && len(fields) > 0
	default:
		return false
	}
}
