// Package capture loads WiFi scan captures from disk.
package capture

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tailscale/hujson"

	"apinventory/internal/models"
	"apinventory/pkg/metadata"
)

// Input errors.
var (
	ErrNoInput         = errors.New("no capture file matched")
	ErrNotArray        = errors.New("top-level JSON value must be an array of records")
	ErrRecordNotObject = errors.New("record is not a JSON object")
)

var (
	lineComment   = regexp.MustCompile(`//.*`)
	trailingComma = regexp.MustCompile(`,(\s*[}\]])`)
)

// Loader reads capture files into raw records.
type Loader struct{}

// NewLoader creates a new loader instance.
func NewLoader() *Loader {
	return &Loader{}
}

// Result is the outcome of loading one or more capture files.
type Result struct {
	Records []models.RawRecord
	Sources []metadata.Source
}

// Load reads every file matched by pattern and concatenates their records in
// match order. A pattern without glob metacharacters is a plain path.
func (l *Loader) Load(pattern string) (*Result, error) {
	paths, err := l.Resolve(pattern)
	if err != nil {
		return nil, err
	}

	result := &Result{}

	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read capture file: %w", err)
		}

		records, err := Decode(content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		src := metadata.Describe(path, content)
		src.Records = len(records)

		for _, fields := range records {
			result.Records = append(result.Records, models.RawRecord{
				Fields: fields,
				Source: path,
				Index:  len(result.Records),
			})
		}

		result.Sources = append(result.Sources, src)
	}

	return result, nil
}

// Resolve expands pattern into a sorted list of files.
func (l *Loader) Resolve(pattern string) ([]string, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, ErrNoInput
	}

	if !strings.ContainsAny(pattern, "*?[{") {
		return []string{pattern}, nil
	}

	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("invalid input pattern %q: %w", pattern, err)
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoInput, pattern)
	}

	sort.Strings(matches)

	return matches, nil
}

// Decode parses a capture document into one field map per record.
// Line comments and trailing commas are accepted.
func Decode(content []byte) ([]map[string]json.RawMessage, error) {
	standard, err := Standardize(content)
	if err != nil {
		return nil, err
	}

	if string(bytes.TrimSpace(standard)) == "null" {
		return nil, ErrNotArray
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(standard, &elements); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, ErrNotArray
		}

		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	records := make([]map[string]json.RawMessage, 0, len(elements))

	for i, elem := range elements {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(elem, &fields); err != nil || fields == nil {
			return nil, fmt.Errorf("%w at index %d", ErrRecordNotObject, i)
		}

		records = append(records, fields)
	}

	return records, nil
}

// Standardize turns relaxed JSON into standard JSON. When the tolerant parser
// rejects the document, comments and trailing commas are stripped by text
// substitution instead.
func Standardize(content []byte) ([]byte, error) {
	value, err := hujson.Parse(content)
	if err == nil {
		value.Standardize()

		return value.Pack(), nil
	}

	cleaned := lineComment.ReplaceAll(content, nil)
	cleaned = trailingComma.ReplaceAll(cleaned, []byte("$1"))

	if !json.Valid(cleaned) {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return cleaned, nil
}
