package capture

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCapture(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write capture: %v", err)
	}

	return path
}

func TestDecode_RelaxedJSON(t *testing.T) {
	content := `[
  // first AP
  {"ssid": "FreeWifi", "channel": 6,},
  {"ssid": "Corp", "ie_info": {"RSN": [],},}, // trailing
]`

	records, err := Decode([]byte(content))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}

	if string(records[0]["ssid"]) != `"FreeWifi"` {
		t.Errorf("ssid = %s, want \"FreeWifi\"", records[0]["ssid"])
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"Object at top level", `{"ssid": "x"}`, ErrNotArray},
		{"Null at top level", `null`, ErrNotArray},
		{"Scalar record", `[1, 2]`, ErrRecordNotObject},
		{"Null record", `[null]`, ErrRecordNotObject},
		{"Broken JSON", `[{"ssid": }]`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.content))
			if err == nil {
				t.Fatal("Expected error, got nil")
			}

			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestStandardize_KeepsURLsInStrings(t *testing.T) {
	out, err := Standardize([]byte(`[{"vendor": "http://example.com"}]`))
	if err != nil {
		t.Fatalf("Standardize failed: %v", err)
	}

	records, err := Decode(out)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if string(records[0]["vendor"]) != `"http://example.com"` {
		t.Errorf("vendor = %s", records[0]["vendor"])
	}
}

func TestStandardize_NonUTF8Fallback(t *testing.T) {
	// Latin-1 encoded capture: not valid UTF-8, so comments and trailing
	// commas are stripped by text substitution.
	content := []byte("[\n  // cafe survey\n  {\"ssid\": \"caf\xe9\", \"channel\": 6,},\n]")

	out, err := Standardize(content)
	if err != nil {
		t.Fatalf("Standardize failed: %v", err)
	}

	if bytes.Contains(out, []byte("//")) {
		t.Errorf("Comment not removed: %q", out)
	}

	if bytes.Contains(out, []byte(",}")) || bytes.Contains(out, []byte(",\n]")) {
		t.Errorf("Trailing comma not removed: %q", out)
	}

	records, err := Decode(content)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if len(records) != 1 || string(records[0]["channel"]) != "6" {
		t.Errorf("records = %v", records)
	}
}

func TestStandardize_NonUTF8StillInvalid(t *testing.T) {
	content := []byte("[{\"ssid\": \"caf\xe9\" \"channel\": 6}] // broken")

	_, err := Standardize(content)
	if err == nil {
		t.Fatal("Expected error for invalid JSON")
	}

	if !strings.Contains(err.Error(), "failed to parse JSON") {
		t.Errorf("Standardize error = %v, want parse failure", err)
	}
}

func TestLoader_Load_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeCapture(t, dir, "scan.json", `[{"ssid": "a"}, {"ssid": "b"}]`)

	result, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(result.Records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(result.Records))
	}

	if result.Records[1].Index != 1 || result.Records[1].Source != path {
		t.Errorf("Record[1] = %+v", result.Records[1])
	}

	if len(result.Sources) != 1 || result.Sources[0].Records != 2 {
		t.Errorf("Sources = %+v", result.Sources)
	}
}

func TestLoader_Load_Glob(t *testing.T) {
	dir := t.TempDir()
	writeCapture(t, dir, "b/scan2.json", `[{"ssid": "second"}]`)
	writeCapture(t, dir, "a/scan1.json", `[{"ssid": "first"}]`)
	writeCapture(t, dir, "a/notes.txt", `not json`)

	result, err := NewLoader().Load(filepath.Join(dir, "**", "*.json"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(result.Records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(result.Records))
	}

	if string(result.Records[0].Fields["ssid"]) != `"first"` {
		t.Errorf("Expected records in sorted path order, got %s first", result.Records[0].Fields["ssid"])
	}

	if result.Records[1].Index != 1 {
		t.Errorf("Index = %d, want 1", result.Records[1].Index)
	}
}

func TestLoader_Load_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := NewLoader().Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}

	if _, err := NewLoader().Load(filepath.Join(dir, "*.json")); !errors.Is(err, ErrNoInput) {
		t.Errorf("Expected ErrNoInput for empty glob, got %v", err)
	}

	if _, err := NewLoader().Load(""); !errors.Is(err, ErrNoInput) {
		t.Errorf("Expected ErrNoInput for empty path, got %v", err)
	}
}
