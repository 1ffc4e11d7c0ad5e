package normalizer

import (
	"encoding/json"
	"testing"

	"apinventory/internal/models"
)

const freeWifiJSON = `{"timestamp":"2024-01-01T00:00:00","mac_addr":"AA:BB:CC:DD:EE:FF","vendor":"Acme",` +
	`"ssid":"FreeWifi","channel":6,"bandwidth":"HT/20","beacon_int":100,"rssis":{"all":[-40]},"ie_info":{"RSN":[]}}`

// rawRecord builds a RawRecord from a JSON object literal.
func rawRecord(t *testing.T, index int, content string) models.RawRecord {
	t.Helper()

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &fields); err != nil {
		t.Fatalf("Invalid test record %s: %v", content, err)
	}

	return models.RawRecord{Fields: fields, Source: "test.json", Index: index}
}
