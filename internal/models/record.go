// Package models defines the records flowing through the inventory pipeline.
package models

import (
	"encoding/json"
	"time"
)

// RawRecord is one scan record as it appears in the capture file.
// Values are kept undecoded so each field can be checked for presence and
// type separately.
type RawRecord struct {
	Fields map[string]json.RawMessage
	// Source is the capture file the record came from.
	Source string
	// Index is the zero-based position of the record in the combined input.
	Index int
}

// Lookup returns the raw value for key. A JSON null is reported as absent.
func (r RawRecord) Lookup(key string) (json.RawMessage, bool) {
	raw, ok := r.Fields[key]
	if !ok || string(raw) == "null" {
		return nil, false
	}

	return raw, true
}

// NormalizedRecord is the typed view of one access point observation.
type NormalizedRecord struct {
	Date         time.Time `json:"date"`
	BSSID        string    `json:"bssid"`
	OUIVendor    string    `json:"oui_vendor"`
	SSID         string    `json:"ssid"`
	Channel      string    `json:"chan"`
	BandwidthRaw string    `json:"bandwidth"`
	BandwidthMHz *int      `json:"bandwidth_mhz"`
	BeaconInt    *float64  `json:"beacon_int"`
	RSSIdBm      *float64  `json:"rssi_dbm"`
	IEKeys       []string  `json:"ie_keys"`
	RSNIEs       string    `json:"rsn_ies"`
	// EntropyPenalty is derived from the length of the displayed BSSID only.
	EntropyPenalty int `json:"entropy_penalty"`
	// MultiChannel carries the optional multi_channel flag of the raw record.
	MultiChannel bool `json:"-"`
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

// Int returns a pointer to v.
func Int(v int) *int {
	return &v
}
