package normalizer

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"apinventory/internal/models"
	"apinventory/pkg/utils"
)

const (
	// BSSIDDisplayLen is the number of MAC characters kept for display.
	BSSIDDisplayLen = 8
	// RSNDisplayLen caps the RSN IE text.
	RSNDisplayLen = 60
	// MaxEntropyPenalty caps the entropy penalty.
	MaxEntropyPenalty = 100

	entropyFactor = 2.5
)

// ErrMissingRSSIs is reported when rssis is present but has no usable list.
var ErrMissingRSSIs = errors.New("rssis.all missing or not a list")

// Transformer extracts typed fields from raw records.
type Transformer struct {
	numberPattern *regexp.Regexp
}

// NewTransformer creates a new transformer instance.
func NewTransformer() *Transformer {
	return &Transformer{
		numberPattern: regexp.MustCompile(`(\d+)`),
	}
}

// Transform converts a raw record into a NormalizedRecord. Required fields
// that are missing or malformed return an error; optional fields fall back to
// their defaults and are reported as warnings.
func (t *Transformer) Transform(rec models.RawRecord) (models.NormalizedRecord, []Warning, error) {
	var (
		out      models.NormalizedRecord
		warnings []Warning
	)

	fieldErr := func(field string, err error) error {
		return &FieldError{Err: err, Source: rec.Source, Field: field, Index: rec.Index}
	}

	warn := func(field string, err error) {
		warnings = append(warnings, Warning{Field: field, Reason: err.Error(), Index: rec.Index})
	}

	ts, err := requireString(rec, FieldTimestamp)
	if err != nil {
		return out, nil, fieldErr(FieldTimestamp, err)
	}

	if out.Date, err = ParseTimestamp(ts); err != nil {
		return out, nil, fieldErr(FieldTimestamp, err)
	}

	if out.SSID, err = requireString(rec, FieldSSID); err != nil {
		return out, nil, fieldErr(FieldSSID, err)
	}

	mac, err := optionalString(rec, FieldMACAddr)
	if err != nil {
		return out, nil, fieldErr(FieldMACAddr, err)
	}

	if out.OUIVendor, err = optionalString(rec, FieldVendor); err != nil {
		return out, nil, fieldErr(FieldVendor, err)
	}

	ieInfo, ok := rec.Lookup(FieldIEInfo)
	if !ok {
		return out, nil, fieldErr(FieldIEInfo, ErrFieldMissing)
	}

	if out.IEKeys, err = objectKeys(ieInfo); err != nil {
		return out, nil, fieldErr(FieldIEInfo, err)
	}

	if out.RSNIEs, err = t.rsnText(ieInfo); err != nil {
		return out, nil, fieldErr(FieldIEInfo, err)
	}

	out.BSSID = utils.Truncate(mac, BSSIDDisplayLen)
	out.EntropyPenalty = EntropyPenalty(out.BSSID)
	out.Channel = t.text(rec, FieldChannel, false)
	out.BandwidthRaw = t.text(rec, FieldBandwidth, true)
	out.BandwidthMHz = t.FirstNumber(out.BandwidthRaw)

	if raw, ok := rec.Lookup(FieldBeaconInt); ok {
		v, valid, err := decodeFloat(raw)
		if err != nil {
			warn(FieldBeaconInt, err)
		} else if valid {
			out.BeaconInt = models.Float(v)
		}
	}

	rssi, err := t.firstRSSI(rec)
	if err != nil {
		warn(FieldRSSIs, err)
	}

	out.RSSIdBm = rssi

	if raw, ok := rec.Lookup(FieldMultiChannel); ok {
		out.MultiChannel = truthy(raw)
	}

	return out, warnings, nil
}

// EntropyPenalty is 2.5 points per displayed BSSID character, truncated to
// an integer and capped at MaxEntropyPenalty.
func EntropyPenalty(bssidDisplay string) int {
	penalty := int(float64(utils.RuneLen(bssidDisplay)) * entropyFactor)
	if penalty > MaxEntropyPenalty {
		return MaxEntropyPenalty
	}

	return penalty
}

// FirstNumber extracts the first run of digits in s, e.g. 20 from "HT/20".
func (t *Transformer) FirstNumber(s string) *int {
	match := t.numberPattern.FindString(s)
	if match == "" {
		return nil
	}

	val, err := strconv.Atoi(match)
	if err != nil {
		return nil
	}

	return models.Int(val)
}

// text renders an optional scalar as text: strings as-is, anything else in
// display form. Absent or null values are empty.
func (t *Transformer) text(rec models.RawRecord, field string, trim bool) string {
	raw, ok := rec.Lookup(field)
	if !ok {
		return ""
	}

	var s string

	switch jsonKind(raw) {
	case "string":
		s, _ = decodeString(raw)
	case "number":
		s = strings.TrimSpace(string(raw))
	default:
		s, _ = utils.DisplayJSON(raw)
	}

	if trim {
		s = strings.TrimSpace(s)
	}

	return s
}

// rsnText renders ie_info.RSN (default empty list) truncated for display.
// An explicit null is rendered as None.
func (t *Transformer) rsnText(ieInfo json.RawMessage) (string, error) {
	var ies map[string]json.RawMessage
	if err := json.Unmarshal(ieInfo, &ies); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFieldMalformed, err)
	}

	raw, ok := ies[rsnKey]
	if !ok {
		return "[]", nil
	}

	text, err := utils.DisplayJSON(raw)
	if err != nil {
		return "", fmt.Errorf("%w: RSN: %v", ErrFieldMalformed, err)
	}

	return utils.Truncate(text, RSNDisplayLen), nil
}

// firstRSSI reads rssis.all[0]. A missing or empty list is unknown, not an
// error.
func (t *Transformer) firstRSSI(rec models.RawRecord) (*float64, error) {
	raw, ok := rec.Lookup(FieldRSSIs)
	if !ok {
		return nil, nil
	}

	var rssis map[string]json.RawMessage
	if err := json.Unmarshal(raw, &rssis); err != nil {
		return nil, fmt.Errorf("%w: expected object, got %s", ErrFieldMalformed, jsonKind(raw))
	}

	allRaw, ok := rssis[rssiAllKey]
	if !ok || jsonKind(allRaw) == "null" {
		return nil, nil
	}

	var all []json.RawMessage
	if err := json.Unmarshal(allRaw, &all); err != nil {
		return nil, ErrMissingRSSIs
	}

	if len(all) == 0 {
		return nil, nil
	}

	v, valid, err := decodeFloat(all[0])
	if err != nil || !valid {
		return nil, err
	}

	return models.Float(v), nil
}
