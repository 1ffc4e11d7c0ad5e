// Package scorer computes heuristic rogue AP scores for normalized records.
package scorer

import (
	"slices"
	"strings"

	"apinventory/internal/config"
	"apinventory/internal/models"
)

// Sub-score weights.
const (
	OUIMismatchPenalty   = 3
	MultiChannelPenalty  = 2
	TimingAnomalyPenalty = 3
)

// multiChannelPrefixes are matched against the raw bandwidth text.
var multiChannelPrefixes = []string{"40", "80"}

// vendorEntry is a vendor token prepared for case-insensitive matching.
type vendorEntry struct {
	token string
	oui   string
}

// Scorer is immutable once built and safe to share.
type Scorer struct {
	vendors []vendorEntry
	suites  []config.SuiteConfig
	beacon  config.BeaconBounds
}

// New builds a scorer from the reference tables.
func New(tables config.ScoringConfig) *Scorer {
	vendors := make([]vendorEntry, 0, len(tables.Vendors))
	for _, v := range tables.Vendors {
		vendors = append(vendors, vendorEntry{token: strings.ToLower(v.Name), oui: v.OUI})
	}

	return &Scorer{
		vendors: vendors,
		suites:  slices.Clone(tables.SecuritySuites),
		beacon:  tables.BeaconInterval,
	}
}

// Score computes the sub-scores of one record. The total is the largest
// sub-score, not their sum.
func (s *Scorer) Score(rec models.NormalizedRecord) models.ScoreSet {
	scores := models.ScoreSet{
		OUIMismatch:    s.ouiMismatch(rec),
		RSNMismatch:    s.rsnMismatch(rec),
		MultiChannel:   s.multiChannel(rec),
		TimingAnomaly:  s.timingAnomaly(rec),
		EntropyPenalty: -rec.EntropyPenalty,
	}

	scores.TotalScore = slices.Max(scores.Values())

	return scores
}

// ScoreAll scores each record independently, preserving order.
func (s *Scorer) ScoreAll(records []models.NormalizedRecord) []models.Scored {
	out := make([]models.Scored, 0, len(records))
	for _, rec := range records {
		out = append(out, models.Scored{Record: rec, Scores: s.Score(rec)})
	}

	return out
}

// MatchVendor looks for a known vendor name inside the SSID and returns the
// OUI prefix associated with it. The BSSID is not consulted.
func (s *Scorer) MatchVendor(ssid string) (string, bool) {
	lower := strings.ToLower(ssid)

	for _, v := range s.vendors {
		if strings.Contains(lower, v.token) {
			return v.oui, true
		}
	}

	return "", false
}

func (s *Scorer) ouiMismatch(rec models.NormalizedRecord) int {
	// The matched OUI is informational only; it is never compared with the
	// BSSID.
	if _, ok := s.MatchVendor(rec.SSID); ok {
		return 0
	}

	return OUIMismatchPenalty
}

// rsnMismatch never raises a penalty: RSN entries that match a known suite
// keep the score at 0, and nothing sets it otherwise.
func (s *Scorer) rsnMismatch(models.NormalizedRecord) int {
	return 0
}

func (s *Scorer) multiChannel(rec models.NormalizedRecord) int {
	if rec.MultiChannel {
		return MultiChannelPenalty
	}

	for _, prefix := range multiChannelPrefixes {
		if strings.HasPrefix(rec.BandwidthRaw, prefix) {
			return MultiChannelPenalty
		}
	}

	return 0
}

func (s *Scorer) timingAnomaly(rec models.NormalizedRecord) int {
	if rec.BeaconInt != nil && s.beacon.Contains(*rec.BeaconInt) {
		return 0
	}

	return TimingAnomalyPenalty
}

// SecuritySuites returns a copy of the reference security suites.
func (s *Scorer) SecuritySuites() []config.SuiteConfig {
	return slices.Clone(s.suites)
}
