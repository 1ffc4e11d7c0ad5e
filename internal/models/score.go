package models

// Sub-score names in reporting order.
const (
	ScoreOUIMismatch    = "oui_mismatch"
	ScoreRSNMismatch    = "rsn_mismatch"
	ScoreMultiChannel   = "multi_channel"
	ScoreTimingAnomaly  = "timing_anomaly"
	ScoreEntropyPenalty = "entropy_penalty"
	ScoreTotal          = "total_score"
)

// ScoreSet holds the heuristic rogue AP sub-scores of one record.
type ScoreSet struct {
	OUIMismatch    int `json:"oui_mismatch"`
	RSNMismatch    int `json:"rsn_mismatch"`
	MultiChannel   int `json:"multi_channel"`
	TimingAnomaly  int `json:"timing_anomaly"`
	EntropyPenalty int `json:"entropy_penalty"`
	TotalScore     int `json:"total_score"`
}

// Values returns the sub-scores (without the total) in reporting order.
func (s ScoreSet) Values() []int {
	return []int{s.OUIMismatch, s.RSNMismatch, s.MultiChannel, s.TimingAnomaly, s.EntropyPenalty}
}

// Scored pairs a record with its scores.
type Scored struct {
	Record NormalizedRecord
	Scores ScoreSet
}
