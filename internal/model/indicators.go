package model

import "time"

// DefaultDMIPeriod is the Wilder smoothing period used when none is requested.
const DefaultDMIPeriod = 14

// IndicatorRecord holds the directional indicators at one timestamp.
type IndicatorRecord struct {
	Time    time.Time `json:"timestamp"`
	DIPlus  float64   `json:"di_plus"`
	DIMinus float64   `json:"di_minus"`
	DX      float64   `json:"dx"`
	ADX     float64   `json:"adx"`
}

// DMIStatus tells an empty result apart from a computed one.
type DMIStatus string

const (
	StatusComputed         DMIStatus = "COMPUTED"
	StatusInsufficientData DMIStatus = "INSUFFICIENT_DATA"
)

// DMIResult is the output of one DMI/ADX computation.
type DMIResult struct {
	Period  int               `json:"period"`
	Status  DMIStatus         `json:"status"`
	Records []IndicatorRecord `json:"records"`
	Signal  *TrendSignal      `json:"signal,omitempty"`
}

// Last returns the most recent record, if any.
func (r *DMIResult) Last() (IndicatorRecord, bool) {
	if r == nil || len(r.Records) == 0 {
		return IndicatorRecord{}, false
	}
	return r.Records[len(r.Records)-1], true
}

// Computed reports whether at least one record was produced.
func (r *DMIResult) Computed() bool {
	return r != nil && r.Status == StatusComputed
}
