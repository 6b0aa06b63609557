package models

import "time"

// Sub-score maximums. The four component maxima sum to 100, so the
// weighted composite lands on a 0-100 band.
const (
	MaxSECScore       = 40
	MaxTechnicalScore = 35
	MaxFinancialScore = 15
	MaxNewsScore      = 10
)

// SubScore is one bounded component of the composite score.
// Value is always within [0, Max]; calculators clamp before returning.
type SubScore struct {
	Value   int
	Max     int
	Details string
}

// Clamped returns a copy with Value forced into [0, Max].
func (s SubScore) Clamped() SubScore {
	if s.Value < 0 {
		s.Value = 0
	}
	if s.Value > s.Max {
		s.Value = s.Max
	}
	return s
}

// Confidence labels a composite score band.
type Confidence string

const (
	ConfidenceLow          Confidence = "LOW"
	ConfidenceLowModerate  Confidence = "LOW-MODERATE"
	ConfidenceModerate     Confidence = "MODERATE"
	ConfidenceModerateHigh Confidence = "MODERATE-HIGH"
	ConfidenceHigh         Confidence = "HIGH"
	ConfidenceVeryHigh     Confidence = "VERY HIGH"
)

// SwarmScore is the composite opportunity score for one ticker.
// Immutable once computed.
type SwarmScore struct {
	Symbol     Ticker
	Total      int
	Confidence Confidence
	SEC        SubScore
	Technical  SubScore
	Financial  SubScore
	News       SubScore
	Timestamp  time.Time
}
