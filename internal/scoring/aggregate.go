package scoring

import (
	"math"
	"time"

	"github.com/SwarmHayes/swarm-trading-bot/internal/models"
)

// Weights defines each sub-score's share of the 0-100 composite. A
// sub-score contributes its weight's share scaled by how much of its own
// band it filled, so with the default weights the composite is the plain
// sum of the four capped point values.
type Weights struct {
	SEC       float64
	Technical float64
	Financial float64
	News      float64
}

// DefaultWeights returns the canonical swarm score weights.
func DefaultWeights() Weights {
	return Weights{
		SEC:       0.40,
		Technical: 0.35,
		Financial: 0.15,
		News:      0.10,
	}
}

// Aggregate combines the four sub-scores into a composite SwarmScore.
// Pure and deterministic: identical inputs always produce the identical
// total and confidence. Each sub-score is re-clamped to its own band
// before weighting; the weighted sum never implicitly caps.
func Aggregate(symbol models.Ticker, sec, technical, financial, news models.SubScore, w Weights, ts time.Time) models.SwarmScore {
	sec = sec.Clamped()
	technical = technical.Clamped()
	financial = financial.Clamped()
	news = news.Clamped()

	total := int(math.Floor(
		contribution(sec, w.SEC) +
			contribution(technical, w.Technical) +
			contribution(financial, w.Financial) +
			contribution(news, w.News),
	))

	return models.SwarmScore{
		Symbol:     symbol,
		Total:      total,
		Confidence: confidence(total, sec.Value, technical.Value),
		SEC:        sec,
		Technical:  technical,
		Financial:  financial,
		News:       news,
		Timestamp:  ts,
	}
}

// contribution scales a sub-score onto its weighted share of the 0-100
// composite.
func contribution(s models.SubScore, weight float64) float64 {
	if s.Max <= 0 {
		return 0
	}
	return float64(s.Value) / float64(s.Max) * weight * 100
}

// confidence maps the total onto a label, with a secondary condition in
// the 80s band: a HIGH call needs conviction from both heavyweight
// components, not just an inflated sum.
func confidence(total, sec, technical int) models.Confidence {
	switch {
	case total >= 90:
		return models.ConfidenceVeryHigh
	case total >= 80:
		if sec >= 30 && technical >= 25 {
			return models.ConfidenceHigh
		}
		return models.ConfidenceModerateHigh
	case total >= 70:
		return models.ConfidenceModerate
	case total >= 60:
		return models.ConfidenceLowModerate
	default:
		return models.ConfidenceLow
	}
}
