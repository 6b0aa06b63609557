package scoring

import (
	"fmt"

	"github.com/SwarmHayes/swarm-trading-bot/internal/models"
)

// urgencyMultiplier scales feed urgency values onto the news band.
const urgencyMultiplier = 3

// NewsScore maps a feed urgency value onto the news sub-score. Pure;
// clamped to [0, 10].
func NewsScore(urgency float64, present bool, feedErr error) models.SubScore {
	switch {
	case feedErr != nil:
		return models.SubScore{Value: 0, Max: models.MaxNewsScore, Details: "News feed unavailable"}
	case !present:
		return models.SubScore{Value: 0, Max: models.MaxNewsScore, Details: "No news feed entry"}
	case urgency <= 0:
		return models.SubScore{Value: 0, Max: models.MaxNewsScore, Details: "No urgent news"}
	}

	score := models.SubScore{
		Value:   int(urgency * urgencyMultiplier),
		Max:     models.MaxNewsScore,
		Details: fmt.Sprintf("News urgency %.1f", urgency),
	}
	return score.Clamped()
}
