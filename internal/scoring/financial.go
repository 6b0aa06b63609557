package scoring

import (
	"fmt"

	"github.com/SwarmHayes/swarm-trading-bot/internal/models"
)

// FinancialScore derives the financial health sub-score from the company's
// cash position versus debt load. Pure; clamped to [0, 15]. Unknown cash or
// debt counts as unavailable data, not as zero.
func FinancialScore(f *models.Fundamentals) models.SubScore {
	if f == nil {
		return models.SubScore{Value: 0, Max: models.MaxFinancialScore, Details: "No financial data available"}
	}
	if f.TotalCash == nil || f.TotalDebt == nil {
		return models.SubScore{Value: 0, Max: models.MaxFinancialScore, Details: "Cash/debt data unavailable"}
	}

	cash := *f.TotalCash
	debt := *f.TotalDebt

	var value int
	var detail string
	switch {
	case debt == 0 && cash > 0:
		value = 15
		detail = "Debt-free with cash on hand"
	case debt == 0:
		value = 4
		detail = "No debt, no reported cash"
	default:
		ratio := cash / debt
		switch {
		case ratio > 2.0:
			value = 15
			detail = fmt.Sprintf("Fortress balance sheet (%.1fx cash/debt)", ratio)
		case ratio > 1.0:
			value = 12
			detail = fmt.Sprintf("More cash than debt (%.1fx)", ratio)
		case ratio > 0.5:
			value = 8
			detail = fmt.Sprintf("Moderate leverage (%.1fx cash/debt)", ratio)
		default:
			value = 4
			detail = fmt.Sprintf("Debt-heavy (%.1fx cash/debt)", ratio)
		}
	}

	score := models.SubScore{Value: value, Max: models.MaxFinancialScore, Details: detail}
	return score.Clamped()
}
