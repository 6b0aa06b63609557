package scoring

import (
	"fmt"
	"strings"
	"time"

	"github.com/SwarmHayes/swarm-trading-bot/internal/models"
)

// Technical sub-component bounds.
const (
	maxVolumeScore     = 15
	maxRSIScore        = 10
	maxPriceLevelScore = 10
	movingAvgBonus     = 5

	rsiPeriod     = 14
	smaBonusSpan  = 50
	volumeAvgSpan = 20
)

// TechnicalScore derives the technical sub-score from a quote and a daily
// price series ordered most recent first. Pure; clamped to [0, 35].
func TechnicalScore(quote *models.Quote, series []models.PricePoint) models.SubScore {
	if quote == nil {
		return models.SubScore{Value: 0, Max: models.MaxTechnicalScore, Details: "No market data available"}
	}
	if len(series) == 0 {
		return models.SubScore{Value: 0, Max: models.MaxTechnicalScore, Details: "No historical data available"}
	}

	total := 0
	var details []string

	if v, d := volumeScore(quote, series); v > 0 {
		total += v
		details = append(details, d)
	}
	if v, d := rsiScore(series); v > 0 {
		total += v
		details = append(details, d)
	}
	if v, d := priceLevelScore(quote.Price, series); v > 0 {
		total += v
		details = append(details, d)
	}
	if v, d := movingAverageBonus(quote.Price, series); v > 0 {
		total += v
		details = append(details, d)
	}

	detail := "Limited data"
	if len(details) > 0 {
		detail = strings.Join(details, " | ")
	}

	score := models.SubScore{Value: total, Max: models.MaxTechnicalScore, Details: detail}
	return score.Clamped()
}

// volumeScore compares the current session volume to the mean of the
// most recent 20 sessions, excluding the current session when the series
// includes it.
func volumeScore(quote *models.Quote, series []models.PricePoint) (int, string) {
	hist := series
	if sameDay(series[0].Date, quote.Timestamp) {
		hist = series[1:]
	}
	if len(hist) > volumeAvgSpan {
		hist = hist[:volumeAvgSpan]
	}
	if len(hist) == 0 {
		return 0, ""
	}

	var sum float64
	for _, p := range hist {
		sum += float64(p.Volume)
	}
	avg := sum / float64(len(hist))
	if avg <= 0 {
		return 0, ""
	}

	ratio := float64(quote.Volume) / avg
	switch {
	case ratio >= 3.0:
		return 15, fmt.Sprintf("Volume 3x+ average (%.1fx)", ratio)
	case ratio >= 2.0:
		return 12, fmt.Sprintf("Volume 2x average (%.1fx)", ratio)
	case ratio >= 1.5:
		return 8, fmt.Sprintf("Volume 1.5x average (%.1fx)", ratio)
	case ratio >= 1.2:
		return 5, fmt.Sprintf("Above average volume (%.1fx)", ratio)
	default:
		return 0, ""
	}
}

// rsiScore rewards a 14-period RSI in the 40-60 band most; an undefined
// RSI contributes nothing.
func rsiScore(series []models.PricePoint) (int, string) {
	// Wilder smoothing runs oldest first.
	closes := make([]float64, len(series))
	for i, p := range series {
		closes[len(series)-1-i] = p.Close
	}

	value, ok := rsi(closes, rsiPeriod)
	if !ok {
		return 0, ""
	}

	switch {
	case value >= 40 && value <= 60:
		return 10, fmt.Sprintf("RSI goldilocks zone (%.0f)", value)
	case value >= 30 && value <= 70:
		return 7, fmt.Sprintf("RSI healthy (%.0f)", value)
	case value < 30:
		return 5, fmt.Sprintf("RSI oversold (%.0f)", value)
	default:
		return 2, fmt.Sprintf("RSI overbought (%.0f)", value)
	}
}

// priceLevelScore rewards proximity to the 52-week high over up to 252
// sessions of highs and lows.
func priceLevelScore(price float64, series []models.PricePoint) (int, string) {
	window := series
	if len(window) > 252 {
		window = window[:252]
	}

	high52 := window[0].High
	low52 := window[0].Low
	for _, p := range window[1:] {
		if p.High > high52 {
			high52 = p.High
		}
		if p.Low < low52 {
			low52 = p.Low
		}
	}

	if high52 <= low52 || high52 <= 0 {
		return 0, ""
	}

	pctFromHigh := (high52 - price) / high52 * 100
	switch {
	case pctFromHigh < 5:
		return 10, fmt.Sprintf("Near 52-week high (-%.1f%%)", pctFromHigh)
	case pctFromHigh < 10:
		return 7, fmt.Sprintf("Strong price level (-%.1f%% from high)", pctFromHigh)
	case pctFromHigh < 20:
		return 5, fmt.Sprintf("Decent price level (-%.1f%% from high)", pctFromHigh)
	default:
		return 0, ""
	}
}

// movingAverageBonus adds a bonus when the price runs well above the
// 50-session SMA. Only applies with at least 50 sessions of history.
func movingAverageBonus(price float64, series []models.PricePoint) (int, string) {
	if len(series) < smaBonusSpan {
		return 0, ""
	}
	closes := make([]float64, smaBonusSpan)
	for i := 0; i < smaBonusSpan; i++ {
		closes[i] = series[i].Close
	}
	avg := sma(closes, smaBonusSpan)
	if avg > 0 && price > 1.10*avg {
		return movingAvgBonus, fmt.Sprintf("Price 10%%+ above 50-day SMA (%.2f vs %.2f)", price, avg)
	}
	return 0, ""
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
