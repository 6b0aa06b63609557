package alert

import (
	"fmt"
	"strings"

	"github.com/SwarmHayes/swarm-trading-bot/internal/models"
)

// FormatAlert renders the channel message for a routed score in the
// trader-voice layout each tier uses.
func FormatAlert(score models.SwarmScore, tier models.ChannelTier) string {
	switch tier {
	case models.TierCritical:
		return formatCritical(score)
	case models.TierActive:
		return formatActive(score)
	default:
		return formatWatchlist(score)
	}
}

func formatCritical(s models.SwarmScore) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎯 SWARM SCORE: %d - High Probability Setup\n\n", s.Total)
	fmt.Fprintf(&b, "%s - Multiple Convergence Event\n\n", s.Symbol)
	b.WriteString("Setup Analysis:\n")
	fmt.Fprintf(&b, "├─ SEC Signal: %d/%d\n", s.SEC.Value, s.SEC.Max)
	fmt.Fprintf(&b, "├─ Technical: %d/%d\n", s.Technical.Value, s.Technical.Max)
	fmt.Fprintf(&b, "├─ Financial: %d/%d\n", s.Financial.Value, s.Financial.Max)
	fmt.Fprintf(&b, "└─ News: %d/%d\n\n", s.News.Value, s.News.Max)
	fmt.Fprintf(&b, "Confidence: %s\n\n", s.Confidence)
	b.WriteString("Trade your plan. Manage your risk. Honor your stops.")
	return b.String()
}

func formatActive(s models.SwarmScore) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 SWARM SCORE: %d - Worth Monitoring\n\n", s.Total)
	fmt.Fprintf(&b, "%s - Developing Setup\n\n", s.Symbol)
	b.WriteString("Current Analysis:\n")
	fmt.Fprintf(&b, "├─ SEC: %d/%d\n", s.SEC.Value, s.SEC.Max)
	fmt.Fprintf(&b, "├─ Technical: %d/%d\n", s.Technical.Value, s.Technical.Max)
	fmt.Fprintf(&b, "└─ Financial: %d/%d\n\n", s.Financial.Value, s.Financial.Max)
	fmt.Fprintf(&b, "Confidence: %s", s.Confidence)
	return b.String()
}

func formatWatchlist(s models.SwarmScore) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 SWARM SCORE: %d - Early Stage\n\n", s.Total)
	fmt.Fprintf(&b, "%s - Monitor Only\n\n", s.Symbol)
	fmt.Fprintf(&b, "Score breakdown: SEC %d | Tech %d | Finance %d | News %d",
		s.SEC.Value, s.Technical.Value, s.Financial.Value, s.News.Value)
	return b.String()
}

// FormatBreakdown renders the interactive score-command response.
func FormatBreakdown(s models.SwarmScore) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎯 SWARM SCORE for %s: %d/100\n\n", s.Symbol, s.Total)
	b.WriteString("Breakdown:\n")
	fmt.Fprintf(&b, "├─ SEC Signal: %d/%d - %s\n", s.SEC.Value, s.SEC.Max, s.SEC.Details)
	fmt.Fprintf(&b, "├─ Technical: %d/%d - %s\n", s.Technical.Value, s.Technical.Max, s.Technical.Details)
	fmt.Fprintf(&b, "├─ Financial: %d/%d - %s\n", s.Financial.Value, s.Financial.Max, s.Financial.Details)
	fmt.Fprintf(&b, "└─ News: %d/%d - %s\n\n", s.News.Value, s.News.Max, s.News.Details)
	fmt.Fprintf(&b, "Confidence: %s", s.Confidence)
	return b.String()
}
