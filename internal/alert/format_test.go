package alert

import (
	"strings"
	"testing"

	"github.com/SwarmHayes/swarm-trading-bot/internal/models"
)

func TestFormatAlertHeadlines(t *testing.T) {
	s := score("NVDA", 92)

	tests := []struct {
		tier models.ChannelTier
		want string
	}{
		{models.TierCritical, "🎯 SWARM SCORE: 92 - High Probability Setup"},
		{models.TierActive, "📊 SWARM SCORE: 92 - Worth Monitoring"},
		{models.TierWatchlist, "📋 SWARM SCORE: 92 - Early Stage"},
	}

	for _, tt := range tests {
		got := FormatAlert(s, tt.tier)
		if !strings.HasPrefix(got, tt.want) {
			t.Errorf("tier %s: message starts %q, want prefix %q",
				tt.tier, got[:min(len(got), 60)], tt.want)
		}
		if !strings.Contains(got, "NVDA") {
			t.Errorf("tier %s: message missing ticker", tt.tier)
		}
	}
}

func TestFormatCriticalClosesWithDiscipline(t *testing.T) {
	got := formatCritical(score("NVDA", 92))
	if !strings.HasSuffix(got, "Trade your plan. Manage your risk. Honor your stops.") {
		t.Errorf("unexpected closing line:\n%s", got)
	}
}

func TestFormatBreakdownIncludesDetails(t *testing.T) {
	s := score("NVDA", 92)
	s.SEC.Details = "8-K filing: merger"
	s.Technical.Details = "Volume 2x average (2.2x)"

	got := FormatBreakdown(s)
	for _, want := range []string{"NVDA", "92/100", "8-K filing: merger", "Volume 2x average"} {
		if !strings.Contains(got, want) {
			t.Errorf("breakdown missing %q:\n%s", want, got)
		}
	}
}
