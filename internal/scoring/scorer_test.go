package scoring

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	swarmerrors "github.com/SwarmHayes/swarm-trading-bot/internal/errors"
	"github.com/SwarmHayes/swarm-trading-bot/internal/models"
)

type fakeProvider struct {
	quote        *models.Quote
	series       []models.PricePoint
	fundamentals *models.Fundamentals
	err          error
}

func (f *fakeProvider) GetQuote(_ context.Context, _ models.Ticker) (*models.Quote, error) {
	return f.quote, f.err
}

func (f *fakeProvider) GetDailySeries(_ context.Context, _ models.Ticker, _ int) ([]models.PricePoint, error) {
	return f.series, f.err
}

func (f *fakeProvider) GetFundamentals(_ context.Context, _ models.Ticker) (*models.Fundamentals, error) {
	return f.fundamentals, f.err
}

type fakeFilings struct {
	score models.SubScore
}

func (f *fakeFilings) Score(_ models.Ticker) models.SubScore {
	return f.score
}

type fakeFeed struct {
	urgency float64
	present bool
	err     error
}

func (f *fakeFeed) Urgency(_ models.Ticker) (float64, bool, error) {
	return f.urgency, f.present, f.err
}

func TestScoreNeverFailsOnProviderErrors(t *testing.T) {
	provider := &fakeProvider{err: swarmerrors.ErrDataUnavailable}
	scorer := NewSwarmScorer(provider, &fakeFilings{}, &fakeFeed{}, zerolog.Nop())

	got := scorer.Score(context.Background(), "GHOST")
	if got.Total != 0 {
		t.Errorf("total = %d, want 0", got.Total)
	}
	if got.Confidence != models.ConfidenceLow {
		t.Errorf("confidence = %s, want LOW", got.Confidence)
	}
	if got.Technical.Details != "No market data available" {
		t.Errorf("technical details = %q", got.Technical.Details)
	}
	if got.Financial.Details != "No financial data available" {
		t.Errorf("financial details = %q", got.Financial.Details)
	}
}

func TestScoreNilCollaboratorsDegrade(t *testing.T) {
	provider := &fakeProvider{err: swarmerrors.ErrDataUnavailable}
	scorer := NewSwarmScorer(provider, nil, nil, zerolog.Nop())

	got := scorer.Score(context.Background(), "TEST")
	if got.SEC.Details != "No filings analyzed" {
		t.Errorf("sec details = %q", got.SEC.Details)
	}
	if got.News.Details != "News feed unavailable" {
		t.Errorf("news details = %q", got.News.Details)
	}
}

func TestScoreCombinesComponents(t *testing.T) {
	series := buildSeries(252, 100, 1000)
	provider := &fakeProvider{
		quote: &models.Quote{
			Symbol:    "NVDA",
			Price:     100.5,
			Volume:    2200,
			Timestamp: time.Date(2026, 8, 29, 15, 0, 0, 0, time.UTC),
		},
		series:       series,
		fundamentals: &models.Fundamentals{TotalCash: fptr(1500), TotalDebt: fptr(1000)},
	}
	filings := &fakeFilings{score: models.SubScore{Value: 35, Max: models.MaxSECScore, Details: "8-K filing"}}
	feed := &fakeFeed{urgency: 2, present: true}

	scorer := NewSwarmScorer(provider, filings, feed, zerolog.Nop())
	got := scorer.Score(context.Background(), "NVDA")

	// Volume 2.2x -> 12, price near flat-series high -> 10, SMA bonus
	// and RSI contribute nothing on a flat series.
	if got.Technical.Value != 22 {
		t.Errorf("technical = %d (%s), want 22", got.Technical.Value, got.Technical.Details)
	}
	if got.Financial.Value != 12 {
		t.Errorf("financial = %d, want 12", got.Financial.Value)
	}
	if got.News.Value != 6 {
		t.Errorf("news = %d, want 6", got.News.Value)
	}
	want := 35 + 22 + 12 + 6
	if got.Total != want {
		t.Errorf("total = %d, want %d", got.Total, want)
	}
}
