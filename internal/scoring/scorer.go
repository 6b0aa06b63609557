// Package scoring derives the four weighted sub-scores for a ticker and
// combines them into the composite swarm score.
package scoring

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/SwarmHayes/swarm-trading-bot/internal/logging"
	"github.com/SwarmHayes/swarm-trading-bot/internal/marketdata"
	"github.com/SwarmHayes/swarm-trading-bot/internal/models"
	"github.com/SwarmHayes/swarm-trading-bot/internal/news"
)

// FilingScorer derives the SEC filing sub-score for a ticker.
type FilingScorer interface {
	Score(symbol models.Ticker) models.SubScore
}

// SwarmScorer computes composite swarm scores. Each sub-score degrades to
// zero on missing data; scoring a ticker never fails outright.
type SwarmScorer struct {
	provider marketdata.Provider
	filings  FilingScorer
	feed     news.Feed
	weights  Weights
	logger   zerolog.Logger
	now      func() time.Time
}

// NewSwarmScorer creates a scorer with the default weights.
func NewSwarmScorer(provider marketdata.Provider, filings FilingScorer, feed news.Feed, logger zerolog.Logger) *SwarmScorer {
	return &SwarmScorer{
		provider: provider,
		filings:  filings,
		feed:     feed,
		weights:  DefaultWeights(),
		logger:   logging.WithComponent(logger, "scoring"),
		now:      time.Now,
	}
}

// NewSwarmScorerWithWeights creates a scorer with custom weights.
func NewSwarmScorerWithWeights(provider marketdata.Provider, filings FilingScorer, feed news.Feed, w Weights, logger zerolog.Logger) *SwarmScorer {
	s := NewSwarmScorer(provider, filings, feed, logger)
	s.weights = w
	return s
}

// Score computes the complete swarm score for a ticker.
func (s *SwarmScorer) Score(ctx context.Context, symbol models.Ticker) models.SwarmScore {
	sec := s.secScore(symbol)
	technical := s.technicalScore(ctx, symbol)
	financial := s.financialScore(ctx, symbol)
	newsScore := s.newsScore(symbol)

	result := Aggregate(symbol, sec, technical, financial, newsScore, s.weights, s.now())

	logging.LogScore(s.logger, symbol.String(), result.Total,
		result.SEC.Value, result.Technical.Value, result.Financial.Value, result.News.Value,
		string(result.Confidence))

	return result
}

func (s *SwarmScorer) secScore(symbol models.Ticker) models.SubScore {
	if s.filings == nil {
		return models.SubScore{Value: 0, Max: models.MaxSECScore, Details: "No filings analyzed"}
	}
	return s.filings.Score(symbol)
}

func (s *SwarmScorer) technicalScore(ctx context.Context, symbol models.Ticker) models.SubScore {
	quote, err := s.provider.GetQuote(ctx, symbol)
	if err != nil {
		return models.SubScore{Value: 0, Max: models.MaxTechnicalScore, Details: "No market data available"}
	}
	series, err := s.provider.GetDailySeries(ctx, symbol, marketdata.RangeLookback)
	if err != nil {
		return models.SubScore{Value: 0, Max: models.MaxTechnicalScore, Details: "No historical data available"}
	}
	return TechnicalScore(quote, series)
}

func (s *SwarmScorer) financialScore(ctx context.Context, symbol models.Ticker) models.SubScore {
	fundamentals, err := s.provider.GetFundamentals(ctx, symbol)
	if err != nil {
		return models.SubScore{Value: 0, Max: models.MaxFinancialScore, Details: "No financial data available"}
	}
	return FinancialScore(fundamentals)
}

func (s *SwarmScorer) newsScore(symbol models.Ticker) models.SubScore {
	if s.feed == nil {
		return models.SubScore{Value: 0, Max: models.MaxNewsScore, Details: "News feed unavailable"}
	}
	urgency, present, err := s.feed.Urgency(symbol)
	return NewsScore(urgency, present, err)
}
