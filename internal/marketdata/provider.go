// Package marketdata fetches quotes, price history and fundamentals for
// tickers from an external provider and normalizes provider-specific
// failures into a uniform availability signal.
package marketdata

import (
	"context"

	"github.com/SwarmHayes/swarm-trading-bot/internal/models"
)

// Provider fetches market data for a ticker. All methods return an error
// carrying one of the failure-class sentinels from internal/errors when the
// data is unavailable; callers treat any error as "no data" while logs keep
// the distinguishing class.
type Provider interface {
	// GetQuote returns the latest quote snapshot.
	GetQuote(ctx context.Context, symbol models.Ticker) (*models.Quote, error)
	// GetDailySeries returns up to lookback daily sessions, most recent first.
	GetDailySeries(ctx context.Context, symbol models.Ticker, lookback int) ([]models.PricePoint, error)
	// GetFundamentals returns company fundamentals. Absent fields are nil.
	GetFundamentals(ctx context.Context, symbol models.Ticker) (*models.Fundamentals, error)
}

// Lookback windows required by the technical calculator.
const (
	// VolumeLookback is the minimum series length for volume averaging.
	VolumeLookback = 20
	// RangeLookback covers a 52-week high/low range of daily sessions.
	RangeLookback = 252
)
