// Package store provides data persistence implementations.
package store

import (
	"context"

	"github.com/SwarmHayes/swarm-trading-bot/internal/models"
)

// DataStore defines the persistence interface for alerts and watchlists.
type DataStore interface {
	// SaveAlert persists a posted alert and updates ticker stats.
	SaveAlert(ctx context.Context, record *models.AlertRecord) error
	// GetRecentAlerts returns alerts for a ticker within the trailing
	// window, most recent first.
	GetRecentAlerts(ctx context.Context, symbol models.Ticker, hours int) ([]models.AlertRecord, error)
	// GetTodaysAlerts returns today's alerts at or above minScore,
	// ordered by score descending.
	GetTodaysAlerts(ctx context.Context, minScore int) ([]models.AlertRecord, error)
	// GetTickerHistory returns alerts for a ticker over the trailing
	// days, most recent first.
	GetTickerHistory(ctx context.Context, symbol models.Ticker, days int) ([]models.AlertRecord, error)
	// GetTickerStats returns per-ticker alert metadata, or nil when the
	// ticker has never alerted.
	GetTickerStats(ctx context.Context, symbol models.Ticker) (*models.TickerStats, error)

	// AddToWatchlist adds a ticker to a user's watchlist. Idempotent:
	// adding an existing entry is a no-op.
	AddToWatchlist(ctx context.Context, userID string, symbol models.Ticker, notes string) error
	// RemoveFromWatchlist removes a ticker from a user's watchlist.
	RemoveFromWatchlist(ctx context.Context, userID string, symbol models.Ticker) error
	// GetWatchlist returns a user's watchlist entries, oldest first.
	GetWatchlist(ctx context.Context, userID string) ([]models.WatchlistEntry, error)
	// GetWatchedTickers returns the distinct tickers on any watchlist.
	GetWatchedTickers(ctx context.Context) ([]models.Ticker, error)
	// GetCommunityTrending returns the most-watched tickers over the
	// last seven days.
	GetCommunityTrending(ctx context.Context, limit int) ([]models.CommunityWatch, error)

	Close() error
}
