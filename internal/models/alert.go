package models

import "time"

// ChannelTier identifies the destination channel class for an alert.
type ChannelTier string

const (
	TierCritical  ChannelTier = "critical"  // total >= 90
	TierActive    ChannelTier = "active"    // total >= 75
	TierWatchlist ChannelTier = "watchlist" // total >= 60
)

// AlertRecord is one posted alert. Created once per send; never mutated.
// The deduplicator reads these back to detect near-repeats.
type AlertRecord struct {
	ID             string
	Symbol         Ticker
	Total          int
	SECScore       int
	TechnicalScore int
	FinancialScore int
	NewsScore      int
	AlertType      string
	Channel        ChannelTier
	CreatedAt      time.Time
}

// WatchlistEntry is one ticker on a user's personal watchlist.
type WatchlistEntry struct {
	UserID  string
	Symbol  Ticker
	Notes   string
	AddedAt time.Time
}

// TickerStats is per-ticker alert metadata maintained alongside saved alerts.
type TickerStats struct {
	Symbol     Ticker
	LastScore  int
	AvgScore   float64
	AlertCount int
	LastAlert  time.Time
}

// CommunityWatch is an anonymous per-ticker watch counter.
type CommunityWatch struct {
	Symbol      Ticker
	WatchCount  int
	LastWatched time.Time
}
