// Package alert maps composite scores to channel tiers, suppresses
// near-duplicate alerts, and formats the outgoing messages.
package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	swarmerrors "github.com/SwarmHayes/swarm-trading-bot/internal/errors"
	"github.com/SwarmHayes/swarm-trading-bot/internal/logging"
	"github.com/SwarmHayes/swarm-trading-bot/internal/models"
)

// Tier thresholds on the composite total.
const (
	CriticalThreshold  = 90
	ActiveThreshold    = 75
	WatchlistThreshold = 60
)

// HistoryStore is the slice of persistence the router needs.
type HistoryStore interface {
	SaveAlert(ctx context.Context, record *models.AlertRecord) error
	GetRecentAlerts(ctx context.Context, symbol models.Ticker, hours int) ([]models.AlertRecord, error)
}

// RouterConfig holds routing and deduplication parameters.
type RouterConfig struct {
	MinScore         int // below this, never routed
	DedupWindowHours int // trailing window checked for near-repeats
	DedupDelta       int // suppress when a prior total is closer than this
}

// DefaultRouterConfig returns the canonical routing parameters.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		MinScore:         WatchlistThreshold,
		DedupWindowHours: 4,
		DedupDelta:       5,
	}
}

// Decision is the outcome of routing one score.
type Decision struct {
	Tier       models.ChannelTier
	Message    string
	Suppressed bool
	Reason     string // set when no alert will be sent
}

// Router decides alert routing for computed scores.
type Router struct {
	store  HistoryStore
	cfg    RouterConfig
	logger zerolog.Logger
}

// NewRouter creates a router over the given alert history store.
func NewRouter(store HistoryStore, cfg RouterConfig, logger zerolog.Logger) *Router {
	return &Router{
		store:  store,
		cfg:    cfg,
		logger: logging.WithComponent(logger, "alert"),
	}
}

// Route maps a score to a channel tier and checks the recent alert
// history for near-duplicates. A persistence failure during the dedup
// lookup surfaces to the caller: silently skipping the check would let
// duplicate alerts through unnoticed.
func (r *Router) Route(ctx context.Context, score models.SwarmScore) (*Decision, error) {
	tier, ok := TierFor(score.Total)
	if !ok {
		return &Decision{
			Suppressed: true,
			Reason:     fmt.Sprintf("score %d below minimum threshold %d", score.Total, r.cfg.MinScore),
		}, nil
	}

	recent, err := r.store.GetRecentAlerts(ctx, score.Symbol, r.cfg.DedupWindowHours)
	if err != nil {
		return nil, swarmerrors.NewPersistenceError("get_recent_alerts", err)
	}
	for _, prior := range recent {
		delta := prior.Total - score.Total
		if delta < 0 {
			delta = -delta
		}
		if delta < r.cfg.DedupDelta {
			r.logger.Info().
				Str("ticker", score.Symbol.String()).
				Int("total", score.Total).
				Int("prior", prior.Total).
				Msg("Suppressing near-duplicate alert")
			return &Decision{
				Suppressed: true,
				Reason:     fmt.Sprintf("duplicate within window: prior total %d, delta %d", prior.Total, delta),
			}, nil
		}
	}

	return &Decision{
		Tier:    tier,
		Message: FormatAlert(score, tier),
	}, nil
}

// TierFor maps a total score onto its channel tier. The second return is
// false when the score is below the minimum routing threshold.
func TierFor(total int) (models.ChannelTier, bool) {
	switch {
	case total >= CriticalThreshold:
		return models.TierCritical, true
	case total >= ActiveThreshold:
		return models.TierActive, true
	case total >= WatchlistThreshold:
		return models.TierWatchlist, true
	default:
		return "", false
	}
}

// NewRecord builds the AlertRecord for a routed score.
func NewRecord(score models.SwarmScore, tier models.ChannelTier, alertType string) *models.AlertRecord {
	return &models.AlertRecord{
		ID:             uuid.NewString(),
		Symbol:         score.Symbol,
		Total:          score.Total,
		SECScore:       score.SEC.Value,
		TechnicalScore: score.Technical.Value,
		FinancialScore: score.Financial.Value,
		NewsScore:      score.News.Value,
		AlertType:      alertType,
		Channel:        tier,
		CreatedAt:      time.Now().UTC(),
	}
}
