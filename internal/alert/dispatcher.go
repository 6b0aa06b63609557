package alert

import (
	"context"

	"github.com/rs/zerolog"

	swarmerrors "github.com/SwarmHayes/swarm-trading-bot/internal/errors"
	"github.com/SwarmHayes/swarm-trading-bot/internal/logging"
	"github.com/SwarmHayes/swarm-trading-bot/internal/models"
)

// TierSender delivers formatted text to a channel tier.
type TierSender interface {
	SendTier(ctx context.Context, tier models.ChannelTier, text string) error
}

// Dispatcher routes a score, sends the alert, and persists the record.
// Delivery is at-least-once: a send that succeeds but fails to persist
// surfaces the persistence error so the gap in dedup history is visible.
type Dispatcher struct {
	router *Router
	sender TierSender
	store  HistoryStore
	logger zerolog.Logger
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(router *Router, sender TierSender, store HistoryStore, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		router: router,
		sender: sender,
		store:  store,
		logger: logging.WithComponent(logger, "dispatch"),
	}
}

// Dispatch routes and, when not suppressed, sends and records the alert.
func (d *Dispatcher) Dispatch(ctx context.Context, score models.SwarmScore, alertType string) (*Decision, error) {
	decision, err := d.router.Route(ctx, score)
	if err != nil {
		return nil, err
	}
	if decision.Suppressed {
		d.logger.Debug().
			Str("ticker", score.Symbol.String()).
			Str("reason", decision.Reason).
			Msg("Alert not sent")
		return decision, nil
	}

	if err := d.sender.SendTier(ctx, decision.Tier, decision.Message); err != nil {
		return nil, swarmerrors.Wrapf(err, "sending %s alert for %s", decision.Tier, score.Symbol)
	}

	record := NewRecord(score, decision.Tier, alertType)
	if err := d.store.SaveAlert(ctx, record); err != nil {
		return nil, swarmerrors.NewPersistenceError("save_alert", err)
	}

	logging.LogAlert(d.logger, score.Symbol.String(), string(decision.Tier), alertType, score.Total)
	return decision, nil
}
