// Package notify delivers formatted alerts to their destination channels.
package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/SwarmHayes/swarm-trading-bot/internal/config"
	"github.com/SwarmHayes/swarm-trading-bot/internal/models"
)

// NotificationChannel defines the interface for a delivery channel.
type NotificationChannel interface {
	Name() string
	Send(ctx context.Context, text string) error
	IsEnabled() bool
}

// TierRegistry routes messages to the channel registered for each tier.
// Every tier delivery also fans out to any broadcast channels (terminal
// echo, for instance).
type TierRegistry struct {
	mu        sync.RWMutex
	channels  map[models.ChannelTier]NotificationChannel
	broadcast []NotificationChannel
}

// NewTierRegistry creates an empty registry.
func NewTierRegistry() *TierRegistry {
	return &TierRegistry{
		channels: make(map[models.ChannelTier]NotificationChannel),
	}
}

// NewTierRegistryFromConfig wires a webhook channel per configured tier URL.
func NewTierRegistryFromConfig(cfg config.WebhooksConfig) *TierRegistry {
	r := NewTierRegistry()
	r.Register(models.TierCritical, NewWebhookChannel(cfg.Critical))
	r.Register(models.TierActive, NewWebhookChannel(cfg.Active))
	r.Register(models.TierWatchlist, NewWebhookChannel(cfg.Watchlist))
	return r
}

// Register binds a channel to a tier, replacing any previous binding.
func (r *TierRegistry) Register(tier models.ChannelTier, ch NotificationChannel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.channels[tier] = ch
}

// AddBroadcast adds a channel that receives every tier's messages.
func (r *TierRegistry) AddBroadcast(ch NotificationChannel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.broadcast = append(r.broadcast, ch)
}

// SendTier delivers a message to the tier's channel and all broadcast
// channels. A missing or disabled tier channel is an error: the caller
// has already decided the alert must go out.
func (r *TierRegistry) SendTier(ctx context.Context, tier models.ChannelTier, text string) error {
	r.mu.RLock()
	ch := r.channels[tier]
	broadcast := r.broadcast
	r.mu.RUnlock()

	var errs []string

	if ch == nil || !ch.IsEnabled() {
		errs = append(errs, fmt.Sprintf("no enabled channel for tier %q", tier))
	} else if err := ch.Send(ctx, text); err != nil {
		errs = append(errs, fmt.Sprintf("%s: %v", ch.Name(), err))
	}

	for _, b := range broadcast {
		if b.IsEnabled() {
			if err := b.Send(ctx, text); err != nil {
				errs = append(errs, fmt.Sprintf("%s: %v", b.Name(), err))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("delivery errors: %s", strings.Join(errs, "; "))
	}
	return nil
}
