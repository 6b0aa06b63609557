package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	swarmerrors "github.com/SwarmHayes/swarm-trading-bot/internal/errors"
)

// WebhookChannel posts messages to an HTTP webhook as a JSON payload
// with a single "content" field, the shape Discord-compatible webhooks
// accept.
type WebhookChannel struct {
	url     string
	enabled bool
	client  *http.Client
}

// NewWebhookChannel creates a webhook channel. An empty URL yields a
// disabled channel.
func NewWebhookChannel(url string) *WebhookChannel {
	return &WebhookChannel{
		url:     url,
		enabled: url != "",
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Name returns the channel name.
func (w *WebhookChannel) Name() string {
	return "webhook"
}

// IsEnabled returns whether the channel has a destination configured.
func (w *WebhookChannel) IsEnabled() bool {
	return w.enabled
}

// Send posts the message to the webhook URL.
func (w *WebhookChannel) Send(ctx context.Context, text string) error {
	if !w.enabled {
		return nil
	}

	body, err := json.Marshal(map[string]string{"content": text})
	if err != nil {
		return fmt.Errorf("marshaling webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating webhook request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "SwarmBot/1.0")

	resp, err := w.client.Do(req)
	if err != nil {
		return swarmerrors.Wrap(swarmerrors.ErrTransport, fmt.Sprintf("sending webhook: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return swarmerrors.Wrap(swarmerrors.ErrRateLimited, "webhook rate limited")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
