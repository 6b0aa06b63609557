package notify

import (
	"context"
	"fmt"
	"io"
	"os"
)

// TerminalChannel writes messages to a terminal stream. Used for the
// CLI score command and as a broadcast echo during scans.
type TerminalChannel struct {
	out     io.Writer
	enabled bool
}

// NewTerminalChannel creates a channel writing to stdout.
func NewTerminalChannel() *TerminalChannel {
	return &TerminalChannel{out: os.Stdout, enabled: true}
}

// NewTerminalChannelWithWriter creates a channel writing to w.
func NewTerminalChannelWithWriter(w io.Writer) *TerminalChannel {
	return &TerminalChannel{out: w, enabled: true}
}

// Name returns the channel name.
func (t *TerminalChannel) Name() string {
	return "terminal"
}

// IsEnabled returns whether the channel is active.
func (t *TerminalChannel) IsEnabled() bool {
	return t.enabled
}

// SetEnabled toggles the channel.
func (t *TerminalChannel) SetEnabled(enabled bool) {
	t.enabled = enabled
}

// Send writes the message followed by a newline.
func (t *TerminalChannel) Send(_ context.Context, text string) error {
	if !t.enabled {
		return nil
	}
	_, err := fmt.Fprintln(t.out, text)
	return err
}
