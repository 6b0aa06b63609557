// Package news reads the externally produced per-ticker news urgency feed.
package news

import (
	"encoding/json"
	"os"

	swarmerrors "github.com/SwarmHayes/swarm-trading-bot/internal/errors"
	"github.com/SwarmHayes/swarm-trading-bot/internal/models"
)

// Feed exposes the latest per-ticker news urgency value. The feed is
// refreshed externally; no freshness guarantee beyond "latest available".
type Feed interface {
	// Urgency returns the urgency value for a ticker and whether the
	// ticker is present in the feed at all.
	Urgency(symbol models.Ticker) (float64, bool, error)
}

type feedEntry struct {
	Urgency float64 `json:"urgency"`
}

// FileFeed reads urgency values from a JSON file keyed by ticker.
type FileFeed struct {
	path string
}

// NewFileFeed creates a feed backed by the given JSON file.
func NewFileFeed(path string) *FileFeed {
	return &FileFeed{path: path}
}

// Urgency reads the feed file and looks up the ticker. A missing file is
// reported as data unavailability, not as an empty feed.
func (f *FileFeed) Urgency(symbol models.Ticker) (float64, bool, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, false, swarmerrors.ErrDataUnavailable
		}
		return 0, false, swarmerrors.Wrap(err, "reading news feed")
	}

	var entries map[string]feedEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return 0, false, swarmerrors.Wrap(swarmerrors.ErrMalformedResponse, err.Error())
	}

	entry, ok := entries[symbol.String()]
	if !ok {
		return 0, false, nil
	}
	return entry.Urgency, true, nil
}
