package scanner

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/SwarmHayes/swarm-trading-bot/internal/models"
)

// Candidate is a ticker nominated for scoring, tagged with the alert
// type describing where it came from.
type Candidate struct {
	Symbol    models.Ticker
	AlertType string
}

// WatchedTickerSource lists tickers users have placed on watchlists.
type WatchedTickerSource interface {
	GetWatchedTickers(ctx context.Context) ([]models.Ticker, error)
}

// collectCandidates gathers candidates from scanner output files and
// user watchlists, deduplicated by ticker. A ticker's first source
// wins, so file-nominated tickers keep their strategy tag even when
// also watched.
func collectCandidates(ctx context.Context, watchFiles []string, watched WatchedTickerSource, logger zerolog.Logger) []Candidate {
	var out []Candidate
	seen := make(map[models.Ticker]bool)

	for _, path := range watchFiles {
		alertType := alertTypeForFile(path)
		symbols, err := readWatchFile(path)
		if err != nil {
			// A missing scan output just means that strategy produced
			// nothing today.
			logger.Debug().Err(err).Str("file", path).Msg("Watch file not read")
			continue
		}
		for _, sym := range symbols {
			if !seen[sym] {
				seen[sym] = true
				out = append(out, Candidate{Symbol: sym, AlertType: alertType})
			}
		}
	}

	if watched != nil {
		symbols, err := watched.GetWatchedTickers(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to load watched tickers")
		}
		for _, sym := range symbols {
			if !seen[sym] {
				seen[sym] = true
				out = append(out, Candidate{Symbol: sym, AlertType: "watchlist"})
			}
		}
	}

	return out
}

// readWatchFile parses a scan output CSV and returns the tickers from
// its Ticker column. Files without a header row are treated as a bare
// single-column list.
func readWatchFile(path string) ([]models.Ticker, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	col := 0
	start := 0
	for i, name := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(name), "ticker") ||
			strings.EqualFold(strings.TrimSpace(name), "symbol") {
			col = i
			start = 1
			break
		}
	}

	var symbols []models.Ticker
	for _, row := range rows[start:] {
		if col >= len(row) {
			continue
		}
		sym, err := models.ParseTicker(strings.TrimSpace(row[col]))
		if err != nil {
			continue
		}
		symbols = append(symbols, sym)
	}
	return symbols, nil
}

// alertTypeForFile derives the alert type tag from a watch file name.
// filtered_tickers.csv is the momentum scanner's output; the
// per-strategy files filtered_tickers_<strategy>.csv are tagged
// <strategy>_technical, as is any other file by its base name.
func alertTypeForFile(path string) string {
	name := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	if name == "filtered_tickers" {
		return "momentum"
	}
	name = strings.TrimPrefix(name, "filtered_tickers_")
	return name + "_technical"
}
