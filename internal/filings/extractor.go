// Package filings scans locally stored regulatory filings and derives a
// bounded signal score from a fixed keyword lexicon.
package filings

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	swarmerrors "github.com/SwarmHayes/swarm-trading-bot/internal/errors"
	"github.com/SwarmHayes/swarm-trading-bot/internal/logging"
	"github.com/SwarmHayes/swarm-trading-bot/internal/models"
)

// Extractor derives the SEC filing sub-score from a local filing store.
// The store is a directory hierarchy: <dir>/<TICKER>/<FILING-TYPE>/<files>.
type Extractor struct {
	dir    string
	logger zerolog.Logger
	now    func() time.Time
}

// NewExtractor creates a filing extractor over the given storage directory.
func NewExtractor(dir string, logger zerolog.Logger) *Extractor {
	return &Extractor{
		dir:    dir,
		logger: logging.WithComponent(logger, "filings"),
		now:    time.Now,
	}
}

// Score computes the SEC filing sub-score for a ticker. A missing or
// unreadable filing degrades to zero with an explanatory detail; it never
// aborts the caller's aggregation.
func (e *Extractor) Score(symbol models.Ticker) models.SubScore {
	doc, err := e.Latest(symbol)
	if err != nil {
		if !swarmerrors.Is(err, swarmerrors.ErrNoFilings) {
			e.logger.Warn().Str("ticker", symbol.String()).Err(err).Msg("Filing lookup failed")
		}
		return models.SubScore{Value: 0, Max: models.MaxSECScore, Details: "No filings analyzed"}
	}
	return e.ScoreDocument(doc)
}

// ScoreDocument scores a single filing document. Deterministic for an
// unchanged document and clock.
func (e *Extractor) ScoreDocument(doc *models.FilingDocument) models.SubScore {
	text := strings.ToLower(doc.Text)

	keywordPoints := 0
	var matched []string
	for _, kw := range sortedKeywords() {
		if strings.Contains(text, kw) {
			keywordPoints += lexicon[kw]
			matched = append(matched, kw)
		}
	}
	if keywordPoints > keywordCap {
		keywordPoints = keywordCap
	}

	total := keywordPoints
	var bonuses []string
	if doc.Type == models.Filing8K {
		total += materialEventBonus
		bonuses = append(bonuses, "8-K material event")
	}
	if e.now().Sub(doc.ModifiedAt) <= 24*time.Hour {
		total += recencyBonus
		bonuses = append(bonuses, "filed within 24h")
	}

	details := fmt.Sprintf("%s filing", doc.Type)
	if len(matched) > 0 {
		details += ": " + strings.Join(matched, ", ")
	}
	if len(bonuses) > 0 {
		details += " | " + strings.Join(bonuses, " | ")
	}

	score := models.SubScore{Value: total, Max: models.MaxSECScore, Details: details}
	return score.Clamped()
}

// Latest returns the most recently modified filing document for a ticker
// among the supported filing types.
func (e *Extractor) Latest(symbol models.Ticker) (*models.FilingDocument, error) {
	var bestPath string
	var bestType models.FilingType
	var bestMod time.Time

	for _, ft := range models.FilingTypes {
		typeDir := filepath.Join(e.dir, symbol.String(), string(ft))
		entries, err := os.ReadDir(typeDir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			if info.ModTime().After(bestMod) {
				bestMod = info.ModTime()
				bestType = ft
				bestPath = filepath.Join(typeDir, entry.Name())
			}
		}
	}

	if bestPath == "" {
		return nil, swarmerrors.ErrNoFilings
	}

	text, err := os.ReadFile(bestPath)
	if err != nil {
		return nil, swarmerrors.Wrapf(err, "reading filing %s", bestPath)
	}

	return &models.FilingDocument{
		Symbol:     symbol,
		Type:       bestType,
		Text:       string(text),
		ModifiedAt: bestMod,
	}, nil
}

// sortedKeywords returns lexicon keys in a stable order so details strings
// are reproducible across runs.
func sortedKeywords() []string {
	keys := make([]string, 0, len(lexicon))
	for k := range lexicon {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if lexicon[keys[i]] != lexicon[keys[j]] {
			return lexicon[keys[i]] > lexicon[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}
