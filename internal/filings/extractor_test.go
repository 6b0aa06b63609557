package filings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/SwarmHayes/swarm-trading-bot/internal/models"
)

func testExtractor(t *testing.T, dir string, now time.Time) *Extractor {
	t.Helper()
	e := NewExtractor(dir, zerolog.Nop())
	e.now = func() time.Time { return now }
	return e
}

func TestScoreDocumentKeywords(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	e := testExtractor(t, t.TempDir(), now)

	tests := []struct {
		name string
		doc  models.FilingDocument
		want int
	}{
		{
			name: "single keyword",
			doc: models.FilingDocument{
				Type:       models.Filing10K,
				Text:       "The company announced a merger with a competitor.",
				ModifiedAt: now.AddDate(0, 0, -10),
			},
			want: 10,
		},
		{
			name: "case-insensitive substring match",
			doc: models.FilingDocument{
				Type:       models.Filing10Q,
				Text:       "PRE-MERGERS DISCUSSION",
				ModifiedAt: now.AddDate(0, 0, -10),
			},
			want: 10,
		},
		{
			name: "keyword sum capped at 30",
			doc: models.FilingDocument{
				Type:       models.Filing10K,
				Text:       "merger acquisition bankruptcy buyout delisting restructuring",
				ModifiedAt: now.AddDate(0, 0, -10),
			},
			want: 30,
		},
		{
			name: "8-K bonus",
			doc: models.FilingDocument{
				Type:       models.Filing8K,
				Text:       "dividend declared",
				ModifiedAt: now.AddDate(0, 0, -10),
			},
			want: 9,
		},
		{
			name: "recency bonus",
			doc: models.FilingDocument{
				Type:       models.Filing10K,
				Text:       "guidance update",
				ModifiedAt: now.Add(-2 * time.Hour),
			},
			want: 10,
		},
		{
			name: "no keywords",
			doc: models.FilingDocument{
				Type:       models.Filing10Q,
				Text:       "routine quarterly report with nothing notable",
				ModifiedAt: now.AddDate(0, 0, -10),
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.ScoreDocument(&tt.doc)
			if got.Value != tt.want {
				t.Errorf("got %d (%s), want %d", got.Value, got.Details, tt.want)
			}
			if got.Value < 0 || got.Value > models.MaxSECScore {
				t.Errorf("value %d outside [0, %d]", got.Value, models.MaxSECScore)
			}
		})
	}
}

func TestScoreDocumentStackedBonuses(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	e := testExtractor(t, t.TempDir(), now)

	// "fda approval" also matches "fda"; with "phase iii" the keyword
	// sum is 25, under the cap, plus both bonuses.
	doc := &models.FilingDocument{
		Type:       models.Filing8K,
		Text:       "FDA approval received for the Phase III candidate",
		ModifiedAt: now.Add(-2 * time.Hour),
	}
	got := e.ScoreDocument(doc)
	if got.Value != 35 {
		t.Errorf("got %d (%s), want 35", got.Value, got.Details)
	}
}

func TestScoreDocumentIdempotent(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	e := testExtractor(t, t.TempDir(), now)

	doc := &models.FilingDocument{
		Type:       models.Filing8K,
		Text:       "acquisition and partnership announcement",
		ModifiedAt: now.Add(-3 * time.Hour),
	}
	a := e.ScoreDocument(doc)
	b := e.ScoreDocument(doc)
	if a != b {
		t.Errorf("unchanged document scored differently: %+v vs %+v", a, b)
	}
}

func TestScoreNoFilings(t *testing.T) {
	e := testExtractor(t, t.TempDir(), time.Now())
	got := e.Score("GHOST")
	if got.Value != 0 || got.Details != "No filings analyzed" {
		t.Errorf("got %+v", got)
	}
}

func TestLatestPicksMostRecentAcrossTypes(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	write := func(ft models.FilingType, name, text string, mod time.Time) {
		t.Helper()
		typeDir := filepath.Join(dir, "ACME", string(ft))
		if err := os.MkdirAll(typeDir, 0o755); err != nil {
			t.Fatal(err)
		}
		path := filepath.Join(typeDir, name)
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := os.Chtimes(path, mod, mod); err != nil {
			t.Fatal(err)
		}
	}

	write(models.Filing10K, "annual.txt", "guidance", now.AddDate(0, 0, -30))
	write(models.Filing8K, "event.txt", "merger announced", now.Add(-1*time.Hour))

	e := testExtractor(t, dir, now)
	doc, err := e.Latest("ACME")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if doc.Type != models.Filing8K {
		t.Errorf("type = %s, want 8-K", doc.Type)
	}
	if doc.Text != "merger announced" {
		t.Errorf("text = %q", doc.Text)
	}

	// Score through the full path: merger 10 + 8-K bonus + recency.
	got := e.Score("ACME")
	if got.Value != 20 {
		t.Errorf("got %d (%s), want 20", got.Value, got.Details)
	}
}
