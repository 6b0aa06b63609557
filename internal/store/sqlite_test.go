package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/SwarmHayes/swarm-trading-bot/internal/models"
)

func testStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "swarm_test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func record(symbol models.Ticker, total int, createdAt time.Time) *models.AlertRecord {
	return &models.AlertRecord{
		ID:             uuid.NewString(),
		Symbol:         symbol,
		Total:          total,
		SECScore:       total * 40 / 100,
		TechnicalScore: total * 35 / 100,
		FinancialScore: total * 15 / 100,
		NewsScore:      total * 10 / 100,
		AlertType:      "momentum",
		Channel:        models.TierActive,
		CreatedAt:      createdAt,
	}
}

func TestSaveAlertRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	want := record("NVDA", 82, time.Now().UTC().Add(-time.Hour))
	if err := s.SaveAlert(ctx, want); err != nil {
		t.Fatalf("SaveAlert: %v", err)
	}

	got, err := s.GetRecentAlerts(ctx, "NVDA", 4)
	if err != nil {
		t.Fatalf("GetRecentAlerts: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d", len(got))
	}
	r := got[0]
	if r.ID != want.ID || r.Symbol != want.Symbol || r.Total != want.Total {
		t.Errorf("got %+v, want %+v", r, want)
	}
	if r.SECScore != want.SECScore || r.TechnicalScore != want.TechnicalScore ||
		r.FinancialScore != want.FinancialScore || r.NewsScore != want.NewsScore {
		t.Errorf("sub-scores differ: got %+v", r)
	}
	if r.AlertType != "momentum" || r.Channel != models.TierActive {
		t.Errorf("type/channel = %s/%s", r.AlertType, r.Channel)
	}
}

func TestGetRecentAlertsWindow(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	inside := record("NVDA", 82, time.Now().UTC().Add(-2*time.Hour))
	outside := record("NVDA", 85, time.Now().UTC().Add(-5*time.Hour))
	other := record("PLTR", 70, time.Now().UTC().Add(-1*time.Hour))
	for _, r := range []*models.AlertRecord{inside, outside, other} {
		if err := s.SaveAlert(ctx, r); err != nil {
			t.Fatalf("SaveAlert: %v", err)
		}
	}

	got, err := s.GetRecentAlerts(ctx, "NVDA", 4)
	if err != nil {
		t.Fatalf("GetRecentAlerts: %v", err)
	}
	if len(got) != 1 || got[0].ID != inside.ID {
		t.Errorf("got %+v, want only the in-window NVDA alert", got)
	}
}

func TestGetTodaysAlertsFiltersByScore(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	if err := s.SaveAlert(ctx, record("NVDA", 92, now)); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveAlert(ctx, record("PLTR", 64, now)); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetTodaysAlerts(ctx, 75)
	if err != nil {
		t.Fatalf("GetTodaysAlerts: %v", err)
	}
	if len(got) != 1 || got[0].Symbol != "NVDA" {
		t.Errorf("got %+v", got)
	}
}

func TestTickerStatsAccumulate(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	if err := s.SaveAlert(ctx, record("NVDA", 80, now.Add(-2*time.Hour))); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveAlert(ctx, record("NVDA", 90, now)); err != nil {
		t.Fatal(err)
	}

	stats, err := s.GetTickerStats(ctx, "NVDA")
	if err != nil {
		t.Fatalf("GetTickerStats: %v", err)
	}
	if stats == nil {
		t.Fatal("expected stats")
	}
	if stats.AlertCount != 2 {
		t.Errorf("alert count = %d", stats.AlertCount)
	}
	if stats.LastScore != 90 {
		t.Errorf("last score = %d", stats.LastScore)
	}
	if stats.AvgScore != 85 {
		t.Errorf("avg score = %v", stats.AvgScore)
	}
}

func TestGetTickerStatsUnknownTicker(t *testing.T) {
	s := testStore(t)
	stats, err := s.GetTickerStats(context.Background(), "GHOST")
	if err != nil {
		t.Fatalf("GetTickerStats: %v", err)
	}
	if stats != nil {
		t.Errorf("expected nil stats, got %+v", stats)
	}
}

func TestAddToWatchlistIdempotent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.AddToWatchlist(ctx, "user1", "NVDA", "first"); err != nil {
		t.Fatalf("AddToWatchlist: %v", err)
	}
	if err := s.AddToWatchlist(ctx, "user1", "NVDA", "second"); err != nil {
		t.Fatalf("repeat AddToWatchlist: %v", err)
	}

	entries, err := s.GetWatchlist(ctx, "user1")
	if err != nil {
		t.Fatalf("GetWatchlist: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len = %d", len(entries))
	}
	if entries[0].Notes != "first" {
		t.Errorf("repeat add replaced the original entry: %+v", entries[0])
	}

	// The repeat add must not double-count community interest.
	trending, err := s.GetCommunityTrending(ctx, 10)
	if err != nil {
		t.Fatalf("GetCommunityTrending: %v", err)
	}
	if len(trending) != 1 || trending[0].WatchCount != 1 {
		t.Errorf("trending = %+v", trending)
	}
}

func TestCommunityTrendingCountsDistinctUsers(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for _, user := range []string{"a", "b", "c"} {
		if err := s.AddToWatchlist(ctx, user, "NVDA", ""); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.AddToWatchlist(ctx, "a", "PLTR", ""); err != nil {
		t.Fatal(err)
	}

	trending, err := s.GetCommunityTrending(ctx, 10)
	if err != nil {
		t.Fatalf("GetCommunityTrending: %v", err)
	}
	if len(trending) != 2 {
		t.Fatalf("len = %d", len(trending))
	}
	if trending[0].Symbol != "NVDA" || trending[0].WatchCount != 3 {
		t.Errorf("top entry = %+v", trending[0])
	}
}

func TestRemoveFromWatchlist(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.AddToWatchlist(ctx, "user1", "NVDA", ""); err != nil {
		t.Fatal(err)
	}
	if err := s.RemoveFromWatchlist(ctx, "user1", "NVDA"); err != nil {
		t.Fatalf("RemoveFromWatchlist: %v", err)
	}

	entries, err := s.GetWatchlist(ctx, "user1")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("entries = %+v", entries)
	}

	// Removing a ticker that is not on the list is not an error.
	if err := s.RemoveFromWatchlist(ctx, "user1", "NVDA"); err != nil {
		t.Errorf("repeat remove: %v", err)
	}
}

func TestGetWatchedTickersDistinct(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.AddToWatchlist(ctx, "a", "NVDA", ""); err != nil {
		t.Fatal(err)
	}
	if err := s.AddToWatchlist(ctx, "b", "NVDA", ""); err != nil {
		t.Fatal(err)
	}
	if err := s.AddToWatchlist(ctx, "a", "AMD", ""); err != nil {
		t.Fatal(err)
	}

	tickers, err := s.GetWatchedTickers(ctx)
	if err != nil {
		t.Fatalf("GetWatchedTickers: %v", err)
	}
	if len(tickers) != 2 {
		t.Fatalf("tickers = %v", tickers)
	}
	if tickers[0] != "AMD" || tickers[1] != "NVDA" {
		t.Errorf("tickers = %v", tickers)
	}
}

func TestGetTickerHistoryWindow(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	recent := record("NVDA", 82, time.Now().UTC().AddDate(0, 0, -2))
	old := record("NVDA", 88, time.Now().UTC().AddDate(0, 0, -10))
	for _, r := range []*models.AlertRecord{recent, old} {
		if err := s.SaveAlert(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.GetTickerHistory(ctx, "NVDA", 7)
	if err != nil {
		t.Fatalf("GetTickerHistory: %v", err)
	}
	if len(got) != 1 || got[0].ID != recent.ID {
		t.Errorf("got %+v", got)
	}
}
