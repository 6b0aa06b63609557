package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/SwarmHayes/swarm-trading-bot/internal/models"
)

// SQLiteStore implements DataStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based data store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Alerts posted to channels
	CREATE TABLE IF NOT EXISTS alerts (
		id TEXT PRIMARY KEY,
		ticker TEXT NOT NULL,
		total INTEGER NOT NULL,
		sec_score INTEGER NOT NULL,
		technical_score INTEGER NOT NULL,
		financial_score INTEGER NOT NULL,
		news_score INTEGER NOT NULL,
		alert_type TEXT,
		channel TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	-- Per-ticker alert metadata
	CREATE TABLE IF NOT EXISTS tickers (
		ticker TEXT PRIMARY KEY,
		last_score INTEGER NOT NULL,
		avg_score REAL NOT NULL,
		alert_count INTEGER NOT NULL DEFAULT 0,
		last_alert DATETIME NOT NULL
	);

	-- User watchlists
	CREATE TABLE IF NOT EXISTS watchlists (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		ticker TEXT NOT NULL,
		notes TEXT,
		added_at DATETIME NOT NULL,
		UNIQUE(user_id, ticker)
	);

	-- Anonymous community watching activity
	CREATE TABLE IF NOT EXISTS community_watch (
		ticker TEXT PRIMARY KEY,
		watch_count INTEGER NOT NULL DEFAULT 1,
		last_watched DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_alerts_ticker ON alerts(ticker);
	CREATE INDEX IF NOT EXISTS idx_alerts_created_at ON alerts(created_at);
	CREATE INDEX IF NOT EXISTS idx_alerts_total ON alerts(total);
	CREATE INDEX IF NOT EXISTS idx_watchlists_user ON watchlists(user_id);
	CREATE INDEX IF NOT EXISTS idx_watchlists_ticker ON watchlists(ticker);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveAlert persists a posted alert and updates ticker stats.
func (s *SQLiteStore) SaveAlert(ctx context.Context, record *models.AlertRecord) error {
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO alerts (id, ticker, total, sec_score, technical_score, financial_score, news_score, alert_type, channel, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, record.ID, record.Symbol.String(), record.Total, record.SECScore, record.TechnicalScore,
		record.FinancialScore, record.NewsScore, record.AlertType, string(record.Channel), createdAt)
	if err != nil {
		return fmt.Errorf("failed to save alert: %w", err)
	}

	// Running average folds the new total into the previous mean.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO tickers (ticker, last_score, avg_score, alert_count, last_alert)
		VALUES (?, ?, ?, 1, ?)
		ON CONFLICT(ticker) DO UPDATE SET
			last_score = excluded.last_score,
			avg_score = (tickers.avg_score * tickers.alert_count + excluded.last_score) / (tickers.alert_count + 1),
			alert_count = tickers.alert_count + 1,
			last_alert = excluded.last_alert
	`, record.Symbol.String(), record.Total, float64(record.Total), createdAt)
	if err != nil {
		return fmt.Errorf("failed to update ticker stats: %w", err)
	}

	return tx.Commit()
}

// GetRecentAlerts returns alerts for a ticker within the trailing window.
func (s *SQLiteStore) GetRecentAlerts(ctx context.Context, symbol models.Ticker, hours int) ([]models.AlertRecord, error) {
	cutoff := time.Now().UTC().Add(-time.Duration(hours) * time.Hour)
	return s.queryAlerts(ctx, `
		SELECT id, ticker, total, sec_score, technical_score, financial_score, news_score, alert_type, channel, created_at
		FROM alerts
		WHERE ticker = ? AND created_at >= ?
		ORDER BY created_at DESC
	`, symbol.String(), cutoff)
}

// GetTodaysAlerts returns today's alerts at or above minScore.
func (s *SQLiteStore) GetTodaysAlerts(ctx context.Context, minScore int) ([]models.AlertRecord, error) {
	now := time.Now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return s.queryAlerts(ctx, `
		SELECT id, ticker, total, sec_score, technical_score, financial_score, news_score, alert_type, channel, created_at
		FROM alerts
		WHERE created_at >= ? AND total >= ?
		ORDER BY total DESC
	`, midnight, minScore)
}

// GetTickerHistory returns alerts for a ticker over the trailing days.
func (s *SQLiteStore) GetTickerHistory(ctx context.Context, symbol models.Ticker, days int) ([]models.AlertRecord, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	return s.queryAlerts(ctx, `
		SELECT id, ticker, total, sec_score, technical_score, financial_score, news_score, alert_type, channel, created_at
		FROM alerts
		WHERE ticker = ? AND created_at >= ?
		ORDER BY created_at DESC
	`, symbol.String(), cutoff)
}

func (s *SQLiteStore) queryAlerts(ctx context.Context, query string, args ...interface{}) ([]models.AlertRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	var records []models.AlertRecord
	for rows.Next() {
		var r models.AlertRecord
		var ticker, channel string
		if err := rows.Scan(&r.ID, &ticker, &r.Total, &r.SECScore, &r.TechnicalScore,
			&r.FinancialScore, &r.NewsScore, &r.AlertType, &channel, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		r.Symbol = models.Ticker(ticker)
		r.Channel = models.ChannelTier(channel)
		records = append(records, r)
	}

	return records, rows.Err()
}

// GetTickerStats returns per-ticker alert metadata.
func (s *SQLiteStore) GetTickerStats(ctx context.Context, symbol models.Ticker) (*models.TickerStats, error) {
	var stats models.TickerStats
	var ticker string
	err := s.db.QueryRowContext(ctx, `
		SELECT ticker, last_score, avg_score, alert_count, last_alert
		FROM tickers WHERE ticker = ?
	`, symbol.String()).Scan(&ticker, &stats.LastScore, &stats.AvgScore, &stats.AlertCount, &stats.LastAlert)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticker stats: %w", err)
	}
	stats.Symbol = models.Ticker(ticker)
	return &stats, nil
}

// AddToWatchlist adds a ticker to a user's watchlist. Adding an existing
// entry is a no-op and does not bump the community watch count.
func (s *SQLiteStore) AddToWatchlist(ctx context.Context, userID string, symbol models.Ticker, notes string) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO watchlists (user_id, ticker, notes, added_at)
		VALUES (?, ?, ?, ?)
	`, userID, symbol.String(), notes, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to add to watchlist: %w", err)
	}

	inserted, _ := result.RowsAffected()
	if inserted == 0 {
		return nil
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO community_watch (ticker, watch_count, last_watched)
		VALUES (?, 1, ?)
		ON CONFLICT(ticker) DO UPDATE SET
			watch_count = community_watch.watch_count + 1,
			last_watched = excluded.last_watched
	`, symbol.String(), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to update community watch: %w", err)
	}
	return nil
}

// RemoveFromWatchlist removes a ticker from a user's watchlist.
func (s *SQLiteStore) RemoveFromWatchlist(ctx context.Context, userID string, symbol models.Ticker) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM watchlists WHERE user_id = ? AND ticker = ?
	`, userID, symbol.String())
	if err != nil {
		return fmt.Errorf("failed to remove from watchlist: %w", err)
	}
	return nil
}

// GetWatchlist returns a user's watchlist entries, oldest first.
func (s *SQLiteStore) GetWatchlist(ctx context.Context, userID string) ([]models.WatchlistEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, ticker, COALESCE(notes, ''), added_at
		FROM watchlists WHERE user_id = ?
		ORDER BY added_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist: %w", err)
	}
	defer rows.Close()

	var entries []models.WatchlistEntry
	for rows.Next() {
		var e models.WatchlistEntry
		var ticker string
		if err := rows.Scan(&e.UserID, &ticker, &e.Notes, &e.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan watchlist entry: %w", err)
		}
		e.Symbol = models.Ticker(ticker)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// GetWatchedTickers returns the distinct tickers on any watchlist.
func (s *SQLiteStore) GetWatchedTickers(ctx context.Context) ([]models.Ticker, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT ticker FROM watchlists ORDER BY ticker`)
	if err != nil {
		return nil, fmt.Errorf("failed to query watched tickers: %w", err)
	}
	defer rows.Close()

	var tickers []models.Ticker
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan ticker: %w", err)
		}
		tickers = append(tickers, models.Ticker(t))
	}

	return tickers, rows.Err()
}

// GetCommunityTrending returns the most-watched tickers over the last
// seven days.
func (s *SQLiteStore) GetCommunityTrending(ctx context.Context, limit int) ([]models.CommunityWatch, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -7)
	rows, err := s.db.QueryContext(ctx, `
		SELECT ticker, watch_count, last_watched
		FROM community_watch
		WHERE last_watched >= ?
		ORDER BY watch_count DESC
		LIMIT ?
	`, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query community trending: %w", err)
	}
	defer rows.Close()

	var trending []models.CommunityWatch
	for rows.Next() {
		var w models.CommunityWatch
		var ticker string
		if err := rows.Scan(&ticker, &w.WatchCount, &w.LastWatched); err != nil {
			return nil, fmt.Errorf("failed to scan community watch: %w", err)
		}
		w.Symbol = models.Ticker(ticker)
		trending = append(trending, w)
	}

	return trending, rows.Err()
}
