package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"SignalScanner/internal/model"
)

// SQLiteStore keeps bars in a SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// NewSQLiteStore opens (or creates) the database and runs migrations.
func NewSQLiteStore(dbPath string, log zerolog.Logger) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db, log: log}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite bar store opened")
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS daily_bars (
			symbol    TEXT    NOT NULL,
			timestamp INTEGER NOT NULL,
			open      REAL    NOT NULL,
			high      REAL    NOT NULL,
			low       REAL    NOT NULL,
			close     REAL    NOT NULL,
			volume    REAL    NOT NULL,
			PRIMARY KEY (symbol, timestamp)
		)`,
		`CREATE TABLE IF NOT EXISTS fetches (
			symbol     TEXT PRIMARY KEY,
			fetched_at INTEGER NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (s *SQLiteStore) LoadBars(symbol string, limit int) ([]model.OHLCV, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var fetchedUnix int64
	err := s.db.QueryRow(`SELECT fetched_at FROM fetches WHERE symbol = ?`, symbol).Scan(&fetchedUnix)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("load fetch time: %w", err)
	}

	rows, err := s.db.Query(`SELECT timestamp, open, high, low, close, volume FROM (
			SELECT * FROM daily_bars WHERE symbol = ? ORDER BY timestamp DESC LIMIT ?
		) ORDER BY timestamp ASC`, symbol, limit)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("query bars: %w", err)
	}
	defer rows.Close()

	var bars []model.OHLCV
	for rows.Next() {
		var ts int64
		var b model.OHLCV
		if err := rows.Scan(&ts, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, time.Time{}, fmt.Errorf("scan bar: %w", err)
		}
		b.Time = time.Unix(ts, 0).UTC()
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("iterate bars: %w", err)
	}
	return bars, time.Unix(fetchedUnix, 0), nil
}

// SaveBars upserts bars by (symbol, timestamp) and records fetchedAt.
func (s *SQLiteStore) SaveBars(symbol string, bars []model.OHLCV, fetchedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO daily_bars (symbol, timestamp, open, high, low, close, volume)
		VALUES (?,?,?,?,?,?,?)
		ON CONFLICT(symbol, timestamp) DO UPDATE SET
			open = excluded.open, high = excluded.high, low = excluded.low,
			close = excluded.close, volume = excluded.volume`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.Exec(symbol, b.Time.Unix(), b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			return fmt.Errorf("insert bar %s: %w", b.Time.Format("2006-01-02"), err)
		}
	}
	if _, err := tx.Exec(`INSERT INTO fetches (symbol, fetched_at) VALUES (?, ?)
		ON CONFLICT(symbol) DO UPDATE SET fetched_at = excluded.fetched_at`,
		symbol, fetchedAt.Unix()); err != nil {
		return fmt.Errorf("record fetch: %w", err)
	}
	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	s.log.Info().Msg("closing sqlite bar store")
	return s.db.Close()
}
