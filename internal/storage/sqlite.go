// Package storage provides the SQLite replay archive.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// The engine itself never persists anything; the platform archives finished
// sessions here so they can be listed, verified and exported later.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/replay"
)

// ErrNotFound is returned when no replay matches an ID.
var ErrNotFound = errors.New("storage: replay not found")

// ErrAmbiguous is returned when an ID prefix matches several replays.
var ErrAmbiguous = errors.New("storage: ambiguous replay id")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// VariantStats aggregates the archive for one variant.
type VariantStats struct {
	Variant  string
	Sessions int
	Frames   int64
	Pieces   int
	Rows     int
	MostRows int
}

// Fixed width so that text order is time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if strings.HasPrefix(dbPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One writer at a time; SSH sessions archive concurrently.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS replays (
			id TEXT PRIMARY KEY,
			variant TEXT NOT NULL,
			seed INTEGER NOT NULL,
			config TEXT NOT NULL,
			trace TEXT NOT NULL,
			frames INTEGER NOT NULL,
			pieces INTEGER NOT NULL DEFAULT 0,
			rows_cleared INTEGER NOT NULL DEFAULT 0,
			digest TEXT NOT NULL,
			end_reason TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_replays_variant ON replays(variant);
		CREATE INDEX IF NOT EXISTS idx_replays_created ON replays(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveReplay archives a record. A record without an ID gets a new one; the
// ID that was stored is returned.
func (s *Store) SaveReplay(rec replay.Record) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	cfg, err := yaml.Marshal(rec.Config)
	if err != nil {
		return "", fmt.Errorf("storage: cannot encode config: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO replays
		 (id, variant, seed, config, trace, frames, pieces, rows_cleared, digest, end_reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Variant,
		int64(rec.Seed),
		string(cfg),
		rec.Trace,
		rec.Frames,
		rec.Pieces,
		rec.Rows,
		rec.Digest,
		rec.EndReason,
		rec.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save replay: %w", err)
	}
	return rec.ID, nil
}

const replayColumns = `id, variant, seed, config, trace, frames, pieces, rows_cleared, digest, end_reason, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanReplay(row scanner) (replay.Record, error) {
	var (
		rec       replay.Record
		seed      int64
		cfg       string
		createdAt any
	)
	err := row.Scan(
		&rec.ID,
		&rec.Variant,
		&seed,
		&cfg,
		&rec.Trace,
		&rec.Frames,
		&rec.Pieces,
		&rec.Rows,
		&rec.Digest,
		&rec.EndReason,
		&createdAt,
	)
	if err != nil {
		return replay.Record{}, err
	}
	rec.Seed = uint32(seed)

	rec.Config = config.DefaultBlocksConfig()
	if err := yaml.Unmarshal([]byte(cfg), &rec.Config); err != nil {
		return replay.Record{}, fmt.Errorf("storage: replay %s has a corrupt config: %w", rec.ID, err)
	}
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
}

// parseTime handles both driver-decoded times and the stored text form.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t.UTC()
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Replay loads a record by full ID or by a unique ID prefix.
func (s *Store) Replay(id string) (replay.Record, error) {
	if id == "" {
		return replay.Record{}, ErrNotFound
	}

	rec, err := scanReplay(s.db.QueryRow(
		`SELECT `+replayColumns+` FROM replays WHERE id = ?`, id,
	))
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return replay.Record{}, fmt.Errorf("storage: cannot query replay: %w", err)
	}

	matches, err := s.queryReplays(
		`SELECT `+replayColumns+` FROM replays WHERE substr(id, 1, ?) = ? LIMIT 2`,
		len(id), id,
	)
	if err != nil {
		return replay.Record{}, err
	}
	switch len(matches) {
	case 0:
		return replay.Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	case 1:
		return matches[0], nil
	default:
		return replay.Record{}, fmt.Errorf("%w: %s", ErrAmbiguous, id)
	}
}

// RecentReplays returns the newest records first.
func (s *Store) RecentReplays(limit int) ([]replay.Record, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryReplays(
		`SELECT `+replayColumns+` FROM replays ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
}

// ReplaysByVariant returns the newest records of one variant.
func (s *Store) ReplaysByVariant(variant string, limit int) ([]replay.Record, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryReplays(
		`SELECT `+replayColumns+` FROM replays WHERE variant = ? ORDER BY created_at DESC LIMIT ?`,
		variant, limit,
	)
}

func (s *Store) queryReplays(query string, args ...any) ([]replay.Record, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var records []replay.Record
	for rows.Next() {
		rec, err := scanReplay(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// DeleteReplay removes a record by full ID.
func (s *Store) DeleteReplay(id string) error {
	res, err := s.db.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// VariantStats aggregates the archive per variant, sorted by variant.
func (s *Store) VariantStats() ([]VariantStats, error) {
	rows, err := s.db.Query(
		`SELECT variant, COUNT(*), SUM(frames), SUM(pieces), SUM(rows_cleared), MAX(rows_cleared)
		 FROM replays
		 GROUP BY variant
		 ORDER BY variant`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	defer rows.Close()

	var stats []VariantStats
	for rows.Next() {
		var st VariantStats
		if err := rows.Scan(&st.Variant, &st.Sessions, &st.Frames, &st.Pieces, &st.Rows, &st.MostRows); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// Count returns the number of archived replays.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM replays").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count replays: %w", err)
	}
	return n, nil
}
