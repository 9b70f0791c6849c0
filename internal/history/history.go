// Package history records resolved plays in a local SQLite database so the
// last position can be resumed and recent plays listed.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	_ "modernc.org/sqlite"

	"zee5/internal/media"
)

const schema = `
CREATE TABLE IF NOT EXISTS plays (
	content_id TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	position   REAL NOT NULL DEFAULT 0,
	played_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS plays_played_at ON plays (played_at DESC);
`

// Store is the play history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)&_pragma=synchronous(NORMAL)",
		path, (5 * time.Second).Milliseconds())
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	// One writer per process.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating history: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts or replaces the entry for e.ContentID. A zero PlayedAt is
// set to now.
func (s *Store) Record(ctx context.Context, e media.HistoryEntry) error {
	if e.PlayedAt.IsZero() {
		e.PlayedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO plays (content_id, title, position, played_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (content_id) DO UPDATE SET
			title = excluded.title,
			position = excluded.position,
			played_at = excluded.played_at`,
		e.ContentID, e.Title, e.Position, e.PlayedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("recording %s: %w", e.ContentID, err)
	}
	return nil
}

// Get returns the entry for id. ok is false when it was never played.
func (s *Store) Get(ctx context.Context, id string) (e media.HistoryEntry, ok bool, err error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT content_id, title, position, played_at FROM plays WHERE content_id = ?`, id)
	e, err = scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return media.HistoryEntry{}, false, nil
	}
	if err != nil {
		return media.HistoryEntry{}, false, fmt.Errorf("reading %s: %w", id, err)
	}
	return e, true, nil
}

// Recent returns up to limit entries, most recently played first.
func (s *Store) Recent(ctx context.Context, limit int) ([]media.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT content_id, title, position, played_at FROM plays ORDER BY played_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	var entries []media.HistoryEntry
	for rows.Next() {
		e, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("reading history row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear removes every entry.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM plays`); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(sc scanner) (media.HistoryEntry, error) {
	var (
		e        media.HistoryEntry
		playedAt int64
	)
	if err := sc.Scan(&e.ContentID, &e.Title, &e.Position, &playedAt); err != nil {
		return media.HistoryEntry{}, err
	}
	e.PlayedAt = time.Unix(0, playedAt)
	return e, nil
}

// FormatForDisplay renders one line per entry relative to now, e.g.
// "Kabir Singh [1:02:03] 2 hours ago".
func FormatForDisplay(entries []media.HistoryEntry, now time.Time) []string {
	items := make([]string, 0, len(entries))
	for _, e := range entries {
		display := e.Title
		if e.Position > 0 {
			display += fmt.Sprintf(" [%s]", formatPosition(e.Position))
		}
		display += " " + humanize.RelTime(e.PlayedAt, now, "ago", "from now")
		items = append(items, display)
	}
	return items
}

// formatPosition formats seconds as H:MM:SS or M:SS.
func formatPosition(seconds float64) string {
	s := int(seconds)
	h, m, sec := s/3600, (s%3600)/60, s%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}
