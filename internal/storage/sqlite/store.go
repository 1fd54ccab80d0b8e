// Package sqlite is the durable storage adapter, a SQLite file holding one
// row per aggregate as JSON documents. The engine only sees the storage
// interfaces; the row shapes here can change freely.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"axiom/internal/chronicle"
	"axiom/internal/nexus"
	"axiom/internal/progress"
	"axiom/internal/quest"
	"axiom/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS player (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	data TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS quests (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	data TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS world (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	data TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS chronicle (
	date TEXT PRIMARY KEY,
	data TEXT NOT NULL
);
`

// Store persists the player, quests, world, and chronicle in SQLite.
type Store struct {
	db *sql.DB
}

var _ storage.Store = (*Store)(nil)

// Open opens (or creates) the database file and applies the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) loadDoc(ctx context.Context, query string, args []any, dst any) error {
	var raw string
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load row: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("decode row: %w", err)
	}
	return nil
}

func (s *Store) LoadPlayer(ctx context.Context) (progress.Player, error) {
	var p progress.Player
	if err := s.loadDoc(ctx, `SELECT data FROM player WHERE id = 1`, nil, &p); err != nil {
		return progress.Player{}, err
	}
	return p, nil
}

func (s *Store) SavePlayer(ctx context.Context, p progress.Player) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode player: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO player (id, data) VALUES (1, ?) ON CONFLICT (id) DO UPDATE SET data = excluded.data`,
		string(raw))
	if err != nil {
		return fmt.Errorf("save player: %w", err)
	}
	return nil
}

func (s *Store) ListQuests(ctx context.Context) ([]quest.Quest, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT data FROM quests ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list quests: %w", err)
	}
	defer rows.Close()

	var out []quest.Quest
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan quest: %w", err)
		}
		var q quest.Quest
		if err := json.Unmarshal([]byte(raw), &q); err != nil {
			return nil, fmt.Errorf("decode quest: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *Store) GetQuest(ctx context.Context, id string) (quest.Quest, error) {
	var q quest.Quest
	if err := s.loadDoc(ctx, `SELECT data FROM quests WHERE id = ?`, []any{id}, &q); err != nil {
		return quest.Quest{}, err
	}
	return q, nil
}

func (s *Store) SaveQuest(ctx context.Context, q quest.Quest) error {
	raw, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("encode quest: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO quests (id, created_at, data) VALUES (?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET created_at = excluded.created_at, data = excluded.data`,
		q.ID, q.CreatedAt, string(raw))
	if err != nil {
		return fmt.Errorf("save quest: %w", err)
	}
	return nil
}

func (s *Store) DeleteQuest(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM quests WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete quest: %w", err)
	}
	return nil
}

func (s *Store) LoadWorld(ctx context.Context) (nexus.WorldState, error) {
	var w nexus.WorldState
	if err := s.loadDoc(ctx, `SELECT data FROM world WHERE id = 1`, nil, &w); err != nil {
		return nexus.WorldState{}, err
	}
	return w, nil
}

func (s *Store) SaveWorld(ctx context.Context, w nexus.WorldState) error {
	raw, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("encode world: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO world (id, data) VALUES (1, ?) ON CONFLICT (id) DO UPDATE SET data = excluded.data`,
		string(raw))
	if err != nil {
		return fmt.Errorf("save world: %w", err)
	}
	return nil
}

func (s *Store) UpsertDay(ctx context.Context, rec chronicle.DayRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode day record: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO chronicle (date, data) VALUES (?, ?) ON CONFLICT (date) DO UPDATE SET data = excluded.data`,
		rec.Date, string(raw))
	if err != nil {
		return fmt.Errorf("save day record: %w", err)
	}
	return nil
}

func (s *Store) GetDay(ctx context.Context, date string) (chronicle.DayRecord, error) {
	var rec chronicle.DayRecord
	if err := s.loadDoc(ctx, `SELECT data FROM chronicle WHERE date = ?`, []any{date}, &rec); err != nil {
		return chronicle.DayRecord{}, err
	}
	return rec, nil
}

func (s *Store) ListDays(ctx context.Context, limit int) ([]chronicle.DayRecord, error) {
	query := `SELECT data FROM chronicle ORDER BY date DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list day records: %w", err)
	}
	defer rows.Close()

	var out []chronicle.DayRecord
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan day record: %w", err)
		}
		var rec chronicle.DayRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("decode day record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
