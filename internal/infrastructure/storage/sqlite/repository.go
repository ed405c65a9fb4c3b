// Package sqlite provides a SQLite implementation of the Storage interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/ersonp/kin-core/internal/domain/entities"
)

// Repository implements ports.Storage using SQLite. Save replaces the whole
// snapshot in one transaction, matching the store's replace-the-snapshot
// mutation model; an ordering column preserves insertion order across loads.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(path string) (*Repository, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		path: path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- People (graph nodes)
	CREATE TABLE IF NOT EXISTS people (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		gender TEXT NOT NULL,
		blood_type TEXT NOT NULL,
		birth_date TEXT NOT NULL DEFAULT '',
		photo_ref TEXT NOT NULL DEFAULT '',
		note TEXT NOT NULL DEFAULT '',
		ord INTEGER NOT NULL
	);

	-- Parent->child edges
	CREATE TABLE IF NOT EXISTS edges (
		parent_id TEXT NOT NULL,
		child_id TEXT NOT NULL,
		ord INTEGER NOT NULL,
		PRIMARY KEY (parent_id, child_id)
	);
	CREATE INDEX IF NOT EXISTS idx_edges_child ON edges(child_id);

	-- Spouse links, stored with a_id < b_id
	CREATE TABLE IF NOT EXISTS spouses (
		a_id TEXT NOT NULL,
		b_id TEXT NOT NULL,
		ord INTEGER NOT NULL,
		PRIMARY KEY (a_id, b_id)
	);
	`

	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	return nil
}

// Load reads the last-saved snapshot; an empty database yields an empty
// snapshot.
func (r *Repository) Load(ctx context.Context) (*entities.Snapshot, error) {
	snap := entities.EmptySnapshot()

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, gender, blood_type, birth_date, photo_ref, note
		 FROM people ORDER BY ord`)
	if err != nil {
		return nil, fmt.Errorf("querying people: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p entities.Person
		var gender, blood string
		if err := rows.Scan(&p.ID, &p.Name, &gender, &blood, &p.BirthDate, &p.PhotoRef, &p.Note); err != nil {
			return nil, fmt.Errorf("scanning person: %w", err)
		}
		p.Gender = entities.Gender(gender)
		p.BloodType = entities.BloodType(blood)
		snap.People = append(snap.People, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating people: %w", err)
	}

	edgeRows, err := r.db.QueryContext(ctx,
		`SELECT parent_id, child_id FROM edges ORDER BY ord`)
	if err != nil {
		return nil, fmt.Errorf("querying edges: %w", err)
	}
	defer edgeRows.Close()

	for edgeRows.Next() {
		var e entities.ParentEdge
		if err := edgeRows.Scan(&e.ParentID, &e.ChildID); err != nil {
			return nil, fmt.Errorf("scanning edge: %w", err)
		}
		snap.Edges = append(snap.Edges, e)
	}
	if err := edgeRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating edges: %w", err)
	}

	spouseRows, err := r.db.QueryContext(ctx,
		`SELECT a_id, b_id FROM spouses ORDER BY ord`)
	if err != nil {
		return nil, fmt.Errorf("querying spouses: %w", err)
	}
	defer spouseRows.Close()

	for spouseRows.Next() {
		var l entities.SpouseLink
		if err := spouseRows.Scan(&l.AID, &l.BID); err != nil {
			return nil, fmt.Errorf("scanning spouse link: %w", err)
		}
		snap.Spouses = append(snap.Spouses, l)
	}
	if err := spouseRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating spouses: %w", err)
	}

	return snap, nil
}

// Save replaces the persisted state with the given snapshot in a single
// transaction.
func (r *Repository) Save(ctx context.Context, snap *entities.Snapshot) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"people", "edges", "spouses"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for i, p := range snap.People {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO people (id, name, gender, blood_type, birth_date, photo_ref, note, ord)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Name, string(p.Gender), string(p.BloodType), p.BirthDate, p.PhotoRef, p.Note, i)
		if err != nil {
			return fmt.Errorf("inserting person %s: %w", p.ID, err)
		}
	}

	for i, e := range snap.Edges {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO edges (parent_id, child_id, ord) VALUES (?, ?, ?)`,
			e.ParentID, e.ChildID, i)
		if err != nil {
			return fmt.Errorf("inserting edge %s: %w", e.Key(), err)
		}
	}

	for i, l := range snap.Spouses {
		aID, bID := l.AID, l.BID
		if bID < aID {
			aID, bID = bID, aID
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO spouses (a_id, b_id, ord) VALUES (?, ?, ?)`,
			aID, bID, i)
		if err != nil {
			return fmt.Errorf("inserting spouse link %s: %w", l.Key(), err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}
