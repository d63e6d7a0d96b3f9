// Package storage provides the SQLite implementation of the Store interface.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/expmath/vdcorput/internal/bounds"
	"github.com/expmath/vdcorput/internal/exponent"
	"github.com/expmath/vdcorput/internal/hypothesis"
	"github.com/expmath/vdcorput/pkg/utils"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a SQLite database at dbPath and
// initializes the schema. Parent directories are created if they do not
// exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS hypotheses (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		payload TEXT NOT NULL,
		proof TEXT,
		author TEXT,
		ref_kind TEXT NOT NULL,
		year INTEGER
	);

	CREATE INDEX IF NOT EXISTS idx_hypotheses_kind ON hypotheses(kind);
	CREATE INDEX IF NOT EXISTS idx_hypotheses_position ON hypotheses(position);

	CREATE TABLE IF NOT EXISTS hypothesis_deps (
		hypothesis_id TEXT NOT NULL,
		dependency_id TEXT NOT NULL,
		ord INTEGER NOT NULL,
		FOREIGN KEY (hypothesis_id) REFERENCES hypotheses(id) ON DELETE CASCADE,
		FOREIGN KEY (dependency_id) REFERENCES hypotheses(id)
	);

	CREATE INDEX IF NOT EXISTS idx_deps_hypothesis ON hypothesis_deps(hypothesis_id);
	`
	_, err := db.Exec(schema)
	return err
}

// pairPayload and boundPayload are the stored JSON shapes.
type pairPayload struct {
	K string `json:"k"`
	L string `json:"l"`
}

type boundPayload struct {
	X0 string `json:"x0"`
	X1 string `json:"x1"`
	M  string `json:"m"`
	C  string `json:"c"`
}

func marshalPayload(h *hypothesis.Hypothesis) (string, bool, error) {
	switch p := h.Payload.(type) {
	case *exponent.Pair:
		data, err := json.Marshal(pairPayload{K: p.K.RatString(), L: p.L.RatString()})
		return string(data), true, err
	case *bounds.Bound:
		data, err := json.Marshal(boundPayload{
			X0: p.X0.RatString(), X1: p.X1.RatString(),
			M: p.M.RatString(), C: p.C.RatString(),
		})
		return string(data), true, err
	default:
		// Transforms and unknown payloads are not persisted.
		return "", false, nil
	}
}

func unmarshalPayload(kind hypothesis.Kind, data string) (hypothesis.Payload, error) {
	switch kind {
	case hypothesis.KindExponentPair:
		var p pairPayload
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			return nil, err
		}
		k, err := utils.ParseRat(p.K)
		if err != nil {
			return nil, err
		}
		l, err := utils.ParseRat(p.L)
		if err != nil {
			return nil, err
		}
		return exponent.NewPair(k, l), nil
	case hypothesis.KindBetaBound:
		var p boundPayload
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			return nil, err
		}
		x0, err := utils.ParseRat(p.X0)
		if err != nil {
			return nil, err
		}
		x1, err := utils.ParseRat(p.X1)
		if err != nil {
			return nil, err
		}
		m, err := utils.ParseRat(p.M)
		if err != nil {
			return nil, err
		}
		c, err := utils.ParseRat(p.C)
		if err != nil {
			return nil, err
		}
		return bounds.New(x0, x1, m, c)
	default:
		return nil, fmt.Errorf("cannot restore payload of kind %q", kind)
	}
}

// SaveSet replaces the stored knowledge base with the persistable
// hypotheses in the set, preserving their order and dependency edges.
// Dependencies on non-persistable hypotheses (transforms) are dropped.
func (s *SQLiteStore) SaveSet(ctx context.Context, set *hypothesis.Set) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM hypothesis_deps`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM hypotheses`); err != nil {
		return err
	}

	insert, err := tx.PrepareContext(ctx,
		`INSERT INTO hypotheses (id, position, name, kind, payload, proof, author, ref_kind, year)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer insert.Close()

	insertDep, err := tx.PrepareContext(ctx,
		`INSERT INTO hypothesis_deps (hypothesis_id, dependency_id, ord) VALUES (?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer insertDep.Close()

	saved := make(map[string]struct{})
	pos := 0
	for _, h := range set.All() {
		payload, ok, err := marshalPayload(h)
		if err != nil {
			return fmt.Errorf("failed to marshal payload of %s: %w", h.Name, err)
		}
		if !ok {
			continue
		}
		var year sql.NullInt64
		if y := h.Ref.Year(); y.Known() {
			year = sql.NullInt64{Int64: int64(y.Value()), Valid: true}
		}
		if _, err := insert.ExecContext(ctx,
			h.ID, pos, h.Name, string(h.Kind), payload, h.Proof,
			h.Ref.Author(), string(h.Ref.Kind()), year,
		); err != nil {
			return err
		}
		saved[h.ID] = struct{}{}
		pos++
	}

	for _, h := range set.All() {
		if _, ok := saved[h.ID]; !ok {
			continue
		}
		ord := 0
		for _, d := range h.Dependencies {
			if _, ok := saved[d.ID]; !ok {
				continue
			}
			if _, err := insertDep.ExecContext(ctx, h.ID, d.ID, ord); err != nil {
				return err
			}
			ord++
		}
	}
	return tx.Commit()
}

// LoadSet reconstructs the stored hypotheses in their saved order, with
// dependency edges resolved.
func (s *SQLiteStore) LoadSet(ctx context.Context) (*hypothesis.Set, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, kind, payload, proof, author, ref_kind, year
		 FROM hypotheses ORDER BY position`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[string]*hypothesis.Hypothesis)
	var ordered []*hypothesis.Hypothesis
	for rows.Next() {
		var (
			id, name, kind, payload, author, refKind string
			proof                                    sql.NullString
			year                                     sql.NullInt64
		)
		if err := rows.Scan(&id, &name, &kind, &payload, &proof, &author, &refKind, &year); err != nil {
			return nil, err
		}
		p, err := unmarshalPayload(hypothesis.Kind(kind), payload)
		if err != nil {
			return nil, fmt.Errorf("failed to restore %s: %w", name, err)
		}
		y := hypothesis.UnknownYear()
		if year.Valid {
			y = hypothesis.KnownYear(int(year.Int64))
		}
		h := &hypothesis.Hypothesis{
			ID:      id,
			Name:    name,
			Kind:    hypothesis.Kind(kind),
			Payload: p,
			Proof:   proof.String,
			Ref:     hypothesis.NewReference(hypothesis.RefKind(refKind), author, y),
		}
		byID[id] = h
		ordered = append(ordered, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	depRows, err := s.db.QueryContext(ctx,
		`SELECT hypothesis_id, dependency_id FROM hypothesis_deps ORDER BY hypothesis_id, ord`,
	)
	if err != nil {
		return nil, err
	}
	defer depRows.Close()
	for depRows.Next() {
		var hid, did string
		if err := depRows.Scan(&hid, &did); err != nil {
			return nil, err
		}
		h, ok1 := byID[hid]
		d, ok2 := byID[did]
		if ok1 && ok2 {
			h.Dependencies = append(h.Dependencies, d)
		}
	}
	if err := depRows.Err(); err != nil {
		return nil, err
	}

	return hypothesis.NewSet(ordered...), nil
}

// CountHypotheses returns the total number of stored hypotheses.
func (s *SQLiteStore) CountHypotheses(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM hypotheses`).Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
