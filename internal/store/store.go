// Package store persists parse results so other toolchain stages can pick
// them up without re-parsing. Each saved document keeps the original source
// next to the JSON rendering of its AST.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lupuchard/inko/internal/ast"
	"github.com/lupuchard/inko/internal/log"
	"github.com/lupuchard/inko/internal/parser"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id         TEXT PRIMARY KEY,
	path       TEXT NOT NULL,
	source     TEXT NOT NULL,
	ast_json   TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
)`

type Record struct {
	ID        string
	Path      string
	Source    string
	ASTJSON   string
	CreatedAt time.Time
}

type Store struct {
	driver string
	db     *sql.DB
}

// Open connects using one of the registered database/sql drivers: sqlite3,
// mysql, or postgres.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach %s store: %w", driver, err)
	}

	s := &Store{driver: driver, db: db}
	if err := s.init(ctx); err != nil {
		db.Close()
		return nil, err
	}

	log.Debug("document store ready (driver=%s)", driver)
	return s, nil
}

func (s *Store) init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create documents table: %w", err)
	}
	return nil
}

// Save renders doc as JSON and inserts it under a fresh UUID.
func (s *Store) Save(ctx context.Context, path, source string, doc *ast.Program) (Record, error) {
	rendered, err := parser.RenderASTAsJSON(doc)
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		ID:        uuid.NewString(),
		Path:      path,
		Source:    source,
		ASTJSON:   rendered,
		CreatedAt: time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx,
		s.rebind(`INSERT INTO documents (id, path, source, ast_json, created_at) VALUES (?, ?, ?, ?, ?)`),
		rec.ID, rec.Path, rec.Source, rec.ASTJSON, rec.CreatedAt)
	if err != nil {
		return Record{}, fmt.Errorf("failed to save document '%s': %w", path, err)
	}

	log.Info("saved document %s (%s)", rec.ID, path)
	return rec, nil
}

// Get returns one stored document by id. A missing id is reported as
// sql.ErrNoRows wrapped with context.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	var rec Record
	err := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT id, path, source, ast_json, created_at FROM documents WHERE id = ?`),
		id).Scan(&rec.ID, &rec.Path, &rec.Source, &rec.ASTJSON, &rec.CreatedAt)
	if err != nil {
		return Record{}, fmt.Errorf("failed to load document '%s': %w", id, err)
	}
	return rec, nil
}

// List returns all stored documents, oldest first.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, path, source, ast_json, created_at FROM documents ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Path, &rec.Source, &rec.ASTJSON, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}

// rebind rewrites ? placeholders into the $n form for postgres; sqlite3 and
// mysql take ? as-is.
func (s *Store) rebind(query string) string {
	if s.driver != "postgres" {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			sb.WriteString("$" + strconv.Itoa(n))
		} else {
			sb.WriteRune(ch)
		}
	}
	return sb.String()
}
