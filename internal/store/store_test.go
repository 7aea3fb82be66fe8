package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lupuchard/inko/internal/parser"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	ctx := context.Background()
	s, err := Open(ctx, "sqlite3", filepath.Join(t.TempDir(), "docs.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	source := `{"a": [1, 2.5]}`
	program, err := parser.Parse(source)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	saved, err := s.Save(ctx, "values.ink", source, program)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if saved.ID == "" {
		t.Fatalf("expected a generated document id")
	}

	loaded, err := s.Get(ctx, saved.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if loaded.Path != "values.ink" {
		t.Fatalf("path wrong. expected=%q, got=%q", "values.ink", loaded.Path)
	}
	if loaded.Source != source {
		t.Fatalf("source wrong. expected=%q, got=%q", source, loaded.Source)
	}
	if !strings.Contains(loaded.ASTJSON, `"HashLiteral"`) {
		t.Fatalf("stored AST rendering wrong: %s", loaded.ASTJSON)
	}
}

func TestGetMissingDocument(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.Get(context.Background(), "no-such-id"); err == nil {
		t.Fatalf("expected error for missing document")
	}
}

func TestList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sources := []string{"1", "2", "3"}
	for _, src := range sources {
		program, err := parser.Parse(src)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if _, err := s.Save(ctx, src+".ink", src, program); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	records, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != len(sources) {
		t.Fatalf("expected %d records, got %d", len(sources), len(records))
	}
}

func TestRebindPostgresPlaceholders(t *testing.T) {
	s := &Store{driver: "postgres"}

	got := s.rebind("INSERT INTO documents VALUES (?, ?, ?)")
	expected := "INSERT INTO documents VALUES ($1, $2, $3)"
	if got != expected {
		t.Fatalf("rebind wrong. expected=%q, got=%q", expected, got)
	}

	s.driver = "sqlite3"
	if got := s.rebind("SELECT ?"); got != "SELECT ?" {
		t.Fatalf("rebind should be a no-op for sqlite3, got %q", got)
	}
}
