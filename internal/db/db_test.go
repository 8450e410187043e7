package db

import (
	"path/filepath"
	"testing"
)

func TestOpenMemory(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	var count int
	if err := d.QueryRow("SELECT COUNT(*) FROM auth_events").Scan(&count); err != nil {
		t.Errorf("table auth_events: %v", err)
	}
}

func TestMigrateIdempotent(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	// Running migrate again should not fail.
	if err := d.migrate(); err != nil {
		t.Fatalf("second migrate() error: %v", err)
	}
}

func TestKindConstraint(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	if _, err := d.Exec(`INSERT INTO auth_events (id, kind) VALUES ('a', 'sign_in')`); err != nil {
		t.Fatalf("valid kind: %v", err)
	}
	if _, err := d.Exec(`INSERT INTO auth_events (id, kind) VALUES ('b', 'bogus')`); err == nil {
		t.Error("unknown kind accepted")
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cheatsheet.db")
	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if d.Path() != path {
		t.Errorf("Path = %q", d.Path())
	}
	d.Close()

	// Reopening keeps the schema.
	d, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer d.Close()
	if _, err := d.Exec(`INSERT INTO auth_events (id, kind) VALUES ('x', 'sign_out')`); err != nil {
		t.Errorf("insert after reopen: %v", err)
	}
}
