package content

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveMissingReturnsFallback(t *testing.T) {
	r := NewResolver(t.TempDir(), nil)

	keys := []string{"cobol", "", "nested/deep/key", "../../etc/passwd", "x.mdx"}
	for _, key := range keys {
		doc := r.Resolve(key, "COBOL Cheatsheet", "")
		if !doc.Fallback {
			t.Errorf("Resolve(%q): expected fallback document", key)
		}
		if !strings.Contains(doc.Text, "COBOL Cheatsheet") {
			t.Errorf("Resolve(%q): text %q does not contain fallback title", key, doc.Text)
		}
		if !strings.HasPrefix(doc.Text, "# COBOL Cheatsheet") {
			t.Errorf("Resolve(%q): fallback should be a single heading document, got %q", key, doc.Text)
		}
		if doc.Format != FormatMarkdown {
			t.Errorf("Resolve(%q): fallback format = %q, want markdown", key, doc.Format)
		}
	}
}

func TestResolvePrefersRich(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.md", "# plain")
	writeFile(t, dir, "go.mdx", "# rich")

	doc := NewResolver(dir, nil).Resolve("go", "Go Cheatsheet", "")
	if doc.Format != FormatRich {
		t.Errorf("Format = %q, want rich", doc.Format)
	}
	if doc.Text != "# rich" {
		t.Errorf("Text = %q, want rich document", doc.Text)
	}
	if doc.Path != "go.mdx" {
		t.Errorf("Path = %q, want go.mdx", doc.Path)
	}
}

func TestResolvePlainWhenNoRich(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sql.md", "# SQL")

	doc := NewResolver(dir, nil).Resolve("sql", "SQL Cheatsheet", "")
	if doc.Fallback || doc.Format != FormatMarkdown || doc.Text != "# SQL" {
		t.Errorf("unexpected document %+v", doc)
	}
}

func TestResolveExplicitFilenameWins(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "kotlin.mdx", "# rich kotlin")
	writeFile(t, dir, "android.md", "# android")

	doc := NewResolver(dir, nil).Resolve("kotlin", "Kotlin Cheatsheet", "android.md")
	if doc.Path != "android.md" || doc.Text != "# android" {
		t.Errorf("explicit filename not used: %+v", doc)
	}

	// A missing explicit file falls back to the normal lookup order.
	doc = NewResolver(dir, nil).Resolve("kotlin", "Kotlin Cheatsheet", "missing.md")
	if doc.Path != "kotlin.mdx" {
		t.Errorf("Path = %q, want kotlin.mdx", doc.Path)
	}
}

func TestResolveDirectoryIsNotADocument(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "rust.md"), 0o755); err != nil {
		t.Fatal(err)
	}
	doc := NewResolver(dir, nil).Resolve("rust", "Rust Cheatsheet", "")
	if !doc.Fallback {
		t.Errorf("directory named like a document should yield the fallback, got %+v", doc)
	}
}

func TestResolveRereadsEachCall(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "git.md", "first")
	r := NewResolver(dir, nil)
	if got := r.Resolve("git", "Git", "").Text; got != "first" {
		t.Fatalf("Text = %q, want first", got)
	}
	writeFile(t, dir, "git.md", "second")
	if got := r.Resolve("git", "Git", "").Text; got != "second" {
		t.Errorf("Text = %q, want second", got)
	}
}

func TestInventory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "python.md", "")
	writeFile(t, dir, "react.mdx", "")
	writeFile(t, dir, "guides/setup.md", "")
	writeFile(t, dir, "notes.txt", "")

	got, err := NewResolver(dir, nil).Inventory()
	if err != nil {
		t.Fatalf("Inventory: %v", err)
	}
	want := []string{"guides/setup.md", "python.md", "react.mdx"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Inventory = %v, want %v", got, want)
	}
}

func TestFormatOfAndBaseName(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		base   string
	}{
		{"python.md", FormatMarkdown, "python"},
		{"react.mdx", FormatRich, "react"},
		{"REACT.MDX", FormatRich, "REACT"},
		{"notes.txt", FormatMarkdown, "notes.txt"},
	}
	for _, tt := range tests {
		if got := FormatOf(tt.name); got != tt.format {
			t.Errorf("FormatOf(%q) = %q, want %q", tt.name, got, tt.format)
		}
		if got := BaseName(tt.name); got != tt.base {
			t.Errorf("BaseName(%q) = %q, want %q", tt.name, got, tt.base)
		}
	}
}
