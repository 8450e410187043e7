// Package content locates and loads cheatsheet documents from the content directory.
package content

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/ziadkadry99/cheatsheet/internal/logging"
)

// Format identifies the markup flavour of a document.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatRich     Format = "rich"
)

const (
	RichExt  = ".mdx"
	PlainExt = ".md"
)

// Document is a loaded content file.
type Document struct {
	Text     string
	Format   Format
	Path     string // Path relative to the content directory.
	Fallback bool   // True when Text is the synthesized placeholder.
}

// Resolver reads documents from Dir. It keeps no cache; every call hits storage.
type Resolver struct {
	Dir    string
	logger *zap.Logger
}

// NewResolver creates a Resolver rooted at dir.
func NewResolver(dir string, logger *zap.Logger) *Resolver {
	return &Resolver{Dir: dir, logger: logging.OrNop(logger)}
}

// Resolve loads the document for key. A non-empty filename is tried first.
// On any read failure the returned document is a one-heading placeholder
// titled with fallbackTitle.
func (r *Resolver) Resolve(key, fallbackTitle, filename string) Document {
	rel := r.pick(key, filename)

	data, err := r.read(rel)
	if err != nil {
		r.logger.Warn("content unavailable",
			zap.String("key", key),
			zap.String("file", rel),
			zap.Error(err))
		return Placeholder(fallbackTitle)
	}

	return Document{
		Text:   string(data),
		Format: FormatOf(rel),
		Path:   rel,
	}
}

// pick applies the lookup order: explicit filename, rich variant, plain variant.
// The plain variant is returned even when it does not exist.
func (r *Resolver) pick(key, filename string) string {
	if filename != "" && r.exists(filename) {
		return filename
	}
	base := strings.TrimSuffix(strings.TrimSuffix(key, RichExt), PlainExt)
	if rich := base + RichExt; r.exists(rich) {
		return rich
	}
	return base + PlainExt
}

func (r *Resolver) exists(rel string) bool {
	if !filepath.IsLocal(rel) {
		return false
	}
	info, err := os.Stat(filepath.Join(r.Dir, rel))
	return err == nil && info.Mode().IsRegular()
}

func (r *Resolver) read(rel string) ([]byte, error) {
	if !filepath.IsLocal(rel) {
		return nil, fmt.Errorf("path %q escapes content directory", rel)
	}
	return os.ReadFile(filepath.Join(r.Dir, rel))
}

// Inventory lists every markdown and rich document under Dir, slash-separated and sorted.
func (r *Resolver) Inventory() ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(r.Dir), "**/*.{md,mdx}", doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("listing content in %s: %w", r.Dir, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// Placeholder is the degraded document shown when content cannot be loaded.
func Placeholder(title string) Document {
	return Document{
		Text:     fmt.Sprintf("# %s\n\nContent is currently unavailable. Please try again later.", title),
		Format:   FormatMarkdown,
		Fallback: true,
	}
}

// FormatOf infers the format from a file name.
func FormatOf(name string) Format {
	if strings.EqualFold(filepath.Ext(name), RichExt) {
		return FormatRich
	}
	return FormatMarkdown
}

// BaseName strips the content extension from a relative path.
func BaseName(rel string) string {
	ext := filepath.Ext(rel)
	if strings.EqualFold(ext, RichExt) || strings.EqualFold(ext, PlainExt) {
		return strings.TrimSuffix(rel, ext)
	}
	return rel
}
