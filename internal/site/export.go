package site

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/cheatsheet/internal/auth"
	"github.com/ziadkadry99/cheatsheet/internal/progress"
	"github.com/ziadkadry99/cheatsheet/internal/subjects"
)

// exportPage is one file of a static export.
type exportPage struct {
	path   string // Output path relative to the export directory.
	render func() ([]byte, error)
}

// Export writes the site as static files under dir: the home, about and docs
// pages, one page per subject, a 404 page and the assets. Pages are rendered
// for a signed-out visitor, so gated subjects become sign-in prompts.
// It returns the number of files written.
func (s *Site) Export(ctx context.Context, dir string, rep progress.Reporter) (int, error) {
	if rep == nil {
		rep = progress.Nop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("creating export dir: %w", err)
	}

	pages := s.exportPages()
	rep.Start(len(pages), "Exporting")
	defer rep.Finish()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, p := range pages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := p.render()
			if err != nil {
				return fmt.Errorf("rendering %s: %w", p.path, err)
			}
			out := filepath.Join(dir, filepath.FromSlash(p.path))
			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", p.path, err)
			}
			rep.Step(p.path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	s.logger.Info("site exported", zap.String("dir", dir), zap.Int("files", len(pages)))
	return len(pages), nil
}

func (s *Site) exportPages() []exportPage {
	static := func(body string) func() ([]byte, error) {
		return func() ([]byte, error) { return []byte(body), nil }
	}

	pages := []exportPage{
		{"assets/style.css", static(styleCSS)},
		{"assets/highlight.css", static(s.highlightCSS)},
		{"assets/site.js", static(siteJS)},
		{"assets/bridge.js", static(bridgeJS)},
		{"index.html", s.exportView("home", "", "/", func(p *pageData) {
			p.Sections = BuildSections(s.catalog, "", "")
		})},
		{"about/index.html", s.exportView("about", "About", "/about", nil)},
		{"docs/index.html", s.exportView("docs", "Documentation", "/docs", func(p *pageData) {
			p.Sections = BuildSections(s.catalog, "/docs", "")
		})},
		{"404.html", s.exportView("notfound", "Page not found", "/", nil)},
	}

	for _, subj := range s.catalog.All() {
		pages = append(pages,
			exportPage{subj.ID + "/index.html", s.exportSubject("subject", subj)},
			exportPage{"docs/" + subj.ID + "/index.html", s.exportSubject("docs", subj)},
		)
	}
	return pages
}

func (s *Site) exportView(name, title, route string, fill func(*pageData)) func() ([]byte, error) {
	return func() ([]byte, error) {
		p := s.newPage(title, route, nil)
		if fill != nil {
			fill(&p)
		}
		var buf bytes.Buffer
		if err := s.executePage(&buf, name, p); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}

func (s *Site) exportSubject(name string, subj subjects.Subject) func() ([]byte, error) {
	route := subj.Route()
	if name == "docs" {
		route = "/docs" + route
	}
	return s.exportView(name, subj.CheatsheetName, route, func(p *pageData) {
		p.Subject = &subj
		if s.gated[subj.ID] {
			c := auth.NewCycle("", "")
			c.ReturnURL = route
			p.Body = s.gatedBody(subj, auth.Anonymous, c)
		} else {
			p.Body = s.renderContent(subj)
		}
		if name == "docs" {
			p.Sections = BuildSections(s.catalog, "/docs", subj.ID)
		}
	})
}
