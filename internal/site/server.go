// Package site serves the cheatsheet pages: the home page, one page per
// subject, the docs layout and the static assets the pages load.
package site

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/cheatsheet/internal/auth"
	"github.com/ziadkadry99/cheatsheet/internal/content"
	"github.com/ziadkadry99/cheatsheet/internal/gate"
	"github.com/ziadkadry99/cheatsheet/internal/logging"
	"github.com/ziadkadry99/cheatsheet/internal/render"
	"github.com/ziadkadry99/cheatsheet/internal/subjects"
)

// docAliases map docs slugs that are not subject IDs onto subjects.
var docAliases = map[string]string{
	"ios":     "swift",
	"android": "kotlin",
}

// Options configures a Site.
type Options struct {
	Catalog  *subjects.Catalog
	Resolver *content.Resolver
	Renderer *render.Renderer
	Bridge   *auth.Bridge
	Links    auth.Links
	// Gated lists the subject IDs that require a signed-in user.
	Gated      []string
	SiteName   string
	SiteURL    string
	LiveReload bool
	Logger     *zap.Logger
}

// Site renders pages. It is safe for concurrent use.
type Site struct {
	catalog    *subjects.Catalog
	resolver   *content.Resolver
	renderer   *render.Renderer
	bridge     *auth.Bridge
	links      auth.Links
	gate       *gate.Gate
	index      *SearchIndex
	gated      map[string]bool
	siteName   string
	siteURL    string
	liveReload bool
	logger     *zap.Logger

	pages        map[string]*template.Template
	content      *template.Template
	highlightCSS string
}

// New creates a Site.
func New(opts Options) (*Site, error) {
	if opts.Catalog == nil || opts.Resolver == nil || opts.Renderer == nil || opts.Bridge == nil {
		return nil, fmt.Errorf("site: catalog, resolver, renderer and bridge are required")
	}

	s := &Site{
		catalog:    opts.Catalog,
		resolver:   opts.Resolver,
		renderer:   opts.Renderer,
		bridge:     opts.Bridge,
		links:      opts.Links,
		gate:       gate.New(),
		index:      BuildSearchIndex(opts.Catalog),
		gated:      make(map[string]bool, len(opts.Gated)),
		siteName:   opts.SiteName,
		siteURL:    strings.TrimRight(opts.SiteURL, "/"),
		liveReload: opts.LiveReload,
		logger:     logging.OrNop(opts.Logger),
		pages:      pageTemplates(),
		content:    template.Must(template.New("content").Parse(contentTemplate)),
	}
	for _, id := range opts.Gated {
		subj, ok := opts.Catalog.Get(id)
		if !ok {
			return nil, fmt.Errorf("site: gated subject %q is not in the catalog", id)
		}
		s.gated[subj.ID] = true
	}
	if s.siteName == "" {
		s.siteName = "Codeunia Learn"
	}
	s.highlightCSS = opts.Renderer.StyleCSS()
	return s, nil
}

// IsGated reports whether the subject requires a signed-in user.
func (s *Site) IsGated(id string) bool { return s.gated[id] }

// Search exposes the subject search index.
func (s *Site) Search() *SearchIndex { return s.index }

// RegisterRoutes mounts page, asset and search routes. Auth routes are
// mounted separately with Fragment as the cycle fragment renderer.
func (s *Site) RegisterRoutes(r chi.Router) {
	r.Get("/", s.handleHome)
	r.Get("/about", s.handleAbout)
	r.Get("/search", s.handleSearchRedirect)
	r.Get("/api/search", s.handleSearch)
	r.Get("/docs", s.handleDocsIndex)
	r.Get("/docs/{slug}", s.handleDocs)
	r.Get("/{subject}", s.handleSubject)

	r.Get("/assets/style.css", serveAsset("text/css; charset=utf-8", styleCSS))
	r.Get("/assets/highlight.css", serveAsset("text/css; charset=utf-8", s.highlightCSS))
	r.Get("/assets/site.js", serveAsset("text/javascript; charset=utf-8", siteJS))
	r.Get("/assets/bridge.js", serveAsset("text/javascript; charset=utf-8", bridgeJS))

	r.NotFound(s.handleNotFound)
}

// accountLinks are the header links for the signed-in and signed-out states.
type accountLinks struct {
	SignInURL    string
	SignUpURL    string
	DashboardURL string
	SettingsURL  string
	LogoutURL    string
}

type bridgeConfig struct {
	Origins      []string `json:"origins"`
	ParentOrigin string   `json:"parentOrigin"`
	TimeoutMS    int64    `json:"timeoutMs"`
}

// pageData is what the layout and every page template render from.
type pageData struct {
	Title        string
	SiteName     string
	User         *auth.User
	Account      accountLinks
	SearchIndex  []SearchEntry
	BridgeConfig bridgeConfig
	LiveReload   bool

	Sections []Section
	Subject  *subjects.Subject
	Body     template.HTML
}

func (s *Site) newPage(title, returnURL string, user *auth.User) pageData {
	ret := s.absolute(returnURL)
	return pageData{
		Title:    title,
		SiteName: s.siteName,
		User:     user,
		Account: accountLinks{
			SignInURL:    s.links.SignInURL(ret),
			SignUpURL:    s.links.SignUpURL(ret),
			DashboardURL: s.links.DashboardURL(),
			SettingsURL:  s.links.SettingsURL(),
			LogoutURL:    "/auth/logout",
		},
		SearchIndex: s.index.Entries(),
		BridgeConfig: bridgeConfig{
			Origins:      s.bridge.Origins().List(),
			ParentOrigin: s.links.Origin(),
			TimeoutMS:    s.bridge.CheckTimeout().Milliseconds(),
		},
		LiveReload: s.liveReload,
	}
}

// absolute turns a site path into a full URL for the parent's returnUrl.
func (s *Site) absolute(path string) string {
	if path == "" || s.siteURL == "" {
		return path
	}
	return s.siteURL + path
}

// identify resolves the request's load cycle for pages that only need the
// user for the header. It reports whether Finish redirected.
func (s *Site) identify(w http.ResponseWriter, r *http.Request) (*auth.Cycle, bool) {
	c := s.cycleOf(r)
	s.bridge.Resolve(r.Context(), c)
	return c, s.bridge.Finish(w, r, c)
}

func (s *Site) cycleOf(r *http.Request) *auth.Cycle {
	if c := auth.FromContext(r.Context()); c != nil {
		return c
	}
	return s.bridge.NewCycle(r)
}

func (s *Site) handleHome(w http.ResponseWriter, r *http.Request) {
	c, redirected := s.identify(w, r)
	if redirected {
		return
	}
	p := s.newPage("", c.ReturnURL, c.User())
	p.Sections = BuildSections(s.catalog, "", "")
	s.writePage(w, http.StatusOK, "home", p)
}

func (s *Site) handleAbout(w http.ResponseWriter, r *http.Request) {
	c, redirected := s.identify(w, r)
	if redirected {
		return
	}
	s.writePage(w, http.StatusOK, "about", s.newPage("About", c.ReturnURL, c.User()))
}

func (s *Site) handleNotFound(w http.ResponseWriter, r *http.Request) {
	c := s.cycleOf(r)
	s.bridge.Resolve(r.Context(), c)
	s.writePage(w, http.StatusNotFound, "notfound", s.newPage("Page not found", c.ReturnURL, c.User()))
}

// handleSearchRedirect is the search form without scripts: it goes to the
// first match, or back home when nothing matches.
func (s *Site) handleSearchRedirect(w http.ResponseWriter, r *http.Request) {
	target := "/"
	if e, ok := s.index.First(r.URL.Query().Get("q")); ok {
		target = e.Route
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Site) handleSubject(w http.ResponseWriter, r *http.Request) {
	subj, ok := s.catalog.Get(chi.URLParam(r, "subject"))
	if !ok {
		s.handleNotFound(w, r)
		return
	}
	s.serveSubject(w, r, "subject", subj)
}

func (s *Site) handleDocsIndex(w http.ResponseWriter, r *http.Request) {
	c, redirected := s.identify(w, r)
	if redirected {
		return
	}
	p := s.newPage("Documentation", c.ReturnURL, c.User())
	p.Sections = BuildSections(s.catalog, "/docs", "")
	s.writePage(w, http.StatusOK, "docs", p)
}

func (s *Site) handleDocs(w http.ResponseWriter, r *http.Request) {
	slug := strings.ToLower(chi.URLParam(r, "slug"))
	if alias, ok := docAliases[slug]; ok {
		slug = alias
	}
	subj, ok := s.catalog.Get(slug)
	if !ok {
		s.handleNotFound(w, r)
		return
	}
	s.serveSubject(w, r, "docs", subj)
}

// serveSubject renders a subject page. Ungated subjects show their content
// right away. Gated subjects show whatever the gate decides for the load
// cycle; a resolving cycle is finished by the browser through the cycle
// endpoints, which render Fragment.
func (s *Site) serveSubject(w http.ResponseWriter, r *http.Request, page string, subj subjects.Subject) {
	c := s.cycleOf(r)
	c.Subject = subj.ID

	var body template.HTML
	switch {
	case !s.gated[subj.ID]:
		s.bridge.Resolve(r.Context(), c)
		if s.bridge.Finish(w, r, c) {
			return
		}
		body = s.renderContent(subj)

	case auth.HasToken(r.URL):
		// Validate the handed-over token and come back without it.
		s.bridge.Resolve(r.Context(), c)
		s.bridge.Finish(w, r, c)
		return

	default:
		c.Gated = true
		state := s.bridge.Begin(r.Context(), c)
		if s.bridge.Finish(w, r, c) {
			return
		}
		body = s.gatedBody(subj, state, c)
	}

	p := s.newPage(subj.CheatsheetName, c.ReturnURL, c.User())
	p.Subject = &subj
	p.Body = body
	if page == "docs" {
		p.Sections = BuildSections(s.catalog, "/docs", subj.ID)
	}
	s.writePage(w, http.StatusOK, page, p)
}

// Fragment renders the gated region for a load cycle. It is handed to the
// auth routes so a poll can swap the loading view for its outcome.
func (s *Site) Fragment(_ *http.Request, c *auth.Cycle) string {
	subj, ok := s.catalog.Get(c.Subject)
	if !ok {
		return ""
	}
	return string(s.gatedBody(subj, c.State(), c))
}

func (s *Site) gatedBody(subj subjects.Subject, state auth.State, c *auth.Cycle) template.HTML {
	var body template.HTML
	if gate.Decide(state) == gate.Content {
		body = s.renderContent(subj)
	}
	return s.gate.Fragment(state, s.prompt(c), body)
}

func (s *Site) prompt(c *auth.Cycle) gate.Prompt {
	ret := s.absolute(c.ReturnURL)
	return gate.Prompt{
		SignInURL: s.links.SignInURL(ret),
		SignUpURL: s.links.SignUpURL(ret),
		CycleID:   c.ID,
		CheckURL:  s.links.CheckURL(auth.OriginOf(s.siteURL)),
		Timeout:   s.bridge.CheckTimeout(),
	}
}

type contentData struct {
	HTML template.HTML
	TOC  []render.TOCGroup
}

// renderContent loads and renders a subject's document. Content is read on
// every call.
func (s *Site) renderContent(subj subjects.Subject) template.HTML {
	doc := s.resolver.Resolve(subj.ID, subj.CheatsheetName, subj.DocumentFile)
	res := s.renderer.Render(doc)

	var buf bytes.Buffer
	if err := s.content.Execute(&buf, contentData{HTML: res.HTML, TOC: render.TOC(res.Headings)}); err != nil {
		s.logger.Error("rendering content block", zap.String("subject", subj.ID), zap.Error(err))
		return res.HTML
	}
	return template.HTML(buf.String())
}

func (s *Site) writePage(w http.ResponseWriter, status int, name string, p pageData) {
	var buf bytes.Buffer
	if err := s.executePage(&buf, name, p); err != nil {
		s.logger.Error("rendering page", zap.String("page", name), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (s *Site) executePage(w io.Writer, name string, p pageData) error {
	tmpl, ok := s.pages[name]
	if !ok {
		return fmt.Errorf("unknown page template %q", name)
	}
	return tmpl.Execute(w, p)
}

func serveAsset(contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=300")
		io.WriteString(w, body)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
