package site

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/cheatsheet/internal/auth"
	"github.com/ziadkadry99/cheatsheet/internal/content"
	"github.com/ziadkadry99/cheatsheet/internal/render"
	"github.com/ziadkadry99/cheatsheet/internal/subjects"
)

const (
	parentSite = "https://codeunia.com"
	learnSite  = "https://learn.codeunia.com"
	validToken = "valid-token"
)

var testUser = auth.User{ID: "u1", Email: "ada@example.com", Name: "Ada", Plan: auth.PlanPro}

// fakeParent is the parent platform's token API. Only validToken is live.
func fakeParent(t *testing.T) *httptest.Server {
	t.Helper()
	live := func(r *http.Request) bool {
		return r.Header.Get("Authorization") == "Bearer "+validToken
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/validate", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || !live(r) {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"valid": true, "user": testUser})
	})
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if !live(r) {
			http.Error(w, "session expired", http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(testUser)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeContent(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"python.md": "# Python Cheatsheet\n\n## Basics\n\n```python\nprint(\"hello\")\n```\n\n### Strings\n\nUse f-strings.\n",
		"react.mdx": "# React\n\n## Use State\n\n<Callout type=\"info\" title=\"Hooks\">\nHooks only run in components.\n</Callout>\n",
		"swift.md":  "# Swift\n\n## Optionals\n\nUse `if let`.\n",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

type testEnv struct {
	site   *Site
	bridge *auth.Bridge
	server *httptest.Server
	client *http.Client
}

func newTestEnv(t *testing.T, crossOrigin bool, timeout time.Duration) *testEnv {
	t.Helper()
	parent := fakeParent(t)

	bridge := auth.NewBridge(auth.Options{
		Platform:       auth.NewPlatformClient(parent.URL, "/auth/validate", "/auth/me", 2*time.Second),
		TrustedOrigins: []string{parentSite},
		CheckTimeout:   timeout,
		CrossOrigin:    crossOrigin,
	})
	t.Cleanup(bridge.Close)

	links := auth.Links{
		SiteURL:       parentSite,
		SignInPath:    "/auth/signin",
		SignUpPath:    "/auth/signup",
		LogoutPath:    "/auth/logout",
		CheckPath:     "/auth/check",
		DashboardPath: "/dashboard",
		SettingsPath:  "/settings",
	}

	s, err := New(Options{
		Catalog:  subjects.Default(),
		Resolver: content.NewResolver(writeContent(t), nil),
		Renderer: render.New(),
		Bridge:   bridge,
		Links:    links,
		Gated:    []string{"python"},
		SiteURL:  learnSite,
	})
	if err != nil {
		t.Fatal(err)
	}

	r := chi.NewRouter()
	r.Use(bridge.Middleware)
	auth.RegisterRoutes(r, bridge, links, s.Fragment)
	s.RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return &testEnv{site: s, bridge: bridge, server: srv, client: &http.Client{Jar: jar, Timeout: 5 * time.Second}}
}

func (e *testEnv) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := e.client.Get(e.server.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(body)
}

func (e *testEnv) authCookie() *http.Cookie {
	u, _ := url.Parse(e.server.URL)
	for _, c := range e.client.Jar.Cookies(u) {
		if c.Name == auth.DefaultCookieName {
			return c
		}
	}
	return nil
}

func (e *testEnv) setCookie(token string) {
	u, _ := url.Parse(e.server.URL)
	e.client.Jar.SetCookies(u, []*http.Cookie{{Name: auth.DefaultCookieName, Value: token, Path: "/"}})
}

var cycleAttr = regexp.MustCompile(`data-cycle="([^"]+)"`)

type pollResponse struct {
	State string     `json:"state"`
	User  *auth.User `json:"user"`
	HTML  string     `json:"html"`
}

func (e *testEnv) poll(t *testing.T, id string) pollResponse {
	t.Helper()
	_, body := e.get(t, "/api/auth/cycles/"+id)
	var p pollResponse
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("decoding poll %q: %v", body, err)
	}
	return p
}

// A: a token handed over in the URL is validated, persisted and stripped,
// and the gated content renders.
func TestScenarioTokenInURL(t *testing.T) {
	env := newTestEnv(t, true, time.Second)

	resp, body := env.get(t, "/python?token="+validToken)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if resp.Request.URL.RawQuery != "" || resp.Request.URL.Path != "/python" {
		t.Errorf("final URL = %s, want /python without token", resp.Request.URL)
	}
	if c := env.authCookie(); c == nil || c.Value != validToken {
		t.Errorf("auth cookie = %+v", c)
	}
	for _, want := range []string{`id="cheatsheet"`, "Basics", "Ada"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(body, "Access Required") || strings.Contains(body, "Verifying your access") {
		t.Error("gated page still shows a gate view")
	}
}

// B: an ungated page renders straight away for a visitor with nothing.
func TestScenarioUngatedPage(t *testing.T) {
	env := newTestEnv(t, true, time.Second)

	resp, body := env.get(t, "/react")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	for _, want := range []string{`id="cheatsheet"`, `class="callout callout-info"`, "Hooks only run in components.", "Sign In"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	for _, gateText := range []string{"Access Required", "Verifying your access", "data-cycle"} {
		if strings.Contains(body, gateText) {
			t.Errorf("ungated page contains %q", gateText)
		}
	}
}

// C: an expired cookie and no parent session end at the sign-in prompt,
// which links back to this page.
func TestScenarioExpiredCookie(t *testing.T) {
	env := newTestEnv(t, false, time.Second)
	env.setCookie("expired-token")

	resp, body := env.get(t, "/python")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Access Required") {
		t.Fatalf("sign-in prompt not shown:\n%s", body)
	}
	signIn := parentSite + "/auth/signin?returnUrl=" + url.QueryEscape(learnSite+"/python")
	if !strings.Contains(body, `href="`+signIn+`"`) {
		t.Errorf("sign-in link %q not found", signIn)
	}
	if strings.Contains(body, `id="cheatsheet"`) {
		t.Error("gated content leaked to an anonymous visitor")
	}
	if c := env.authCookie(); c != nil {
		t.Errorf("expired cookie kept: %+v", c)
	}
}

// D: an auth-check iframe that never answers leaves the cycle Anonymous.
func TestScenarioSilentCheckTimesOut(t *testing.T) {
	env := newTestEnv(t, true, 100*time.Millisecond)

	_, body := env.get(t, "/python")
	if !strings.Contains(body, "Verifying your access") {
		t.Fatalf("loading view not shown:\n%s", body)
	}
	m := cycleAttr.FindStringSubmatch(body)
	if m == nil {
		t.Fatal("no cycle id on the loading view")
	}

	c, err := env.bridge.Lookup(m[1])
	if err != nil {
		t.Fatal(err)
	}
	select {
	case <-c.Settled():
	case <-time.After(2 * time.Second):
		t.Fatalf("cycle stuck in %s", c.State())
	}
	if c.State() != auth.Anonymous {
		t.Fatalf("state = %s, want anonymous", c.State())
	}

	p := env.poll(t, m[1])
	if p.State != "anonymous" || !strings.Contains(p.HTML, "Access Required") {
		t.Errorf("poll = %+v", p)
	}
}

func TestCrossOriginTokenUnlocksContent(t *testing.T) {
	env := newTestEnv(t, true, 2*time.Second)

	_, body := env.get(t, "/python")
	m := cycleAttr.FindStringSubmatch(body)
	if m == nil {
		t.Fatalf("no cycle id:\n%s", body)
	}

	msg := `{"origin":"` + parentSite + `","data":{"type":"CODEUNIA_AUTH_TOKEN","token":"` + validToken + `"}}`
	resp, err := env.client.Post(env.server.URL+"/api/auth/cycles/"+m[1]+"/message", "application/json", strings.NewReader(msg))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("message status = %d", resp.StatusCode)
	}
	if c := env.authCookie(); c == nil || c.Value != validToken {
		t.Errorf("auth cookie = %+v", c)
	}

	p := env.poll(t, m[1])
	if p.State != "authenticated" || p.User == nil || p.User.ID != "u1" {
		t.Errorf("poll = %+v", p)
	}
	if !strings.Contains(p.HTML, `id="cheatsheet"`) || !strings.Contains(p.HTML, "Basics") {
		t.Errorf("poll html lacks content:\n%s", p.HTML)
	}
}

func TestForgedUserMessageGetsNoContent(t *testing.T) {
	env := newTestEnv(t, true, 2*time.Second)

	_, body := env.get(t, "/python")
	m := cycleAttr.FindStringSubmatch(body)
	if m == nil {
		t.Fatalf("no cycle id:\n%s", body)
	}

	// Any client can claim the parent's origin in the request body.
	msg := `{"origin":"` + parentSite + `","data":{"type":"CODEUNIA_AUTH_STATUS","authenticated":true,` +
		`"user":{"id":"evil","email":"m@example.com","name":"Mallory","plan":"enterprise"}}}`
	resp, err := http.Post(env.server.URL+"/api/auth/cycles/"+m[1]+"/message", "application/json", strings.NewReader(msg))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	p := env.poll(t, m[1])
	if p.State != "anonymous" || p.User != nil {
		t.Errorf("poll = %+v, want anonymous with no user", p)
	}
	if strings.Contains(p.HTML, `id="cheatsheet"`) || !strings.Contains(p.HTML, "Access Required") {
		t.Errorf("forged message unlocked content:\n%s", p.HTML)
	}
	if c := env.authCookie(); c != nil {
		t.Errorf("cookie set: %+v", c)
	}
}

func TestUngatedTokenIsStripped(t *testing.T) {
	env := newTestEnv(t, true, time.Second)

	resp, body := env.get(t, "/react?token="+validToken+"&tab=hooks")
	if got := resp.Request.URL.RequestURI(); got != "/react?tab=hooks" {
		t.Errorf("final URL = %s", got)
	}
	if !strings.Contains(body, "Dashboard") || !strings.Contains(body, "Ada") {
		t.Error("header does not show the signed-in user")
	}
}

func TestHeaderSignedIn(t *testing.T) {
	env := newTestEnv(t, true, time.Second)
	env.setCookie(validToken)

	_, body := env.get(t, "/")
	for _, want := range []string{"Ada", `class="plan plan-pro"`, parentSite + "/dashboard", parentSite + "/settings", `href="/auth/logout"`, `avatar-initial">A<`} {
		if !strings.Contains(body, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestHomePage(t *testing.T) {
	env := newTestEnv(t, true, time.Second)

	resp, body := env.get(t, "/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	for _, want := range []string{"Quick Cheatsheets", "Programming Languages", "Mobile Development", `href="/python"`, `href="/flutter"`, `id="search-index"`, `"route":"/python"`} {
		if !strings.Contains(body, want) {
			t.Errorf("home page missing %q", want)
		}
	}
	if strings.Contains(body, "/ws/livereload") {
		t.Error("live reload snippet present while disabled")
	}
}

func TestMissingContentFallsBack(t *testing.T) {
	env := newTestEnv(t, true, time.Second)

	resp, body := env.get(t, "/go")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Content is currently unavailable") {
		t.Error("placeholder not rendered")
	}
}

func TestDocsPages(t *testing.T) {
	env := newTestEnv(t, true, time.Second)

	tests := []struct {
		path   string
		status int
		want   string
	}{
		{"/docs", http.StatusOK, "Documentation"},
		{"/docs/ios", http.StatusOK, "Optionals"},
		{"/docs/swift", http.StatusOK, `href="/docs/swift" class="active"`},
		{"/docs/nope", http.StatusNotFound, "Page not found"},
		{"/nope", http.StatusNotFound, "Page not found"},
		{"/about", http.StatusOK, "About"},
	}
	for _, tt := range tests {
		resp, body := env.get(t, tt.path)
		if resp.StatusCode != tt.status {
			t.Errorf("GET %s = %d, want %d", tt.path, resp.StatusCode, tt.status)
		}
		if !strings.Contains(body, tt.want) {
			t.Errorf("GET %s missing %q", tt.path, tt.want)
		}
	}
}

func TestAssets(t *testing.T) {
	env := newTestEnv(t, true, time.Second)

	tests := []struct {
		path, contentType, want string
	}{
		{"/assets/style.css", "text/css", ".gate"},
		{"/assets/highlight.css", "text/css", ".chroma"},
		{"/assets/site.js", "text/javascript", "search-index"},
		{"/assets/bridge.js", "text/javascript", "isTrusted(event.origin)"},
	}
	for _, tt := range tests {
		resp, body := env.get(t, tt.path)
		if !strings.HasPrefix(resp.Header.Get("Content-Type"), tt.contentType) {
			t.Errorf("%s Content-Type = %q", tt.path, resp.Header.Get("Content-Type"))
		}
		if !strings.Contains(body, tt.want) {
			t.Errorf("%s missing %q", tt.path, tt.want)
		}
	}
}

func TestSiteJSCopiesCode(t *testing.T) {
	for _, want := range []string{
		"querySelectorAll('pre > code')",
		"className = 'code-copy'",
		"navigator.clipboard.writeText(text)",
		"document.execCommand('copy')",
		"'Copied!'",
		"setTimeout(",
		"new MutationObserver(",
	} {
		if !strings.Contains(siteJS, want) {
			t.Errorf("site.js missing %q", want)
		}
	}
	if !strings.Contains(styleCSS, ".code-copy.copied") {
		t.Error("style.css has no confirmation style for the copy button")
	}

	// The copy hook must not sit behind the search box's early return.
	hook := strings.Index(siteJS, "addCopyButtons(document);")
	bail := strings.Index(siteJS, "if (!input || !list || !data) return;")
	if hook < 0 || bail < 0 || hook > bail {
		t.Error("copy buttons are only added on pages with a search box")
	}
}

func TestBridgeChecksOriginFirst(t *testing.T) {
	check := strings.Index(bridgeJS, "if (!isTrusted(event.origin)) return;")
	read := strings.Index(bridgeJS, "var data = event.data;")
	if check < 0 || read < 0 || check > read {
		t.Error("message payload is read before the origin check")
	}
	if !strings.Contains(bridgeJS, "removeEventListener('message', onMessage)") {
		t.Error("message listener is never removed")
	}
}

func TestSearchEndpoint(t *testing.T) {
	env := newTestEnv(t, true, time.Second)

	_, body := env.get(t, "/api/search?q=Rust")
	var res searchResponse
	if err := json.Unmarshal([]byte(body), &res); err != nil {
		t.Fatal(err)
	}
	if len(res.Results) != 1 || res.Results[0].Route != "/rust" {
		t.Errorf("results = %+v", res.Results)
	}

	_, body = env.get(t, "/api/search")
	if !strings.Contains(body, `"results":[]`) {
		t.Errorf("empty query = %s", body)
	}
}

func TestSearchRedirect(t *testing.T) {
	env := newTestEnv(t, true, time.Second)

	resp, _ := env.get(t, "/search?q=docker")
	if resp.Request.URL.Path != "/docker" {
		t.Errorf("landed on %s, want /docker", resp.Request.URL.Path)
	}
	resp, _ = env.get(t, "/search?q=zzz")
	if resp.Request.URL.Path != "/" {
		t.Errorf("landed on %s, want /", resp.Request.URL.Path)
	}
}

func TestNewRejectsUnknownGatedSubject(t *testing.T) {
	b := auth.NewBridge(auth.Options{})
	defer b.Close()
	_, err := New(Options{
		Catalog:  subjects.Default(),
		Resolver: content.NewResolver(t.TempDir(), nil),
		Renderer: render.New(),
		Bridge:   b,
		Gated:    []string{"cobol"},
	})
	if err == nil {
		t.Error("New accepted an unknown gated subject")
	}
}

func TestExport(t *testing.T) {
	env := newTestEnv(t, true, time.Second)
	dir := t.TempDir()

	n, err := env.site.Export(context.Background(), dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := 8 + 2*subjects.Default().Len()
	if n != want {
		t.Errorf("Export wrote %d files, want %d", n, want)
	}

	read := func(rel string) string {
		t.Helper()
		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
		if err != nil {
			t.Fatal(err)
		}
		return string(data)
	}

	if py := read("python/index.html"); !strings.Contains(py, "Access Required") || strings.Contains(py, `id="cheatsheet"`) {
		t.Error("gated subject exported without its sign-in prompt")
	}
	if !strings.Contains(read("react/index.html"), "Hooks only run in components.") {
		t.Error("ungated subject exported without content")
	}
	if !strings.Contains(read("docs/swift/index.html"), "Optionals") {
		t.Error("docs page missing content")
	}
	for _, rel := range []string{"index.html", "404.html", "assets/style.css", "assets/bridge.js"} {
		if _, err := os.Stat(filepath.Join(dir, rel)); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}
}

func TestExportCanceled(t *testing.T) {
	env := newTestEnv(t, true, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := env.site.Export(ctx, t.TempDir(), nil); err == nil {
		t.Error("Export ignored a canceled context")
	}
}
