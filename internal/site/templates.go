package site

import (
	"html/template"
)

// layoutTemplate is the page chrome shared by every page. Pages define "main".
const layoutTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{if .Title}}{{.Title}} | {{end}}{{.SiteName}}</title>
  <link rel="stylesheet" href="/assets/style.css">
  <link rel="stylesheet" href="/assets/highlight.css">
</head>
<body{{if .User}} data-signed-in="true"{{end}}>
  <header class="site-header">
    <a class="brand" href="/">{{.SiteName}}</a>
    <nav class="header-links">
      <a href="/docs">Docs</a>
      <a href="/about">About</a>
    </nav>
    <div class="search" id="search">
      <form class="search-form" action="/search" method="get" role="search">
        <input type="text" id="search-input" name="q" placeholder="Search Cheatsheets..." autocomplete="off" aria-label="Search cheatsheets">
        <button type="submit" aria-label="Search">Go</button>
      </form>
      <ul class="search-results" id="search-results" hidden></ul>
    </div>
    {{template "account" .}}
  </header>
  <main class="site-main">
    {{template "main" .}}
  </main>
  <footer class="site-footer">
    <p>{{.SiteName}} &middot; Learn. Code. Grow.</p>
  </footer>
  <script type="application/json" id="search-index">{{.SearchIndex}}</script>
  <script type="application/json" id="bridge-config">{{.BridgeConfig}}</script>
  <script src="/assets/site.js" defer></script>
  <script src="/assets/bridge.js" defer></script>
  {{- if .LiveReload}}
  <script>{{template "livereload"}}</script>
  {{- end}}
</body>
</html>
{{define "account"}}<div class="account">
  {{- with .User}}
  <div class="user-menu">
    {{if .Avatar}}<img class="avatar" src="{{.Avatar}}" alt="{{.Name}}">{{else}}<span class="avatar avatar-initial">{{.Initial}}</span>{{end}}
    <span class="user-name">{{.Name}}</span>
    <span class="plan plan-{{.Plan}}">{{.Plan}}</span>
    <a href="{{$.Account.DashboardURL}}">Dashboard</a>
    <a href="{{$.Account.SettingsURL}}">Settings</a>
    <a href="{{$.Account.LogoutURL}}">Sign Out</a>
  </div>
  {{- else}}
  <a class="button" href="{{.Account.SignInURL}}">Sign In</a>
  <a class="button button-primary" href="{{.Account.SignUpURL}}">Sign Up</a>
  {{- end}}
</div>{{end}}
{{define "livereload"}}(function () {
  var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
  var ws = new WebSocket(proto + location.host + '/ws/livereload');
  ws.onmessage = function (e) {
    try { if (JSON.parse(e.data).type === 'reload') location.reload(); } catch (_) {}
  };
})();{{end}}`

const homeTemplate = `{{define "main"}}<section class="hero">
  <h1>{{.SiteName}}</h1>
  <p class="tagline">Learn. Code. Grow.</p>
  <p>Quick cheatsheets for the languages, frameworks and tools you use every day.</p>
</section>
<section class="subjects">
  <h2>Quick Cheatsheets</h2>
  {{range .Sections}}
  <div class="category">
    <h3>{{.Title}}</h3>
    {{with categoryBlurb .Title}}<p class="category-blurb">{{.}}</p>{{end}}
    <div class="cards">
      {{- range .Items}}
      <a class="card" href="{{.Route}}">
        <span class="card-title">{{.Title}}</span>
        <span class="card-description">{{.Description}}</span>
      </a>
      {{- end}}
    </div>
  </div>
  {{end}}
</section>{{end}}`

const subjectTemplate = `{{define "main"}}<div class="page page-cheatsheet">
  <a class="back-link" href="/">Back to Subjects</a>
  <header class="page-header">
    <h1>{{.Subject.CheatsheetName}}</h1>
    <p>{{.Subject.Description}}</p>
  </header>
  <div id="gate-region" class="gate-region" data-subject="{{.Subject.ID}}">{{.Body}}</div>
</div>{{end}}`

const docsTemplate = `{{define "main"}}<div class="docs-layout">
  <nav class="docs-sidebar" aria-label="Documentation">
    {{- range .Sections}}
    <h4>{{.Title}}</h4>
    <ul>
      {{- range .Items}}
      <li><a href="{{.Route}}"{{if .Active}} class="active" aria-current="page"{{end}}>{{.Title}}</a></li>
      {{- end}}
    </ul>
    {{- end}}
  </nav>
  <div class="docs-main">
    {{- if .Subject}}
    <header class="page-header">
      <h1>{{.Subject.CheatsheetName}}</h1>
      <p>{{.Subject.Description}}</p>
    </header>
    <div id="gate-region" class="gate-region" data-subject="{{.Subject.ID}}">{{.Body}}</div>
    {{- else}}
    <header class="page-header">
      <h1>Documentation</h1>
      <p>Pick a subject from the sidebar to read its reference.</p>
    </header>
    {{- end}}
  </div>
</div>{{end}}`

const aboutTemplate = `{{define "main"}}<div class="page page-about">
  <h1>About {{.SiteName}}</h1>
  <p>{{.SiteName}} collects short, copy-friendly references for programming languages, web
  technologies, databases, DevOps tools and mobile development.</p>
  <ul class="features">
    <li><strong>Smart Search</strong> Quickly find the exact information you need.</li>
    <li><strong>Copy-Friendly</strong> Code examples and snippets you can use directly in your projects.</li>
    <li><strong>Mobile Optimized</strong> Works on desktop, tablet and mobile devices.</li>
  </ul>
  <p>Your account lives on the Codeunia platform. Signing in there signs you in here.</p>
</div>{{end}}`

const notFoundTemplate = `{{define "main"}}<div class="page page-not-found">
  <h1>Page not found</h1>
  <p>There is no cheatsheet at this address.</p>
  <a class="button" href="/">Back to Subjects</a>
</div>{{end}}`

// contentTemplate is the rendered document with its table of contents. It is
// what a gated page shows once access is confirmed.
const contentTemplate = `<div class="cheatsheet-layout">
  <article class="prose" id="cheatsheet">{{.HTML}}</article>
  {{- with .TOC}}
  <aside class="toc" aria-label="On this page">
    <h2>On this page</h2>
    <ol>
      {{- range .}}
      <li><a href="#{{.Topic.ID}}">{{.Topic.Text}}</a>
        {{- with .Subtopics}}
        <ol>{{range .}}<li><a href="#{{.ID}}">{{.Text}}</a></li>{{end}}</ol>
        {{- end}}
      </li>
      {{- end}}
    </ol>
  </aside>
  {{- end}}
</div>`

var categoryBlurbs = map[string]string{
	"Programming Languages": "Essential languages for modern development",
	"Web Technologies":      "Frontend frameworks and web technologies",
	"Backend & Databases":   "Server-side technologies and data management",
	"DevOps & Tools":        "Development tools and deployment technologies",
	"Mobile Development":    "Cross-platform mobile app development",
}

var templateFuncs = template.FuncMap{
	"categoryBlurb": func(title string) string { return categoryBlurbs[title] },
}

// pageTemplates parses the layout once per page so each page can define its
// own "main".
func pageTemplates() map[string]*template.Template {
	base := template.Must(template.New("layout").Funcs(templateFuncs).Parse(layoutTemplate))
	pages := map[string]string{
		"home":     homeTemplate,
		"subject":  subjectTemplate,
		"docs":     docsTemplate,
		"about":    aboutTemplate,
		"notfound": notFoundTemplate,
	}
	out := make(map[string]*template.Template, len(pages))
	for name, src := range pages {
		out[name] = template.Must(template.Must(base.Clone()).Parse(src))
	}
	return out
}
