// Package gate decides what a gated page shows while the visitor's auth
// state is known, still resolving, or negative.
package gate

import (
	"bytes"
	"html/template"
	"io"
	"time"

	"github.com/ziadkadry99/cheatsheet/internal/auth"
)

// View is the one thing a gated page renders.
type View int

const (
	Loading View = iota
	SignIn
	Content
)

func (v View) String() string {
	switch v {
	case Loading:
		return "loading"
	case SignIn:
		return "signin"
	case Content:
		return "content"
	}
	return "unknown"
}

// Decide maps an auth state to the view. Anything not yet settled shows the
// loading indicator.
func Decide(s auth.State) View {
	switch s {
	case auth.Authenticated:
		return Content
	case auth.Anonymous:
		return SignIn
	default:
		return Loading
	}
}

// Prompt holds what the loading and sign-in views link to.
type Prompt struct {
	SignInURL string
	SignUpURL string
	// CycleID and CheckURL let the browser finish a pending cross-origin check.
	CycleID  string
	CheckURL string
	Timeout  time.Duration
}

// Gate renders gate views. It keeps no state between calls.
type Gate struct {
	tmpl *template.Template
}

func New() *Gate {
	return &Gate{tmpl: template.Must(template.New("gate").Parse(gateTemplate))}
}

type viewData struct {
	View      string
	Prompt    Prompt
	TimeoutMS int64
	Content   template.HTML
}

// Render writes exactly one of the loading indicator, the sign-in prompt
// or content, chosen by Decide(state).
func (g *Gate) Render(w io.Writer, state auth.State, p Prompt, content template.HTML) error {
	if Decide(state) == Content {
		_, err := io.WriteString(w, string(content))
		return err
	}
	return g.tmpl.Execute(w, viewData{
		View:      Decide(state).String(),
		Prompt:    p,
		TimeoutMS: p.Timeout.Milliseconds(),
	})
}

// Fragment is Render into a string.
func (g *Gate) Fragment(state auth.State, p Prompt, content template.HTML) template.HTML {
	var buf bytes.Buffer
	if err := g.Render(&buf, state, p, content); err != nil {
		return ""
	}
	return template.HTML(buf.String())
}

const gateTemplate = `{{if eq .View "loading"}}<div class="gate gate-loading" data-gate="loading" role="status"
     data-cycle="{{.Prompt.CycleID}}" data-check-url="{{.Prompt.CheckURL}}" data-timeout="{{.TimeoutMS}}">
  <div class="spinner" aria-hidden="true"></div>
  <p>Verifying your access...</p>
</div>{{else}}<div class="gate gate-signin" data-gate="signin">
  <h2>Access Required</h2>
  <p>You need to be logged in to Codeunia to access this content.</p>
  <a class="button button-primary" href="{{.Prompt.SignInURL}}">Sign In to Codeunia</a>
  {{- if .Prompt.SignUpURL}}
  <a class="button" href="{{.Prompt.SignUpURL}}">Create an account</a>
  {{- end}}
  <button type="button" class="button button-ghost" data-gate-refresh>Already logged in? Refresh</button>
</div>{{end}}`
