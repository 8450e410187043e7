package gate

import (
	"html/template"
	"strings"
	"testing"
	"time"

	"github.com/ziadkadry99/cheatsheet/internal/auth"
)

const content = template.HTML(`<article id="cheatsheet">print("hi")</article>`)

var markers = map[View]string{
	Loading: "Verifying your access...",
	SignIn:  "Access Required",
	Content: `<article id="cheatsheet">`,
}

func TestDecide(t *testing.T) {
	tests := []struct {
		state auth.State
		want  View
	}{
		{auth.Unresolved, Loading},
		{auth.Resolving, Loading},
		{auth.Authenticated, Content},
		{auth.Anonymous, SignIn},
	}
	for _, tt := range tests {
		if got := Decide(tt.state); got != tt.want {
			t.Errorf("Decide(%s) = %s, want %s", tt.state, got, tt.want)
		}
	}
}

func TestRenderShowsExactlyOneView(t *testing.T) {
	g := New()
	p := Prompt{
		SignInURL: "https://codeunia.com/auth/signin?returnUrl=https%3A%2F%2Flearn.codeunia.com%2Fpython",
		SignUpURL: "https://codeunia.com/auth/signup",
		CycleID:   "c-1",
		CheckURL:  "https://codeunia.com/auth/check?origin=https%3A%2F%2Flearn.codeunia.com",
		Timeout:   5 * time.Second,
	}

	for _, state := range []auth.State{auth.Unresolved, auth.Resolving, auth.Authenticated, auth.Anonymous} {
		out := string(g.Fragment(state, p, content))
		want := Decide(state)

		shown := 0
		for view, marker := range markers {
			if strings.Contains(out, marker) {
				shown++
				if view != want {
					t.Errorf("state %s rendered %s view", state, view)
				}
			}
		}
		if shown != 1 {
			t.Errorf("state %s rendered %d views, want 1:\n%s", state, shown, out)
		}
	}
}

func TestContentIsUnmodified(t *testing.T) {
	out := New().Fragment(auth.Authenticated, Prompt{}, content)
	if out != content {
		t.Errorf("Fragment = %q, want %q", out, content)
	}
}

func TestSignInPrompt(t *testing.T) {
	p := Prompt{
		SignInURL: "https://codeunia.com/auth/signin?returnUrl=%2Fpython",
		SignUpURL: "https://codeunia.com/auth/signup",
	}
	out := string(New().Fragment(auth.Anonymous, p, content))

	for _, want := range []string{
		`href="https://codeunia.com/auth/signin?returnUrl=%2Fpython"`,
		`href="https://codeunia.com/auth/signup"`,
		"Already logged in? Refresh",
		"data-gate-refresh",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("sign-in prompt missing %q:\n%s", want, out)
		}
	}
}

func TestLoadingCarriesCheck(t *testing.T) {
	p := Prompt{CycleID: "abc", CheckURL: "https://codeunia.com/auth/check?origin=x", Timeout: 5 * time.Second}
	out := string(New().Fragment(auth.Resolving, p, content))

	for _, want := range []string{`data-cycle="abc"`, `data-timeout="5000"`, `data-check-url="https://codeunia.com/auth/check?origin=x"`} {
		if !strings.Contains(out, want) {
			t.Errorf("loading view missing %q:\n%s", want, out)
		}
	}
}
