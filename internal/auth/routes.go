package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// FragmentFunc renders the part of a gated page that depends on the state
// of c: the loading indicator, the sign-in prompt or the content.
type FragmentFunc func(r *http.Request, c *Cycle) string

// Middleware attaches a fresh load cycle to every request.
func (b *Bridge) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := b.NewCycle(r)
		next.ServeHTTP(w, r.WithContext(WithCycle(r.Context(), c)))
	})
}

// Finish applies the outcome of c to the response: it writes a freshly
// validated token, clears a stale cookie, and redirects away from a URL
// carrying a token. It reports whether it redirected, in which case the
// caller must not write a body.
func (b *Bridge) Finish(w http.ResponseWriter, r *http.Request, c *Cycle) bool {
	o := c.Outcome()
	switch {
	case o.Persist != "":
		b.cookies.WriteToken(w, o.Persist)
	case o.Clear:
		b.cookies.ClearToken(w)
	}
	if o.Strip || HasToken(r.URL) {
		http.Redirect(w, r, StripToken(r.URL).RequestURI(), http.StatusSeeOther)
		return true
	}
	return false
}

// RegisterRoutes mounts the auth endpoints on the given router.
func RegisterRoutes(r chi.Router, b *Bridge, links Links, fragment FragmentFunc) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Get("/set-token", handleSetTokenRedirect(b))
		r.Post("/set-token", handleSetToken(b))
		r.Get("/check", handleCheck(b))
		r.Post("/cycles/{id}/message", handleMessage(b))
		r.Get("/cycles/{id}", handlePoll(b, fragment))
	})
	r.Get("/auth/logout", handleLogout(b, links))
}

type cycleResponse struct {
	State State  `json:"state"`
	User  *User  `json:"user,omitempty"`
	HTML  string `json:"html,omitempty"`
}

func handleSetTokenRedirect(b *Bridge) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get(TokenParam)
		if token == "" {
			writeError(w, http.StatusBadRequest, "no token provided")
			return
		}

		user, err := b.platform.Validate(r.Context(), token)
		if err != nil {
			b.absorb(r.Context(), b.cycleOf(r), URLTokenStrategy{}, err)
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		b.cookies.WriteToken(w, token)
		b.sink.Record(r.Context(), Event{Kind: EventSignIn, User: &user, Detail: "callback"})
		http.Redirect(w, r, LocalPath(r.URL.Query().Get(ReturnParam)), http.StatusSeeOther)
	}
}

func handleSetToken(b *Bridge) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Token  string `json:"token"`
			Origin string `json:"origin"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if body.Origin != "" && !b.origins.Trusted(body.Origin) {
			b.sink.Record(r.Context(), Event{Kind: EventUntrustedMessage, Origin: body.Origin})
			writeError(w, http.StatusForbidden, "untrusted origin")
			return
		}
		if body.Token == "" {
			writeError(w, http.StatusBadRequest, "token required")
			return
		}

		user, err := b.platform.Validate(r.Context(), body.Token)
		if err != nil {
			b.absorb(r.Context(), b.cycleOf(r), URLTokenStrategy{}, err)
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		b.cookies.WriteToken(w, body.Token)
		b.sink.Record(r.Context(), Event{Kind: EventSignIn, User: &user, Origin: body.Origin, Detail: "side_channel"})
		writeJSON(w, http.StatusOK, map[string]any{"user": user})
	}
}

func handleCheck(b *Bridge) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := b.cycleOf(r)
		c.URLToken = ""
		b.Resolve(r.Context(), c)
		if o := c.Outcome(); o.Clear {
			b.cookies.ClearToken(w)
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"authenticated": c.State() == Authenticated,
			"user":          c.User(),
		})
	}
}

func handleMessage(b *Bridge) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := b.Lookup(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}

		var body struct {
			Origin string  `json:"origin"`
			Data   Message `json:"data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		if err := b.HandleMessage(r.Context(), c, body.Origin, body.Data); err != nil {
			if errors.Is(err, ErrUntrustedOrigin) {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		b.Wait(r.Context(), c)
		writeOutcome(w, b, c)
		writeJSON(w, http.StatusOK, cycleResponse{State: c.State(), User: c.User()})
	}
}

func handlePoll(b *Bridge, fragment FragmentFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := b.Lookup(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}

		state := b.Wait(r.Context(), c)
		writeOutcome(w, b, c)

		resp := cycleResponse{State: state, User: c.User()}
		if fragment != nil {
			resp.HTML = fragment(r, c)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleLogout(b *Bridge, links Links) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := b.cycleOf(r)
		c.URLToken = ""
		b.Resolve(r.Context(), c)
		b.Logout(r.Context(), c)
		b.cookies.ClearToken(w)
		http.Redirect(w, r, links.LogoutURL(), http.StatusSeeOther)
	}
}

// writeOutcome writes cookie changes for a cycle resolved outside the page
// request. Only a settled Authenticated cycle may persist a token.
func writeOutcome(w http.ResponseWriter, b *Bridge, c *Cycle) {
	o := c.Outcome()
	if o.Persist != "" && c.State() == Authenticated {
		b.cookies.WriteToken(w, o.Persist)
	}
}

// cycleOf returns the request's load cycle, starting one if no middleware
// attached it.
func (b *Bridge) cycleOf(r *http.Request) *Cycle {
	if c := FromContext(r.Context()); c != nil {
		return c
	}
	return b.NewCycle(r)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
