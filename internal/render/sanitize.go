package render

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var (
	scriptBlock   = regexp.MustCompile(`(?is)<script\b.*?</script\s*>`)
	iframeBlock   = regexp.MustCompile(`(?is)<iframe\b.*?</iframe\s*>`)
	danglingOpen  = regexp.MustCompile(`(?i)<(?:script|iframe)\b[^>]*>`)
	javascriptURI = regexp.MustCompile(`(?i)javascript:`)
)

// Sanitize strips script and iframe elements and javascript: URIs from raw
// markdown before it is rendered. Other embedded HTML is left alone.
// Stripping repeats until nothing changes, so a removal cannot splice
// together a new match.
func Sanitize(src string) string {
	for {
		out := stripOnce(src)
		if out == src {
			return out
		}
		src = out
	}
}

func stripOnce(src string) string {
	src = scriptBlock.ReplaceAllString(src, "")
	src = iframeBlock.ReplaceAllString(src, "")
	src = danglingOpen.ReplaceAllString(src, "")
	return javascriptURI.ReplaceAllString(src, "")
}

// strictPolicy is the allow-list applied to rendered HTML in strict mode.
// It keeps what the renderer itself emits: highlight classes, heading ids,
// self-links, task-list checkboxes and expanded shortcodes.
func strictPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("span", "div", "section")
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("role", "data-label").OnElements("div", "section")
	p.AllowAttrs("type", "checked", "disabled").OnElements("input")
	p.AllowElements("input")
	return p
}
