package render

import (
	"html"
	"regexp"
	"strings"
)

// Rich documents may use a small set of component tags. They reach the HTML
// output verbatim (raw HTML passthrough) and are expanded here into plain markup.

var (
	calloutOpen    = regexp.MustCompile(`<Callout\b([^>]*)>`)
	calloutClose   = regexp.MustCompile(`</Callout\s*>`)
	tabsOpen       = regexp.MustCompile(`<Tabs\b[^>]*>`)
	tabsClose      = regexp.MustCompile(`</Tabs\s*>`)
	tabOpen        = regexp.MustCompile(`<Tab\b([^>]*)>`)
	tabClose       = regexp.MustCompile(`</Tab\s*>`)
	comparisonOpen = regexp.MustCompile(`<CodeComparison\b[^>]*>`)
	compareClose   = regexp.MustCompile(`</CodeComparison\s*>`)
	attrPattern    = regexp.MustCompile(`([A-Za-z_][\w-]*)\s*=\s*"([^"]*)"`)
)

var calloutTypes = map[string]bool{"info": true, "warning": true, "success": true, "error": true}

func expandShortcodes(s string) string {
	s = calloutOpen.ReplaceAllStringFunc(s, func(tag string) string {
		attrs := parseAttrs(calloutOpen.FindStringSubmatch(tag)[1])
		kind := attrs["type"]
		if !calloutTypes[kind] {
			kind = "info"
		}
		role := "note"
		if kind == "warning" || kind == "error" {
			role = "alert"
		}
		var b strings.Builder
		b.WriteString(`<div class="callout callout-` + kind + `" role="` + role + `">`)
		if title := attrs["title"]; title != "" {
			b.WriteString(`<div class="callout-title">` + html.EscapeString(title) + `</div>`)
		}
		b.WriteString(`<div class="callout-body">`)
		return b.String()
	})
	s = calloutClose.ReplaceAllString(s, `</div></div>`)

	s = tabsOpen.ReplaceAllString(s, `<div class="tabs">`)
	s = tabsClose.ReplaceAllString(s, `</div>`)
	s = tabOpen.ReplaceAllStringFunc(s, func(tag string) string {
		label := html.EscapeString(parseAttrs(tabOpen.FindStringSubmatch(tag)[1])["label"])
		return `<section class="tab" data-label="` + label + `"><div class="tab-label">` + label + `</div>`
	})
	s = tabClose.ReplaceAllString(s, `</section>`)

	s = comparisonOpen.ReplaceAllString(s, `<div class="code-comparison">`)
	return compareClose.ReplaceAllString(s, `</div>`)
}

func parseAttrs(s string) map[string]string {
	attrs := make(map[string]string)
	for _, m := range attrPattern.FindAllStringSubmatch(s, -1) {
		attrs[m[1]] = html.UnescapeString(m[2])
	}
	return attrs
}
