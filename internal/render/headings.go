package render

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
)

// Heading is one heading of a rendered document.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	ID    string `json:"id"`
}

// TOCGroup is an h2 topic and the deeper headings that follow it.
type TOCGroup struct {
	Topic     Heading   `json:"topic"`
	Subtopics []Heading `json:"subtopics,omitempty"`
}

// TOC groups headings by h2 topic. Headings before the first h2 and h1
// headings are not part of the table of contents.
func TOC(headings []Heading) []TOCGroup {
	var groups []TOCGroup
	for _, h := range headings {
		switch {
		case h.Level == 2:
			groups = append(groups, TOCGroup{Topic: h})
		case h.Level > 2 && len(groups) > 0:
			last := &groups[len(groups)-1]
			last.Subtopics = append(last.Subtopics, h)
		}
	}
	return groups
}

// collectHeadings finds every heading node in document order.
func collectHeadings(doc ast.Node) []*ast.Heading {
	var out []*ast.Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			out = append(out, h)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return out
}

// describeHeadings reports the headings of doc. Headings without an id get
// a positional one so the table of contents can always link to them.
func describeHeadings(nodes []*ast.Heading, src []byte) []Heading {
	out := make([]Heading, 0, len(nodes))
	for i, h := range nodes {
		id := headingID(h)
		if id == "" {
			id = fmt.Sprintf("heading-%d", i)
			h.SetAttributeString("id", []byte(id))
		}
		out = append(out, Heading{Level: h.Level, Text: plainText(h, src), ID: id})
	}
	return out
}

// wrapInSelfLinks moves each heading's content into a link to its own id.
func wrapInSelfLinks(nodes []*ast.Heading) {
	for _, h := range nodes {
		id := headingID(h)
		if id == "" || h.FirstChild() == nil {
			continue
		}
		link := ast.NewLink()
		link.Destination = []byte("#" + id)
		link.SetAttributeString("class", []byte("heading-anchor"))
		for c := h.FirstChild(); c != nil; {
			next := c.NextSibling()
			h.RemoveChild(h, c)
			link.AppendChild(link, c)
			c = next
		}
		h.AppendChild(h, link)
	}
}

func headingID(h *ast.Heading) string {
	v, ok := h.AttributeString("id")
	if !ok {
		return ""
	}
	switch id := v.(type) {
	case []byte:
		return string(id)
	case string:
		return id
	}
	return ""
}

func plainText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		case *ast.AutoLink:
			b.Write(t.Label(src))
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
