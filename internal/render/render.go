// Package render turns content documents into HTML for the cheatsheet pages.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"go.uber.org/zap"

	"github.com/ziadkadry99/cheatsheet/internal/content"
	"github.com/ziadkadry99/cheatsheet/internal/logging"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "github"

// Result is a rendered document.
type Result struct {
	HTML     template.HTML
	Headings []Heading
	Title    string // Text of the first h1, if any.
}

// Renderer holds one goldmark pipeline per document format.
type Renderer struct {
	plain  goldmark.Markdown
	rich   goldmark.Markdown
	style  string
	strict *bluemonday.Policy
	logger *zap.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithStyle selects the chroma highlighting style.
func WithStyle(name string) Option {
	return func(r *Renderer) {
		if name != "" {
			r.style = name
		}
	}
}

// WithStrictSanitize passes the output of both formats through an HTML
// allow-list, so rich documents get the same treatment as plain ones.
func WithStrictSanitize(on bool) Option {
	return func(r *Renderer) {
		if on {
			r.strict = strictPolicy()
		} else {
			r.strict = nil
		}
	}
}

// WithLogger sets the logger used for degraded renders.
func WithLogger(l *zap.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{style: DefaultStyle}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.OrNop(r.logger)

	formatOpts := highlighting.WithFormatOptions(chromahtml.WithClasses(true))

	r.plain = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(r.style),
				highlighting.WithGuessLanguage(true),
				formatOpts,
			),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	r.rich = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(r.style),
				formatOpts,
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	return r
}

// Render converts doc to HTML. It never fails: if conversion errors, the
// source is shown as preformatted text.
func (r *Renderer) Render(doc content.Document) Result {
	res, err := r.convert(doc)
	if err != nil {
		r.logger.Warn("render degraded",
			zap.String("file", doc.Path),
			zap.Error(err))
		return Result{
			HTML: template.HTML(`<pre class="render-fallback">` + template.HTMLEscapeString(doc.Text) + `</pre>`),
		}
	}
	return res
}

func (r *Renderer) convert(doc content.Document) (Result, error) {
	rich := doc.Format == content.FormatRich

	src := doc.Text
	md := r.rich
	if !rich {
		src = Sanitize(src)
		md = r.plain
	}
	source := []byte(src)

	root := md.Parser().Parse(text.NewReader(source))
	nodes := collectHeadings(root)
	headings := describeHeadings(nodes, source)
	if rich {
		wrapInSelfLinks(nodes)
	}

	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, source, root); err != nil {
		return Result{}, fmt.Errorf("rendering %s: %w", doc.Format, err)
	}

	out := buf.String()
	if rich {
		out = expandShortcodes(out)
	}
	if r.strict != nil {
		out = r.strict.Sanitize(out)
	}

	res := Result{HTML: template.HTML(out), Headings: headings}
	for _, h := range headings {
		if h.Level == 1 {
			res.Title = h.Text
			break
		}
	}
	return res, nil
}

// StyleCSS returns the stylesheet for highlighted code blocks.
func (r *Renderer) StyleCSS() string {
	var b strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&b, styles.Get(r.style)); err != nil {
		r.logger.Warn("writing highlight css", zap.Error(err))
	}
	return b.String()
}
