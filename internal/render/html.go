// Package render turns segmented markdown into HTML pages and terminal output.
package render

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strconv"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/mithrel/mdserve/internal/segment"
)

// Options configures the HTML renderer.
type Options struct {
	MermaidURL   string
	MermaidTheme string
	CodeStyle    string
	// Sanitize runs rendered text blocks through a UGC policy.
	Sanitize bool
	// LiveLinks adds a mermaid.live link under each diagram.
	LiveLinks bool
}

// HTML renders text blocks with goldmark and diagram blocks as mermaid
// elements hydrated in the browser.
type HTML struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	opts   Options
}

func NewHTML(opts Options) *HTML {
	if opts.CodeStyle == "" {
		opts.CodeStyle = "github"
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			emoji.Emoji,
			highlighting.NewHighlighting(
				highlighting.WithStyle(opts.CodeStyle),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false),
					chromahtml.TabWidth(4),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
		),
	)
	h := &HTML{md: md, opts: opts}
	if opts.Sanitize {
		p := bluemonday.UGCPolicy()
		p.AllowAttrs("class").Globally()
		p.AllowStyles("color", "background-color", "font-weight", "font-style", "text-decoration").Globally()
		h.policy = p
	}
	return h
}

// Text renders one markdown text block.
func (h *HTML) Text(src string) (template.HTML, error) {
	return h.text(src, newHeadingIDs())
}

func (h *HTML) text(src string, ids *headingIDs) (template.HTML, error) {
	var buf bytes.Buffer
	ctx := parser.NewContext(parser.WithIDs(ids))
	if err := h.md.Convert([]byte(src), &buf, parser.WithContext(ctx)); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	if h.policy != nil {
		return template.HTML(h.policy.SanitizeBytes(buf.Bytes())), nil
	}
	return template.HTML(buf.String()), nil
}

// Diagram renders the n-th diagram block (0-based) for mermaid.js.
func (h *HTML) Diagram(n int, src string) template.HTML {
	var b bytes.Buffer
	fmt.Fprintf(&b, `<figure class="diagram" id="diagram-%d">`, n)
	b.WriteString(`<pre class="mermaid">`)
	b.WriteString(html.EscapeString(src))
	b.WriteString(`</pre>`)
	if h.opts.LiveLinks {
		fmt.Fprintf(&b, `<figcaption><a href="/diagram/%d" target="_blank" rel="noopener">Open in mermaid.live</a></figcaption>`, n)
	}
	b.WriteString(`</figure>`)
	return template.HTML(b.String())
}

// Blocks renders every block in order. Heading ids are unique across the
// whole page and never collide with the diagram-N figure ids.
func (h *HTML) Blocks(blocks []segment.Block) ([]template.HTML, error) {
	ids := newHeadingIDs()
	for i := range segment.Diagrams(blocks) {
		ids.Put([]byte("diagram-" + strconv.Itoa(i)))
	}
	out := make([]template.HTML, 0, len(blocks))
	n := 0
	for _, blk := range blocks {
		switch blk.Kind {
		case segment.KindDiagram:
			out = append(out, h.Diagram(n, blk.Content))
			n++
		default:
			if blk.Content == "" {
				continue
			}
			s, err := h.text(blk.Content, ids)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
	}
	return out, nil
}
