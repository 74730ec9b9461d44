package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark/ast"

	"github.com/mithrel/mdserve/internal/document"
	"github.com/mithrel/mdserve/internal/segment"
)

const sample = "# Title\n\n``` mermaid\ngraph TD;\n A-->B;\n```\n\nEnd with **bold** :smile:"

func TestPakoRoundTrip(t *testing.T) {
	src := "graph TD;\n A-->B;"
	p, err := Pako(src, "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p, "pako:"))
	assert.NotContains(t, p, "+")
	assert.NotContains(t, p, "/")

	got, err := DecodePako(p)
	require.NoError(t, err)
	assert.Equal(t, src, got)

	_, err = DecodePako("nope")
	assert.Error(t, err)
}

func TestURLs(t *testing.T) {
	live, err := LiveURL("graph LR\n a-->b", "dark")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(live, "https://mermaid.live/edit#pako:"))

	ink, err := InkURL("graph LR\n a-->b", "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ink, "https://mermaid.ink/svg/pako:"))
	assert.True(t, strings.HasSuffix(ink, "?theme=default"))
}

func TestHTMLText(t *testing.T) {
	h := NewHTML(Options{})
	out, err := h.Text("# Hi\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n~~gone~~ <span>raw</span>")
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, `<h1 id="hi">Hi</h1>`)
	assert.Contains(t, s, "<table>")
	assert.Contains(t, s, "<del>gone</del>")
	assert.Contains(t, s, "<span>raw</span>")
}

func TestHTMLSanitize(t *testing.T) {
	h := NewHTML(Options{Sanitize: true})
	out, err := h.Text("hello <script>alert(1)</script> <b onclick=\"x()\">there</b>")
	require.NoError(t, err)
	s := string(out)
	assert.NotContains(t, s, "<script>")
	assert.NotContains(t, s, "onclick")
	assert.Contains(t, s, "<b>there</b>")
}

func TestHTMLDiagramEscapes(t *testing.T) {
	h := NewHTML(Options{LiveLinks: true})
	out := string(h.Diagram(2, "graph TD;\n A-->B<br>;"))
	assert.Contains(t, out, `<figure class="diagram" id="diagram-2">`)
	assert.Contains(t, out, `<pre class="mermaid">graph TD;
 A--&gt;B&lt;br&gt;;</pre>`)
	assert.Contains(t, out, `href="/diagram/2"`)

	plain := string(NewHTML(Options{}).Diagram(0, "x"))
	assert.NotContains(t, plain, "mermaid.live")
}

func TestBlocksSkipsEmptyText(t *testing.T) {
	h := NewHTML(Options{})
	blocks := segment.Segment("```mermaid\nA\n```\n```mermaid\nB\n```")
	require.Len(t, blocks, 5)
	out, err := h.Blocks(blocks)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Contains(t, string(out[0]), `id="diagram-0"`)
	assert.Contains(t, string(out[1]), `id="diagram-1"`)
}

func TestBlocksHeadingIDsUniqueAcrossBlocks(t *testing.T) {
	h := NewHTML(Options{})
	blocks := segment.Segment("# Setup\n```mermaid\nA\n```\n# Setup\n\n## Diagram 0\n\n## Setup")
	out, err := h.Blocks(blocks)
	require.NoError(t, err)
	page := ""
	for _, o := range out {
		page += string(o)
	}
	assert.Equal(t, 1, strings.Count(page, `id="setup"`))
	assert.Contains(t, page, `<h1 id="setup-1">Setup</h1>`)
	assert.Contains(t, page, `<h2 id="setup-2">Setup</h2>`)
	assert.Equal(t, 1, strings.Count(page, `id="diagram-0"`))
	assert.Contains(t, page, `<h2 id="diagram-0-1">Diagram 0</h2>`)
}

func TestHeadingIDs(t *testing.T) {
	ids := newHeadingIDs()
	assert.Equal(t, "hello-world", string(ids.Generate([]byte("  Hello, World "), ast.KindHeading)))
	assert.Equal(t, "hello-world-1", string(ids.Generate([]byte("Hello World"), ast.KindHeading)))
	assert.Equal(t, "heading", string(ids.Generate([]byte("¿¡"), ast.KindHeading)))
	ids.Put([]byte("taken"))
	assert.Equal(t, "taken-1", string(ids.Generate([]byte("taken"), ast.KindHeading)))
}

func TestHTMLCodeHighlightInline(t *testing.T) {
	h := NewHTML(Options{})
	out, err := h.Text("```go\nfunc main() {\n\treturn\n}\n```")
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, `style="`)
	assert.NotContains(t, s, `class="chroma"`)
	assert.Contains(t, s, "tab-size: 4")
}

func TestPage(t *testing.T) {
	h := NewHTML(Options{MermaidURL: "https://example.test/mermaid.mjs", MermaidTheme: "forest"})
	doc := document.FromString("notes.md", sample)
	page, err := h.Page(doc, "", segment.Segment(doc.Source))
	require.NoError(t, err)
	s := string(page)
	assert.Contains(t, s, "<title>Title</title>")
	assert.Contains(t, s, `<pre class="mermaid">`)
	assert.Contains(t, s, "<strong>bold</strong>")
	assert.Contains(t, s, "mermaid.initialize")
	assert.Contains(t, s, "forest")
	assert.Contains(t, s, doc.ShortHash())

	noDiagrams, err := h.Page(document.FromString("a.md", "plain"), "Markdown Server", segment.Segment("plain"))
	require.NoError(t, err)
	assert.Contains(t, string(noDiagrams), "<title>Markdown Server</title>")
	assert.NotContains(t, string(noDiagrams), "mermaid.initialize")
}

func TestTerminalMarkdown(t *testing.T) {
	blocks := segment.Segment(sample)
	md, err := TerminalMarkdown(blocks, TerminalOptions{LiveLinks: true})
	require.NoError(t, err)
	assert.Contains(t, md, "```mermaid\ngraph TD;\n A-->B;\n```")
	assert.Contains(t, md, "*Diagram 1:* [open in mermaid.live](https://mermaid.live/edit#pako:")

	md, err = TerminalMarkdown(blocks, TerminalOptions{})
	require.NoError(t, err)
	assert.NotContains(t, md, "mermaid.live")
}

func TestTerminal(t *testing.T) {
	out, err := Terminal(segment.Segment(sample), TerminalOptions{Style: "notty", Width: 60})
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "A-->B;")
}
