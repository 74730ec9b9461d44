package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/mithrel/mdserve/internal/document"
	"github.com/mithrel/mdserve/internal/segment"
)

//go:embed page.html.tmpl
var pageSource string

var pageTmpl = template.Must(template.New("page").Parse(pageSource))

type pageData struct {
	Title        string
	Blocks       []template.HTML
	HasDiagrams  bool
	MermaidURL   string
	MermaidTheme string
	Path         string
	Hash         string
}

// Page renders a complete HTML page for doc. An empty title falls back to
// the document's own title.
func (h *HTML) Page(doc *document.Document, title string, blocks []segment.Block) ([]byte, error) {
	rendered, err := h.Blocks(blocks)
	if err != nil {
		return nil, err
	}
	if title == "" {
		title = doc.Title()
	}
	data := pageData{
		Title:        title,
		Blocks:       rendered,
		HasDiagrams:  len(segment.Diagrams(blocks)) > 0,
		MermaidURL:   h.opts.MermaidURL,
		MermaidTheme: themeOrDefault(h.opts.MermaidTheme),
		Path:         doc.Path,
		Hash:         doc.ShortHash(),
	}
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}
