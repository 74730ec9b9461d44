package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/mithrel/mdserve/internal/segment"
)

// TerminalOptions configures Terminal.
type TerminalOptions struct {
	// Style is a glamour standard style name or "auto".
	Style string
	// Width is the word wrap column; 0 disables wrapping.
	Width int
	// Lang is the fence tag used when printing diagram source.
	Lang         string
	LiveLinks    bool
	MermaidTheme string
}

// TerminalMarkdown rebuilds blocks as one markdown document for a terminal,
// printing each diagram as a fenced code block with an optional editor link.
func TerminalMarkdown(blocks []segment.Block, opts TerminalOptions) (string, error) {
	lang := opts.Lang
	if lang == "" {
		lang = segment.DefaultLang
	}
	parts := make([]string, 0, len(blocks))
	n := 0
	for _, blk := range blocks {
		if blk.Kind != segment.KindDiagram {
			if blk.Content != "" {
				parts = append(parts, blk.Content)
			}
			continue
		}
		part := fmt.Sprintf("```%s\n%s\n```", lang, blk.Content)
		if opts.LiveLinks {
			u, err := LiveURL(blk.Content, opts.MermaidTheme)
			if err != nil {
				return "", err
			}
			part += fmt.Sprintf("\n\n*Diagram %d:* [open in mermaid.live](%s)", n+1, u)
		}
		parts = append(parts, part)
		n++
	}
	return strings.Join(parts, "\n\n") + "\n", nil
}

// Terminal renders blocks with glamour.
func Terminal(blocks []segment.Block, opts TerminalOptions) (string, error) {
	md, err := TerminalMarkdown(blocks, opts)
	if err != nil {
		return "", err
	}
	ropts := []glamour.TermRendererOption{glamour.WithWordWrap(opts.Width)}
	switch strings.ToLower(strings.TrimSpace(opts.Style)) {
	case "", "auto":
		ropts = append(ropts, glamour.WithAutoStyle())
	default:
		ropts = append(ropts, glamour.WithStandardStyle(opts.Style))
	}
	r, err := glamour.NewTermRenderer(ropts...)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
