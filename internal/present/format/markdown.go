package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/mithrel/mdserve/internal/segment"
)

// DefaultPrettyStyle is used when WritePrettyBlocks gets no style.
const DefaultPrettyStyle = "dracula"

// WritePrettyBlocks renders the block summary as a markdown table using
// glamour. style is a glamour standard style name or "auto".
func WritePrettyBlocks(w io.Writer, title string, blocks []segment.Block, width int, style string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "%d blocks, %d diagrams\n\n", len(blocks), len(segment.Diagrams(blocks)))
	b.WriteString("| # | kind | lines | preview |\n|---|---|---|---|\n")
	for _, r := range Rows(blocks) {
		kind := string(r.Kind)
		if r.Kind == segment.KindDiagram {
			kind = "**" + kind + "**"
		}
		fmt.Fprintf(&b, "| %d | %s | %d | %s |\n", r.Index, kind, r.Lines, escapeCell(r.Preview))
	}

	styleOpt := glamour.WithStandardStyle(DefaultPrettyStyle)
	switch style = strings.ToLower(strings.TrimSpace(style)); style {
	case "":
	case "auto":
		styleOpt = glamour.WithAutoStyle()
	default:
		styleOpt = glamour.WithStandardStyle(style)
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := r.Render(b.String())
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "`", "'")
}
