package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mithrel/mdserve/internal/segment"
)

const previewWidth = 60

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	diagramStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	textStyle    = lipgloss.NewStyle().Faint(true)
)

// Row is one block summarized for listing.
type Row struct {
	Index   int
	Kind    segment.Kind
	Lines   int
	Preview string
}

// Rows summarizes blocks in order.
func Rows(blocks []segment.Block) []Row {
	rows := make([]Row, len(blocks))
	for i, b := range blocks {
		lines := 0
		if b.Content != "" {
			lines = strings.Count(b.Content, "\n") + 1
		}
		rows[i] = Row{Index: i, Kind: b.Kind, Lines: lines, Preview: preview(b.Content)}
	}
	return rows
}

// preview returns the first line of s, shortened to previewWidth runes.
func preview(s string) string {
	first, _, _ := strings.Cut(s, "\n")
	first = strings.ReplaceAll(first, "\t", " ")
	r := []rune(first)
	if len(r) > previewWidth {
		return string(r[:previewWidth-1]) + "…"
	}
	return first
}

// WritePlainBlocks writes one aligned row per block: index, kind, line count
// and the first line of content.
func WritePlainBlocks(w io.Writer, blocks []segment.Block, headers bool) error {
	rows := Rows(blocks)
	idxW, kindW, linesW := len("#"), len("kind"), len("lines")
	for _, r := range rows {
		idxW = max(idxW, len(fmt.Sprint(r.Index)))
		kindW = max(kindW, len(r.Kind))
		linesW = max(linesW, len(fmt.Sprint(r.Lines)))
	}
	cell := func(st lipgloss.Style, width int, s string) string {
		return st.Width(width + 2).Render(s)
	}
	if headers {
		line := cell(headerStyle, idxW, "#") + cell(headerStyle, kindW, "kind") +
			cell(headerStyle, linesW, "lines") + headerStyle.Render("preview")
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	for _, r := range rows {
		kind := textStyle
		if r.Kind == segment.KindDiagram {
			kind = diagramStyle
		}
		line := cell(lipgloss.NewStyle(), idxW, fmt.Sprint(r.Index)) + cell(kind, kindW, string(r.Kind)) +
			cell(lipgloss.NewStyle(), linesW, fmt.Sprint(r.Lines)) + r.Preview
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}
