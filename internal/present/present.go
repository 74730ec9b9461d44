package present

import (
	"context"
	"fmt"
	"io"

	"github.com/mithrel/mdserve/internal/document"
	"github.com/mithrel/mdserve/internal/present/format"
	"github.com/mithrel/mdserve/internal/present/tui"
	"github.com/mithrel/mdserve/internal/segment"
)

type Mode int

// Modes lists the accepted --output values.
var Modes = []string{"plain", "pretty", "json", "ndjson"}

const (
	ModePlain Mode = iota
	ModePretty
	ModeJSON
	ModeNDJSON
)

type Options struct {
	Mode       Mode
	JSONIndent bool
	Headers    bool
	Width      int
	// Style is the glamour style for ModePretty.
	Style string
}

// ParseMode parses "plain", "pretty", "json" or "ndjson".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "plain", "":
		return ModePlain, true
	case "pretty":
		return ModePretty, true
	case "json":
		return ModeJSON, true
	case "ndjson":
		return ModeNDJSON, true
	default:
		return ModePlain, false
	}
}

// RenderBlocks writes the segmentation of doc according to options.
func RenderBlocks(w io.Writer, doc *document.Document, blocks []segment.Block, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSONBlocks(w, format.Listing{Path: doc.Path, Hash: doc.Hash, Blocks: blocks}, opts.JSONIndent)
	case ModeNDJSON:
		return format.WriteNDJSONBlocks(w, blocks)
	case ModePretty:
		return format.WritePrettyBlocks(w, doc.Title(), blocks, opts.Width, opts.Style)
	case ModePlain:
		return format.WritePlainBlocks(w, blocks, opts.Headers)
	default:
		return fmt.Errorf("unknown output mode %d", opts.Mode)
	}
}

// View shows already rendered terminal output in a scrollable viewer.
func View(ctx context.Context, in io.Reader, out io.Writer, title, content string) error {
	return tui.View(ctx, in, out, title, content)
}
