package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/mdserve/internal/segment"
)

// Listing is the JSON shape of a segmented document.
type Listing struct {
	Path   string          `json:"path"`
	Hash   string          `json:"hash"`
	Blocks []segment.Block `json:"blocks"`
}

func WriteJSONBlocks(w io.Writer, l Listing, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(l)
}
