package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/mdserve/internal/segment"
)

type indexedBlock struct {
	Index int `json:"index"`
	segment.Block
}

// WriteNDJSONBlocks writes blocks as newline-delimited JSON objects.
func WriteNDJSONBlocks(w io.Writer, blocks []segment.Block) error {
	enc := json.NewEncoder(w)
	for i, b := range blocks {
		if err := enc.Encode(indexedBlock{Index: i, Block: b}); err != nil {
			return err
		}
	}
	return nil
}
