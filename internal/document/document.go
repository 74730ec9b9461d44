// Package document loads the markdown file served by mdserve.
package document

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zeebo/blake3"
)

var ErrIsDirectory = errors.New("path is a directory")

// Document is the full markdown file content, read once.
type Document struct {
	Path    string
	Source  string
	ModTime time.Time
	// Hash is the hex BLAKE3 digest of Source.
	Hash string
}

// Read loads path fully into memory.
func Read(path string) (*Document, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("read markdown file: %w", err)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("read markdown file %s: %w", path, ErrIsDirectory)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read markdown file: %w", err)
	}
	return &Document{
		Path:    path,
		Source:  string(b),
		ModTime: fi.ModTime(),
		Hash:    Hash(b),
	}, nil
}

// FromString wraps in-memory markdown, e.g. for tests or stdin.
func FromString(name, src string) *Document {
	return &Document{Path: name, Source: src, ModTime: time.Now(), Hash: Hash([]byte(src))}
}

// Hash returns the hex BLAKE3 digest of b.
func Hash(b []byte) string {
	sum := blake3.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// ShortHash is the first 12 hex digits of Hash.
func (d *Document) ShortHash() string {
	if len(d.Hash) < 12 {
		return d.Hash
	}
	return d.Hash[:12]
}

// Title returns the text of the first level-one ATX heading outside code
// fences, falling back to the file base name.
func (d *Document) Title() string {
	inFence := false
	for _, line := range strings.Split(d.Source, "\n") {
		trim := strings.TrimSpace(line)
		if strings.HasPrefix(trim, "```") || strings.HasPrefix(trim, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if strings.HasPrefix(trim, "# ") {
			if t := strings.TrimSpace(strings.TrimRight(trim[2:], "#")); t != "" {
				return t
			}
		}
	}
	base := filepath.Base(d.Path)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return base
}
