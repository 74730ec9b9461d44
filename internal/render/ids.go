package render

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/yuin/goldmark/ast"
)

// headingIDs is a goldmark parser.IDs shared by every text block of a page,
// so repeated headings in different blocks still get unique anchors.
type headingIDs struct {
	used map[string]bool
}

func newHeadingIDs() *headingIDs {
	return &headingIDs{used: map[string]bool{}}
}

// Generate slugs value the way goldmark's default does: ASCII letters and
// digits lowercased, spaces, '-' and '_' become '-', the rest is dropped.
// Taken slugs get a -1, -2, ... suffix.
func (h *headingIDs) Generate(value []byte, kind ast.NodeKind) []byte {
	var b strings.Builder
	for _, r := range strings.TrimSpace(string(value)) {
		switch {
		case r > unicode.MaxASCII:
		case 'A' <= r && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
		case 'a' <= r && r <= 'z', '0' <= r && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r), r == '-', r == '_':
			b.WriteByte('-')
		}
	}
	slug := b.String()
	if slug == "" {
		slug = "id"
		if kind == ast.KindHeading {
			slug = "heading"
		}
	}
	id := slug
	for i := 1; h.used[id]; i++ {
		id = slug + "-" + strconv.Itoa(i)
	}
	h.used[id] = true
	return []byte(id)
}

// Put reserves an id, e.g. one written explicitly as {#id}.
func (h *headingIDs) Put(value []byte) {
	h.used[string(value)] = true
}
