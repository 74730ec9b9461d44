// Package segment splits a markdown document into alternating text and
// diagram blocks.
package segment

import (
	"errors"
	"fmt"
	"strings"
)

const (
	fence       = "```"
	DefaultLang = "mermaid"
)

// ErrUnterminatedFence is returned under PolicyError when an opening diagram
// fence has no closing fence.
var ErrUnterminatedFence = errors.New("unterminated diagram fence")

type Kind string

const (
	KindText    Kind = "text"
	KindDiagram Kind = "diagram"
)

// Block is one contiguous unit of text or diagram source.
type Block struct {
	Kind    Kind   `json:"kind"`
	Content string `json:"content"`
}

// UnterminatedPolicy decides what happens to an opening fence that is never closed.
type UnterminatedPolicy string

const (
	// PolicyText leaves the dangling opener and everything after it as text.
	PolicyText UnterminatedPolicy = "text"
	// PolicyDiagram treats the remainder of the document as a diagram.
	PolicyDiagram UnterminatedPolicy = "diagram"
	// PolicyError fails with ErrUnterminatedFence.
	PolicyError UnterminatedPolicy = "error"
)

// ParsePolicy parses "text", "diagram" or "error" (case-insensitive).
func ParsePolicy(s string) (UnterminatedPolicy, error) {
	switch p := UnterminatedPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyText, PolicyDiagram, PolicyError:
		return p, nil
	case "":
		return PolicyText, nil
	default:
		return "", fmt.Errorf("unknown unterminated policy %q (want text, diagram or error)", s)
	}
}

// Segmenter scans documents for fenced diagram blocks tagged with Lang.
type Segmenter struct {
	Lang         string
	Unterminated UnterminatedPolicy
}

// New returns a Segmenter with the given language tag and policy; empty
// values fall back to the defaults.
func New(lang string, policy UnterminatedPolicy) *Segmenter {
	return &Segmenter{Lang: lang, Unterminated: policy}
}

// Segment splits doc with the default language tag and PolicyText.
func Segment(doc string) []Block {
	blocks, _ := New("", PolicyText).Segment(doc)
	return blocks
}

// Segment splits doc left to right. The result always starts and ends with a
// text block and alternates text, diagram, text, so its length is odd.
func (s *Segmenter) Segment(doc string) ([]Block, error) {
	lang := s.lang()
	blocks := make([]Block, 0, 1)
	inDiagram := false
	textStart := 0 // start of the pending text run
	pos := 0

	for pos <= len(doc) {
		if !inDiagram {
			open, body := findOpen(doc, pos, lang)
			if open < 0 {
				break
			}
			blocks = append(blocks, textBlock(doc[textStart:open]))
			inDiagram = true
			pos = body
			continue
		}

		rel := strings.Index(doc[pos:], fence)
		if rel < 0 {
			break
		}
		blocks = append(blocks, Block{Kind: KindDiagram, Content: strings.TrimSpace(doc[pos : pos+rel])})
		inDiagram = false
		pos += rel + len(fence)
		textStart = pos
	}

	if !inDiagram {
		return append(blocks, textBlock(doc[textStart:])), nil
	}

	// Reached the end inside an opened diagram block.
	switch s.policy() {
	case PolicyDiagram:
		blocks = append(blocks,
			Block{Kind: KindDiagram, Content: strings.TrimSpace(doc[pos:])},
			textBlock(""),
		)
		return blocks, nil
	case PolicyError:
		opener := strings.LastIndex(doc[:pos], fence)
		return nil, fmt.Errorf("%w at byte %d", ErrUnterminatedFence, opener)
	default:
		// Drop the text block emitted for the opener and keep the whole
		// remainder, opener included, as text.
		blocks = blocks[:len(blocks)-1]
		return append(blocks, textBlock(doc[textStart:])), nil
	}
}

func (s *Segmenter) lang() string {
	if s == nil || strings.TrimSpace(s.Lang) == "" {
		return DefaultLang
	}
	return strings.TrimSpace(s.Lang)
}

func (s *Segmenter) policy() UnterminatedPolicy {
	if s == nil || s.Unterminated == "" {
		return PolicyText
	}
	return s.Unterminated
}

// findOpen locates the next opening fence at or after from. It returns the
// fence offset and the offset just past the language tag, or -1.
func findOpen(doc string, from int, lang string) (int, int) {
	for from <= len(doc) {
		rel := strings.Index(doc[from:], fence)
		if rel < 0 {
			return -1, -1
		}
		at := from + rel
		i := at + len(fence)
		for i < len(doc) && (doc[i] == ' ' || doc[i] == '\t') {
			i++
		}
		end := i + len(lang)
		if end <= len(doc) && strings.EqualFold(doc[i:end], lang) && !isTagByte(doc, end) {
			return at, end
		}
		from = at + 1
	}
	return -1, -1
}

func isTagByte(doc string, i int) bool {
	if i >= len(doc) {
		return false
	}
	c := doc[i]
	return c == '-' || c == '_' ||
		('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func textBlock(s string) Block {
	return Block{Kind: KindText, Content: strings.TrimSpace(s)}
}

// Diagrams returns the diagram blocks in document order.
func Diagrams(blocks []Block) []Block {
	var out []Block
	for _, b := range blocks {
		if b.Kind == KindDiagram {
			out = append(out, b)
		}
	}
	return out
}

// Join rebuilds a markdown document from blocks using canonical fences.
// Empty text blocks contribute nothing but their separators.
func Join(blocks []Block, lang string) string {
	if strings.TrimSpace(lang) == "" {
		lang = DefaultLang
	}
	var b strings.Builder
	for i, blk := range blocks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch blk.Kind {
		case KindDiagram:
			b.WriteString(fence + lang + "\n")
			b.WriteString(blk.Content)
			b.WriteString("\n" + fence)
		default:
			b.WriteString(blk.Content)
		}
	}
	return b.String()
}
