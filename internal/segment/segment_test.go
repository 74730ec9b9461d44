package segment

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func text(s string) Block    { return Block{Kind: KindText, Content: s} }
func diagram(s string) Block { return Block{Kind: KindDiagram, Content: s} }

func TestSegment(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Block
	}{
		{
			name: "no fences",
			in:   "Just text.",
			want: []Block{text("Just text.")},
		},
		{
			name: "no fences trims",
			in:   "\n\n  # Heading\n\nbody\n\n",
			want: []Block{text("# Heading\n\nbody")},
		},
		{
			name: "empty document",
			in:   "",
			want: []Block{text("")},
		},
		{
			name: "title diagram end",
			in:   "# Title\n\n``` mermaid\ngraph TD;\n A-->B;\n```\n\nEnd.",
			want: []Block{text("# Title"), diagram("graph TD;\n A-->B;"), text("End.")},
		},
		{
			name: "starts and ends with diagram",
			in:   "```mermaid\nA\n```",
			want: []Block{text(""), diagram("A"), text("")},
		},
		{
			name: "adjacent diagrams keep empty text",
			in:   "```mermaid\nA\n```\n\n```mermaid\nB\n```",
			want: []Block{text(""), diagram("A"), text(""), diagram("B"), text("")},
		},
		{
			name: "other code fences stay text",
			in:   "intro\n```go\nfmt.Println()\n```\nafter",
			want: []Block{text("intro\n```go\nfmt.Println()\n```\nafter")},
		},
		{
			name: "language tag must end",
			in:   "```mermaidx\nA\n```",
			want: []Block{text("```mermaidx\nA\n```")},
		},
		{
			name: "tag is case-insensitive",
			in:   "a\n```Mermaid\nB\n```\nc",
			want: []Block{text("a"), diagram("B"), text("c")},
		},
		{
			name: "nested in other fence is still a diagram",
			in:   "````md\n```mermaid\nX\n```\n````",
			want: []Block{text("````md"), diagram("X"), text("````")},
		},
		{
			name: "unterminated falls back to text",
			in:   "before\n```mermaid\ngraph LR\n",
			want: []Block{text("before\n```mermaid\ngraph LR")},
		},
		{
			name: "unterminated after a complete block",
			in:   "a\n```mermaid\nX\n```\nb\n```mermaid\nY",
			want: []Block{text("a"), diagram("X"), text("b\n```mermaid\nY")},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Segment(tc.in)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, 1, len(got)%2, "block count must be odd")
		})
	}
}

func TestSegmentThreePart(t *testing.T) {
	cases := [][3]string{
		{"A", "B", "C"},
		{"", "graph TD;\nx-->y", ""},
		{"para one\n\npara two", "sequenceDiagram\n  a->>b: hi", "- item\n- item"},
	}
	for _, c := range cases {
		doc := c[0] + "\n```mermaid\n" + c[1] + "\n```\n" + c[2]
		got := Segment(doc)
		require.Len(t, got, 3)
		assert.Equal(t, text(strings.TrimSpace(c[0])), got[0])
		assert.Equal(t, diagram(strings.TrimSpace(c[1])), got[1])
		assert.Equal(t, text(strings.TrimSpace(c[2])), got[2])
	}
}

func TestSegmentAlternates(t *testing.T) {
	doc := "x\n```mermaid\n1\n```\n```mermaid\n2\n```\ny\n```mermaid\n3\n```"
	got := Segment(doc)
	require.Len(t, got, 7)
	for i, b := range got {
		if i%2 == 0 {
			assert.Equal(t, KindText, b.Kind, "block %d", i)
		} else {
			assert.Equal(t, KindDiagram, b.Kind, "block %d", i)
		}
	}
}

func TestJoinReconstructs(t *testing.T) {
	docs := []string{
		"Just text.",
		"# Title\n\n```mermaid\ngraph TD;\n A-->B;\n```\n\nEnd.",
		"```mermaid\nA\n```\n```mermaid\nB\n```",
		"  lead  \n```mermaid\n  x  \n```\n  tail\n",
	}
	for _, doc := range docs {
		blocks := Segment(doc)
		rebuilt := Join(blocks, DefaultLang)
		assert.Equal(t, strings.Fields(doc), strings.Fields(rebuilt), "doc %q", doc)
		assert.Equal(t, blocks, Segment(rebuilt), "re-segmenting %q", doc)
	}
}

func TestUnterminatedPolicies(t *testing.T) {
	doc := "intro\n```mermaid\ngraph LR\n  a-->b\n"

	t.Run("diagram", func(t *testing.T) {
		got, err := New("", PolicyDiagram).Segment(doc)
		require.NoError(t, err)
		assert.Equal(t, []Block{text("intro"), diagram("graph LR\n  a-->b"), text("")}, got)
	})

	t.Run("error", func(t *testing.T) {
		_, err := New("", PolicyError).Segment(doc)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnterminatedFence))
		assert.Contains(t, err.Error(), "at byte 6")
	})

	t.Run("error policy ignores balanced documents", func(t *testing.T) {
		got, err := New("", PolicyError).Segment("a\n```mermaid\nb\n```\nc")
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})
}

func TestCustomLang(t *testing.T) {
	s := New("plantuml", PolicyText)
	got, err := s.Segment("a\n```plantuml\n@startuml\n```\n```mermaid\nx\n```")
	require.NoError(t, err)
	assert.Equal(t, []Block{text("a"), diagram("@startuml"), text("```mermaid\nx\n```")}, got)
}

func TestDiagrams(t *testing.T) {
	blocks := Segment("a\n```mermaid\n1\n```\nb\n```mermaid\n2\n```")
	assert.Equal(t, []Block{diagram("1"), diagram("2")}, Diagrams(blocks))
	assert.Nil(t, Diagrams(Segment("plain")))
}

func TestParsePolicy(t *testing.T) {
	for in, want := range map[string]UnterminatedPolicy{
		"":        PolicyText,
		"text":    PolicyText,
		"Diagram": PolicyDiagram,
		" ERROR ": PolicyError,
	} {
		got, err := ParsePolicy(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParsePolicy("explode")
	assert.Error(t, err)
}
