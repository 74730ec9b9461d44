//go:build ignore

// Writes a markdown document with a deterministic mix of text and mermaid
// blocks, for trying the server by hand:
//
//	go run scripts/generate_sample.go > sample.md
package main

import (
	"fmt"
	mrand "math/rand"
	"os"
	"strings"
)

var diagrams = []string{
	"graph TD;\n    A-->B;\n    A-->C;\n    B-->D;\n    C-->D;",
	"sequenceDiagram\n    participant Browser\n    participant mdserve\n    Browser->>mdserve: GET /\n    mdserve-->>Browser: page",
	"flowchart LR\n    read[Read file] --> split[Segment] --> render[Render] --> serve[Serve]",
	"pie title Blocks\n    \"text\" : 3\n    \"diagram\" : 2",
}

func main() {
	// Deterministic seed for reproducible output
	mr := mrand.New(mrand.NewSource(42))

	var b strings.Builder
	b.WriteString("# Sample document\n\n")
	for i := 0; i < 6; i++ {
		fmt.Fprintf(&b, "## Section %d\n\n", i+1)
		for p := 0; p < 1+mr.Intn(3); p++ {
			fmt.Fprintf(&b, "Paragraph %d.%d with **bold**, `code` and a [link](https://example.com/%d).\n\n", i+1, p+1, mr.Intn(100))
		}
		switch mr.Intn(3) {
		case 0:
			fmt.Fprintf(&b, "```mermaid\n%s\n```\n\n", diagrams[mr.Intn(len(diagrams))])
		case 1:
			b.WriteString("```go\nfmt.Println(\"not a diagram\")\n```\n\n")
		default:
			b.WriteString("| a | b |\n|---|---|\n| 1 | 2 |\n\n")
		}
	}
	// Two diagrams back to back produce an empty text block between them.
	fmt.Fprintf(&b, "```mermaid\n%s\n```\n```mermaid\n%s\n```\n", diagrams[0], diagrams[2])

	if _, err := os.Stdout.WriteString(b.String()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
