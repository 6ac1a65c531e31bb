package parser

// Span is one contiguous byte range of the parsed source.
type Span struct {
	Offset int
	Length int
}

// End returns the exclusive end offset.
func (s Span) End() int { return s.Offset + s.Length }

// Node is the engine-neutral parse tree handed to the normalizer.
// Kind carries the engine's own class name (e.g. "Heading", "FencedCodeBlock").
type Node struct {
	Kind     string
	Children []*Node

	// Literal is set for text-bearing kinds only.
	Literal    string
	HasLiteral bool

	Spans []Span

	Level       int    // heading level, emphasis delimiter count
	Ordered     bool   // lists
	Start       int    // ordered list start number
	Info        string // fenced code language
	Destination string // links, images
	Title       string // links, images
}

func (n *Node) setLiteral(s string) {
	n.Literal = s
	n.HasLiteral = true
}

// Cover returns the smallest span containing every span of n, and false if n has none.
func (n *Node) Cover() (Span, bool) {
	return cover(n.Spans)
}

// Parser turns Markdown source into a generic span tree. Implementations never fail:
// malformed input yields a thin tree.
type Parser interface {
	Parse(src []byte) *Node
}

func cover(spans []Span) (Span, bool) {
	if len(spans) == 0 {
		return Span{}, false
	}
	start, end := spans[0].Offset, spans[0].End()
	for _, s := range spans[1:] {
		if s.Offset < start {
			start = s.Offset
		}
		if s.End() > end {
			end = s.End()
		}
	}
	return Span{Offset: start, Length: end - start}, true
}
