package mdast

import (
	"regexp"
	"sort"
	"strconv"
	"unicode/utf8"

	"github.com/dgallion1/doclint/internal/parser"
)

var frontMatterRe = regexp.MustCompile(`\A---[ \t]*\r?\n(?:(?s:(.*?))\r?\n)?---[ \t]*(?:\r?\n|\z)`)

// DetectFrontMatter matches a "---" fenced block at the very start of src.
// It returns the whole block including fences and the content between them.
func DetectFrontMatter(src string) (block, content string, ok bool) {
	m := frontMatterRe.FindStringSubmatchIndex(src)
	if m == nil {
		return "", "", false
	}
	block = src[m[0]:m[1]]
	if m[2] >= 0 {
		content = src[m[2]:m[3]]
	}
	return block, content, true
}

// Normalizer turns source text into a normalized tree using a Parser for the
// Markdown grammar. It holds no per-run state and is safe for concurrent use
// when the parser is.
type Normalizer struct {
	parser parser.Parser
}

func NewNormalizer(p parser.Parser) *Normalizer {
	return &Normalizer{parser: p}
}

var defaultNormalizer = NewNormalizer(parser.NewMarkdownParser())

// Normalize parses src with the goldmark-backed parser.
func Normalize(src, fileID string) *Node {
	return defaultNormalizer.Normalize(src, fileID)
}

// Normalize returns a DOCUMENT root spanning all of src. A leading front matter
// block becomes the root's first child and every other offset stays relative to
// src. It never fails; unparsable input yields a thin tree.
func (z *Normalizer) Normalize(src, fileID string) *Node {
	block, content, hasFM := DetectFrontMatter(src)
	body := src[len(block):]

	var root *Node
	if g := z.parser.Parse([]byte(body)); g != nil {
		root = convert(g)
	} else {
		root = &Node{}
	}
	root.Type = Document

	if hasFM {
		shift(root, len(block))
		fm := &Node{
			Type:    FrontMatter,
			Kind:    "FrontMatter",
			Text:    content,
			HasText: true,
			Range:   SourceRange{StartOffset: 0, EndOffset: len(block)},
			ranged:  true,
		}
		root.Children = append([]*Node{fm}, root.Children...)
	}

	root.FileID = fileID
	root.Range = SourceRange{StartOffset: 0, EndOffset: len(src)}
	root.ranged = true
	finish(root, src)
	return root
}

func convert(g *parser.Node) *Node {
	n := &Node{
		Type: mapKind(g),
		Kind: g.Kind,
		Attrs: Attrs{
			Level:       g.Level,
			Ordered:     g.Ordered,
			Start:       g.Start,
			Info:        g.Info,
			Destination: g.Destination,
			Title:       g.Title,
		},
	}
	if g.HasLiteral {
		n.Text = g.Literal
		n.HasText = true
	}
	if s, ok := g.Cover(); ok {
		n.Range = SourceRange{StartOffset: s.Offset, EndOffset: s.End()}
		n.ranged = true
	}
	for _, c := range g.Children {
		n.Children = append(n.Children, convert(c))
	}
	return n
}

func mapKind(g *parser.Node) NodeType {
	switch g.Kind {
	case "Document":
		return Document
	case "Heading":
		return Heading
	case "Paragraph", "TextBlock":
		return Paragraph
	case "Text", "String":
		return Text
	case "Emphasis":
		if g.Level >= 2 {
			return Strong
		}
		return Emphasis
	case "Link", "AutoLink":
		return Link
	case "Image":
		return Image
	case "List":
		return List
	case "ListItem":
		return ListItem
	case "CodeSpan":
		return Code
	case "FencedCodeBlock", "CodeBlock":
		return CodeBlock
	case "Blockquote":
		return BlockQuote
	case "ThematicBreak":
		return ThematicBreak
	case "Table":
		return Table
	case "TableHeader", "TableRow":
		return TableRow
	case "TableCell":
		return TableCell
	case "HTMLBlock":
		return HTMLBlock
	case "RawHTML":
		return HTMLInline
	}
	return Custom
}

// shift moves every ranged node below root by delta, breadth-first.
func shift(root *Node, delta int) {
	queue := []*Node{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if n.ranged {
			n.Range.StartOffset += delta
			n.Range.EndOffset += delta
		}
		queue = append(queue, n.Children...)
	}
}

// finish assigns pre-order ids, parent links and sibling indexes, gives
// unranged nodes an empty range at the preceding sibling's end (or the
// parent's start), and fills line, column and raw text.
func finish(root *Node, src string) {
	lines := newLineIndex(src)
	next := 0

	var visit func(n, parent *Node, index, cursor int)
	visit = func(n, parent *Node, index, cursor int) {
		n.ID = "n" + strconv.Itoa(next)
		next++
		n.parent = parent
		n.index = index

		if !n.ranged {
			n.Range.StartOffset, n.Range.EndOffset = cursor, cursor
		}
		n.Range.StartOffset = clamp(n.Range.StartOffset, 0, len(src))
		n.Range.EndOffset = clamp(n.Range.EndOffset, n.Range.StartOffset, len(src))
		n.Range.Line, n.Range.Column = lines.position(n.Range.StartOffset)
		n.Raw = src[n.Range.StartOffset:n.Range.EndOffset]

		c := n.Range.StartOffset
		for i, child := range n.Children {
			visit(child, n, i, c)
			if child.Range.EndOffset > c {
				c = child.Range.EndOffset
			}
		}
	}
	visit(root, nil, 0, 0)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

type lineIndex struct {
	src    string
	starts []int
}

func newLineIndex(src string) lineIndex {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return lineIndex{src: src, starts: starts}
}

// position returns the 1-based line and rune column of off.
func (l lineIndex) position(off int) (line, column int) {
	i := sort.Search(len(l.starts), func(i int) bool { return l.starts[i] > off }) - 1
	if i < 0 {
		i = 0
	}
	return i + 1, utf8.RuneCountInString(l.src[l.starts[i]:off]) + 1
}
