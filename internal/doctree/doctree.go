// Package doctree holds the Standard document model: a closed set of block and
// inline variants built from the normalized AST.
package doctree

import "github.com/dgallion1/doclint/internal/mdast"

// Kind tags the Standard variants.
type Kind int

const (
	KindDocument Kind = iota
	KindHeading
	KindParagraph
	KindList
	KindListItem
	KindCodeBlock
	KindBlockQuote
	KindThematicBreak
	KindText
	KindCodeSpan
	KindEmphasis
	KindStrong
	KindLink
	KindImage
)

var kindNames = [...]string{
	KindDocument:      "Document",
	KindHeading:       "Heading",
	KindParagraph:     "Paragraph",
	KindList:          "List",
	KindListItem:      "ListItem",
	KindCodeBlock:     "CodeBlock",
	KindBlockQuote:    "BlockQuote",
	KindThematicBreak: "ThematicBreak",
	KindText:          "Text",
	KindCodeSpan:      "CodeSpan",
	KindEmphasis:      "Emphasis",
	KindStrong:        "Strong",
	KindLink:          "Link",
	KindImage:         "Image",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// Node is implemented by every Standard variant.
type Node interface {
	Kind() Kind
	ID() string
	Range() mdast.SourceRange
	ParentID() string
	ChildNodes() []Node
}

// Block is a block-level variant.
type Block interface {
	Node
	block()
}

// Inline is an inline variant.
type Inline interface {
	Node
	inline()
}

// Base carries the fields shared by all variants. NodeID is the id of the AST
// node the variant was built from; Parent is the id of the enclosing variant.
type Base struct {
	NodeID string
	Span   mdast.SourceRange
	Parent string
}

func (b Base) ID() string               { return b.NodeID }
func (b Base) Range() mdast.SourceRange { return b.Span }
func (b Base) ParentID() string         { return b.Parent }

type Document struct {
	Base
	Blocks []Block
}

type Heading struct {
	Base
	Level   int
	Inlines []Inline
}

type Paragraph struct {
	Base
	Inlines []Inline
}

type List struct {
	Base
	Ordered bool
	Start   int
	Items   []*ListItem
}

type ListItem struct {
	Base
	Blocks []Block
}

// CodeBlock is fenced or indented code. Language is "" when absent.
type CodeBlock struct {
	Base
	Content  string
	Language string
}

type BlockQuote struct {
	Base
	Blocks []Block
}

type ThematicBreak struct {
	Base
}

type Text struct {
	Base
	Content string
}

type CodeSpan struct {
	Base
	Code string
}

type Emphasis struct {
	Base
	Inlines []Inline
}

type Strong struct {
	Base
	Inlines []Inline
}

type Link struct {
	Base
	Destination string
	Title       string
	Inlines     []Inline
}

type Image struct {
	Base
	Destination string
	Title       string
	Alt         []Inline
}

func (*Document) Kind() Kind      { return KindDocument }
func (*Heading) Kind() Kind       { return KindHeading }
func (*Paragraph) Kind() Kind     { return KindParagraph }
func (*List) Kind() Kind          { return KindList }
func (*ListItem) Kind() Kind      { return KindListItem }
func (*CodeBlock) Kind() Kind     { return KindCodeBlock }
func (*BlockQuote) Kind() Kind    { return KindBlockQuote }
func (*ThematicBreak) Kind() Kind { return KindThematicBreak }
func (*Text) Kind() Kind          { return KindText }
func (*CodeSpan) Kind() Kind      { return KindCodeSpan }
func (*Emphasis) Kind() Kind      { return KindEmphasis }
func (*Strong) Kind() Kind        { return KindStrong }
func (*Link) Kind() Kind          { return KindLink }
func (*Image) Kind() Kind         { return KindImage }

func (*Document) block()      {}
func (*Heading) block()       {}
func (*Paragraph) block()     {}
func (*List) block()          {}
func (*ListItem) block()      {}
func (*CodeBlock) block()     {}
func (*BlockQuote) block()    {}
func (*ThematicBreak) block() {}

func (*Text) inline()     {}
func (*CodeSpan) inline() {}
func (*Emphasis) inline() {}
func (*Strong) inline()   {}
func (*Link) inline()     {}
func (*Image) inline()    {}

func (d *Document) ChildNodes() []Node    { return blocks(d.Blocks) }
func (h *Heading) ChildNodes() []Node     { return inlines(h.Inlines) }
func (p *Paragraph) ChildNodes() []Node   { return inlines(p.Inlines) }
func (l *ListItem) ChildNodes() []Node    { return blocks(l.Blocks) }
func (q *BlockQuote) ChildNodes() []Node  { return blocks(q.Blocks) }
func (e *Emphasis) ChildNodes() []Node    { return inlines(e.Inlines) }
func (s *Strong) ChildNodes() []Node      { return inlines(s.Inlines) }
func (l *Link) ChildNodes() []Node        { return inlines(l.Inlines) }
func (i *Image) ChildNodes() []Node       { return inlines(i.Alt) }
func (*CodeBlock) ChildNodes() []Node     { return nil }
func (*ThematicBreak) ChildNodes() []Node { return nil }
func (*Text) ChildNodes() []Node          { return nil }
func (*CodeSpan) ChildNodes() []Node      { return nil }

func (l *List) ChildNodes() []Node {
	out := make([]Node, len(l.Items))
	for i, it := range l.Items {
		out[i] = it
	}
	return out
}

func blocks(bs []Block) []Node {
	out := make([]Node, len(bs))
	for i, b := range bs {
		out[i] = b
	}
	return out
}

func inlines(is []Inline) []Node {
	out := make([]Node, len(is))
	for i, in := range is {
		out[i] = in
	}
	return out
}
