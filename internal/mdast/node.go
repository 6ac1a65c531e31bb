// Package mdast normalizes a generic Markdown parse tree into a uniform node tree
// with stable ids, source ranges and raw text slices.
package mdast

// NodeType is the closed set of normalized node kinds. Anything the parser
// produces outside this set becomes Custom.
type NodeType int

const (
	Custom NodeType = iota
	Document
	FrontMatter
	Heading
	Paragraph
	Text
	Emphasis
	Strong
	Link
	Image
	List
	ListItem
	Code
	CodeBlock
	BlockQuote
	ThematicBreak
	Table
	TableRow
	TableCell
	HTMLInline
	HTMLBlock
)

var typeNames = [...]string{
	Custom:        "CUSTOM",
	Document:      "DOCUMENT",
	FrontMatter:   "FRONT_MATTER",
	Heading:       "HEADING",
	Paragraph:     "PARAGRAPH",
	Text:          "TEXT",
	Emphasis:      "EMPHASIS",
	Strong:        "STRONG",
	Link:          "LINK",
	Image:         "IMAGE",
	List:          "LIST",
	ListItem:      "LIST_ITEM",
	Code:          "CODE",
	CodeBlock:     "CODE_BLOCK",
	BlockQuote:    "BLOCK_QUOTE",
	ThematicBreak: "THEMATIC_BREAK",
	Table:         "TABLE",
	TableRow:      "TABLE_ROW",
	TableCell:     "TABLE_CELL",
	HTMLInline:    "HTML_INLINE",
	HTMLBlock:     "HTML_BLOCK",
}

func (t NodeType) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return typeNames[Custom]
	}
	return typeNames[t]
}

func (t NodeType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// SourceRange locates a node in the original text. Offsets are byte offsets,
// end exclusive. Line and Column are 1-based and describe the start; Column
// counts runes.
type SourceRange struct {
	StartOffset int `json:"start_offset"`
	EndOffset   int `json:"end_offset"`
	Line        int `json:"line"`
	Column      int `json:"column"`
}

func (r SourceRange) Len() int { return r.EndOffset - r.StartOffset }

// Attrs holds the per-kind properties carried over from the parser.
type Attrs struct {
	Level       int
	Ordered     bool
	Start       int
	Info        string
	Destination string
	Title       string
}

// Node is one normalized AST node. Children are owned; the parent link is a
// back-reference only.
type Node struct {
	ID    string
	Type  NodeType
	Kind  string // parser kind name, useful for Custom nodes
	Range SourceRange
	Raw   string // original text covered by Range

	// Text is the literal content of text-bearing kinds.
	Text    string
	HasText bool

	Attrs    Attrs
	Children []*Node

	// FileID is set on the DOCUMENT root only.
	FileID string

	parent *Node
	index  int
	ranged bool
}

func (n *Node) ChildNodes() []*Node { return n.Children }
func (n *Node) ParentNode() *Node   { return n.parent }
func (n *Node) SiblingIndex() int   { return n.index }

// ParentID returns the parent's id, or "" for the root.
func (n *Node) ParentID() string {
	if n.parent == nil {
		return ""
	}
	return n.parent.ID
}
