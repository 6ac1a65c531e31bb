package doctree

import (
	"strings"

	"github.com/dgallion1/doclint/internal/mdast"
	"github.com/dgallion1/doclint/internal/parser"
)

// Build converts a normalized tree into a Standard Document. Front matter is
// not part of the Standard model. Kinds without a variant degrade: literal text
// becomes a paragraph (or a text inline), block children are spliced into the
// parent, and anything else is dropped.
func Build(root *mdast.Node) *Document {
	if root == nil {
		return &Document{}
	}
	doc := &Document{Base: base(root, "")}
	doc.Blocks = buildBlocks(root.Children, doc.NodeID)
	return doc
}

func base(n *mdast.Node, parent string) Base {
	return Base{NodeID: n.ID, Span: n.Range, Parent: parent}
}

func buildBlocks(nodes []*mdast.Node, parent string) []Block {
	var out []Block
	for _, n := range nodes {
		out = append(out, buildBlock(n, parent)...)
	}
	return out
}

func buildBlock(n *mdast.Node, parent string) []Block {
	switch n.Type {
	case mdast.FrontMatter:
		return nil

	case mdast.Heading:
		h := &Heading{Base: base(n, parent), Level: clampLevel(n.Attrs.Level)}
		h.Inlines = buildInlines(n.Children, h.NodeID)
		return []Block{h}

	case mdast.Paragraph:
		p := &Paragraph{Base: base(n, parent)}
		p.Inlines = buildInlines(n.Children, p.NodeID)
		return []Block{p}

	case mdast.List:
		l := &List{Base: base(n, parent), Ordered: n.Attrs.Ordered, Start: n.Attrs.Start}
		if l.Start < 1 {
			l.Start = 1
		}
		for _, c := range n.Children {
			if c.Type == mdast.ListItem {
				l.Items = append(l.Items, buildItem(c, l.NodeID))
			}
		}
		return []Block{l}

	case mdast.ListItem:
		return []Block{buildItem(n, parent)}

	case mdast.CodeBlock:
		return []Block{&CodeBlock{
			Base:     base(n, parent),
			Content:  n.Text,
			Language: strings.TrimSpace(n.Attrs.Info),
		}}

	case mdast.BlockQuote:
		q := &BlockQuote{Base: base(n, parent)}
		q.Blocks = buildBlocks(n.Children, q.NodeID)
		return []Block{q}

	case mdast.ThematicBreak:
		return []Block{&ThematicBreak{Base: base(n, parent)}}

	case mdast.HTMLBlock:
		if text := parser.HTMLText(n.Text); text != "" {
			return []Block{textParagraph(n, parent, text)}
		}
		return nil
	}

	if n.HasText && n.Text != "" {
		return []Block{textParagraph(n, parent, n.Text)}
	}
	if hasBlockChildren(n) {
		return buildBlocks(n.Children, parent)
	}
	return nil
}

func buildItem(n *mdast.Node, parent string) *ListItem {
	item := &ListItem{Base: base(n, parent)}
	item.Blocks = buildBlocks(n.Children, item.NodeID)
	return item
}

func textParagraph(n *mdast.Node, parent, text string) *Paragraph {
	p := &Paragraph{Base: base(n, parent)}
	p.Inlines = []Inline{&Text{
		Base:    Base{NodeID: n.ID + ".text", Span: n.Range, Parent: p.NodeID},
		Content: text,
	}}
	return p
}

func buildInlines(nodes []*mdast.Node, parent string) []Inline {
	var out []Inline
	for _, n := range nodes {
		out = append(out, buildInline(n, parent)...)
	}
	return out
}

func buildInline(n *mdast.Node, parent string) []Inline {
	switch n.Type {
	case mdast.Text:
		return []Inline{&Text{Base: base(n, parent), Content: n.Text}}

	case mdast.Code:
		return []Inline{&CodeSpan{Base: base(n, parent), Code: n.Text}}

	case mdast.Emphasis:
		e := &Emphasis{Base: base(n, parent)}
		e.Inlines = buildInlines(n.Children, e.NodeID)
		return []Inline{e}

	case mdast.Strong:
		s := &Strong{Base: base(n, parent)}
		s.Inlines = buildInlines(n.Children, s.NodeID)
		return []Inline{s}

	case mdast.Link:
		l := &Link{Base: base(n, parent), Destination: n.Attrs.Destination, Title: n.Attrs.Title}
		l.Inlines = buildInlines(n.Children, l.NodeID)
		return []Inline{l}

	case mdast.Image:
		img := &Image{Base: base(n, parent), Destination: n.Attrs.Destination, Title: n.Attrs.Title}
		img.Alt = buildInlines(n.Children, img.NodeID)
		return []Inline{img}

	case mdast.HTMLInline:
		if text := parser.HTMLText(n.Text); text != "" {
			return []Inline{&Text{Base: base(n, parent), Content: text}}
		}
		return nil
	}

	if n.HasText && n.Text != "" {
		return []Inline{&Text{Base: base(n, parent), Content: n.Text}}
	}
	return buildInlines(n.Children, parent)
}

func hasBlockChildren(n *mdast.Node) bool {
	for _, c := range n.Children {
		if !isInlineType(c.Type) {
			return true
		}
	}
	return false
}

func isInlineType(t mdast.NodeType) bool {
	switch t {
	case mdast.Text, mdast.Code, mdast.Emphasis, mdast.Strong, mdast.Link, mdast.Image, mdast.HTMLInline:
		return true
	}
	return false
}

func clampLevel(l int) int {
	if l < 1 {
		return 1
	}
	if l > 6 {
		return 6
	}
	return l
}
