package parser

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown source using goldmark with the GFM extensions
// (tables, strikethrough, task lists, linkify).
type MarkdownParser struct {
	md goldmark.Markdown
}

func NewMarkdownParser() *MarkdownParser {
	return &MarkdownParser{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

func (p *MarkdownParser) Parse(src []byte) *Node {
	doc := p.md.Parser().Parse(text.NewReader(src))
	root := convert(doc, src)
	locate(root, src, 0)
	return root
}

// convert copies a goldmark subtree into the generic form. Block spans come from
// the node's lines; inline containers cover their children.
func convert(n ast.Node, src []byte) *Node {
	out := &Node{Kind: n.Kind().String()}

	switch v := n.(type) {
	case *ast.Text:
		lit := string(v.Segment.Value(src))
		if v.SoftLineBreak() || v.HardLineBreak() {
			lit += "\n"
		}
		out.setLiteral(lit)
		out.Spans = []Span{segmentSpan(v.Segment)}
		return out

	case *ast.String:
		out.setLiteral(string(v.Value))
		return out

	case *ast.CodeSpan:
		// Leaf: the code text is the literal, the span covers the backtick runs.
		var b strings.Builder
		var spans []Span
		for c := v.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				b.Write(t.Segment.Value(src))
				spans = append(spans, segmentSpan(t.Segment))
			case *ast.String:
				b.Write(t.Value)
			}
		}
		out.setLiteral(b.String())
		if s, ok := cover(spans); ok {
			start, end := s.Offset, s.End()
			for start > 0 && src[start-1] == '`' {
				start--
			}
			for end < len(src) && src[end] == '`' {
				end++
			}
			out.Spans = []Span{{Offset: start, Length: end - start}}
		}
		return out

	case *ast.RawHTML:
		out.setLiteral(segmentsText(v.Segments, src))
		out.Spans = segmentSpans(v.Segments)
		return out

	case *ast.AutoLink:
		out.Destination = string(v.URL(src))
		out.Children = []*Node{{Kind: ast.KindText.String(), Literal: string(v.Label(src)), HasLiteral: true}}
		return out

	case *ast.Heading:
		out.Level = v.Level
	case *ast.Emphasis:
		out.Level = v.Level
	case *ast.List:
		out.Ordered = v.IsOrdered()
		out.Start = v.Start
	case *ast.Link:
		out.Destination = string(v.Destination)
		out.Title = string(v.Title)
	case *ast.Image:
		out.Destination = string(v.Destination)
		out.Title = string(v.Title)
	case *ast.FencedCodeBlock:
		out.Info = string(v.Language(src))
		out.setLiteral(segmentsText(v.Lines(), src))
		out.Spans = fenceSpans(v, src)
		return out
	case *ast.CodeBlock:
		out.setLiteral(segmentsText(v.Lines(), src))
		out.Spans = segmentSpans(v.Lines())
		return out
	case *ast.HTMLBlock:
		lit := segmentsText(v.Lines(), src)
		out.Spans = segmentSpans(v.Lines())
		if v.HasClosure() {
			lit += string(v.ClosureLine.Value(src))
			out.Spans = append(out.Spans, segmentSpan(v.ClosureLine))
		}
		out.setLiteral(lit)
		return out
	}

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		out.Children = append(out.Children, convert(c, src))
	}

	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		out.Spans = segmentSpans(n.Lines())
		if _, ok := n.(*ast.Heading); ok {
			out.Spans = headingSpans(out.Spans, src)
		}
		return out
	}

	var childSpans []Span
	for _, c := range out.Children {
		if s, ok := c.Cover(); ok {
			childSpans = append(childSpans, s)
		}
	}
	s, ok := cover(childSpans)
	if !ok {
		return out
	}
	start, end := s.Offset, s.End()
	switch v := n.(type) {
	case *ast.Emphasis:
		start, end = widenDelims(src, start, end, v.Level, "*_")
	case *east.Strikethrough:
		start, end = widenDelims(src, start, end, 2, "~")
	case *ast.Link:
		if start > 0 && src[start-1] == '[' {
			start--
		}
		end = linkTail(src, end)
	case *ast.Image:
		if start > 1 && src[start-2] == '!' && src[start-1] == '[' {
			start -= 2
		}
		end = linkTail(src, end)
	case *ast.List, *ast.ListItem, *ast.Blockquote:
		if first := firstNonBlank(src, lineStart(src, start)); first < start {
			start = first
		}
	}
	out.Spans = []Span{{Offset: start, Length: end - start}}
	return out
}

// headingSpans widens heading text to the whole heading: the '#' run for ATX
// headings, the underline for setext ones.
func headingSpans(spans []Span, src []byte) []Span {
	c, ok := cover(spans)
	if !ok {
		return spans
	}
	ls := lineStart(src, c.Offset)
	start := firstNonBlank(src, ls)
	if start > c.Offset {
		start = c.Offset
	}
	nl := lineEnd(src, c.End())
	end := trimRight(src, ls, nl)
	if start < len(src) && src[start] != '#' && nl < len(src) {
		end = trimRight(src, nl+1, lineEnd(src, nl+1))
	}
	if end < c.End() {
		end = c.End()
	}
	return []Span{{Offset: start, Length: end - start}}
}

// fenceSpans covers the opening fence, the content lines and the closing fence when present.
func fenceSpans(v *ast.FencedCodeBlock, src []byte) []Span {
	lines := segmentSpans(v.Lines())
	var open int
	switch {
	case len(lines) > 0:
		ls := lineStart(src, lines[0].Offset)
		if ls == 0 {
			return lines
		}
		open = lineStart(src, ls-1)
	case v.Info != nil:
		open = lineStart(src, v.Info.Segment.Start)
	default:
		return lines
	}

	openEnd := lineEnd(src, open)
	idx := bytes.IndexAny(src[open:openEnd], "`~")
	if idx < 0 {
		return lines
	}
	start := open + idx
	fence := src[start]

	end := openEnd
	next := openEnd + 1
	if len(lines) > 0 {
		end = lines[len(lines)-1].End()
		if end > 0 && src[end-1] == '\n' {
			next = end
			end--
		} else {
			next = lineEnd(src, end) + 1
		}
	}
	if next < len(src) {
		le := lineEnd(src, next)
		if bytes.Contains(src[next:le], []byte{fence, fence, fence}) {
			end = trimRight(src, next, le)
		}
	}
	return []Span{{Offset: start, Length: end - start}}
}

var thematicBreak = regexp.MustCompile(`^ {0,3}(?:(?:\*[ \t]*){3,}|(?:-[ \t]*){3,}|(?:_[ \t]*){3,})\r?$`)

// locate finds thematic breaks, which goldmark records without source lines, by
// scanning forward from the previous sibling's end.
func locate(n *Node, src []byte, from int) {
	cursor := from
	for i, child := range n.Children {
		if child.Kind == ast.KindThematicBreak.String() && len(child.Spans) == 0 {
			limit := len(src)
			for _, next := range n.Children[i+1:] {
				if c, ok := next.Cover(); ok {
					limit = c.Offset
					break
				}
			}
			if s, ok := findThematicBreak(src, cursor, limit); ok {
				child.Spans = []Span{s}
			}
		}
		locate(child, src, cursor)
		if c, ok := child.Cover(); ok {
			cursor = c.End()
		}
	}
}

func findThematicBreak(src []byte, from, limit int) (Span, bool) {
	ls := from
	if ls > 0 && ls <= len(src) && src[ls-1] != '\n' {
		ls = lineEnd(src, ls) + 1
	}
	for ls < limit && ls < len(src) {
		le := lineEnd(src, ls)
		if thematicBreak.Match(src[ls:le]) {
			start := firstNonBlank(src, ls)
			end := trimRight(src, ls, le)
			return Span{Offset: start, Length: end - start}, true
		}
		ls = le + 1
	}
	return Span{}, false
}

func segmentSpan(s text.Segment) Span {
	return Span{Offset: s.Start, Length: s.Stop - s.Start}
}

func segmentSpans(segs *text.Segments) []Span {
	if segs == nil {
		return nil
	}
	out := make([]Span, 0, segs.Len())
	for i := 0; i < segs.Len(); i++ {
		out = append(out, segmentSpan(segs.At(i)))
	}
	return out
}

func segmentsText(segs *text.Segments, src []byte) string {
	if segs == nil {
		return ""
	}
	var b strings.Builder
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		b.Write(seg.Value(src))
	}
	return b.String()
}

func widenDelims(src []byte, start, end, n int, delims string) (int, int) {
	for i := 0; i < n; i++ {
		if start > 0 && strings.IndexByte(delims, src[start-1]) >= 0 {
			start--
		}
		if end < len(src) && strings.IndexByte(delims, src[end]) >= 0 {
			end++
		}
	}
	return start, end
}

// linkTail extends a link's label end over "](dest)" or "][ref]".
func linkTail(src []byte, end int) int {
	if end >= len(src) || src[end] != ']' {
		return end
	}
	end++
	if end >= len(src) {
		return end
	}
	switch src[end] {
	case '(':
		depth := 0
		for i := end; i < len(src); i++ {
			switch src[i] {
			case '\\':
				i++
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 {
					return i + 1
				}
			}
		}
	case '[':
		if j := bytes.IndexByte(src[end:], ']'); j >= 0 {
			return end + j + 1
		}
	}
	return end
}

func lineStart(src []byte, off int) int {
	if off > len(src) {
		off = len(src)
	}
	return bytes.LastIndexByte(src[:off], '\n') + 1
}

func lineEnd(src []byte, off int) int {
	if off >= len(src) {
		return len(src)
	}
	if i := bytes.IndexByte(src[off:], '\n'); i >= 0 {
		return off + i
	}
	return len(src)
}

func firstNonBlank(src []byte, off int) int {
	for off < len(src) && (src[off] == ' ' || src[off] == '\t') {
		off++
	}
	return off
}

func trimRight(src []byte, from, to int) int {
	for to > from && (src[to-1] == ' ' || src[to-1] == '\t' || src[to-1] == '\r') {
		to--
	}
	return to
}
