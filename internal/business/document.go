// Package business derives the provider-page view of a Standard document:
// title, front matter, the section forest and lookup indices.
package business

import (
	"net/url"
	"sort"
	"strings"

	"github.com/dgallion1/doclint/internal/doctree"
	"github.com/dgallion1/doclint/internal/mdast"
	"github.com/dgallion1/doclint/internal/tree"
)

// Title is the document's first level-1 heading.
type Title struct {
	Heading *doctree.Heading
	Text    string
}

// Document is built once per check run and never mutated afterwards. Lookups
// for missing keys return empty slices.
type Document struct {
	std         *doctree.Document
	title       *Title
	frontMatter *FrontMatter

	headings    []*doctree.Heading
	sections    []*Section
	byLevel     map[int][]*doctree.Heading
	anchors     map[string]*doctree.Heading
	codeByLang  map[string][]*doctree.CodeBlock
	linksByHost map[string][]*doctree.Link
}

// FromAST builds the Standard model and the business view from a normalized tree.
func FromAST(root *mdast.Node) *Document {
	fm, _ := FrontMatterOf(root)
	return Build(doctree.Build(root), fm)
}

// Build derives the business view of doc. fm may be nil.
func Build(doc *doctree.Document, fm *FrontMatter) *Document {
	if doc == nil {
		doc = &doctree.Document{}
	}
	d := &Document{std: doc, frontMatter: fm}
	d.headings = collectHeadings(doc)
	d.title = findTitle(d.headings)
	d.sections = Segment(d.headings)
	d.byLevel = groupByLevel(d.headings)
	d.anchors = indexAnchors(d.headings)
	d.codeByLang = indexCodeBlocks(doc)
	d.linksByHost = indexLinks(doc)
	return d
}

// walkBlocks visits blocks in document order, descending through lists, list
// items and block quotes but not into paragraph, heading or code content.
func walkBlocks(doc *doctree.Document, visit func(doctree.Block)) {
	tree.Walk[doctree.Node](doc, func(n doctree.Node) bool {
		switch v := n.(type) {
		case *doctree.Document:
			return true
		case *doctree.List, *doctree.ListItem, *doctree.BlockQuote:
			visit(v.(doctree.Block))
			return true
		case doctree.Block:
			visit(v)
		}
		return false
	})
}

func collectHeadings(doc *doctree.Document) []*doctree.Heading {
	var out []*doctree.Heading
	walkBlocks(doc, func(b doctree.Block) {
		if h, ok := b.(*doctree.Heading); ok {
			out = append(out, h)
		}
	})
	return out
}

func findTitle(headings []*doctree.Heading) *Title {
	for _, h := range headings {
		if h.Level == 1 {
			return &Title{Heading: h, Text: strings.TrimSpace(doctree.InlineText(h))}
		}
	}
	return nil
}

func groupByLevel(headings []*doctree.Heading) map[int][]*doctree.Heading {
	out := make(map[int][]*doctree.Heading)
	for _, h := range headings {
		out[h.Level] = append(out[h.Level], h)
	}
	return out
}

func indexAnchors(headings []*doctree.Heading) map[string]*doctree.Heading {
	out := make(map[string]*doctree.Heading)
	for _, h := range headings {
		slug := Slugify(doctree.PlainText(h))
		if slug == "" {
			continue
		}
		if _, taken := out[slug]; !taken {
			out[slug] = h
		}
	}
	return out
}

func indexCodeBlocks(doc *doctree.Document) map[string][]*doctree.CodeBlock {
	out := make(map[string][]*doctree.CodeBlock)
	walkBlocks(doc, func(b doctree.Block) {
		if c, ok := b.(*doctree.CodeBlock); ok {
			lang := strings.ToLower(c.Language)
			out[lang] = append(out[lang], c)
		}
	})
	return out
}

func indexLinks(doc *doctree.Document) map[string][]*doctree.Link {
	out := make(map[string][]*doctree.Link)
	walkBlocks(doc, func(b doctree.Block) {
		switch b.(type) {
		case *doctree.Paragraph, *doctree.Heading:
		default:
			return
		}
		tree.Walk[doctree.Node](b, func(n doctree.Node) bool {
			switch v := n.(type) {
			case *doctree.Paragraph, *doctree.Heading, *doctree.Emphasis, *doctree.Strong:
				return true
			case *doctree.Link:
				if host := hostOf(v.Destination); host != "" {
					out[host] = append(out[host], v)
				}
			}
			return false
		})
	})
	return out
}

// hostOf returns the lowercased host of an absolute destination, or "".
func hostOf(dest string) string {
	u, err := url.Parse(strings.TrimSpace(dest))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// Standard returns the underlying Standard document.
func (d *Document) Standard() *doctree.Document { return d.std }

func (d *Document) Title() (*Title, bool) { return d.title, d.title != nil }

func (d *Document) FrontMatter() (*FrontMatter, bool) { return d.frontMatter, d.frontMatter != nil }

// Headings lists every heading in document order, including nested ones.
func (d *Document) Headings() []*doctree.Heading { return cloneOrEmpty(d.headings) }

func (d *Document) Sections() []*Section { return cloneOrEmpty(d.sections) }

func (d *Document) HeadingsByLevel(level int) []*doctree.Heading {
	return cloneOrEmpty(d.byLevel[level])
}

// HeadingByAnchor resolves a slug to the first heading that produced it.
func (d *Document) HeadingByAnchor(slug string) (*doctree.Heading, bool) {
	h, ok := d.anchors[slug]
	return h, ok
}

// Anchors lists the indexed slugs in sorted order.
func (d *Document) Anchors() []string { return sortedKeys(d.anchors) }

// CodeBlocksByLanguage matches case-insensitively; "" selects blocks without a language.
func (d *Document) CodeBlocksByLanguage(lang string) []*doctree.CodeBlock {
	return cloneOrEmpty(d.codeByLang[strings.ToLower(lang)])
}

func (d *Document) Languages() []string { return sortedKeys(d.codeByLang) }

func (d *Document) LinksByHost(host string) []*doctree.Link {
	return cloneOrEmpty(d.linksByHost[strings.ToLower(host)])
}

func (d *Document) Hosts() []string { return sortedKeys(d.linksByHost) }

// FindHeading returns the first heading of the given level whose text matches
// title, ignoring case and surrounding space.
func (d *Document) FindHeading(level int, title string) (*doctree.Heading, bool) {
	want := strings.TrimSpace(title)
	for _, h := range d.byLevel[level] {
		if strings.EqualFold(strings.TrimSpace(doctree.InlineText(h)), want) {
			return h, true
		}
	}
	return nil, false
}

// Body returns the top-level blocks after h up to the next heading of the same
// or a higher rank. A heading nested in a list or quote has no body.
func (d *Document) Body(h *doctree.Heading) []doctree.Block {
	blocks := d.std.Blocks
	start := -1
	for i, b := range blocks {
		if b == doctree.Block(h) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return []doctree.Block{}
	}
	end := len(blocks)
	for i := start; i < len(blocks); i++ {
		if next, ok := blocks[i].(*doctree.Heading); ok && next.Level <= h.Level {
			end = i
			break
		}
	}
	return cloneOrEmpty(blocks[start:end])
}

func cloneOrEmpty[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
