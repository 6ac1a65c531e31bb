package rules

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/doclint/internal/check"
	"github.com/dgallion1/doclint/internal/doctree"
	"github.com/dgallion1/doclint/internal/mdast"
	"github.com/dgallion1/doclint/internal/tree"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	numberRe    = regexp.MustCompile(`\b(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?\b`)
	timestampRe = regexp.MustCompile(`\b(?:\d{4}-\d{2}-\d{2}(?:T\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:\d{2})?)?|\d{10,13})\b`)
)

// timestampWindow is how far around a number to look for a timestamp that
// contains it.
const timestampWindow = 30

// ContentChecker runs text rules over headings, paragraphs and list items.
func ContentChecker(cfg Config) *check.Checker {
	return newChecker("Content", cfg, check.Rule{Name: "Numbers", Check: checkNumbers})
}

// piece maps a range of rendered text back to the leaf it came from.
type piece struct {
	start, end int
	node       doctree.Inline
}

// render writes inline content with code spans in backticks, strong in "**"
// and emphasis in "*", so wrapping can be judged from the text alone.
func render(b *strings.Builder, pieces *[]piece, inlines []doctree.Inline) {
	for _, in := range inlines {
		tree.Visit[doctree.Node](in, func(n doctree.Node) bool {
			start := b.Len()
			switch v := n.(type) {
			case *doctree.Text:
				b.WriteString(v.Content)
				*pieces = append(*pieces, piece{start, b.Len(), v})
			case *doctree.CodeSpan:
				b.WriteString("`" + v.Code + "`")
				*pieces = append(*pieces, piece{start, b.Len(), v})
			case *doctree.Strong:
				b.WriteString("**")
			case *doctree.Emphasis:
				b.WriteString("*")
			}
			return true
		}, func(n doctree.Node) {
			switch n.(type) {
			case *doctree.Strong:
				b.WriteString("**")
			case *doctree.Emphasis:
				b.WriteString("*")
			}
		})
	}
}

func checkNumbers(ctx *check.Context) []check.CheckError {
	kinds := map[string]doctree.Kind{}
	section := ""
	var errs []check.CheckError
	tree.Walk[doctree.Node](ctx.Document.Standard(), func(n doctree.Node) bool {
		kinds[n.ID()] = n.Kind()
		var where string
		var inlines []doctree.Inline
		switch v := n.(type) {
		case *doctree.Heading:
			section = strings.TrimSpace(doctree.InlineText(v))
			where, inlines = fmt.Sprintf("heading '%s'", section), v.Inlines
		case *doctree.Paragraph:
			where = "paragraph"
			if kinds[v.ParentID()] == doctree.KindListItem {
				where = "list item"
			}
			if section != "" {
				where += fmt.Sprintf(" of section '%s'", section)
			}
			inlines = v.Inlines
		case *doctree.CodeBlock:
			return false
		default:
			return true
		}
		errs = append(errs, numberErrors(ctx, n, where, inlines)...)
		return false
	})
	return errs
}

func numberErrors(ctx *check.Context, block doctree.Node, where string, inlines []doctree.Inline) []check.CheckError {
	var b strings.Builder
	var pieces []piece
	render(&b, &pieces, inlines)
	text := b.String()

	var errs []check.CheckError
	for _, m := range numberRe.FindAllStringIndex(text, -1) {
		start, end := m[0], m[1]
		locate := func(e check.CheckError) check.CheckError { return e.At(block) }
		if p, ok := pieceAt(pieces, start); ok {
			if _, code := p.node.(*doctree.CodeSpan); code {
				continue
			}
			locate = func(e check.CheckError) check.CheckError {
				e = e.At(p.node)
				if r, ok := numberRange(p, start, end); ok {
					e.Range = &r
				}
				return e
			}
		}
		if inTimestamp(text, start, end) {
			continue
		}
		num := text[start:end]
		if wrappedIn(text, start, end, " \t", "`") || wrappedInBold(text, start, end) {
			continue
		}
		errs = append(errs, locate(ctx.Errorf("MissingBacktick",
			"Number '%s' in %s should be wrapped in backticks (``)", num, where)))
		if want, ok := thousands(num); ok {
			errs = append(errs, locate(ctx.Errorf("MissingThousandSeparator",
				"Number '%s' in %s should use thousand separators: '%s'", num, where, want)))
		}
	}
	return errs
}

func pieceAt(pieces []piece, off int) (piece, bool) {
	for _, p := range pieces {
		if off >= p.start && off < p.end {
			return p, true
		}
	}
	return piece{}, false
}

// numberRange narrows a Text leaf's range to the number at [start,end) of the
// rendered text. It only applies when the leaf maps one to one onto a single
// source line.
func numberRange(p piece, start, end int) (mdast.SourceRange, bool) {
	t, ok := p.node.(*doctree.Text)
	if !ok {
		return mdast.SourceRange{}, false
	}
	r := t.Range()
	content := strings.TrimSuffix(t.Content, "\n")
	if strings.Contains(content, "\n") || r.Len() != len(content) {
		return r, false
	}
	rel := start - p.start
	relEnd := min(end, p.start+len(content)) - p.start
	if rel < 0 || rel >= relEnd {
		return r, false
	}
	r.Column += utf8.RuneCountInString(content[:rel])
	r.StartOffset += rel
	r.EndOffset = r.StartOffset + relEnd - rel
	return r, true
}

// inTimestamp reports whether [start,end) lies inside a timestamp found in the
// surrounding window. Timestamps longer than the window can be missed.
func inTimestamp(text string, start, end int) bool {
	lo := max(0, start-timestampWindow)
	hi := min(len(text), end+timestampWindow)
	relStart, relEnd := start-lo, end-lo
	for _, ts := range timestampRe.FindAllStringIndex(text[lo:hi], -1) {
		if relStart >= ts[0] && relEnd <= ts[1] {
			return true
		}
	}
	return false
}

// wrappedIn reports whether the number is bracketed by mark on both sides,
// allowing the skip characters in between.
func wrappedIn(text string, start, end int, skip, mark string) bool {
	left := strings.TrimRight(text[:start], skip)
	right := strings.TrimLeft(text[end:], skip)
	return strings.HasSuffix(left, mark) && strings.HasPrefix(right, mark)
}

// wrappedInBold accepts runs like "** 1500 **" and "***1500***".
func wrappedInBold(text string, start, end int) bool {
	left := text[len(strings.TrimRight(text[:start], " \t*")):start]
	right := text[end : len(text)-len(strings.TrimLeft(text[end:], " \t*"))]
	return strings.Contains(left, "**") && strings.Contains(right, "**")
}

// thousands returns the separated form of a plain integer of four or more
// digits. Decimals and numbers that already carry separators are left alone.
func thousands(num string) (string, bool) {
	if strings.ContainsAny(num, ".,") {
		return "", false
	}
	n, err := strconv.ParseInt(num, 10, 64)
	if err != nil || n < 1000 {
		return "", false
	}
	want := message.NewPrinter(language.English).Sprintf("%d", n)
	return want, want != num
}
