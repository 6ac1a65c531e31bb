package doctree

import (
	"strings"

	"github.com/dgallion1/doclint/internal/tree"
)

// PlainText concatenates the Text leaves under n, descending through links,
// emphasis and image alt text. Code spans and code blocks contribute nothing.
func PlainText(n Node) string {
	return writeText(n, false)
}

// InlineText is PlainText with code span contents included, for matching
// heading titles and list items that name identifiers in backticks.
func InlineText(n Node) string {
	return writeText(n, true)
}

func writeText(n Node, code bool) string {
	var b strings.Builder
	tree.Walk(n, func(n Node) bool {
		switch v := n.(type) {
		case *Text:
			b.WriteString(v.Content)
		case *CodeSpan:
			if code {
				b.WriteString(v.Code)
			}
			return false
		case *CodeBlock:
			return false
		}
		return true
	})
	return b.String()
}
