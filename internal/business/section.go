package business

import (
	"strings"

	"github.com/dgallion1/doclint/internal/doctree"
	"github.com/dgallion1/doclint/internal/mdast"
)

// Section is a heading plus the sections nested under it.
type Section struct {
	Heading  *doctree.Heading
	Children []*Section
}

func (s *Section) Level() int { return s.Heading.Level }

// Title is the heading text with code spans included.
func (s *Section) Title() string {
	return strings.TrimSpace(doctree.InlineText(s.Heading))
}

// Range is the heading's range; the body is not included.
func (s *Section) Range() mdast.SourceRange { return s.Heading.Range() }

// Segment nests headings into a section forest: a level-L heading goes under
// the nearest preceding heading with a level below L, or becomes a root.
func Segment(headings []*doctree.Heading) []*Section {
	type entry struct {
		section *Section
		level   int
	}

	var roots []*Section
	var stack []entry

	for _, h := range headings {
		// Pop until the top is a strict parent level.
		for len(stack) > 0 && stack[len(stack)-1].level >= h.Level {
			stack = stack[:len(stack)-1]
		}

		s := &Section{Heading: h}
		if len(stack) == 0 {
			roots = append(roots, s)
		} else {
			parent := stack[len(stack)-1].section
			parent.Children = append(parent.Children, s)
		}
		stack = append(stack, entry{section: s, level: h.Level})
	}
	return roots
}
