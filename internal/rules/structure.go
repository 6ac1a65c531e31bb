package rules

import (
	"github.com/dgallion1/doclint/internal/check"
	"github.com/dgallion1/doclint/internal/doctree"
	"github.com/dgallion1/doclint/internal/mdast"
)

// StructureChecker verifies the required sections exist and appear in the
// configured order. Its payload is the section forest.
func StructureChecker(cfg Config) *check.Checker {
	c := newChecker("Structure", cfg, sectionOrderRule(cfg.RequiredSections))
	c.Payload = func(ctx *check.Context) any { return ctx.Document.Sections() }
	return c
}

type foundSection struct {
	section Section
	heading *doctree.Heading
}

// sectionOrderRule reports the first missing section and stops there. Only when
// every section is present are adjacent pairs compared by position.
func sectionOrderRule(sections []Section) check.Rule {
	return check.Rule{Name: "SectionOrder", Check: func(ctx *check.Context) []check.CheckError {
		found := make([]foundSection, 0, len(sections))
		for _, s := range sections {
			h, ok := findSection(ctx, s)
			if !ok {
				e := ctx.Errorf(s.Code, "Document is missing required %s", s.Description)
				e.NodeType = mdast.Document.String()
				return []check.CheckError{e}
			}
			found = append(found, foundSection{section: s, heading: h})
		}

		pos := headingPositions(ctx)
		var errs []check.CheckError
		for i := 0; i+1 < len(found); i++ {
			cur, next := found[i], found[i+1]
			if pos[cur.heading] >= pos[next.heading] {
				errs = append(errs, ctx.Errorf("InvalidSectionOrder",
					"Section order is incorrect. %s must come before %s",
					cur.section.name(), next.section.name()).At(cur.heading))
			}
		}
		return errs
	}}
}

func findSection(ctx *check.Context, s Section) (*doctree.Heading, bool) {
	if s.Text == "" {
		hs := ctx.Document.HeadingsByLevel(s.Level)
		if len(hs) == 0 {
			return nil, false
		}
		return hs[0], true
	}
	return ctx.Document.FindHeading(s.Level, s.Text)
}

func headingPositions(ctx *check.Context) map[*doctree.Heading]int {
	hs := ctx.Document.Headings()
	pos := make(map[*doctree.Heading]int, len(hs))
	for i, h := range hs {
		pos[h] = i
	}
	return pos
}
