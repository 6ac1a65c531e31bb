package rules

import (
	"strings"

	"github.com/dgallion1/doclint/internal/check"
	"github.com/dgallion1/doclint/internal/doctree"
)

// TitleInfo is the Title checker's payload.
type TitleInfo struct {
	Heading     *doctree.Heading
	Text        string
	Description string
}

func TitleChecker(cfg Config) *check.Checker {
	rules := []check.Rule{{Name: "Heading", Check: checkTitleHeading}}
	if cfg.RequireTitleDescription {
		rules = append(rules, check.Rule{Name: "Description", Check: checkTitleDescription})
	}
	c := newChecker("Title", cfg, rules...)
	c.Payload = func(ctx *check.Context) any {
		t, ok := ctx.Document.Title()
		if !ok {
			return nil
		}
		info := &TitleInfo{Heading: t.Heading, Text: strings.TrimSpace(t.Text)}
		if p := titleDescription(ctx, t.Heading); p != nil {
			info.Description = strings.TrimSpace(doctree.InlineText(p))
		}
		return info
	}
	return c
}

// Absence of a title is left to the Structure checker.
func checkTitleHeading(ctx *check.Context) []check.CheckError {
	t, ok := ctx.Document.Title()
	if !ok {
		return nil
	}
	if strings.TrimSpace(doctree.PlainText(t.Heading)) == "" {
		return []check.CheckError{
			ctx.Errorf("EmptyTitle", "Level-1 heading (title) has empty text content").At(t.Heading),
		}
	}
	return nil
}

func checkTitleDescription(ctx *check.Context) []check.CheckError {
	t, ok := ctx.Document.Title()
	if !ok {
		return nil
	}
	p := titleDescription(ctx, t.Heading)
	if p == nil {
		return []check.CheckError{
			ctx.Errorf("MissingDescription", "Title description paragraph after H1 is missing").At(t.Heading),
		}
	}
	if strings.TrimSpace(doctree.InlineText(p)) == "" {
		return []check.CheckError{
			ctx.Errorf("EmptyDescription", "Title description paragraph after H1 is empty").At(p),
		}
	}
	return nil
}

// titleDescription is the first paragraph after the title and before any other heading.
func titleDescription(ctx *check.Context, h *doctree.Heading) *doctree.Paragraph {
	return firstParagraph(ctx.Document.Body(h))
}

func firstParagraph(blocks []doctree.Block) *doctree.Paragraph {
	for _, b := range blocks {
		switch v := b.(type) {
		case *doctree.Heading:
			return nil
		case *doctree.Paragraph:
			return v
		}
	}
	return nil
}
