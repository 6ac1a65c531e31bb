package rules

import (
	"regexp"
	"strings"

	"github.com/dgallion1/doclint/internal/check"
	"github.com/dgallion1/doclint/internal/doctree"
)

type Requirement int

const (
	RequirementUnknown Requirement = iota
	Required
	Optional
)

func (r Requirement) String() string {
	switch r {
	case Required:
		return "Required"
	case Optional:
		return "Optional"
	default:
		return "Unknown"
	}
}

// Argument is one parsed "`name` - (Required, Type, modifiers) description" item.
type Argument struct {
	Name        string
	Requirement Requirement
	Type        string
	Modifiers   []string
	Description string
	Item        *doctree.ListItem
}

// Attribute is one parsed "`name` - (modifiers) description" item.
type Attribute struct {
	Name        string
	Modifiers   []string
	Description string
	Item        *doctree.ListItem
}

type ArgumentList struct {
	Heading     *doctree.Heading
	Description string
	Items       []Argument
}

type AttributeList struct {
	Heading     *doctree.Heading
	Description string
	Items       []Attribute
}

// reference is a located Argument or Attribute Reference section.
type reference struct {
	heading     *doctree.Heading
	description *doctree.Paragraph
	items       []*doctree.ListItem
}

// locateReference finds the section heading, its first paragraph and the list
// items that follow it up to the next heading of level 2 or above.
func locateReference(ctx *check.Context, title string) (reference, bool) {
	h, ok := ctx.Document.FindHeading(2, title)
	if !ok {
		return reference{}, false
	}
	ref := reference{heading: h}
	body := ctx.Document.Body(h)
	for i, b := range body {
		switch v := b.(type) {
		case *doctree.Heading:
			return ref, true
		case *doctree.Paragraph:
			ref.description = v
			ref.items = listItems(body[i+1:])
			return ref, true
		}
	}
	return ref, true
}

func listItems(blocks []doctree.Block) []*doctree.ListItem {
	var out []*doctree.ListItem
	for _, b := range blocks {
		if l, ok := b.(*doctree.List); ok {
			out = append(out, l.Items...)
		}
	}
	return out
}

func referenceRule(title string) check.Rule {
	return check.Rule{Name: "Section", Check: func(ctx *check.Context) []check.CheckError {
		ref, ok := locateReference(ctx, title)
		if !ok {
			return []check.CheckError{
				ctx.Errorf("MissingHeading", "Heading '%s' is missing in document", title),
			}
		}
		if ref.description == nil {
			return []check.CheckError{
				ctx.Errorf("MissingDescription", "Description paragraph after '%s' heading is missing", title).At(ref.heading),
			}
		}
		if strings.TrimSpace(doctree.InlineText(ref.description)) == "" {
			return []check.CheckError{
				ctx.Errorf("EmptyDescription", "Description paragraph after '%s' heading is empty", title).At(ref.description),
			}
		}
		return nil
	}}
}

var bulletRe = regexp.MustCompile(`^[*+-]\s+`)

// splitItem breaks an item's first paragraph into its name, the parenthesised
// meta list and the trailing description.
func splitItem(li *doctree.ListItem) (name string, meta []string, desc string, ok bool) {
	p := firstParagraph(li.Blocks)
	if p == nil {
		return "", nil, "", false
	}
	text := strings.TrimSpace(doctree.InlineText(p))
	text = bulletRe.ReplaceAllString(text, "")

	name, rest, found := strings.Cut(text, " - ")
	if !found {
		return "", nil, "", false
	}
	name = strings.TrimSpace(strings.Trim(strings.TrimSpace(name), "`"))
	if name == "" {
		return "", nil, "", false
	}

	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, "(") {
		if end := strings.Index(rest, ")"); end > 0 {
			for _, tok := range strings.Split(rest[1:end], ",") {
				if tok = strings.TrimSpace(tok); tok != "" {
					meta = append(meta, tok)
				}
			}
			rest = strings.TrimSpace(rest[end+1:])
		}
	}
	return name, meta, rest, true
}

func parseArgument(li *doctree.ListItem) (Argument, bool) {
	name, meta, desc, ok := splitItem(li)
	if !ok {
		return Argument{}, false
	}
	a := Argument{Name: name, Description: desc, Item: li}
	for i, tok := range meta {
		switch {
		case i == 0 && strings.EqualFold(tok, "Required"):
			a.Requirement = Required
		case i == 0 && strings.EqualFold(tok, "Optional"):
			a.Requirement = Optional
		case i == 1 && a.Requirement != RequirementUnknown:
			a.Type = tok
		default:
			a.Modifiers = append(a.Modifiers, tok)
		}
	}
	return a, true
}

func parseAttribute(li *doctree.ListItem) (Attribute, bool) {
	name, meta, desc, ok := splitItem(li)
	if !ok {
		return Attribute{}, false
	}
	return Attribute{Name: name, Modifiers: meta, Description: desc, Item: li}, true
}

func itemsRule(title, kind string, parse func(*doctree.ListItem) bool) check.Rule {
	return check.Rule{Name: "Items", Check: func(ctx *check.Context) []check.CheckError {
		ref, ok := locateReference(ctx, title)
		if !ok {
			return nil
		}
		var errs []check.CheckError
		for _, li := range ref.items {
			if !parse(li) {
				errs = append(errs, ctx.Errorf("InvalidItem",
					"%s item must have the form '`name` - description'", kind).At(li))
			}
		}
		return errs
	}}
}

func ArgumentsChecker(cfg Config) *check.Checker {
	c := newChecker("Arguments", cfg,
		referenceRule(SectionArgumentReference),
		itemsRule(SectionArgumentReference, "Argument", func(li *doctree.ListItem) bool {
			_, ok := parseArgument(li)
			return ok
		}),
	)
	c.Payload = func(ctx *check.Context) any {
		ref, ok := locateReference(ctx, SectionArgumentReference)
		if !ok {
			return &ArgumentList{}
		}
		out := &ArgumentList{Heading: ref.heading, Description: descriptionText(ref)}
		for _, li := range ref.items {
			if a, ok := parseArgument(li); ok {
				out.Items = append(out.Items, a)
			}
		}
		return out
	}
	return c
}

func AttributesChecker(cfg Config) *check.Checker {
	c := newChecker("Attributes", cfg,
		referenceRule(SectionAttributeReference),
		itemsRule(SectionAttributeReference, "Attribute", func(li *doctree.ListItem) bool {
			_, ok := parseAttribute(li)
			return ok
		}),
	)
	c.Payload = func(ctx *check.Context) any {
		ref, ok := locateReference(ctx, SectionAttributeReference)
		if !ok {
			return &AttributeList{}
		}
		out := &AttributeList{Heading: ref.heading, Description: descriptionText(ref)}
		for _, li := range ref.items {
			if a, ok := parseAttribute(li); ok {
				out.Items = append(out.Items, a)
			}
		}
		return out
	}
	return c
}

func descriptionText(ref reference) string {
	if ref.description == nil {
		return ""
	}
	return strings.TrimSpace(doctree.InlineText(ref.description))
}
