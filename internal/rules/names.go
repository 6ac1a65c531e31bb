package rules

import (
	"github.com/dgallion1/doclint/internal/check"
	"github.com/dgallion1/doclint/internal/doctree"
)

// Inputs carrying the Arguments and Attributes payloads.
const (
	InputArguments  = "arguments"
	InputAttributes = "attributes"
)

// NamesChecker consumes the reference payloads and reports names declared
// twice in the same list. A stopped upstream checker leaves its input absent
// and that half is skipped.
func NamesChecker(cfg Config) *check.Checker {
	return newChecker("Names", cfg,
		check.Rule{Name: "Arguments", Check: func(ctx *check.Context) []check.CheckError {
			v, ok := ctx.Input(InputArguments)
			if !ok {
				return nil
			}
			list, ok := v.(*ArgumentList)
			if !ok {
				return nil
			}
			items := make([]namedItem, len(list.Items))
			for i, a := range list.Items {
				items[i] = namedItem{a.Name, a.Item}
			}
			return duplicates(ctx, "DuplicateArgument", "Argument", items)
		}},
		check.Rule{Name: "Attributes", Check: func(ctx *check.Context) []check.CheckError {
			v, ok := ctx.Input(InputAttributes)
			if !ok {
				return nil
			}
			list, ok := v.(*AttributeList)
			if !ok {
				return nil
			}
			items := make([]namedItem, len(list.Items))
			for i, a := range list.Items {
				items[i] = namedItem{a.Name, a.Item}
			}
			return duplicates(ctx, "DuplicateAttribute", "Attribute", items)
		}},
	)
}

type namedItem struct {
	name string
	item *doctree.ListItem
}

// Nested block lists legitimately reuse names, so duplicates are scoped to the
// enclosing list.
func duplicates(ctx *check.Context, code, kind string, items []namedItem) []check.CheckError {
	type key struct{ list, name string }
	seen := make(map[key]bool, len(items))
	var errs []check.CheckError
	for _, it := range items {
		k := key{it.item.ParentID(), it.name}
		if seen[k] {
			errs = append(errs, ctx.Errorf(code, "%s '%s' is declared more than once", kind, it.name).At(it.item))
			continue
		}
		seen[k] = true
	}
	return errs
}
