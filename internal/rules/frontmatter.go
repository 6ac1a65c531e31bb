package rules

import (
	"regexp"
	"strings"

	"github.com/dgallion1/doclint/internal/business"
	"github.com/dgallion1/doclint/internal/check"
	"github.com/dgallion1/doclint/internal/mdast"
)

// FrontMatterChecker validates the metadata block. Its payload is the decoded
// key map, empty when the document has none.
func FrontMatterChecker(cfg Config) *check.Checker {
	fc := cfg.FrontMatter
	descRe := regexp.MustCompile(fc.DescriptionPattern)

	c := newChecker("FrontMatter", cfg,
		check.Rule{Name: "Presence", Check: func(ctx *check.Context) []check.CheckError {
			fm, ok := ctx.Document.FrontMatter()
			switch {
			case !ok && fc.Required:
				e := ctx.Errorf("Missing", "Front matter is missing")
				e.NodeType = mdast.Document.String()
				return []check.CheckError{e}
			case ok && fm.Malformed:
				return []check.CheckError{at(ctx.Errorf("Malformed", "Front matter could not be decoded"), fm)}
			}
			return nil
		}},
		check.Rule{Name: "Properties", Check: func(ctx *check.Context) []check.CheckError {
			fm, ok := ctx.Document.FrontMatter()
			if !ok || fm.Malformed {
				return nil
			}
			var errs []check.CheckError
			for _, k := range fc.Keys {
				if _, ok := fm.String(k); !ok {
					errs = append(errs, at(ctx.Errorf("MissingProperty", "Front matter is missing required property: %s", k), fm))
				}
			}
			if !fc.AllowExtra {
				if extra := extraKeys(fm, fc.Keys); len(extra) > 0 {
					errs = append(errs, at(ctx.Errorf("InvalidProperties",
						"Front matter contains properties that are not allowed: %s", strings.Join(extra, ", ")), fm))
				}
			}
			return errs
		}},
		check.Rule{Name: "Description", Check: func(ctx *check.Context) []check.CheckError {
			fm, ok := ctx.Document.FrontMatter()
			if !ok || fm.Malformed {
				return nil
			}
			desc, ok := fm.String("description")
			if !ok || descRe.MatchString(desc) {
				return nil
			}
			return []check.CheckError{at(ctx.Errorf("InvalidDescriptionFormat",
				"Front matter description must match %q", fc.DescriptionPattern), fm)}
		}},
	)
	c.Payload = func(ctx *check.Context) any {
		fm, ok := ctx.Document.FrontMatter()
		if !ok {
			return map[string]any{}
		}
		return fm.Values
	}
	return c
}

func at(e check.CheckError, fm *business.FrontMatter) check.CheckError {
	return e.AtNode(fm.NodeID, mdast.FrontMatter, fm.Range)
}

func extraKeys(fm *business.FrontMatter, allowed []string) []string {
	ok := make(map[string]bool, len(allowed))
	for _, k := range allowed {
		ok[k] = true
	}
	var extra []string
	for _, k := range fm.Keys() {
		if !ok[k] {
			extra = append(extra, k)
		}
	}
	return extra
}
