// Package rules holds the provider-page checkers and their rules.
package rules

import (
	"fmt"

	"github.com/dgallion1/doclint/internal/check"
	"github.com/dgallion1/doclint/internal/doctree"
	"github.com/dgallion1/doclint/internal/tree"
)

// Set is the configured collection of checkers.
type Set struct {
	FrontMatter *check.Checker
	Structure   *check.Checker
	Title       *check.Checker
	Example     *check.Checker
	Arguments   *check.Checker
	Attributes  *check.Checker
	Names       *check.Checker
	Formatting  *check.Checker
	Content     *check.Checker
}

func NewSet(cfg Config) (*Set, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("rule config: %w", err)
	}
	return &Set{
		FrontMatter: FrontMatterChecker(cfg),
		Structure:   StructureChecker(cfg),
		Title:       TitleChecker(cfg),
		Example:     ExampleChecker(cfg),
		Arguments:   ArgumentsChecker(cfg),
		Attributes:  AttributesChecker(cfg),
		Names:       NamesChecker(cfg),
		Formatting:  FormattingChecker(cfg),
		Content:     ContentChecker(cfg),
	}, nil
}

// newChecker drops disabled rules and filters disabled rule ids out of the rest.
func newChecker(name string, cfg Config, rules ...check.Rule) *check.Checker {
	c := &check.Checker{Name: name, Parallel: cfg.Parallel}
	for _, r := range rules {
		if cfg.disabled(name + "." + r.Name) {
			continue
		}
		if len(cfg.Disabled) > 0 {
			r = filtered(r, cfg)
		}
		c.Rules = append(c.Rules, r)
	}
	return c
}

func filtered(r check.Rule, cfg Config) check.Rule {
	inner := r.Check
	r.Check = func(ctx *check.Context) []check.CheckError {
		var out []check.CheckError
		for _, e := range inner(ctx) {
			if !cfg.disabled(e.RuleID) {
				out = append(out, e)
			}
		}
		return out
	}
	return r
}

// containsKind reports whether any block in blocks is or contains a node of kind k.
func containsKind(blocks []doctree.Block, k doctree.Kind) bool {
	for _, b := range blocks {
		if _, ok := tree.Find[doctree.Node](b, func(n doctree.Node) bool { return n.Kind() == k }); ok {
			return true
		}
	}
	return false
}
