package rules

import (
	"github.com/dgallion1/doclint/internal/check"
	"github.com/dgallion1/doclint/internal/doctree"
	"github.com/dgallion1/doclint/internal/tree"
)

// ExampleChecker requires a code block under Example Usage. The payload is the
// section's code blocks in document order.
func ExampleChecker(cfg Config) *check.Checker {
	c := newChecker("Example", cfg, check.Rule{Name: "CodeBlock", Check: checkExampleCode})
	c.Payload = func(ctx *check.Context) any {
		h, ok := ctx.Document.FindHeading(2, SectionExampleUsage)
		if !ok {
			return []*doctree.CodeBlock{}
		}
		return exampleBlocks(ctx.Document.Body(h))
	}
	return c
}

func checkExampleCode(ctx *check.Context) []check.CheckError {
	h, ok := ctx.Document.FindHeading(2, SectionExampleUsage)
	if !ok {
		return nil
	}
	if !containsKind(ctx.Document.Body(h), doctree.KindCodeBlock) {
		return []check.CheckError{
			ctx.Errorf("MissingCodeBlock", "'%s' section has no code block", SectionExampleUsage).At(h),
		}
	}
	return nil
}

func exampleBlocks(body []doctree.Block) []*doctree.CodeBlock {
	out := []*doctree.CodeBlock{}
	for _, b := range body {
		tree.Walk[doctree.Node](b, func(n doctree.Node) bool {
			if cb, ok := n.(*doctree.CodeBlock); ok {
				out = append(out, cb)
			}
			return true
		})
	}
	return out
}
