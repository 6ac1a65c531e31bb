// Package check runs named, ordered rule lists against one document and
// collects their diagnostics.
package check

import (
	"errors"
	"fmt"

	"github.com/dgallion1/doclint/internal/business"
	"github.com/dgallion1/doclint/internal/mdast"
	"golang.org/x/sync/errgroup"
)

// ErrMissingInput means a checker was wired without a required input.
var ErrMissingInput = errors.New("missing required input")

// ErrRulePanic wraps a panic raised inside a rule.
var ErrRulePanic = errors.New("rule panicked")

// Input names understood by every checker.
const (
	InputDocument = "document" // *business.Document, required
	InputAST      = "ast"      // *mdast.Node
	InputSource   = "source"   // string
	InputFileID   = "fileId"   // string
)

// Resolver is an input whose value is produced by another step. A false
// result means the value is absent.
type Resolver interface {
	Resolve() (any, bool)
}

// Inputs are the named values a checker runs with.
type Inputs map[string]any

// Get returns the named input, resolving deferred values.
func (in Inputs) Get(name string) (any, bool) {
	v, ok := in[name]
	if !ok || v == nil {
		return nil, false
	}
	if r, ok := v.(Resolver); ok {
		return r.Resolve()
	}
	return v, true
}

// Context is the read-only view every rule of one checker run shares.
type Context struct {
	Checker  string
	FileID   string
	Source   string
	AST      *mdast.Node
	Document *business.Document

	inputs Inputs
}

// Input returns a named input beyond the standard ones.
func (c *Context) Input(name string) (any, bool) {
	return c.inputs.Get(name)
}

// RuleID qualifies a code with the checker name.
func (c *Context) RuleID(code string) string {
	if c.Checker == "" {
		return code
	}
	return c.Checker + "." + code
}

func (c *Context) newError(code string, sev Severity, format string, args []any) CheckError {
	return CheckError{
		RuleID:   c.RuleID(code),
		Message:  fmt.Sprintf(format, args...),
		Severity: sev,
		FileID:   c.FileID,
	}
}

func (c *Context) Errorf(code, format string, args ...any) CheckError {
	return c.newError(code, SeverityError, format, args)
}

func (c *Context) Warnf(code, format string, args ...any) CheckError {
	return c.newError(code, SeverityWarning, format, args)
}

func (c *Context) Infof(code, format string, args ...any) CheckError {
	return c.newError(code, SeverityInfo, format, args)
}

// Rule inspects the context and reports violations. Rules do not see each
// other's results.
type Rule struct {
	Name  string
	Check func(*Context) []CheckError
}

// Checker is a named, ordered list of rules.
type Checker struct {
	Name  string
	Rules []Rule

	// Requires lists inputs needed besides the document.
	Requires []string

	// Payload builds the success output. Without it the business document is
	// passed on.
	Payload func(*Context) any

	// Parallel runs rules concurrently. Output order is unchanged.
	Parallel bool
}

// Result of one checker run. When Errors is non-empty NeedStop is set and
// there is no Payload.
type Result struct {
	Errors   []CheckError
	NeedStop bool
	Payload  any
}

// Run builds the context from in and runs every rule. A missing required input
// is a wiring error and is returned as an error wrapping ErrMissingInput. A
// panicking rule fails the run with an error wrapping ErrRulePanic.
func (c *Checker) Run(in Inputs) (Result, error) {
	ctx, err := c.newContext(in)
	if err != nil {
		return Result{}, err
	}

	errs, err := c.runRules(ctx)
	if err != nil {
		return Result{}, err
	}
	if len(errs) > 0 {
		return Result{Errors: errs, NeedStop: true}, nil
	}

	var payload any
	if c.Payload != nil {
		payload = c.Payload(ctx)
	}
	if payload == nil {
		payload = ctx.Document
	}
	return Result{Payload: payload}, nil
}

func (c *Checker) newContext(in Inputs) (*Context, error) {
	v, ok := in.Get(InputDocument)
	if !ok {
		return nil, fmt.Errorf("checker %s: %w %q", c.Name, ErrMissingInput, InputDocument)
	}
	doc, ok := v.(*business.Document)
	if !ok || doc == nil {
		return nil, fmt.Errorf("checker %s: %w %q (got %T)", c.Name, ErrMissingInput, InputDocument, v)
	}
	for _, name := range c.Requires {
		if _, ok := in.Get(name); !ok {
			return nil, fmt.Errorf("checker %s: %w %q", c.Name, ErrMissingInput, name)
		}
	}

	ctx := &Context{Checker: c.Name, Document: doc, inputs: in}
	if v, ok := in.Get(InputAST); ok {
		ctx.AST, _ = v.(*mdast.Node)
	}
	if v, ok := in.Get(InputSource); ok {
		ctx.Source, _ = v.(string)
	}
	if v, ok := in.Get(InputFileID); ok {
		ctx.FileID, _ = v.(string)
	}
	return ctx, nil
}

func (c *Checker) runRules(ctx *Context) ([]CheckError, error) {
	if !c.Parallel || len(c.Rules) < 2 {
		var out []CheckError
		for _, r := range c.Rules {
			errs, err := c.runRule(ctx, r)
			if err != nil {
				return nil, err
			}
			out = append(out, errs...)
		}
		return out, nil
	}

	results := make([][]CheckError, len(c.Rules))
	var g errgroup.Group
	for i, r := range c.Rules {
		g.Go(func() error {
			errs, err := c.runRule(ctx, r)
			results[i] = errs
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []CheckError
	for _, errs := range results {
		out = append(out, errs...)
	}
	return out, nil
}

// runRule turns a panicking rule into an error wrapping ErrRulePanic.
func (c *Checker) runRule(ctx *Context, r Rule) (errs []CheckError, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("rule %s.%s: %w: %v", c.Name, r.Name, ErrRulePanic, p)
		}
	}()
	return r.Check(ctx), nil
}
