// Package pipeline wires parsing, model building and the checkers into a task
// graph per document and runs documents singly or in batches.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dgallion1/doclint/internal/business"
	"github.com/dgallion1/doclint/internal/check"
	"github.com/dgallion1/doclint/internal/mdast"
	"github.com/dgallion1/doclint/internal/rules"
	"golang.org/x/sync/errgroup"
)

// Task ids of the per-document graph.
const (
	TaskParse = "parse"
	TaskModel = "model"
)

const (
	outputAST      = "ast"
	outputDocument = "document"
	outputPayload  = "payload"
)

// Runner checks documents against one rule set.
type Runner struct {
	set     *rules.Set
	log     *slog.Logger
	workers int
	stats   *Stats
}

// New builds a runner. A nil logger discards output; workers below 1 means 1.
func New(cfg rules.Config, log *slog.Logger, workers int) (*Runner, error) {
	set, err := rules.NewSet(cfg)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Runner{set: set, log: log, workers: max(workers, 1), stats: NewStats(time.Hour)}, nil
}

// Stats aggregates the documents checked in the last hour.
func (r *Runner) Stats() StatsSnapshot { return r.stats.Snapshot() }

var defaultRunner = sync.OnceValues(func() (*Runner, error) {
	return New(rules.DefaultConfig(), nil, 1)
})

// Check runs the default rule set over text. A non-nil error is a wiring
// failure; content problems are returned as diagnostics.
func Check(text, fileID string) ([]check.CheckError, error) {
	r, err := defaultRunner()
	if err != nil {
		return nil, err
	}
	return r.Check(context.Background(), text, fileID)
}

// Graph wires the task graph for one document.
func (r *Runner) Graph(text, fileID string) (*Graph, error) {
	parse := &Task{
		ID:     TaskParse,
		Inputs: check.Inputs{check.InputSource: text, check.InputFileID: fileID},
		Run: func(_ context.Context, in check.Inputs) (Outcome, error) {
			src, _ := in.Get(check.InputSource)
			id, _ := in.Get(check.InputFileID)
			root := mdast.Normalize(src.(string), id.(string))
			return Outcome{Outputs: []Output{{outputAST, root}}}, nil
		},
	}
	model := &Task{
		ID:     TaskModel,
		Deps:   []string{TaskParse},
		Inputs: check.Inputs{check.InputAST: Ref{parse, outputAST}},
		Run: func(_ context.Context, in check.Inputs) (Outcome, error) {
			v, ok := in.Get(check.InputAST)
			if !ok {
				return Outcome{}, fmt.Errorf("%w %q", check.ErrMissingInput, check.InputAST)
			}
			return Outcome{Outputs: []Output{{outputDocument, business.FromAST(v.(*mdast.Node))}}}, nil
		},
	}

	base := func() check.Inputs {
		return check.Inputs{
			check.InputDocument: Ref{model, outputDocument},
			check.InputAST:      Ref{parse, outputAST},
			check.InputSource:   text,
			check.InputFileID:   fileID,
		}
	}
	tasks := []*Task{parse, model}
	byName := map[string]*Task{}
	for _, c := range []*check.Checker{
		r.set.FrontMatter, r.set.Structure, r.set.Title, r.set.Example,
		r.set.Arguments, r.set.Attributes, r.set.Formatting, r.set.Content,
	} {
		t := checkerTask(c, []string{TaskModel}, base())
		byName[c.Name] = t
		tasks = append(tasks, t)
	}

	in := base()
	in[rules.InputArguments] = Ref{byName[r.set.Arguments.Name], outputPayload}
	in[rules.InputAttributes] = Ref{byName[r.set.Attributes.Name], outputPayload}
	names := checkerTask(r.set.Names, []string{TaskModel, taskID(r.set.Arguments), taskID(r.set.Attributes)}, in)
	tasks = append(tasks, names)

	return NewGraph(tasks...)
}

func taskID(c *check.Checker) string { return strings.ToLower(c.Name) }

// checkerTask runs c and publishes its payload only when it did not stop.
func checkerTask(c *check.Checker, deps []string, in check.Inputs) *Task {
	return &Task{
		ID:     taskID(c),
		Deps:   deps,
		Inputs: in,
		Run: func(_ context.Context, in check.Inputs) (Outcome, error) {
			res, err := c.Run(in)
			if err != nil {
				return Outcome{}, err
			}
			out := Outcome{Errors: res.Errors, NeedStop: res.NeedStop}
			if !res.NeedStop {
				out.Outputs = []Output{{outputPayload, res.Payload}}
			}
			return out, nil
		},
	}
}

// Check runs the graph for one document and concatenates diagnostics in task
// order.
func (r *Runner) Check(ctx context.Context, text, fileID string) ([]check.CheckError, error) {
	start := time.Now()
	log := r.log.With("file_id", fileID)

	g, err := r.Graph(text, fileID)
	if err != nil {
		return nil, err
	}
	if err := g.Run(ctx); err != nil {
		return nil, err
	}

	diags := []check.CheckError{}
	var ids []string
	for _, id := range g.Order() {
		t, _ := g.Task(id)
		out, _ := t.Outcome()
		log.Debug("task finished", "task", id, "need_stop", out.NeedStop, "errors", len(out.Errors))
		diags = append(diags, out.Errors...)
		for _, e := range out.Errors {
			ids = append(ids, e.RuleID)
		}
	}
	elapsed := time.Since(start)
	r.stats.Record(elapsed, ids)
	log.Info("document checked", "errors", len(diags), "duration", elapsed)
	return diags, nil
}

// Describe renders the check graph without running it.
func (r *Runner) Describe() (string, error) {
	g, err := r.Graph("", "")
	if err != nil {
		return "", err
	}
	return g.Render(), nil
}

// Document is one input to a batch.
type Document struct {
	FileID  string
	Content string
}

// CheckBatch checks documents concurrently and returns reports in input
// order. The first wiring error cancels the rest.
func (r *Runner) CheckBatch(ctx context.Context, docs []Document) ([]Report, error) {
	reports := make([]Report, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, d := range docs {
		g.Go(func() error {
			diags, err := r.Check(gctx, d.Content, d.FileID)
			if err != nil {
				return fmt.Errorf("%s: %w", d.FileID, err)
			}
			reports[i] = NewReport(d.FileID, d.Content, diags)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
