package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgallion1/doclint/internal/check"
)

// Configuration errors. A graph that fails with one of these never runs.
var (
	ErrDuplicateTask     = errors.New("duplicate task id")
	ErrUnknownDependency = errors.New("unknown dependency")
	ErrCycle             = errors.New("dependency cycle")
)

// CycleError lists the tasks left unsorted by a cycle.
type CycleError struct {
	Tasks []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s among tasks %s", ErrCycle, strings.Join(e.Tasks, ", "))
}

func (e *CycleError) Unwrap() error { return ErrCycle }

// IsConfigError reports whether err is a wiring mistake rather than a
// runtime failure.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrDuplicateTask) ||
		errors.Is(err, ErrUnknownDependency) ||
		errors.Is(err, ErrCycle) ||
		errors.Is(err, check.ErrMissingInput)
}

// Output is one named value a task produces.
type Output struct {
	Name  string
	Value any
}

// Outcome is what a task run produced.
type Outcome struct {
	Outputs  []Output
	Errors   []check.CheckError
	NeedStop bool
}

// Task is one vertex of the graph. Inputs are wired before the graph runs;
// values produced upstream are passed as Refs.
type Task struct {
	ID     string
	Deps   []string
	Inputs check.Inputs
	Run    func(ctx context.Context, in check.Inputs) (Outcome, error)

	outcome Outcome
	ran     bool
}

// Outcome returns what the task produced, and false if it has not run.
func (t *Task) Outcome() (Outcome, bool) { return t.outcome, t.ran }

// Output returns the named output of a completed task.
func (t *Task) Output(name string) (any, bool) {
	if !t.ran {
		return nil, false
	}
	for _, o := range t.outcome.Outputs {
		if o.Name == name {
			return o.Value, true
		}
	}
	return nil, false
}

// Ref is an input resolved from an upstream task's output when read.
type Ref struct {
	Task *Task
	Name string
}

func (r Ref) Resolve() (any, bool) {
	if r.Task == nil {
		return nil, false
	}
	return r.Task.Output(r.Name)
}

// Graph is a validated, acyclic set of tasks with a fixed execution order.
type Graph struct {
	tasks      []*Task
	byID       map[string]*Task
	dependents map[string][]string
	order      []*Task
}

// NewGraph validates ids and dependencies and sorts the tasks. Ties are broken
// by declaration order.
func NewGraph(tasks ...*Task) (*Graph, error) {
	g := &Graph{
		tasks:      tasks,
		byID:       make(map[string]*Task, len(tasks)),
		dependents: make(map[string][]string, len(tasks)),
	}
	for _, t := range tasks {
		if _, dup := g.byID[t.ID]; dup {
			return nil, fmt.Errorf("task %q: %w", t.ID, ErrDuplicateTask)
		}
		g.byID[t.ID] = t
	}

	indeg := make(map[string]int, len(tasks))
	for _, t := range tasks {
		for _, d := range t.Deps {
			if _, ok := g.byID[d]; !ok {
				return nil, fmt.Errorf("task %q depends on %q: %w", t.ID, d, ErrUnknownDependency)
			}
			g.dependents[d] = append(g.dependents[d], t.ID)
			indeg[t.ID]++
		}
	}

	ready := make([]string, 0, len(tasks))
	for _, t := range tasks {
		if indeg[t.ID] == 0 {
			ready = append(ready, t.ID)
		}
	}
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		g.order = append(g.order, g.byID[id])
		for _, next := range g.dependents[id] {
			indeg[next]--
			if indeg[next] == 0 {
				ready = append(ready, next)
			}
		}
	}

	if len(g.order) != len(tasks) {
		cyc := &CycleError{}
		for _, t := range tasks {
			if indeg[t.ID] > 0 {
				cyc.Tasks = append(cyc.Tasks, t.ID)
			}
		}
		return nil, cyc
	}
	return g, nil
}

// Order returns task ids in execution order.
func (g *Graph) Order() []string {
	ids := make([]string, len(g.order))
	for i, t := range g.order {
		ids[i] = t.ID
	}
	return ids
}

func (g *Graph) Task(id string) (*Task, bool) {
	t, ok := g.byID[id]
	return t, ok
}

// Run executes every task once in order. A task error aborts the run. NeedStop
// is recorded but not enforced; wiring decides what a stopped task means.
func (g *Graph) Run(ctx context.Context) error {
	for _, t := range g.order {
		if err := ctx.Err(); err != nil {
			return err
		}
		if t.Run == nil {
			t.ran = true
			continue
		}
		out, err := t.Run(ctx, t.Inputs)
		if err != nil {
			return fmt.Errorf("task %s: %w", t.ID, err)
		}
		t.outcome, t.ran = out, true
	}
	return nil
}

// Render writes the graph as a node list followed by an edge list.
func (g *Graph) Render() string {
	var b strings.Builder
	b.WriteString("nodes:\n")
	for _, t := range g.order {
		fmt.Fprintf(&b, "  %s\n", t.ID)
	}
	b.WriteString("edges:\n")
	for _, t := range g.order {
		for _, d := range t.Deps {
			fmt.Fprintf(&b, "  %s -> %s\n", d, t.ID)
		}
	}
	return b.String()
}
