package pipeline

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/dgallion1/doclint/internal/check"
)

func recordingTask(id string, log *[]string, deps ...string) *Task {
	return &Task{ID: id, Deps: deps, Run: func(context.Context, check.Inputs) (Outcome, error) {
		*log = append(*log, id)
		return Outcome{Outputs: []Output{{Name: "id", Value: id}}}, nil
	}}
}

func TestGraph_LinearChain(t *testing.T) {
	var ran []string
	g, err := NewGraph(
		recordingTask("C", &ran, "B"),
		recordingTask("A", &ran),
		recordingTask("B", &ran, "A"),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := g.Order(); !slices.Equal(got, []string{"A", "B", "C"}) {
		t.Errorf("expected order [A B C], got %v", got)
	}
	if err := g.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(ran, []string{"A", "B", "C"}) {
		t.Errorf("expected execution [A B C], got %v", ran)
	}
}

func TestGraph_DeclarationOrderBreaksTies(t *testing.T) {
	var ran []string
	g, err := NewGraph(
		recordingTask("root", &ran),
		recordingTask("z", &ran, "root"),
		recordingTask("a", &ran, "root"),
		recordingTask("join", &ran, "a", "z"),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := g.Order(); !slices.Equal(got, []string{"root", "z", "a", "join"}) {
		t.Errorf("expected declaration order among ready tasks, got %v", got)
	}
}

func TestGraph_UnknownDependency(t *testing.T) {
	var ran []string
	_, err := NewGraph(recordingTask("A", &ran), recordingTask("B", &ran, "X"))
	if !errors.Is(err, ErrUnknownDependency) {
		t.Fatalf("expected ErrUnknownDependency, got %v", err)
	}
	if !IsConfigError(err) {
		t.Error("expected a configuration error")
	}
	if len(ran) != 0 {
		t.Errorf("expected no task to run, got %v", ran)
	}
}

func TestGraph_DuplicateTask(t *testing.T) {
	var ran []string
	_, err := NewGraph(recordingTask("A", &ran), recordingTask("A", &ran))
	if !errors.Is(err, ErrDuplicateTask) {
		t.Fatalf("expected ErrDuplicateTask, got %v", err)
	}
}

func TestGraph_Cycle(t *testing.T) {
	var ran []string
	_, err := NewGraph(
		recordingTask("start", &ran),
		recordingTask("a", &ran, "start", "c"),
		recordingTask("b", &ran, "a"),
		recordingTask("c", &ran, "b"),
	)
	if !errors.Is(err, ErrCycle) {
		t.Fatalf("expected ErrCycle, got %v", err)
	}
	var cyc *CycleError
	if !errors.As(err, &cyc) {
		t.Fatalf("expected *CycleError, got %T", err)
	}
	if !slices.Equal(cyc.Tasks, []string{"a", "b", "c"}) {
		t.Errorf("expected cycle [a b c], got %v", cyc.Tasks)
	}
	if !IsConfigError(err) {
		t.Error("expected a configuration error")
	}
}

func TestGraph_RefsAndFailure(t *testing.T) {
	src := &Task{ID: "src", Run: func(context.Context, check.Inputs) (Outcome, error) {
		return Outcome{Outputs: []Output{{Name: "n", Value: 41}}}, nil
	}}
	var got any
	dst := &Task{
		ID:     "dst",
		Deps:   []string{"src"},
		Inputs: check.Inputs{"n": Ref{Task: src, Name: "n"}, "missing": Ref{Task: src, Name: "nope"}},
		Run: func(_ context.Context, in check.Inputs) (Outcome, error) {
			got, _ = in.Get("n")
			if _, ok := in.Get("missing"); ok {
				t.Error("expected unknown output to resolve absent")
			}
			return Outcome{}, nil
		},
	}
	g, err := NewGraph(dst, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := (Ref{Task: src, Name: "n"}).Resolve(); ok {
		t.Error("expected ref to resolve absent before the task runs")
	}
	if err := g.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 41 {
		t.Errorf("expected 41, got %v", got)
	}

	boom := errors.New("boom")
	var ran []string
	g, _ = NewGraph(
		&Task{ID: "bad", Run: func(context.Context, check.Inputs) (Outcome, error) { return Outcome{}, boom }},
		recordingTask("after", &ran, "bad"),
	)
	if err := g.Run(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected task error, got %v", err)
	}
	if len(ran) != 0 {
		t.Errorf("expected run to abort, got %v", ran)
	}
}

func TestGraph_Render(t *testing.T) {
	var ran []string
	g, _ := NewGraph(recordingTask("a", &ran), recordingTask("b", &ran, "a"))
	want := "nodes:\n  a\n  b\nedges:\n  a -> b\n"
	if got := g.Render(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
