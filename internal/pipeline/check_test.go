package pipeline

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/dgallion1/doclint/internal/check"
	"github.com/dgallion1/doclint/internal/rules"
)

const providerDoc = "# widget\n" +
	"\n" +
	"Manages a widget.\n" +
	"\n" +
	"## Example Usage\n" +
	"\n" +
	"```hcl\n" +
	"resource \"example_widget\" \"w\" {}\n" +
	"```\n" +
	"\n" +
	"## Argument Reference\n" +
	"\n" +
	"The following arguments are supported:\n" +
	"\n" +
	"* `name` - (Required, String) desc\n" +
	"\n" +
	"## Attribute Reference\n" +
	"\n" +
	"In addition to all arguments above, the following attributes are exported:\n" +
	"\n" +
	"* `id` - The ID.\n"

func ruleIDs(errs []check.CheckError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.RuleID
	}
	return out
}

func TestCheck_CleanDocument(t *testing.T) {
	diags, err := Check(providerDoc, "widget.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(diags) != 0 {
		t.Errorf("expected no diagnostics, got %v", ruleIDs(diags))
	}
	if diags == nil {
		t.Error("expected an empty, non-nil list")
	}
}

func TestCheck_SwappedSections(t *testing.T) {
	src := strings.Replace(providerDoc, "## Example Usage", "## Argument Reference (tmp)", 1)
	src = strings.Replace(src, "## Argument Reference\n", "## Example Usage\n", 1)
	src = strings.Replace(src, "## Argument Reference (tmp)", "## Argument Reference", 1)

	diags, err := Check(src, "widget.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var order []check.CheckError
	for _, d := range diags {
		if d.RuleID == "Structure.InvalidSectionOrder" {
			order = append(order, d)
		}
	}
	if len(order) != 1 {
		t.Fatalf("expected one InvalidSectionOrder, got %v", ruleIDs(diags))
	}
	if order[0].FileID != "widget.md" || order[0].NodeType != "HEADING" {
		t.Errorf("unexpected location %+v", order[0])
	}
}

func TestCheck_NamesSkipsStoppedUpstream(t *testing.T) {
	src := "# w\n\n## Argument Reference\n\n* `a` - (Required, String) x\n* `a` - (Required, String) y\n"
	r, err := New(rules.DefaultConfig(), nil, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g, err := r.Graph(src, "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	args, _ := g.Task("arguments")
	out, ran := args.Outcome()
	if !ran || !out.NeedStop || len(out.Outputs) != 0 {
		t.Fatalf("expected arguments to stop without outputs, got %+v", out)
	}
	names, _ := g.Task("names")
	out, _ = names.Outcome()
	if out.NeedStop {
		t.Errorf("expected names to skip the stopped input, got %v", ruleIDs(out.Errors))
	}
}

func TestRunner_GraphOrder(t *testing.T) {
	r, err := New(rules.DefaultConfig(), nil, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g, err := r.Graph("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"parse", "model", "frontmatter", "structure", "title", "example",
		"arguments", "attributes", "formatting", "content", "names"}
	if got := g.Order(); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	text, err := r.Describe()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, edge := range []string{"parse -> model", "model -> names", "arguments -> names", "attributes -> names"} {
		if !strings.Contains(text, edge) {
			t.Errorf("expected edge %q in %q", edge, text)
		}
	}
}

func TestNew_RejectsBadConfig(t *testing.T) {
	cfg := rules.DefaultConfig()
	cfg.MaxLineLength = -1
	if _, err := New(cfg, nil, 1); err == nil {
		t.Error("expected invalid config to fail")
	}
}

func TestCheckBatch_KeepsInputOrder(t *testing.T) {
	r, err := New(rules.DefaultConfig(), nil, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var docs []Document
	for i := range 8 {
		content := providerDoc
		if i%2 == 1 {
			content = "no headings here\n"
		}
		docs = append(docs, Document{FileID: fmt.Sprintf("doc-%d.md", i), Content: content})
	}
	reports, err := r.CheckBatch(context.Background(), docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != len(docs) {
		t.Fatalf("expected %d reports, got %d", len(docs), len(reports))
	}
	for i, rep := range reports {
		if rep.FileID != docs[i].FileID {
			t.Errorf("report %d: expected %s, got %s", i, docs[i].FileID, rep.FileID)
		}
		if rep.ContentHash != ContentHashHex([]byte(docs[i].Content)) {
			t.Errorf("report %d: unexpected content hash", i)
		}
		if clean := i%2 == 0; clean != (rep.ErrorCount == 0) {
			t.Errorf("report %d: unexpected error count %d", i, rep.ErrorCount)
		}
	}
}

func TestCheckBatch_Canceled(t *testing.T) {
	r, _ := New(rules.DefaultConfig(), nil, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.CheckBatch(ctx, []Document{{FileID: "a.md", Content: providerDoc}}); err == nil {
		t.Error("expected canceled context to fail the batch")
	}
}
