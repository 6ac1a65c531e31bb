package business

import (
	"testing"

	"github.com/dgallion1/doclint/internal/doctree"
	"github.com/dgallion1/doclint/internal/mdast"
)

func headings(levels ...int) []*doctree.Heading {
	out := make([]*doctree.Heading, len(levels))
	for i, l := range levels {
		out[i] = &doctree.Heading{Level: l}
	}
	return out
}

func fromMarkdown(src string) *Document {
	return FromAST(mdast.Normalize(src, "test.md"))
}

func TestSegment_Nesting(t *testing.T) {
	roots := Segment(headings(1, 2, 3, 2, 1))
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	first := roots[0]
	if len(first.Children) != 2 {
		t.Fatalf("expected first root to have 2 children, got %d", len(first.Children))
	}
	if first.Children[0].Level() != 2 || len(first.Children[0].Children) != 1 {
		t.Errorf("expected level-2 child with one child")
	}
	if first.Children[0].Children[0].Level() != 3 {
		t.Errorf("expected grandchild level 3, got %d", first.Children[0].Children[0].Level())
	}
	if len(roots[1].Children) != 0 {
		t.Errorf("expected second root to be alone, got %d children", len(roots[1].Children))
	}
}

func TestSegment_NonMonotonic(t *testing.T) {
	tests := []struct {
		name     string
		levels   []int
		roots    int
		children []int // children count per root
	}{
		{"1,3,2", []int{1, 3, 2}, 1, []int{2}},
		{"starts deep", []int{3, 1, 2}, 2, []int{0, 1}},
		{"siblings", []int{2, 2, 2}, 3, []int{0, 0, 0}},
		{"empty", nil, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roots := Segment(headings(tt.levels...))
			if len(roots) != tt.roots {
				t.Fatalf("expected %d roots, got %d", tt.roots, len(roots))
			}
			for i, want := range tt.children {
				if got := len(roots[i].Children); got != want {
					t.Errorf("root %d: expected %d children, got %d", i, want, got)
				}
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Example Usage", "example-usage"},
		{"  Hello, World!  ", "hello-world"},
		{"--a--b--", "a-b"},
		{"aws_instance", "aws-instance"},
		{"Ünïcode", "n-code"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestBuild_HeadingsAndTitle(t *testing.T) {
	d := fromMarkdown("## Early\n\n# Main\n\n> ## Quoted\n\n- ### Listed\n\n# Second\n")

	hs := d.Headings()
	want := []string{"Early", "Main", "Quoted", "Listed", "Second"}
	if len(hs) != len(want) {
		t.Fatalf("expected %d headings, got %d", len(want), len(hs))
	}
	for i, h := range hs {
		if got := doctree.PlainText(h); got != want[i] {
			t.Errorf("heading %d: expected %q, got %q", i, want[i], got)
		}
	}

	title, ok := d.Title()
	if !ok || title.Text != "Main" {
		t.Errorf("expected title %q, got %v", "Main", title)
	}

	if got := len(d.HeadingsByLevel(2)); got != 2 {
		t.Errorf("expected 2 level-2 headings, got %d", got)
	}
	if got := d.HeadingsByLevel(4); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice for missing level, got %v", got)
	}
}

func TestBuild_NoTitle(t *testing.T) {
	d := fromMarkdown("## Only second level\n")
	if _, ok := d.Title(); ok {
		t.Error("expected no title")
	}
	if len(d.Sections()) != 1 {
		t.Errorf("expected 1 section, got %d", len(d.Sections()))
	}
}

func TestBuild_AnchorFirstWins(t *testing.T) {
	d := fromMarkdown("# Example\n\n## Example\n\n## `code` Other!\n")
	h, ok := d.HeadingByAnchor("example")
	if !ok {
		t.Fatal("expected anchor example")
	}
	if h.Level != 1 {
		t.Errorf("expected the level-1 heading to win, got level %d", h.Level)
	}
	if _, ok := d.HeadingByAnchor("other"); !ok {
		t.Errorf("expected anchor other, got anchors %v", d.Anchors())
	}
	if _, ok := d.HeadingByAnchor("missing"); ok {
		t.Error("expected missing anchor to be absent")
	}
}

func TestBuild_CodeBlocksByLanguage(t *testing.T) {
	d := fromMarkdown("```HCL\na\n```\n\n```hcl\nb\n```\n\n```\nc\n```\n\n- item\n\n  ```go\n  d\n  ```\n")
	if got := len(d.CodeBlocksByLanguage("hcl")); got != 2 {
		t.Errorf("expected 2 hcl blocks, got %d", got)
	}
	if got := len(d.CodeBlocksByLanguage("HCL")); got != 2 {
		t.Errorf("expected case-insensitive lookup, got %d", got)
	}
	if got := len(d.CodeBlocksByLanguage("")); got != 1 {
		t.Errorf("expected 1 block without language, got %d", got)
	}
	if got := len(d.CodeBlocksByLanguage("go")); got != 1 {
		t.Errorf("expected nested go block, got %d", got)
	}
	if got := d.CodeBlocksByLanguage("rust"); got == nil || len(got) != 0 {
		t.Errorf("expected empty slice, got %v", got)
	}
}

func TestBuild_LinksByHost(t *testing.T) {
	src := "See [A](https://Example.com/x) and *[B](http://example.com)* and " +
		"![img](https://img.example.com/i.png) and [rel](./local) and <https://auto.example.org>.\n\n" +
		"```\n[code](https://example.com)\n```\n"
	d := fromMarkdown(src)

	if got := len(d.LinksByHost("example.com")); got != 2 {
		t.Errorf("expected 2 links for example.com, got %d", got)
	}
	if got := len(d.LinksByHost("EXAMPLE.COM")); got != 2 {
		t.Errorf("expected case-insensitive host lookup, got %d", got)
	}
	if got := len(d.LinksByHost("img.example.com")); got != 0 {
		t.Errorf("expected images not indexed, got %d", got)
	}
	if got := len(d.LinksByHost("auto.example.org")); got != 1 {
		t.Errorf("expected autolink indexed, got %d", got)
	}
	for _, h := range d.Hosts() {
		if h == "" {
			t.Error("expected relative links to be skipped")
		}
	}
}

func TestBuild_FrontMatter(t *testing.T) {
	d := fromMarkdown("---\nlayout: \"x\"\ndescription: \"  \"\n---\n# T\n")
	fm, ok := d.FrontMatter()
	if !ok {
		t.Fatal("expected front matter")
	}
	if fm.Malformed {
		t.Error("expected well-formed front matter")
	}
	if v, ok := fm.String("layout"); !ok || v != "x" {
		t.Errorf("expected layout x, got %q", v)
	}
	if _, ok := fm.String("description"); ok {
		t.Error("expected blank description to read as missing")
	}

	bad := fromMarkdown("---\n: : [\n---\n# T\n")
	fm, ok = bad.FrontMatter()
	if !ok || !fm.Malformed || len(fm.Values) != 0 {
		t.Errorf("expected malformed front matter with no values, got %+v", fm)
	}
}

func TestBody(t *testing.T) {
	d := fromMarkdown("# T\n\n## A\n\npara\n\n### Sub\n\nmore\n\n## B\n\nlast\n")
	a, ok := d.FindHeading(2, " a ")
	if !ok {
		t.Fatal("expected heading A")
	}
	body := d.Body(a)
	if len(body) != 3 {
		t.Fatalf("expected para, sub heading and more, got %d blocks", len(body))
	}
	if _, ok := body[1].(*doctree.Heading); !ok {
		t.Errorf("expected nested heading in body, got %T", body[1])
	}
	if got := d.Body(&doctree.Heading{Level: 2}); len(got) != 0 {
		t.Errorf("expected empty body for unknown heading, got %d", len(got))
	}
}
