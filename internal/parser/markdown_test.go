package parser

import (
	"testing"
)

func parse(t *testing.T, src string) *Node {
	t.Helper()
	root := NewMarkdownParser().Parse([]byte(src))
	if root == nil {
		t.Fatal("expected a root node, got nil")
	}
	return root
}

func assertSpan(t *testing.T, n *Node, offset, length int) {
	t.Helper()
	s, ok := n.Cover()
	if !ok {
		t.Fatalf("expected %s to have a span", n.Kind)
	}
	if s.Offset != offset || s.Length != length {
		t.Errorf("expected %s span {%d %d}, got {%d %d}", n.Kind, offset, length, s.Offset, s.Length)
	}
}

func TestMarkdownParser_HeadingSpans(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		level  int
		length int
	}{
		{"atx", "# Title\n\nBody text.\n", 1, 7},
		{"atx closed", "## Title ##\n", 2, 11},
		{"setext", "Title\n=====\n", 1, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := parse(t, tt.src)
			h := root.Children[0]
			if h.Kind != "Heading" {
				t.Fatalf("expected Heading, got %s", h.Kind)
			}
			if h.Level != tt.level {
				t.Errorf("expected level %d, got %d", tt.level, h.Level)
			}
			assertSpan(t, h, 0, tt.length)
		})
	}
}

func TestMarkdownParser_FencedCode(t *testing.T) {
	root := parse(t, "```go\nx := 1\n```\n")
	code := root.Children[0]
	if code.Kind != "FencedCodeBlock" {
		t.Fatalf("expected FencedCodeBlock, got %s", code.Kind)
	}
	if code.Info != "go" {
		t.Errorf("expected info %q, got %q", "go", code.Info)
	}
	if !code.HasLiteral || code.Literal != "x := 1\n" {
		t.Errorf("expected literal %q, got %q", "x := 1\n", code.Literal)
	}
	assertSpan(t, code, 0, 16)
}

func TestMarkdownParser_InlineSpans(t *testing.T) {
	t.Run("code span", func(t *testing.T) {
		root := parse(t, "Use `x` now\n")
		para := root.Children[0]
		var code *Node
		for _, c := range para.Children {
			if c.Kind == "CodeSpan" {
				code = c
			}
		}
		if code == nil {
			t.Fatal("expected a CodeSpan child")
		}
		if code.Literal != "x" {
			t.Errorf("expected literal %q, got %q", "x", code.Literal)
		}
		if len(code.Children) != 0 {
			t.Errorf("expected code span to be a leaf, got %d children", len(code.Children))
		}
		assertSpan(t, code, 4, 3)
	})

	t.Run("strong", func(t *testing.T) {
		root := parse(t, "**bold**\n")
		em := root.Children[0].Children[0]
		if em.Kind != "Emphasis" || em.Level != 2 {
			t.Fatalf("expected level-2 Emphasis, got %s level %d", em.Kind, em.Level)
		}
		assertSpan(t, em, 0, 8)
	})

	t.Run("link", func(t *testing.T) {
		root := parse(t, "[go](https://go.dev) x\n")
		link := root.Children[0].Children[0]
		if link.Kind != "Link" {
			t.Fatalf("expected Link, got %s", link.Kind)
		}
		if link.Destination != "https://go.dev" {
			t.Errorf("expected destination %q, got %q", "https://go.dev", link.Destination)
		}
		assertSpan(t, link, 0, 20)
	})
}

func TestMarkdownParser_ThematicBreakLocated(t *testing.T) {
	root := parse(t, "a\n\n---\n\nb\n")
	if len(root.Children) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(root.Children))
	}
	hr := root.Children[1]
	if hr.Kind != "ThematicBreak" {
		t.Fatalf("expected ThematicBreak, got %s", hr.Kind)
	}
	assertSpan(t, hr, 3, 3)
}

func TestMarkdownParser_TightList(t *testing.T) {
	root := parse(t, "- a\n- b\n")
	list := root.Children[0]
	if list.Kind != "List" || list.Ordered {
		t.Fatalf("expected bullet List, got %s ordered=%v", list.Kind, list.Ordered)
	}
	if len(list.Children) != 2 {
		t.Fatalf("expected 2 items, got %d", len(list.Children))
	}
	item := list.Children[0]
	assertSpan(t, item, 0, 3)
	if item.Children[0].Kind != "TextBlock" {
		t.Errorf("expected TextBlock in tight item, got %s", item.Children[0].Kind)
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	root := parse(t, "")
	if len(root.Children) != 0 {
		t.Errorf("expected 0 children for empty input, got %d", len(root.Children))
	}
}
