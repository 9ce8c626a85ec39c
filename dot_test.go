package suffixtree

import (
	"strings"
	"testing"
)

func TestDotProducesWellFormedGraph(t *testing.T) {
	tree := NewTree[byte, byte](DNA())
	_ = tree.Append([]byte("TAA"))
	_ = tree.Terminate()

	var buf strings.Builder
	if err := tree.Dot(&buf); err != nil {
		t.Fatalf("Dot: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "digraph suffixtree {") {
		t.Fatalf("output does not open a digraph: %q", out[:min(40, len(out))])
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "}") {
		t.Fatal("output does not close the digraph")
	}
	if strings.Count(out, "style=dashed, color=red") == 0 {
		t.Fatal("no suffix-link edges rendered for a tree with internal nodes")
	}
	if !strings.Contains(out, "root") {
		t.Fatal("root node not labeled")
	}
}

func TestDotRendersEdgeLabelsAsCharactersNotByteCodes(t *testing.T) {
	tree := NewTree[byte, byte](DNA())
	_ = tree.Append([]byte("TAA"))
	_ = tree.Terminate()

	var buf strings.Builder
	if err := tree.Dot(&buf); err != nil {
		t.Fatalf("Dot: %v", err)
	}
	out := buf.String()

	for _, want := range []string{`label="T"`, `label="A"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing per-symbol label %s: %q", want, out)
		}
	}
	if strings.Contains(out, "[84") || strings.Contains(out, "[65") {
		t.Fatalf("output renders a byte slice's numeric encoding instead of its characters: %q", out)
	}
}

func TestDotOnEmptyTree(t *testing.T) {
	tree := NewTree[byte, byte](DNA())
	_ = tree.Terminate()

	var buf strings.Builder
	if err := tree.Dot(&buf); err != nil {
		t.Fatalf("Dot on empty tree: %v", err)
	}
	if !strings.Contains(buf.String(), "digraph suffixtree") {
		t.Fatal("empty-tree dot output missing the digraph header")
	}
}
