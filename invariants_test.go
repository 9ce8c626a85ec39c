package suffixtree

import (
	"strings"
	"testing"

	"github.com/bits-and-blooms/bitset"
)

// buildTerminated is a small helper shared by the invariant checks below.
func buildTerminated(t *testing.T, s string) *Tree[byte, byte] {
	t.Helper()
	tree := NewTree[byte, byte](DNA())
	if err := tree.Append([]byte(s)); err != nil {
		t.Fatalf("Append(%q): %v", s, err)
	}
	if err := tree.Terminate(); err != nil {
		t.Fatalf("Terminate: %v", err)
	}
	return tree
}

func walkLeaves(tree *Tree[byte, byte], visit func(Node[byte, byte])) {
	var rec func(Node[byte, byte])
	rec = func(n Node[byte, byte]) {
		if n.IsLeaf() {
			visit(n)
			return
		}
		for _, child := range n.Children() {
			rec(child)
		}
	}
	rec(tree.Root())
}

// TestEveryStartingIndexCoveredExactlyOnce checks, via a bitset keyed by
// stringStart, that every suffix start position 0..n-1 of the terminated
// string has exactly one leaf, matching spec.md §8's "leaf count equals
// string length" and "every suffix corresponds to exactly one path"
// properties together.
func TestEveryStartingIndexCoveredExactlyOnce(t *testing.T) {
	tree := buildTerminated(t, "TAATAAGACCA")
	n := tree.Size() + 1 // + the terminator-only suffix

	covered := bitset.New(uint(n))
	var leafCount int
	walkLeaves(tree, func(leaf Node[byte, byte]) {
		leafCount++
		start := uint(leaf.StringStart())
		if covered.Test(start) {
			t.Fatalf("stringStart %d covered by more than one leaf", start)
		}
		covered.Set(start)
	})

	if leafCount != n {
		t.Fatalf("leaf count = %d, want %d", leafCount, n)
	}
	if got := covered.Count(); got != uint(n) {
		t.Fatalf("covered.Count() = %d, want %d", got, n)
	}
}

func TestDistinctFirstSymbolsAmongSiblings(t *testing.T) {
	tree := buildTerminated(t, "TAATAAGACCA")

	var rec func(Node[byte, byte])
	rec = func(n Node[byte, byte]) {
		seen := map[byte]bool{}
		for sym, child := range n.Children() {
			if seen[sym] {
				t.Fatalf("two children of a node keyed by the same symbol %q", sym)
			}
			seen[sym] = true
			rec(child)
		}
	}
	rec(tree.Root())
}

func TestNodeCountBounds(t *testing.T) {
	tree := buildTerminated(t, "TAATAAGACCA")
	size := tree.Size()

	total := len(tree.nodes)
	if total < size+1 {
		t.Fatalf("node count %d below the lower bound |S|+1=%d", total, size+1)
	}
	if total > 2*size {
		t.Fatalf("node count %d above the upper bound 2|S|=%d", total, 2*size)
	}
}

func TestRoundTripAgainstNaiveSuffixes(t *testing.T) {
	const s = "TAATAAGACCA"
	tree := buildTerminated(t, s)

	full := s + "$"
	want := map[string]int{}
	for i := range full {
		want[full[i:]]++
	}

	got := map[string]int{}
	walkLeaves(tree, func(leaf Node[byte, byte]) {
		got[string(leaf.PathLabel())]++
	})

	if len(got) != len(want) {
		t.Fatalf("got %d distinct suffixes, want %d", len(got), len(want))
	}
	for suffix, count := range want {
		if got[suffix] != count {
			t.Fatalf("suffix %q appears %d times as a leaf, want %d", suffix, got[suffix], count)
		}
	}
}

func TestFindEveryNaiveSubstring(t *testing.T) {
	const s = "TAATAAGACCA"
	tree := buildTerminated(t, s)

	for i := 0; i < len(s); i++ {
		for j := i + 1; j <= len(s); j++ {
			sub := s[i:j]
			if !tree.Find([]byte(sub)) {
				t.Fatalf("Find(%q) = false, want true", sub)
			}
		}
	}
	if tree.Find([]byte("ZZZ")) {
		t.Fatal("Find reported a substring absent from the input")
	}
	if !strings.Contains(s, "GAC") || !tree.Contains([]byte("GAC")) {
		t.Fatal("Contains disagreed with strings.Contains on a present substring")
	}
}
