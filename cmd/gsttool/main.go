// Command gsttool builds a generalized suffix tree from a FASTA file and
// optionally renders it as Graphviz DOT, for inspecting and debugging
// trees too large to eyeball from a test.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/bits-and-blooms/bitset"
	"github.com/gaissmai/suffixtree"
)

const chunkSize = 1 << 16

func main() {
	log.SetFlags(log.Lmicroseconds)

	inputPath := flag.String("input", "", "path to a .fasta or .fasta.gz file (required)")
	dotPath := flag.String("dot", "", "if set, write a Graphviz DOT rendering of the tree here")
	withN := flag.Bool("with-n", false, "use the 5-symbol {A,C,G,T,N} alphabet instead of {A,C,G,T}")
	flag.Parse()

	if *inputPath == "" {
		log.Fatal("-input is required")
	}

	ts := time.Now()
	seq, err := readFastaSequence(*inputPath)
	if err != nil {
		log.Fatalf("reading %s: %v", *inputPath, err)
	}
	log.Printf("read %d symbols from %s in %v", len(seq), *inputPath, time.Since(ts))

	alphabet := suffixtree.DNA()
	if *withN {
		alphabet = suffixtree.DNAWithN()
	}

	tree := suffixtree.NewTree[byte, byte](alphabet)

	ts = time.Now()
	for start := 0; start < len(seq); start += chunkSize {
		end := min(start+chunkSize, len(seq))
		if err := tree.Append(seq[start:end]); err != nil {
			log.Fatalf("append at offset %d: %v", start, err)
		}
	}
	if err := tree.Terminate(); err != nil {
		log.Fatalf("terminate: %v", err)
	}
	log.Printf("built tree over %d symbols in %v", tree.Size(), time.Since(ts))

	stats := walk(tree)
	log.Printf("nodes visited: %d, leaves: %d, internal: %d", stats.visited, stats.leaves, stats.internal)

	if *dotPath != "" {
		f, err := os.Create(*dotPath)
		if err != nil {
			log.Fatalf("creating %s: %v", *dotPath, err)
		}
		defer f.Close()
		if err := tree.Dot(f); err != nil {
			log.Fatalf("writing dot: %v", err)
		}
		log.Printf("wrote dot rendering to %s", *dotPath)
	}
}

type walkStats struct {
	visited, leaves, internal uint
}

// walk does a simple DFS over the tree's public Node surface, using a
// bitset keyed by a synthetic per-node sequence number as a visited guard.
// The tree can never actually contain a cycle, but the guard catches a
// bug in Children/Child turning a bounded walk into an infinite one before
// it eats all the memory on the box.
func walk(tree *suffixtree.Tree[byte, byte]) walkStats {
	ids := map[suffixtree.Node[byte, byte]]uint{}
	visited := bitset.New(0) // grows on demand, as the reference node.go relies on

	var stats walkStats
	var id uint

	var rec func(n suffixtree.Node[byte, byte])
	rec = func(n suffixtree.Node[byte, byte]) {
		nodeID, ok := ids[n]
		if !ok {
			nodeID = id
			ids[n] = nodeID
			id++
		}
		if visited.Test(nodeID) {
			log.Fatal("walk: revisited a node, Children/Child is broken")
		}
		visited.Set(nodeID)
		stats.visited++

		if n.IsLeaf() {
			stats.leaves++
			return
		}
		stats.internal++
		for _, child := range collectChildren(n) {
			rec(child)
		}
	}
	rec(tree.Root())
	return stats
}

func collectChildren(n suffixtree.Node[byte, byte]) []suffixtree.Node[byte, byte] {
	var out []suffixtree.Node[byte, byte]
	for _, child := range n.Children() {
		out = append(out, child)
	}
	return out
}
