package suffixtree

import (
	"errors"

	"github.com/gaissmai/suffixtree/internal/twokeymap"
)

// Tree is a generalized suffix tree built online, one symbol at a time, by
// Ukkonen's algorithm. The zero value is not usable; construct one with
// NewTree.
//
// A Tree is not safe for concurrent use: it has exactly one writer, and
// reads through the Node handle surface must not outlive or race the
// writer (spec.md §5).
type Tree[E any, S comparable] struct {
	alphabet Alphabet[E, S]

	buf   []S
	nodes []nodeRecord
	edges *twokeymap.Map[nodeIndex, S, nodeIndex]
	root  nodeIndex

	// phase is the zero-based index of the symbol currently being added;
	// it starts at -1 so the first addSymbol call lands on phase 0.
	phase int

	// startingExtension implements Gusfield's Trick 2: the next phase
	// begins at this extension, skipping the ones whose suffixes already
	// end at leaves and grow automatically via Trick 3.
	startingExtension int

	// lastEnd/lastEndOffset track where the previous extension's suffix
	// ended, so the next phase doesn't have to walk the tree from the
	// root. lastEnd is always the root or an internal node; lastEndOffset
	// counts symbols below it along the tracked path and can equal or pass
	// the length of the edge directly below it (extend's skip/count descent
	// crosses any nodes on the way).
	lastEnd       nodeIndex
	lastEndOffset int

	// newInternalNode is the internal node the previous extension
	// created, if any; its suffix link is assigned one extension later,
	// once the node that link should point to is known.
	newInternalNode nodeIndex

	// leaf1 is the leaf created by the tree's very first symbol. Terminate
	// uses it to re-enter the tree at the position representing the
	// entire string built so far.
	leaf1 nodeIndex

	isTerminated bool
}

// NewTree constructs an empty tree over the given alphabet.
func NewTree[E any, S comparable](alphabet Alphabet[E, S]) *Tree[E, S] {
	t := &Tree[E, S]{
		alphabet:        alphabet,
		phase:           -1,
		lastEnd:         noNode,
		newInternalNode: noNode,
		leaf1:           noNode,
	}
	t.edges = twokeymap.New[nodeIndex, S, nodeIndex](alphabet.Size(), alphabet.HashSymbol)
	t.nodes = append(t.nodes, nodeRecord{kind: kindRoot, parent: noNode, suffixLink: noNode})
	t.root = 0
	return t
}

// Root returns the tree's root node.
func (t *Tree[E, S]) Root() Node[E, S] { return Node[E, S]{tree: t, idx: t.root} }

// Size is the number of symbols in the stored string, excluding the
// terminator once one has been written.
func (t *Tree[E, S]) Size() int {
	n := len(t.buf)
	if t.isTerminated {
		n--
	}
	return n
}

// IsTerminated reports whether Terminate has already succeeded.
func (t *Tree[E, S]) IsTerminated() bool { return t.isTerminated }

// Append converts and inserts each external symbol of seq in order. An
// empty seq is a documented no-op, even after termination. Append fails
// with InvalidSymbolError if any converted symbol equals the alphabet's
// terminator, with AlreadyTerminatedError if the tree has already been
// terminated, or with CapacityExceededError if admitting a symbol would
// grow the edge map past its addressable limit; in every failure case the
// symbols appended before the offending one remain in the tree.
func (t *Tree[E, S]) Append(seq []E) error {
	if len(seq) == 0 {
		return nil
	}
	if t.isTerminated {
		return AlreadyTerminatedError
	}

	term := t.alphabet.Terminator()
	for _, e := range seq {
		s := t.alphabet.Convert(e)
		if s == term {
			return InvalidSymbolError
		}
		if err := t.addSymbol(s); err != nil {
			return err
		}
	}
	return nil
}

// Terminate writes the alphabet's terminator, forcing one final explicit
// phase over every suffix so every suffix of the string ends at a leaf.
// Terminate fails with AlreadyTerminatedError on a second call.
func (t *Tree[E, S]) Terminate() error {
	if t.isTerminated {
		return AlreadyTerminatedError
	}

	term := t.alphabet.Terminator()

	if len(t.buf) == 0 {
		t.buf = append(t.buf, term)
		t.phase++
		t.isTerminated = true
		return nil
	}

	// Re-enter the tree at the position representing the full string
	// built so far: leaf1's path label is the whole string and its edge
	// extends to the current end (Trick 3), so the position just below
	// its parent, offset by leaf1's current edge length, is that position.
	leaf1 := t.nodes[t.leaf1]
	t.lastEnd = leaf1.parent
	t.lastEndOffset = t.phase + 1 - leaf1.edgeStart
	t.startingExtension = 1

	if err := t.addSymbol(term); err != nil {
		return err
	}
	t.isTerminated = true
	return nil
}

// addSymbol is one symbol's worth of Ukkonen's algorithm: append to the
// stored string, advance the phase, and either seed the tree (the very
// first symbol) or run the phase's extensions.
func (t *Tree[E, S]) addSymbol(s S) error {
	t.buf = append(t.buf, s)
	t.phase++

	if t.phase == 0 {
		leaf1, err := t.newLeaf(t.root, s, 0, 0)
		if err != nil {
			return err
		}
		t.leaf1 = leaf1
		t.startingExtension = 1
		// Seed the state the next phase's first extension ascends from:
		// extension 0's suffix (the lone first symbol) sits one symbol
		// below the root, at leaf1 itself.
		t.lastEnd = t.root
		t.lastEndOffset = 1
		return nil
	}

	if err := t.doPhase(t.phase, s); err != nil {
		return err
	}

	// Every open leaf implicitly extends to the new phase (Trick 3), so
	// the path to the previous extension's end has lengthened by one
	// symbol along the same edge.
	t.lastEndOffset++
	return nil
}

// doPhase runs the extensions of one phase, starting from
// startingExtension (Trick 2) and stopping early the moment an extension
// applies rule 3 (the suffix is already present).
//
// The last extension processed is always the current phase index itself:
// the newest symbol's singleton suffix (e.g. the terminator alone) gets the
// same treatment as every other extension, so it ends up as its own
// explicit root child rather than being silently skipped.
func (t *Tree[E, S]) doPhase(phase int, element S) error {
	t.newInternalNode = noNode

	lastExtension := phase

	extension := t.startingExtension
	ruleThreeBroke := false
	for extension <= lastExtension {
		broke, err := t.extendViaSuffixLink(phase, extension, element)
		if err != nil {
			return err
		}
		if broke {
			ruleThreeBroke = true
			break
		}
		extension++
	}

	if ruleThreeBroke {
		t.startingExtension = extension
	} else {
		t.startingExtension = lastExtension + 1
	}
	return nil
}

// extendViaSuffixLink is Gusfield's SEA: ascend to the nearest node with a
// suffix link (or the root), follow it, run extend from there, and wire up
// the suffix link of whatever internal node the previous extension
// created. It reports whether this extension applied rule 3.
func (t *Tree[E, S]) extendViaSuffixLink(phase, extension int, element S) (bool, error) {
	node := t.lastEnd
	pathLength := t.lastEndOffset

	rec := t.nodes[node]
	if rec.suffixLink == noNode && node != t.root {
		// An internal node created in the immediately previous extension
		// has no suffix link yet, by construction; ascend past it.
		pathLength += rec.edgeEnd - rec.edgeStart
		node = rec.parent
	}

	if node == t.root {
		pathLength-- // drop the first symbol: look for S[j..i] instead of S[j-1..i]
	} else {
		node = t.nodes[node].suffixLink
	}

	if pathLength < 0 {
		panic("suffixtree: assertion failed: negative path length in extendViaSuffixLink")
	}

	rule3Node, createdInternal, err := t.extend(node, pathLength, phase, extension, element)
	if err != nil {
		return false, err
	}

	if t.newInternalNode != noNode {
		target := rule3Node
		if target == noNode {
			// By Gusfield's Lemma 6.1.1, lastEnd is guaranteed to be an
			// internal node here: alpha ends at one.
			target = t.lastEnd
		}
		link := t.nodes[t.newInternalNode]
		link.suffixLink = target
		t.nodes[t.newInternalNode] = link
	}

	t.newInternalNode = createdInternal
	return rule3Node != noNode, nil
}

// extend walks down from node by pathLength symbols (skip/count, Trick 1)
// and applies whichever of rules 1/2a/2b/3 the destination calls for. It
// is tail-recursive in the algorithm's description; here that's a loop.
func (t *Tree[E, S]) extend(node nodeIndex, pathLength, phase, extension int, element S) (rule3Node, createdInternal nodeIndex, err error) {
	for {
		if pathLength == 0 {
			if _, ok := t.edges.Get(node, element); !ok {
				// Rule 2a: the suffix isn't present yet, attach a leaf.
				t.lastEnd = node
				t.lastEndOffset = 0
				if _, err := t.newLeaf(node, element, phase, extension); err != nil {
					return noNode, noNode, err
				}
				return noNode, noNode, nil
			}
			// Rule 3: this suffix already extends.
			return node, noNode, nil
		}

		nextElementOnEdge := t.buf[phase-pathLength]
		childIdx, ok := t.edges.Get(node, nextElementOnEdge)
		if !ok {
			panic("suffixtree: assertion failed: skip/count descent found no tracked child")
		}
		child := t.nodes[childIdx]

		if child.kind == kindLeaf {
			childLength := phase - child.edgeStart // the leaf's length as of phase-1
			if childLength == pathLength {
				// Rule 1: the suffix ends at an existing leaf, which
				// auto-extends via Trick 3.
				t.lastEnd = node
				t.lastEndOffset = pathLength
				return noNode, noNode, nil
			}
			// Falls through to the inside-an-edge case below.
		} else {
			edgeLength := child.edgeEnd - child.edgeStart
			if excess := pathLength - edgeLength; excess >= 0 {
				// Trick 1: skip whole edges rather than symbol by symbol.
				node, pathLength = childIdx, excess
				continue
			}
			// Falls through to the inside-an-edge case below.
		}

		nextEdgeChar := t.buf[child.edgeStart+pathLength]
		if element == nextEdgeChar {
			// Rule 3: the suffix already extends past this point.
			return node, noNode, nil
		}

		// Rule 2b: split the edge and hang a new leaf off the split.
		firstEdgeChar := t.buf[child.edgeStart]
		newInternal, err := t.splitEdge(childIdx, firstEdgeChar, nextEdgeChar, pathLength)
		if err != nil {
			return noNode, noNode, err
		}
		if _, err := t.newLeaf(newInternal, element, phase, extension); err != nil {
			return noNode, noNode, err
		}
		t.lastEnd = newInternal
		t.lastEndOffset = 0
		return noNode, newInternal, nil
	}
}

// newLeaf allocates a leaf under parent, keyed by sym, with the given
// edgeStart and stringStart. It returns CapacityExceededError, leaving the
// tree's node arena entry orphaned but otherwise unobserved, if the edge
// map cannot grow to hold the new entry.
func (t *Tree[E, S]) newLeaf(parent nodeIndex, sym S, edgeStart, stringStart int) (nodeIndex, error) {
	idx := nodeIndex(len(t.nodes))
	t.nodes = append(t.nodes, nodeRecord{
		kind:        kindLeaf,
		parent:      parent,
		edgeStart:   edgeStart,
		stringStart: stringStart,
		suffixLink:  noNode,
	})
	_, had, err := t.edges.Put(parent, sym, idx)
	if err != nil {
		return noNode, capacityExceeded(err)
	}
	if had {
		panic("suffixtree: assertion failed: leaf insertion collided with an existing child")
	}
	return idx, nil
}

// splitEdge implements node.split from spec.md §4.3: it inserts a new
// internal node between self's current parent and self, shortening self's
// incoming edge to start where the new node's edge ends.
func (t *Tree[E, S]) splitEdge(self nodeIndex, firstEdgeChar, nextEdgeChar S, edgeLength int) (nodeIndex, error) {
	selfRec := t.nodes[self]

	newIdx := nodeIndex(len(t.nodes))
	t.nodes = append(t.nodes, nodeRecord{
		kind:       kindInternal,
		parent:     selfRec.parent,
		edgeStart:  selfRec.edgeStart,
		edgeEnd:    selfRec.edgeStart + edgeLength,
		suffixLink: noNode,
	})

	prevChild, had, err := t.edges.Put(selfRec.parent, firstEdgeChar, newIdx)
	if err != nil {
		return noNode, capacityExceeded(err)
	}
	if !had || prevChild != self {
		panic("suffixtree: assertion failed: split did not replace the expected child")
	}

	selfRec.parent = newIdx
	selfRec.edgeStart += edgeLength
	t.nodes[self] = selfRec

	if _, had, err := t.edges.Put(newIdx, nextEdgeChar, self); err != nil {
		return noNode, capacityExceeded(err)
	} else if had {
		panic("suffixtree: assertion failed: new internal node already had a child")
	}

	return newIdx, nil
}

// capacityExceeded translates the edge map's internal capacity error into
// the root package's own sentinel, so callers outside this module never
// need to import internal/twokeymap to recognize it with errors.Is.
func capacityExceeded(err error) error {
	if errors.Is(err, twokeymap.ErrCapacityExceeded) {
		return CapacityExceededError
	}
	return err
}
