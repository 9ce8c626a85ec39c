package suffixtree

// Find reports whether pattern occurs anywhere in the stored string, and if
// so the node at or below which the match bottoms out and how many symbols
// of pattern were consumed along that node's incoming edge. It is built
// entirely on the public Node surface (Children/Child), not on any
// internal state, to exercise the same API a caller outside this package
// would use (spec.md's SUPPLEMENTED FEATURES).
//
// A match that ends partway along an edge still counts as found: the
// generalized suffix tree doesn't need a node at every prefix boundary,
// only at branch points.
func (t *Tree[E, S]) Find(pattern []E) bool {
	if len(pattern) == 0 {
		return true
	}

	node := t.Root()
	i := 0
	for i < len(pattern) {
		sym := t.alphabet.Convert(pattern[i])
		child, ok := node.Child(sym)
		if !ok {
			return false
		}

		label := edgeLabel(child)
		for _, labelSym := range label {
			if i >= len(pattern) {
				return true
			}
			if t.alphabet.Convert(pattern[i]) != labelSym {
				return false
			}
			i++
		}
		node = child
	}
	return true
}

// Contains is an alias for Find, named to match the common vocabulary for
// substring membership tests.
func (t *Tree[E, S]) Contains(pattern []E) bool { return t.Find(pattern) }

// edgeLabel returns the symbols along n's incoming edge, using the current
// end of the stored string for a leaf (Trick 3).
func edgeLabel[E any, S comparable](n Node[E, S]) []S {
	r := n.rec()
	end := r.edgeEnd
	if r.kind == kindLeaf {
		end = len(n.tree.buf)
	}
	return n.tree.buf[r.edgeStart:end]
}
