// Package suffixtree builds a generalized suffix tree over a small,
// caller-defined alphabet using Ukkonen's online, linear-time construction
// algorithm.
//
// A Tree is built incrementally: Append feeds it symbols a chunk at a time,
// and Terminate closes it off with a reserved terminator symbol so that
// every suffix of the accumulated string, including the empty-tailed ones,
// ends at an explicit leaf. The resulting tree exposes a read-only Node
// walk (Children, Child, PathLabel) suitable for substring search, repeat
// finding, and other classic suffix-tree applications; Find and Contains
// are built on that walk as examples.
//
// Internally, edges are stored in a two-level open-addressed hash map
// (internal/twokeymap) keyed by (parent node, first edge symbol) rather
// than per-node maps or slices, which keeps per-node overhead flat
// regardless of alphabet size.
package suffixtree
