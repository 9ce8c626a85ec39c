package suffixtree

import "errors"

// InvalidSymbolError is returned by Append when an input symbol, once run
// through the alphabet's Convert, equals the alphabet's terminator. The
// symbols appended before the offending one remain in the tree.
var InvalidSymbolError = errors.New("suffixtree: input symbol equals alphabet terminator")

// AlreadyTerminatedError is returned by Append or Terminate once Terminate
// has already succeeded once. Tree state is left unchanged.
var AlreadyTerminatedError = errors.New("suffixtree: tree is already terminated")

// CapacityExceededError is returned by Append or Terminate when storing the
// offending symbol's edge would grow the tree's TwoKeyMap past its maximum
// addressable capacity. The symbols admitted before the offending one
// remain in the tree, a consistent (if incomplete) implicit suffix tree.
var CapacityExceededError = errors.New("suffixtree: capacity exceeded")
