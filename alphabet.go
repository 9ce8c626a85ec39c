package suffixtree

// Alphabet converts caller-supplied external symbols into the internal
// symbol type a Tree stores, and names the one internal value reserved as
// the terminator.
//
// S must be copyable, equality-comparable, and reasonably hashable: the
// engine mixes whatever hash HashSymbol produces before using it, so a
// mediocre hash costs extra TwoKeyMap growth, not incorrect results.
type Alphabet[E any, S comparable] interface {
	// Convert maps an external symbol to its internal representation.
	Convert(e E) S

	// Terminator is the internal value no caller-supplied symbol may
	// convert to; Append rejects it with InvalidSymbolError.
	Terminator() S

	// Size is the number of distinct internal symbols, terminator
	// included. It is only consulted to size the TwoKeyMap's buckets.
	Size() int

	// HashSymbol hashes an internal symbol for the TwoKeyMap.
	HashSymbol(s S) uint64
}

// ByteAlphabet is the common small-alphabet case: external bytes pass
// through unchanged as internal symbols, with one byte reserved as the
// terminator. Convert does no case folding: 'a' and 'A' are distinct
// symbols. This is the "nucleotide alphabet treating input bytes
// identically to internal bytes" spec.md §4.1 names as the canonical
// example.
type ByteAlphabet struct {
	terminator byte
	size       int
}

// NewByteAlphabet builds a ByteAlphabet with the given terminator and
// total symbol count (terminator included), used only to size the
// TwoKeyMap.
func NewByteAlphabet(terminator byte, size int) *ByteAlphabet {
	return &ByteAlphabet{terminator: terminator, size: size}
}

// DNA is the nucleotide alphabet {A,C,G,T} with terminator '$', matching
// the boundary scenarios of spec.md §8.
func DNA() *ByteAlphabet { return NewByteAlphabet('$', 5) }

// DNAWithN is the nucleotide alphabet {A,C,G,T,N} with terminator '$', the
// alphabet spec.md §1 names as the intended bioinformatics case.
func DNAWithN() *ByteAlphabet { return NewByteAlphabet('$', 6) }

func (a *ByteAlphabet) Convert(e byte) byte { return e }
func (a *ByteAlphabet) Terminator() byte    { return a.terminator }
func (a *ByteAlphabet) Size() int           { return a.size }

// HashSymbol uses the FNV-1a byte-mixing step; a single byte has no
// internal structure to exploit, so one multiply-xor round is enough
// entropy for the TwoKeyMap to re-avalanche.
func (a *ByteAlphabet) HashSymbol(s byte) uint64 {
	const fnvOffset = 1469598103934665603
	const fnvPrime = 1099511628211
	return (fnvOffset ^ uint64(s)) * fnvPrime
}
