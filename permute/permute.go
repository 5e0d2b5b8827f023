// Package permute implements the in-place permutation engine
// (spec.md C7): cycle-decomposition reorder of a pool's documents with
// cross-referenced pair-id rewriting, grounded on
// original_source/catboost/libs/algo/helpers.cpp's ApplyPermutation /
// InvertPermutation.
package permute

import "github.com/go-gbdt/poolcore/pool"

// Apply reorders p.Docs in place so that the old document at position i
// moves to position perm[i], using cycle decomposition (O(n) swaps, O(1)
// extra space beyond the working copy of perm). Once all documents are
// in place, pair ids are rewritten so that a pair (w, l) becomes
// (perm[w], perm[l]) and keeps referring to the same two documents.
//
// perm must be a permutation of [0, len(p.Docs)): perm[i] names the
// destination index of the document currently at position i.
func Apply(p *pool.Pool, perm []int) error {
	n := len(p.Docs)
	if len(perm) != n {
		return &pool.PermutationError{Reason: "length mismatch"}
	}

	to := make([]int, n)
	copy(to, perm)

	// A valid permutation resolves in at most n-1 swaps total (cycle
	// decomposition). More than that means perm is not a bijection on
	// [0, n) -- the cycle invariant never closes -- and we bail out
	// instead of looping forever.
	swaps := 0
	for i := 0; i < n; i++ {
		for to[i] != i {
			if swaps >= n {
				return &pool.PermutationError{Reason: "not a permutation of [0, n)"}
			}
			dest := to[i]
			if dest < 0 || dest >= n {
				return &pool.PermutationError{Reason: "index out of range"}
			}
			p.Docs[i], p.Docs[dest] = p.Docs[dest], p.Docs[i]
			to[i], to[dest] = to[dest], to[i]
			swaps++
		}
	}

	for i := range p.Pairs {
		p.Pairs[i].WinnerId = perm[p.Pairs[i].WinnerId]
		p.Pairs[i].LoserId = perm[p.Pairs[i].LoserId]
	}
	return nil
}

// Invert returns perm's inverse: inv[perm[i]] == i for all i.
func Invert(perm []int) []int {
	inv := make([]int, len(perm))
	for i, v := range perm {
		inv[v] = i
	}
	return inv
}
