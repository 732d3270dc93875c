package discovery

import (
	"math/big"
	"sort"
)

// TokenIDSet is a deduplicated set of contract-native token IDs
type TokenIDSet map[string]struct{}

// NewTokenIDSet creates a TokenIDSet from the given IDs
func NewTokenIDSet(ids ...string) TokenIDSet {
	s := make(TokenIDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts a token ID into the set
func (s TokenIDSet) Add(id string) {
	s[id] = struct{}{}
}

// Contains reports whether the set holds the given ID
func (s TokenIDSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Union merges the outputs of multiple strategies into one deduplicated set.
// Discovery recall only ever improves by unioning.
func Union(sets ...TokenIDSet) TokenIDSet {
	out := make(TokenIDSet)
	for _, s := range sets {
		for id := range s {
			out[id] = struct{}{}
		}
	}
	return out
}

// Sorted returns the set's IDs in ascending numeric order, falling back to
// lexicographic order for non-numeric IDs
func (s TokenIDSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool {
		a, aOK := new(big.Int).SetString(ids[i], 10)
		b, bOK := new(big.Int).SetString(ids[j], 10)
		if aOK && bOK {
			return a.Cmp(b) < 0
		}
		return ids[i] < ids[j]
	})

	return ids
}
