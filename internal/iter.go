package internal

import (
	"cmp"
	"iter"
	"maps"
	"slices"
)

// IterSorted2 iterates a map in ascending key order. Plain map iteration
// order is randomized; correlation output must be deterministic.
func IterSorted2[K cmp.Ordered, V any](m map[K]V) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		keys := slices.Sorted(maps.Keys(m))
		for _, key := range keys {
			if !yield(key, m[key]) {
				return
			}
		}
	}
}
