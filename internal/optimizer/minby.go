package optimizer

import "golang.org/x/exp/constraints"

// minIndexBy returns the position of the first element with the smallest key,
// or -1 for an empty slice. Keys are evaluated once each, in order.
func minIndexBy[T any, K constraints.Ordered](items []T, key func(T) K) int {
	if len(items) == 0 {
		return -1
	}
	best := 0
	bestKey := key(items[0])
	for i := 1; i < len(items); i++ {
		if k := key(items[i]); k < bestKey {
			best, bestKey = i, k
		}
	}
	return best
}
