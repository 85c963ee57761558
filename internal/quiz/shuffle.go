package quiz

import "math/rand/v2"

// Shuffle returns a new slice with the same elements in uniformly random
// order (Fisher–Yates). The input is never mutated.
func Shuffle[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := rand.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
