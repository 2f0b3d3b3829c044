package chathub

import "fmt"

// PairKey derives the conversation key for the unordered pair of user IDs.
// Both participants compute the same key no matter who initiates:
// PairKey(a, b) == PairKey(b, a).
func PairKey(a, b uint) string {
	if b < a {
		a, b = b, a
	}
	return fmt.Sprintf("conv:%d:%d", a, b)
}
