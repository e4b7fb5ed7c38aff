package domain

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ContentDigest returns the XXHash of a lockfile's text as 16 hex digits.
// Two loads of identical text always produce the same digest.
func ContentDigest(text string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(text))
}
