package testutil

import (
	"strings"

	"github.com/brianvoe/gofakeit/v7"
)

// UniqueName appends n random lowercase letters to prefix. Used for container
// and document ids that must not collide with leftovers of earlier runs.
// gofakeit.LetterN still returns one letter for n == 0.
func UniqueName(prefix string, n uint) string {
	if n == 0 {
		return prefix
	}
	return prefix + strings.ToLower(gofakeit.LetterN(n))
}
