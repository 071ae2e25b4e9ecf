package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniqueName(t *testing.T) {
	name := UniqueName("mongo-", 6)
	assert.Len(t, name, len("mongo-")+6)
	assert.Regexp(t, `^mongo-[a-z]{6}$`, name)
	assert.NotEqual(t, name, UniqueName("mongo-", 6))

	assert.Equal(t, "bare", UniqueName("bare", 0))
}
