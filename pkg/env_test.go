package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetenv(t *testing.T) {
	const fallback = "7.0.5"

	t.Setenv("E2E_TEST_SET", "6.0.14")
	t.Setenv("E2E_TEST_EMPTY", "")

	tests := []struct {
		key  string
		want string
	}{
		{"E2E_TEST_UNSET_KEY", fallback},
		{"E2E_TEST_SET", "6.0.14"},
		{"E2E_TEST_EMPTY", ""},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, Getenv(tt.key, fallback))
		})
	}
}

func TestPtr(t *testing.T) {
	index := uint32(3)
	p := Ptr(index)
	index = 4
	assert.Equal(t, uint32(3), *p)
}
