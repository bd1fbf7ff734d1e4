package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew32(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		v := New32()
		assert.Len(t, v, 32)
		assert.Regexp(t, "^[0-9a-f]{32}$", v)
		assert.False(t, seen[v], "duplicate id %s", v)
		seen[v] = true
	}
}
