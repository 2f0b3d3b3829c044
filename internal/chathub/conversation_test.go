package chathub_test

import (
	"testing"

	"pairchat/backend/internal/chathub"

	"github.com/stretchr/testify/assert"
)

func TestPairKey_OrderIndependent(t *testing.T) {
	tests := []struct {
		name string
		a, b uint
	}{
		{"small pair", 1, 2},
		{"reversed magnitudes", 42, 7},
		{"same user both sides", 5, 5},
		{"large ids", 100000, 99999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, chathub.PairKey(tt.a, tt.b), chathub.PairKey(tt.b, tt.a))
		})
	}
}

func TestPairKey_DistinctPairsDistinctKeys(t *testing.T) {
	seen := map[string]bool{}
	pairs := [][2]uint{{1, 2}, {1, 3}, {2, 3}, {1, 23}, {12, 3}}
	for _, p := range pairs {
		key := chathub.PairKey(p[0], p[1])
		assert.False(t, seen[key], "key %s produced twice", key)
		seen[key] = true
	}
}
