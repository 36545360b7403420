package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		name        string
		points      int64
		wantLevel   int
		wantMin     int64
		wantNextMin *int64
	}{
		{name: "zero points is level 1", points: 0, wantLevel: 1, wantMin: 0, wantNextMin: ptr(int64(5))},
		{name: "just below first threshold", points: 4, wantLevel: 1, wantMin: 0, wantNextMin: ptr(int64(5))},
		{name: "exactly at threshold unlocks", points: 5, wantLevel: 2, wantMin: 5, wantNextMin: ptr(int64(20))},
		{name: "mid band", points: 100, wantLevel: 5, wantMin: 70, wantNextMin: ptr(int64(150))},
		{name: "top threshold", points: 50000, wantLevel: 10, wantMin: 50000, wantNextMin: nil},
		{name: "beyond top stays at max level", points: 999999, wantLevel: 10, wantMin: 50000, wantNextMin: nil},
		{name: "negative treated as zero", points: -10, wantLevel: 1, wantMin: 0, wantNextMin: ptr(int64(5))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, min, next := levelFor(tt.points)
			assert.Equal(t, tt.wantLevel, level)
			assert.Equal(t, tt.wantMin, min)
			if tt.wantNextMin == nil {
				assert.Nil(t, next)
			} else {
				require.NotNil(t, next)
				assert.Equal(t, *tt.wantNextMin, *next)
			}
		})
	}
}

func TestLevelForMonotonic(t *testing.T) {
	prev := 0
	for p := int64(0); p <= 60000; p += 7 {
		level, _, _ := levelFor(p)
		require.GreaterOrEqual(t, level, prev, "level dropped at %d points", p)
		prev = level
	}
}

func TestLevelsOverview(t *testing.T) {
	overview := levelsOverview(150)
	require.Len(t, overview, 10)

	for i, info := range overview {
		assert.Equal(t, i+1, info.Level)
	}
	// 150 points unlocks levels 1-5 and nothing above.
	for _, info := range overview {
		assert.Equal(t, info.Level <= 5, info.Unlocked, "level %d", info.Level)
	}
}

func ptr[T any](v T) *T { return &v }
