package services_test

import (
	"testing"
	"time"

	"freight/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTripAllocator_Allocate(t *testing.T) {
	allocator := services.NewTripAllocator()

	t.Run("splits remaining weight across trips", func(t *testing.T) {
		// Order with remaining weight 100, 3 trips of 40 each:
		// trip1=40 (remaining 60), trip2=40 (remaining 20), trip3=20 (remaining 0).
		weights, err := allocator.Allocate(3, 40, 100)

		require.NoError(t, err)
		assert.Equal(t, []float64{40, 40, 20}, weights)
	})

	t.Run("creates zero-weight trips when remaining weight runs out", func(t *testing.T) {
		weights, err := allocator.Allocate(3, 40, 0)

		require.NoError(t, err)
		assert.Equal(t, []float64{0, 0, 0}, weights)
	})

	t.Run("sum of allocations equals min of supply and demand", func(t *testing.T) {
		cases := []struct {
			count  int
			per    float64
			start  float64
			expect float64
		}{
			{count: 3, per: 40, start: 100, expect: 100},
			{count: 2, per: 40, start: 100, expect: 80},
			{count: 5, per: 10, start: 100, expect: 50},
			{count: 10, per: 25, start: 60, expect: 60},
			{count: 1, per: 1000, start: 42, expect: 42},
		}

		for _, tc := range cases {
			weights, err := allocator.Allocate(tc.count, tc.per, tc.start)
			require.NoError(t, err)
			require.Len(t, weights, tc.count)

			var sum float64
			for _, w := range weights {
				require.GreaterOrEqual(t, w, 0.0, "no trip may receive negative weight")
				sum += w
			}
			assert.InDelta(t, tc.expect, sum, 1e-9)
		}
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, err := allocator.Allocate(0, 40, 100)
		require.Error(t, err)

		_, err = allocator.Allocate(-1, 40, 100)
		require.Error(t, err)

		_, err = allocator.Allocate(3, 0, 100)
		require.Error(t, err)

		_, err = allocator.Allocate(3, 40, -5)
		require.Error(t, err)
	})
}

func TestTripAllocator_TimeoutBudget(t *testing.T) {
	allocator := services.NewTripAllocator()

	t.Run("small batches get the floor", func(t *testing.T) {
		assert.Equal(t, 20*time.Second, allocator.TimeoutBudget(1))
		assert.Equal(t, 20*time.Second, allocator.TimeoutBudget(100))
		assert.Equal(t, 20*time.Second, allocator.TimeoutBudget(200))
	})

	t.Run("large batches scale past the floor", func(t *testing.T) {
		assert.Equal(t, 25*time.Second, allocator.TimeoutBudget(250))
		assert.Equal(t, 30*time.Second, allocator.TimeoutBudget(300))
	})
}
