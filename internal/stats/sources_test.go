package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceDistribution(t *testing.T) {
	t.Run("groups in first occurrence order", func(t *testing.T) {
		d := SourceDistribution([]string{"Airbnb", "Booking.com", "Airbnb", "Airbnb"})
		assert.Equal(t, []string{"Airbnb", "Booking.com"}, d.Labels)
		assert.Equal(t, []int{3, 1}, d.Counts)
	})

	t.Run("empty partner name maps to Direct", func(t *testing.T) {
		d := SourceDistribution([]string{"", "Airbnb", ""})
		assert.Equal(t, []string{"Direct", "Airbnb"}, d.Labels)
		assert.Equal(t, []int{2, 1}, d.Counts)
	})

	t.Run("counts sum to the input size", func(t *testing.T) {
		names := []string{"A", "B", "", "A", "C", "C", "C"}
		d := SourceDistribution(names)
		total := 0
		for _, c := range d.Counts {
			total += c
		}
		assert.Equal(t, len(names), total)
	})

	t.Run("percentages are unrounded and sum to 100", func(t *testing.T) {
		d := SourceDistribution([]string{"A", "A", "B"})
		require.Len(t, d.Percentages, 2)
		assert.InDelta(t, 66.666, d.Percentages[0], 0.01)
		assert.InDelta(t, 33.333, d.Percentages[1], 0.01)
		sum := 0.0
		for _, p := range d.Percentages {
			sum += p
		}
		assert.InDelta(t, 100.0, sum, 1e-9)
	})

	t.Run("empty input yields empty distribution", func(t *testing.T) {
		d := SourceDistribution(nil)
		assert.Empty(t, d.Labels)
		assert.Empty(t, d.Counts)
		assert.Empty(t, d.Percentages)
	})
}
