package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlocked(t *testing.T) {
	ix := BuildIndex([]Day{
		{Date: "2024-03-01", Available: false},
		{Date: "2024-03-02", Available: true},
	}, "")

	t.Run("zero availability is blocked", func(t *testing.T) {
		assert.True(t, ix.Blocked("2024-03-01"))
	})

	t.Run("available day is not blocked", func(t *testing.T) {
		assert.False(t, ix.Blocked("2024-03-02"))
	})

	t.Run("absent date counts as available", func(t *testing.T) {
		assert.False(t, ix.Blocked("2024-07-15"))
	})

	t.Run("duplicate dates keep the last record", func(t *testing.T) {
		dup := BuildIndex([]Day{
			{Date: "2024-03-01", Available: false},
			{Date: "2024-03-01", Available: true},
		}, "")
		assert.False(t, dup.Blocked("2024-03-01"))
	})

	t.Run("selection start is never blocked", func(t *testing.T) {
		sel := BuildIndex([]Day{{Date: "2024-03-01", Available: false}}, "2024-03-01")
		assert.False(t, sel.Blocked("2024-03-01"))
	})
}

func TestHasUnavailableInRange(t *testing.T) {
	ix := BuildIndex([]Day{
		{Date: "2024-03-01", Available: false},
		{Date: "2024-03-02", Available: true},
	}, "")

	t.Run("detects a blocked day inside the range", func(t *testing.T) {
		assert.True(t, ix.HasUnavailableInRange("2024-03-01", "2024-03-02"))
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		assert.True(t, ix.HasUnavailableInRange("2024-02-28", "2024-03-01"))
	})

	t.Run("all available or absent reads as free", func(t *testing.T) {
		assert.False(t, ix.HasUnavailableInRange("2024-03-02", "2024-03-10"))
	})

	t.Run("missing bounds report no violation", func(t *testing.T) {
		assert.False(t, ix.HasUnavailableInRange("", "2024-03-02"))
		assert.False(t, ix.HasUnavailableInRange("2024-03-01", ""))
	})

	t.Run("inverted range reports no violation", func(t *testing.T) {
		assert.False(t, ix.HasUnavailableInRange("2024-03-02", "2024-03-01"))
	})

	t.Run("unparseable bounds report no violation", func(t *testing.T) {
		assert.False(t, ix.HasUnavailableInRange("not-a-date", "2024-03-02"))
	})

	t.Run("selection start does not trip validation", func(t *testing.T) {
		sel := BuildIndex([]Day{
			{Date: "2024-03-01", Available: false},
			{Date: "2024-03-02", Available: true},
		}, "2024-03-01")
		assert.False(t, sel.HasUnavailableInRange("2024-03-01", "2024-03-02"))
	})
}
