package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSlot(t *testing.T) {
	assert.NoError(t, ValidateSlot("Monday", "09:00", "10:00"))
	assert.NoError(t, ValidateSlot("Sunday", "23:00", "23:30"))

	assert.Error(t, ValidateSlot("Funday", "09:00", "10:00"))
	assert.Error(t, ValidateSlot("monday", "09:00", "10:00"))
	assert.Error(t, ValidateSlot("Monday", "9am", "10:00"))
	assert.Error(t, ValidateSlot("Monday", "09:00", "25:00"))
	assert.Error(t, ValidateSlot("Monday", "10:00", "09:00"))
	assert.Error(t, ValidateSlot("Monday", "10:00", "10:00"))
}

func TestComputeTotalAmount(t *testing.T) {
	assert.Equal(t, 20.0, ComputeTotalAmount(20, 60))
	assert.Equal(t, 30.0, ComputeTotalAmount(20, 90))
	assert.Equal(t, 10.0, ComputeTotalAmount(20, 30))
	assert.Equal(t, 13.13, ComputeTotalAmount(17.5, 45))
	assert.Equal(t, 0.0, ComputeTotalAmount(0, 60))
}

func TestAmountMatches(t *testing.T) {
	assert.True(t, AmountMatches(20.00, 20.00))
	assert.True(t, AmountMatches(20.004, 20.00))
	assert.False(t, AmountMatches(20.05, 20.00))
	assert.False(t, AmountMatches(19.0, 20.0))
}

func TestNextOccurrence(t *testing.T) {
	// Wednesday, 2026-01-07 12:00 UTC.
	ref := time.Date(2026, 1, 7, 12, 0, 0, 0, time.UTC)
	require.Equal(t, time.Wednesday, ref.Weekday())

	next, err := NextOccurrence("Friday", "09:00", ref)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 9, 9, 0, 0, 0, time.UTC), next)

	// Same weekday, earlier wall-clock time rolls to next week.
	next, err = NextOccurrence("Wednesday", "09:00", ref)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 14, 9, 0, 0, 0, time.UTC), next)

	// Same weekday, later wall-clock time stays in the current week.
	next, err = NextOccurrence("Wednesday", "15:00", ref)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 7, 15, 0, 0, 0, time.UTC), next)

	_, err = NextOccurrence("Someday", "09:00", ref)
	assert.Error(t, err)
}
