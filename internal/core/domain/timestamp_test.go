package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	got, err := ParseTimestamp("1709283600")
	require.NoError(t, err)
	assert.Equal(t, int64(1709283600), got.Unix())

	got, err = ParseTimestamp("2024-03-01T09:00:00.750Z")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)))

	got, err = ParseTimestamp("  ")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = ParseTimestamp("yesterday")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
