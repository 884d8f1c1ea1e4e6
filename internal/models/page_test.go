package models

import (
	"testing"
	"time"

	"shareit/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageSkip(t *testing.T) {
	assert.Equal(t, 0, PageSkip(0, 10))
	assert.Equal(t, 0, PageSkip(5, 10))
	assert.Equal(t, 10, PageSkip(10, 10))
	assert.Equal(t, 20, PageSkip(29, 10))
	assert.Equal(t, 0, PageSkip(3, 0))
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2026, 7, 1, 10, 30, 0, 0, time.UTC)

	for _, in := range []string{
		"2026-07-01T10:30:00Z",
		"2026-07-01T12:30:00+02:00",
		"2026-07-01T10:30:00",
		"2026-07-01T10:30",
	} {
		got, err := ParseTimestamp(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), in)
		assert.Equal(t, time.UTC, got.Location(), in)
	}

	_, err := ParseTimestamp("yesterday")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	_, err = ParseTimestamp("")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}
