package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayFormats(t *testing.T) {
	ts := time.Date(2026, time.January, 7, 9, 5, 3, 0, time.UTC)

	// 09:05:03 UTC is 14:35:03 in India
	assert.Equal(t, "7/1/2026", DisplayDate(ts))
	assert.Equal(t, "2:35:03 pm", DisplayTime(ts))
}

func TestDayBoundaries(t *testing.T) {
	day, err := ParseDate("2026-10-17")
	require.NoError(t, err)

	start := StartOfDay(day)
	end := EndOfDay(day)

	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 999999999, end.Nanosecond())
	assert.True(t, end.After(start))
	assert.Equal(t, Location(), start.Location())
}

func TestSetLocation_Unknown(t *testing.T) {
	err := SetLocation("Mars/Olympus")
	assert.Error(t, err)
}
