package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDisplayDate(t *testing.T) {
	ts := time.Date(2025, 7, 4, 9, 5, 3, 0, time.UTC)
	assert.Equal(t, "04/07/2025, 09:05:03", FormatDisplayDate(ts))
}

func TestParseDisplayDate(t *testing.T) {
	loc := time.FixedZone("WEST", 3600)

	tests := []struct {
		name  string
		value string
		want  time.Time
	}{
		{"full date", "14/07/2025, 10:30:15", time.Date(2025, 7, 14, 10, 30, 15, 0, loc)},
		{"unpadded day and month", "4/7/2025, 9:05:00", time.Date(2025, 7, 4, 9, 5, 0, 0, loc)},
		{"no time part", "14/07/2025", time.Date(2025, 7, 14, 0, 0, 0, 0, loc)},
		{"no seconds", "14/07/2025, 10:30", time.Date(2025, 7, 14, 10, 30, 0, 0, loc)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDisplayDate(tt.value, loc)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v want %v", got, tt.want)
		})
	}
}

func TestParseDisplayDateRoundTrip(t *testing.T) {
	ts := time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC)
	got, err := ParseDisplayDate(FormatDisplayDate(ts), time.UTC)
	require.NoError(t, err)
	assert.True(t, ts.Equal(got))
}

func TestParseDisplayDateInvalid(t *testing.T) {
	for _, value := range []string{"", "yesterday", "2025-07-14", "31/02/2025, 10:00:00", "14/07/2025, noon"} {
		_, err := ParseDisplayDate(value, time.UTC)
		assert.Error(t, err, value)
	}
}

func TestSameDay(t *testing.T) {
	loc := time.UTC
	a := time.Date(2025, 7, 14, 0, 0, 1, 0, loc)
	b := time.Date(2025, 7, 14, 23, 59, 59, 0, loc)
	c := time.Date(2025, 7, 13, 23, 59, 59, 0, loc)

	assert.True(t, SameDay(a, b, loc))
	assert.False(t, SameDay(a, c, loc))
}
