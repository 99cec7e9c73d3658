package timespan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseInterval(t *testing.T) {
	t.Run("It round-trips String output", func(t *testing.T) {
		ivl := iv(15, 17)
		got, err := ParseInterval(ivl.String())
		require.NoError(t, err)
		require.True(t, got.Equal(ivl))
	})

	t.Run("It accepts bare endpoints without brackets", func(t *testing.T) {
		got, err := ParseInterval("2023-01-01T13:15:00Z, 2023-01-01T13:17:00Z")
		require.NoError(t, err)
		require.True(t, got.Equal(iv(15, 17)))
	})

	t.Run("It accepts a duration offset as the stop", func(t *testing.T) {
		got, err := ParseInterval("[2023-01-01T13:15:00Z, 2m]")
		require.NoError(t, err)
		require.True(t, got.Equal(iv(15, 17)))
	})

	t.Run("It accepts date-only endpoints", func(t *testing.T) {
		got, err := ParseInterval("[2023-01-01, 2023-01-02]")
		require.NoError(t, err)
		require.Equal(t, 24*time.Hour, got.Duration())
	})

	t.Run("It rejects a reversed interval", func(t *testing.T) {
		_, err := ParseInterval("[2023-01-01T13:17:00Z, 2023-01-01T13:15:00Z]")
		require.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("It rejects malformed input", func(t *testing.T) {
		_, err := ParseInterval("not an interval")
		require.Error(t, err)

		_, err = ParseInterval("[2023-01-01T13:15:00Z, bogus]")
		require.Error(t, err)
	})
}

func TestParseList(t *testing.T) {
	t.Run("It round-trips String output", func(t *testing.T) {
		list := NewList(iv(0, 10), iv(20, 30))
		got, err := ParseList(list.String())
		require.NoError(t, err)
		require.True(t, got.Equal(list))
	})

	t.Run("It round-trips the empty list", func(t *testing.T) {
		got, err := ParseList(NewList().String())
		require.NoError(t, err)
		require.True(t, got.IsEmpty())
	})

	t.Run("It normalizes unsorted input", func(t *testing.T) {
		got, err := ParseList("[[2023-01-01T13:16:00Z, 2023-01-01T13:18:00Z], [2023-01-01T13:15:00Z, 2023-01-01T13:17:00Z]]")
		require.NoError(t, err)
		require.True(t, got.Equal(NewList(iv(15, 18))))
	})

	t.Run("It rejects malformed input", func(t *testing.T) {
		_, err := ParseList("no brackets")
		require.Error(t, err)

		_, err = ParseList("[[2023-01-01T13:15:00Z, 2023-01-01T13:17:00Z]")
		require.Error(t, err)

		_, err = ParseList("[[2023-01-01T13:15:00Z, 2023-01-01T13:17:00Z], oops]")
		require.Error(t, err)
	})
}

func TestDurationStrings(t *testing.T) {
	t.Run("It formats compactly", func(t *testing.T) {
		require.Equal(t, "1h30m", FormatDuration(90*time.Minute))
	})

	t.Run("It parses day units", func(t *testing.T) {
		d, err := ParseDuration("1d2h")
		require.NoError(t, err)
		require.Equal(t, 26*time.Hour, d)
	})

	t.Run("It round-trips", func(t *testing.T) {
		for _, d := range []time.Duration{time.Second, 90 * time.Minute, 26 * time.Hour} {
			got, err := ParseDuration(FormatDuration(d))
			require.NoError(t, err)
			require.Equal(t, d, got)
		}
	})
}
