//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"studyroom-booking/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, 1, 1, hour, minute, 0, 0, time.UTC)
}

func mustInterval(t *testing.T, start, end time.Time) reservation.Interval {
	t.Helper()
	i, err := reservation.NewInterval(start, end)
	require.NoError(t, err)
	return i
}

func TestIsValidOrder(t *testing.T) {
	assert.True(t, reservation.IsValidOrder(at(10, 0), at(11, 0)))
	assert.False(t, reservation.IsValidOrder(at(10, 0), at(10, 0)))
	assert.False(t, reservation.IsValidOrder(at(11, 0), at(10, 0)))
}

func TestNewInterval(t *testing.T) {
	t.Run("start before end", func(t *testing.T) {
		i, err := reservation.NewInterval(at(10, 0), at(11, 0))
		require.NoError(t, err)
		assert.Equal(t, time.Hour, i.Duration())
	})

	t.Run("empty interval rejected", func(t *testing.T) {
		_, err := reservation.NewInterval(at(10, 0), at(10, 0))
		require.ErrorIs(t, err, reservation.ErrInvalidInterval)
	})

	t.Run("reversed interval rejected", func(t *testing.T) {
		_, err := reservation.NewInterval(at(11, 0), at(10, 0))
		require.ErrorIs(t, err, reservation.ErrInvalidInterval)
	})

	t.Run("interval narrower than storage precision rejected", func(t *testing.T) {
		start := at(10, 0).Add(100 * time.Nanosecond)
		_, err := reservation.NewInterval(start, start.Add(500*time.Nanosecond))
		require.ErrorIs(t, err, reservation.ErrInvalidInterval)
	})

	t.Run("instants truncated to microseconds", func(t *testing.T) {
		i, err := reservation.NewInterval(at(10, 0).Add(1500*time.Nanosecond), at(11, 0).Add(999*time.Nanosecond))
		require.NoError(t, err)
		assert.Equal(t, at(10, 0).Add(time.Microsecond), i.Start())
		assert.Equal(t, at(11, 0), i.End())
	})
}

// expanded is the four-comparison form the single predicate replaces.
func expanded(aStart, aEnd, bStart, bEnd time.Time) bool {
	return (aStart.Before(bEnd) && aEnd.After(bStart)) ||
		(!aStart.Before(bStart) && aStart.Before(bEnd)) ||
		(aEnd.After(bStart) && !aEnd.After(bEnd)) ||
		(!aStart.After(bStart) && !aEnd.Before(bEnd))
}

func TestOverlaps(t *testing.T) {
	existing := mustInterval(t, at(10, 0), at(11, 0))

	cases := []struct {
		name      string
		candidate reservation.Interval
		want      bool
	}{
		{name: "identical", candidate: mustInterval(t, at(10, 0), at(11, 0)), want: true},
		{name: "overlaps end", candidate: mustInterval(t, at(10, 30), at(11, 30)), want: true},
		{name: "overlaps start", candidate: mustInterval(t, at(9, 30), at(10, 30)), want: true},
		{name: "contained", candidate: mustInterval(t, at(10, 15), at(10, 45)), want: true},
		{name: "contains", candidate: mustInterval(t, at(9, 0), at(12, 0)), want: true},
		{name: "same start shorter", candidate: mustInterval(t, at(10, 0), at(10, 45)), want: true},
		{name: "same end shorter", candidate: mustInterval(t, at(10, 15), at(11, 0)), want: true},
		{name: "back to back after", candidate: mustInterval(t, at(11, 0), at(12, 0)), want: false},
		{name: "back to back before", candidate: mustInterval(t, at(9, 0), at(10, 0)), want: false},
		{name: "disjoint after", candidate: mustInterval(t, at(12, 0), at(13, 0)), want: false},
		{name: "disjoint before", candidate: mustInterval(t, at(7, 0), at(8, 0)), want: false},
		{name: "one nanosecond overlap", candidate: mustInterval(t, at(11, 0).Add(-time.Nanosecond), at(12, 0)), want: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, reservation.Overlaps(tc.candidate, existing))
			assert.Equal(t, tc.want, reservation.Overlaps(existing, tc.candidate), "predicate must be symmetric")
			assert.Equal(t,
				expanded(tc.candidate.Start(), tc.candidate.End(), existing.Start(), existing.End()),
				tc.candidate.Overlaps(existing),
				"single predicate must agree with the expanded form",
			)
		})
	}
}

func TestIntervalEndBoundaries(t *testing.T) {
	i := mustInterval(t, at(10, 0), at(11, 0))

	assert.False(t, i.EndsBefore(at(10, 30)))
	assert.False(t, i.EndsBefore(at(11, 0)))
	assert.True(t, i.EndsBefore(at(11, 1)))

	assert.False(t, i.EndsAtOrBefore(at(10, 30)))
	assert.True(t, i.EndsAtOrBefore(at(11, 0)))
	assert.True(t, i.EndsAtOrBefore(at(11, 1)))
}

func TestIntervalToTstzrange(t *testing.T) {
	i := mustInterval(t, at(10, 0), at(11, 0))
	assert.Equal(t, "[2024-01-01T10:00:00Z,2024-01-01T11:00:00Z)", i.ToTstzrange())
}
