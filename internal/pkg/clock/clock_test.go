//go:build unit

package clock_test

import (
	"testing"
	"time"

	"studyroom-booking/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
)

func TestRealClockLocation(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	now := clock.NewRealClockIn(loc).Now()

	assert.Equal(t, loc, now.Location())
	assert.WithinDuration(t, time.Now(), now, time.Second)
}

func TestRealClockDefaultsToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, clock.NewRealClockIn(nil).Now().Location())
	assert.Equal(t, time.UTC, clock.NewRealClock().Now().Location())
}

func TestMockClock(t *testing.T) {
	start := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	c := clock.NewMockClock(start)

	c.Add(90 * time.Minute)
	assert.Equal(t, start.Add(90*time.Minute), c.Now())

	c.Set(start)
	assert.Equal(t, start, c.Now())
}
