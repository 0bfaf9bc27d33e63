package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDurationEnd(t *testing.T) {
	start := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC), DurationEnd(start, DurationSixMonths))
	assert.Equal(t, time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC), DurationEnd(start, DurationOneYear))
	assert.Equal(t, time.Date(2027, time.January, 15, 0, 0, 0, 0, time.UTC), DurationEnd(start, DurationTwoYears))
}

func TestDurationEndUnknownDefaultsToSixMonths(t *testing.T) {
	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, start.AddDate(0, 6, 0), DurationEnd(start, "3 weeks"))
	assert.Equal(t, start.AddDate(0, 6, 0), DurationEnd(start, ""))
}

func TestExtendEndPushesFromCurrentEnd(t *testing.T) {
	// Extension applies to the existing end date, not the present time.
	end := time.Date(2026, time.April, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.October, 10, 0, 0, 0, 0, time.UTC), ExtendEnd(end, 6))
	assert.Equal(t, time.Date(2027, time.April, 10, 0, 0, 0, 0, time.UTC), ExtendEnd(end, 12))
}

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	// Partial days round up.
	assert.Equal(t, 1, DaysRemaining(now.Add(6*time.Hour), now))
	assert.Equal(t, 10, DaysRemaining(now.AddDate(0, 0, 10), now))

	// Past end dates go negative.
	assert.Equal(t, -5, DaysRemaining(now.AddDate(0, 0, -5), now))
	assert.Equal(t, 0, DaysRemaining(now, now))
}
