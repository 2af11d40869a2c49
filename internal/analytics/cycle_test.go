package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrentCycle(t *testing.T) {
	testCases := []struct {
		name          string
		now           time.Time
		startDay      int
		expectedStart time.Time
		expectedEnd   time.Time
	}{
		{
			name:          "AfterStartDay",
			now:           time.Date(2025, 3, 20, 13, 45, 0, 0, time.UTC),
			startDay:      15,
			expectedStart: day(2025, 3, 15),
			expectedEnd:   day(2025, 4, 15).Add(-time.Nanosecond),
		},
		{
			name:          "BeforeStartDayUsesPreviousMonth",
			now:           time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
			startDay:      15,
			expectedStart: day(2025, 2, 15),
			expectedEnd:   day(2025, 3, 15).Add(-time.Nanosecond),
		},
		{
			name:          "OnStartDay",
			now:           day(2025, 3, 15),
			startDay:      15,
			expectedStart: day(2025, 3, 15),
			expectedEnd:   day(2025, 4, 15).Add(-time.Nanosecond),
		},
		{
			name:          "JanuaryRollsBackToDecember",
			now:           day(2025, 1, 3),
			startDay:      25,
			expectedStart: day(2024, 12, 25),
			expectedEnd:   day(2025, 1, 25).Add(-time.Nanosecond),
		},
		{
			name:          "StartDayClampedInShortPreviousMonth",
			now:           day(2025, 3, 10),
			startDay:      31,
			expectedStart: day(2025, 2, 28),
			expectedEnd:   day(2025, 3, 31).Add(-time.Nanosecond),
		},
		{
			name:          "StartDayClampedInShortCurrentMonth",
			now:           day(2025, 4, 30),
			startDay:      31,
			expectedStart: day(2025, 4, 30),
			expectedEnd:   day(2025, 5, 31).Add(-time.Nanosecond),
		},
		{
			name:          "StartDayClampedInShortNextMonth",
			now:           day(2025, 1, 31),
			startDay:      30,
			expectedStart: day(2025, 1, 30),
			expectedEnd:   day(2025, 2, 28).Add(-time.Nanosecond),
		},
		{
			name:          "LeapFebruary",
			now:           day(2024, 2, 29),
			startDay:      31,
			expectedStart: day(2024, 2, 29),
			expectedEnd:   day(2024, 3, 31).Add(-time.Nanosecond),
		},
		{
			name:          "ZeroDayTreatedAsFirst",
			now:           day(2025, 6, 10),
			startDay:      0,
			expectedStart: day(2025, 6, 1),
			expectedEnd:   day(2025, 7, 1).Add(-time.Nanosecond),
		},
		{
			name:          "DayAboveRangeTreatedAsLast",
			now:           day(2025, 6, 10),
			startDay:      32,
			expectedStart: day(2025, 5, 31),
			expectedEnd:   day(2025, 6, 30).Add(-time.Nanosecond),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cycle := CurrentCycle(tc.now, tc.startDay)
			assert.Equal(t, tc.expectedStart, cycle.Start)
			assert.Equal(t, tc.expectedEnd, cycle.End)
			assert.True(t, cycle.Contains(tc.now))
		})
	}
}

func TestCurrentCycle_FirstOfMonthSpansWholeMonth(t *testing.T) {
	for month := time.January; month <= time.December; month++ {
		for _, d := range []int{1, 14, 28} {
			now := time.Date(2025, month, d, 12, 0, 0, 0, time.UTC)
			cycle := CurrentCycle(now, 1)

			assert.Equal(t, 1, cycle.Start.Day())
			length := cycle.End.Sub(cycle.Start)
			assert.GreaterOrEqual(t, length, 27*24*time.Hour, "month %s", month)
			assert.LessOrEqual(t, length, 31*24*time.Hour, "month %s", month)
		}
	}
}

func TestCurrentCycle_CustomDayEndsDayBefore(t *testing.T) {
	for month := time.January; month <= time.December; month++ {
		cycle := CurrentCycle(time.Date(2025, month, 20, 9, 0, 0, 0, time.UTC), 15)
		assert.Equal(t, 15, cycle.Start.Day())
		assert.Equal(t, 14, cycle.End.Day())
	}
}

func TestCurrentCycle_KeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	now := time.Date(2025, 3, 1, 2, 0, 0, 0, loc)

	cycle := CurrentCycle(now, 1)

	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, loc), cycle.Start)
	assert.Equal(t, loc, cycle.Start.Location())
}

func TestCycle_ContainsIsInclusive(t *testing.T) {
	cycle := CurrentCycle(day(2025, 3, 20), 15)

	assert.True(t, cycle.Contains(cycle.Start))
	assert.True(t, cycle.Contains(cycle.End))
	assert.False(t, cycle.Contains(cycle.Start.Add(-time.Nanosecond)))
	assert.False(t, cycle.Contains(cycle.End.Add(time.Nanosecond)))
	assert.False(t, cycle.Contains(day(2025, 3, 14)))
	assert.False(t, cycle.Contains(day(2025, 4, 15)))
}

func TestPreviousCycle(t *testing.T) {
	current := CurrentCycle(day(2025, 3, 20), 15)

	prev := PreviousCycle(current, 15)

	assert.Equal(t, day(2025, 2, 15), prev.Start)
	assert.Equal(t, current.Start.Add(-time.Nanosecond), prev.End)
}

func TestIsCycleStartDay(t *testing.T) {
	assert.True(t, IsCycleStartDay(time.Date(2025, 3, 15, 6, 0, 0, 0, time.UTC), 15))
	assert.False(t, IsCycleStartDay(time.Date(2025, 3, 16, 6, 0, 0, 0, time.UTC), 15))
	assert.True(t, IsCycleStartDay(time.Date(2025, 2, 28, 6, 0, 0, 0, time.UTC), 31))
	assert.False(t, IsCycleStartDay(time.Date(2025, 3, 30, 6, 0, 0, 0, time.UTC), 31))
}
