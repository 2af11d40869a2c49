// Package analytics turns a flat list of ledger transactions into budget, savings and
// category reports. Every function here is pure: it takes the transactions and the
// configuration values it needs and never touches storage.
package analytics

import "time"

// Cycle is a budget window. Both bounds are inclusive.
type Cycle struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the cycle
func (c Cycle) Contains(t time.Time) bool {
	return !t.Before(c.Start) && !t.After(c.End)
}

// CurrentCycle returns the budget cycle containing now. The cycle starts at midnight of
// startDay in now's location and ends one nanosecond before the next cycle starts.
//
// startDay is clamped to [1, 31], and in months shorter than startDay the cycle starts
// on the last day of that month, so consecutive cycles never overlap or leave gaps.
func CurrentCycle(now time.Time, startDay int) Cycle {
	day := clampDay(startDay)
	loc := now.Location()
	year, month, today := now.Date()

	start := cycleStartIn(year, month, day, loc)
	if today < start.Day() {
		start = cycleStartIn(year, month-1, day, loc)
	}
	return cycleFrom(start, day)
}

// PreviousCycle returns the cycle that ended right before c
func PreviousCycle(c Cycle, startDay int) Cycle {
	return CurrentCycle(c.Start.Add(-time.Nanosecond), startDay)
}

// IsCycleStartDay reports whether now falls on the first day of its budget cycle
func IsCycleStartDay(now time.Time, startDay int) bool {
	start := CurrentCycle(now, startDay).Start
	y1, m1, d1 := start.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func cycleFrom(start time.Time, day int) Cycle {
	next := cycleStartIn(start.Year(), start.Month()+1, day, start.Location())
	return Cycle{Start: start, End: next.Add(-time.Nanosecond)}
}

// cycleStartIn returns midnight of day in the given month, using the month's last day
// when it has fewer days. month may be out of range; time.Date normalizes it.
func cycleStartIn(year int, month time.Month, day int, loc *time.Location) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	if last := daysIn(first.Year(), first.Month(), loc); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, loc)
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

func clampDay(day int) int {
	switch {
	case day < 1:
		return 1
	case day > 31:
		return 31
	}
	return day
}
