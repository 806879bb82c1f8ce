package services

import (
	"testing"
	"time"
)

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

var weekend = []string{"saturday", "sunday"}

func TestDueDateZeroDaysReturnsStartUnchanged(t *testing.T) {
	cal := NewTatCalendar(nil, nil)
	for _, start := range []string{"2024-01-01", "2024-02-29", "2025-12-31"} {
		got := cal.DueDate(day(start), 0)
		if !got.Equal(day(start)) {
			t.Errorf("DueDate(%s, 0) = %s, want start unchanged", start, got.Format("2006-01-02"))
		}
	}
}

func TestDueDateZeroDaysAdvancesOffNonWorkingStart(t *testing.T) {
	cal := NewTatCalendar(nil, weekend)
	// 2024-01-06 is a Saturday; the first working day is Monday the 8th.
	got := cal.DueDate(day("2024-01-06"), 0)
	if want := day("2024-01-08"); !got.Equal(want) {
		t.Errorf("DueDate(sat, 0) = %s, want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestDueDateWithoutExclusionsIsPlainAddition(t *testing.T) {
	cal := NewTatCalendar(nil, nil)
	start := day("2024-01-01")
	for n := 1; n <= 10; n++ {
		got := cal.DueDate(start, n)
		if want := start.AddDate(0, 0, n); !got.Equal(want) {
			t.Errorf("DueDate(start, %d) = %s, want %s", n, got.Format("2006-01-02"), want.Format("2006-01-02"))
		}
	}
}

func TestDueDateSkipsWeekend(t *testing.T) {
	cal := NewTatCalendar(nil, weekend)
	// Monday + 5 working days crosses the Jan 6-7 weekend.
	got := cal.DueDate(day("2024-01-01"), 5)
	if want := day("2024-01-08"); !got.Equal(want) {
		t.Errorf("DueDate(mon, 5) = %s, want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestDueDateMonotonicInTatDays(t *testing.T) {
	cal := NewTatCalendar([]string{"2024-01-03", "2024-01-10"}, weekend)
	start := day("2024-01-01")
	prev := cal.DueDate(start, 1)
	for n := 2; n <= 15; n++ {
		got := cal.DueDate(start, n)
		if !got.After(prev) {
			t.Fatalf("DueDate not strictly increasing at n=%d: %s then %s", n,
				prev.Format("2006-01-02"), got.Format("2006-01-02"))
		}
		prev = got
	}
}

func TestHolidayOnWeekendDoesNotMoveDueDate(t *testing.T) {
	start := day("2024-01-01")
	without := NewTatCalendar(nil, weekend).DueDate(start, 5)
	with := NewTatCalendar([]string{"2024-01-06"}, weekend).DueDate(start, 5) // Saturday
	if !with.Equal(without) {
		t.Errorf("holiday on weekend moved due date: %s vs %s",
			with.Format("2006-01-02"), without.Format("2006-01-02"))
	}
}

func TestHolidayOnWorkingDayPushesDueDateByOneDay(t *testing.T) {
	start := day("2024-01-01")
	without := NewTatCalendar(nil, weekend).DueDate(start, 5)
	with := NewTatCalendar([]string{"2024-01-03"}, weekend).DueDate(start, 5) // Wednesday
	if want := without.AddDate(0, 0, 1); !with.Equal(want) {
		t.Errorf("holiday on working day: got %s, want %s",
			with.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestActualCalendarDaysMatchesDueDateWalk(t *testing.T) {
	cal := NewTatCalendar([]string{"2024-01-03"}, weekend)
	start := day("2024-01-01")
	for n := 0; n <= 12; n++ {
		days := cal.ActualCalendarDays(start, n)
		due := cal.DueDate(start, n)
		if n == 0 {
			if days != 0 {
				t.Errorf("ActualCalendarDays(start, 0) = %d, want 0", days)
			}
			continue
		}
		if want := start.AddDate(0, 0, days); !due.Equal(want) {
			t.Errorf("n=%d: due date %s does not match start+%d days", n, due.Format("2006-01-02"), days)
		}
	}
}

func TestActualCalendarDaysNonDecreasing(t *testing.T) {
	cal := NewTatCalendar([]string{"2024-01-03", "2024-01-04"}, weekend)
	start := day("2024-01-01")
	prev := 0
	for n := 1; n <= 15; n++ {
		got := cal.ActualCalendarDays(start, n)
		if got < prev {
			t.Fatalf("ActualCalendarDays decreased at n=%d: %d then %d", n, prev, got)
		}
		prev = got
	}
}

func TestProgressBoundaries(t *testing.T) {
	cal := NewTatCalendar(nil, weekend)
	start := day("2024-01-01")
	needed := cal.ActualCalendarDays(start, 5) // 7 calendar days

	cases := []struct {
		name       string
		today      time.Time
		status     string
		remaining  int
		exceededBy int
	}{
		{"early", start.AddDate(0, 0, needed-3), TatEarly, 3, 0},
		{"on_time", start.AddDate(0, 0, needed), TatOnTime, 0, 0},
		{"exceed", start.AddDate(0, 0, needed+2), TatExceed, 0, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := cal.progressAt(start, 5, tc.today)
			if p.Status != tc.status {
				t.Errorf("status = %q, want %q", p.Status, tc.status)
			}
			if p.Remaining != tc.remaining {
				t.Errorf("remaining = %d, want %d", p.Remaining, tc.remaining)
			}
			if p.ExceededBy != tc.exceededBy {
				t.Errorf("exceededBy = %d, want %d", p.ExceededBy, tc.exceededBy)
			}
		})
	}
}

func TestParseTatDaysCoercion(t *testing.T) {
	cases := map[string]int{
		"5":      5,
		" 12 ":   12,
		"":       0,
		"abc":    0,
		"3.5":    0,
		"-4":     0,
		"0":      0,
	}
	for raw, want := range cases {
		if got := ParseTatDays(raw); got != want {
			t.Errorf("ParseTatDays(%q) = %d, want %d", raw, got, want)
		}
	}
}

func TestIsWorkingDayIgnoresTimeOfDay(t *testing.T) {
	cal := NewTatCalendar([]string{"2024-01-03"}, weekend)
	holidayEvening := time.Date(2024, 1, 3, 23, 15, 0, 0, time.UTC)
	if cal.IsWorkingDay(holidayEvening) {
		t.Error("holiday with time-of-day should not be a working day")
	}
	saturday := time.Date(2024, 1, 6, 9, 0, 0, 0, time.UTC)
	if cal.IsWorkingDay(saturday) {
		t.Error("saturday should not be a working day")
	}
}
