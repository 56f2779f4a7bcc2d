// Package dates holds the calendar-date helpers shared by the store, the
// rating engine and the CLI. Dates are local wall-clock "YYYY-MM-DD" strings.
package dates

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const Layout = "2006-01-02"

var weekPattern = regexp.MustCompile(`^\d{4}-W\d{2}$`)

func Format(t time.Time) string {
	return t.In(time.Local).Format(Layout)
}

func Today() string {
	return Format(time.Now())
}

func Parse(date string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, strings.TrimSpace(date), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", date)
	}
	return t, nil
}

// OrToday parses date, falling back to today when it is blank.
func OrToday(date string) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return Today(), nil
	}
	t, err := Parse(date)
	if err != nil {
		return "", err
	}
	return Format(t), nil
}

// DayName returns the English weekday name of a date key, or "" when the key
// does not parse.
func DayName(date string) string {
	t, err := Parse(date)
	if err != nil {
		return ""
	}
	return t.Weekday().String()
}

// WeekDates returns the Monday-first week containing t.
func WeekDates(t time.Time) []string {
	start := BeginningOfWeek(t)
	out := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		out = append(out, Format(start.AddDate(0, 0, i)))
	}
	return out
}

// LastNDays returns n consecutive dates ending with end, oldest first.
func LastNDays(end time.Time, n int) []string {
	if n <= 0 {
		return []string{}
	}
	out := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		out = append(out, Format(end.AddDate(0, 0, -i)))
	}
	return out
}

// Range returns every date from from to to inclusive.
func Range(from, to time.Time) ([]string, error) {
	from = BeginningOfDay(from)
	to = BeginningOfDay(to)
	if from.After(to) {
		return nil, fmt.Errorf("from date must be <= to date")
	}
	out := make([]string, 0)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		out = append(out, Format(d))
	}
	return out, nil
}

// ResolveWeek turns an ISO week "YYYY-Www" into its Monday and Sunday. An
// empty value means the current week.
func ResolveWeek(week string) (time.Time, time.Time, error) {
	if week == "" {
		start := BeginningOfWeek(time.Now().In(time.Local))
		return start, start.AddDate(0, 0, 6), nil
	}
	if !weekPattern.MatchString(week) {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid week value %q (expected YYYY-Www)", week)
	}
	var year, weekNum int
	if _, err := fmt.Sscanf(week, "%4d-W%2d", &year, &weekNum); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid week value %q (expected YYYY-Www)", week)
	}
	maxWeek := weeksInISOYear(year)
	if weekNum < 1 || weekNum > maxWeek {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid week value %q (week must be between 01 and %02d for %d)", week, maxWeek, year)
	}
	start := isoWeekStart(year, weekNum)
	return start, start.AddDate(0, 0, 6), nil
}

func ResolveMonth(month string) (time.Time, time.Time, error) {
	if month == "" {
		now := time.Now().In(time.Local)
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
		return start, start.AddDate(0, 1, -1), nil
	}
	parsed, err := time.ParseInLocation("2006-01", month, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month value %q (expected YYYY-MM)", month)
	}
	start := time.Date(parsed.Year(), parsed.Month(), 1, 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 1, -1), nil
}

func BeginningOfDay(t time.Time) time.Time {
	y, m, d := t.In(time.Local).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func BeginningOfWeek(t time.Time) time.Time {
	t = BeginningOfDay(t)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return t.AddDate(0, 0, -(weekday - 1))
}

func isoWeekStart(year, week int) time.Time {
	jan4 := time.Date(year, 1, 4, 0, 0, 0, 0, time.Local)
	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	week1Monday := jan4.AddDate(0, 0, -(weekday - 1))
	return week1Monday.AddDate(0, 0, (week-1)*7)
}

func weeksInISOYear(year int) int {
	_, wk := time.Date(year, 12, 28, 0, 0, 0, 0, time.Local).ISOWeek()
	return wk
}
