package budget

import (
	"fmt"
	"strings"
	"time"
)

type WeekNumber struct {
	Week int
	Year int
}

// WeekNumberFromDate returns the ISO week number that corresponds to the week containing
// the provided date, taking the desired week start day into account. The week start day
// can shift the ISO week into the previous calendar week when it is earlier than Monday.
func WeekNumberFromDate(date time.Time, weekStartDay time.Weekday) WeekNumber {
	if weekStartDay < time.Sunday || weekStartDay > time.Saturday {
		weekStartDay = time.Monday
	}

	delta := (int(date.Weekday()) - int(weekStartDay) + 7) % 7
	startOfWeek := date.AddDate(0, 0, -delta)

	year, week := startOfWeek.ISOWeek()
	return WeekNumber{Year: year, Week: week}
}

func (w WeekNumber) Equal(other WeekNumber) bool {
	return w.Year == other.Year && w.Week == other.Week
}

func (w WeekNumber) Before(other WeekNumber) bool {
	if w.Year != other.Year {
		return w.Year < other.Year
	}
	return w.Week < other.Week
}

func (w WeekNumber) After(other WeekNumber) bool {
	return other.Before(w)
}

// String returns the ISO 8601 week format e.g. "2025-W03"
func (w WeekNumber) String() string {
	return fmt.Sprintf("%04d-W%02d", w.Year, w.Week)
}

// WeekStart returns midnight of the first day of the week containing ts, in loc.
func WeekStart(ts time.Time, firstDay time.Weekday, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := ts.In(loc)
	year, month, day := local.Date()
	return time.Date(year, month, day-dayOfWeek(local, firstDay), 0, 0, 0, 0, loc)
}

// dayOfWeek is the zero-based position of ts inside its week (0 for the first day).
func dayOfWeek(ts time.Time, firstDay time.Weekday) int {
	return (int(ts.Weekday()) - int(firstDay) + 7) % 7
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"sun":       time.Sunday,
	"cn":        time.Sunday,
	"monday":    time.Monday,
	"mon":       time.Monday,
	"t2":        time.Monday,
	"tuesday":   time.Tuesday,
	"tue":       time.Tuesday,
	"t3":        time.Tuesday,
	"wednesday": time.Wednesday,
	"wed":       time.Wednesday,
	"t4":        time.Wednesday,
	"thursday":  time.Thursday,
	"thu":       time.Thursday,
	"t5":        time.Thursday,
	"friday":    time.Friday,
	"fri":       time.Friday,
	"t6":        time.Friday,
	"saturday":  time.Saturday,
	"sat":       time.Saturday,
	"t7":        time.Saturday,
}

// ParseWeekday accepts English day names ("monday", "mon") and the Vietnamese short forms
// ("t2" to "t7", "cn").
func ParseWeekday(name string) (time.Weekday, error) {
	day, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return time.Monday, fmt.Errorf("invalid weekday: %q", name)
	}
	return day, nil
}
