package budget

import (
	"time"

	log "github.com/sirupsen/logrus"
)

type Level string

const (
	LevelNormal  Level = "normal"
	LevelWarning Level = "warning"
	LevelOver    Level = "over"
)

type Settings struct {
	// Limit is the weekly spending limit in đồng.
	Limit    int64
	FirstDay time.Weekday
	Location *time.Location
	// WarningPercent of the limit at which an early-week warning is raised (inclusive).
	WarningPercent int64
	// EarlyWarningDays is how many days from the start of the week the warning applies to.
	EarlyWarningDays int
}

func DefaultSettings() Settings {
	return Settings{
		Limit:            700_000,
		FirstDay:         time.Monday,
		Location:         time.FixedZone("Asia/Ho_Chi_Minh", 7*60*60),
		WarningPercent:   80,
		EarlyWarningDays: 4,
	}
}

type Status struct {
	Week        WeekNumber
	WeekStart   time.Time
	WeekEnd     time.Time
	Limit       int64
	Spent       int64
	Remaining   int64
	UsedPercent float64
	Level       Level
}

// Tracker keeps the running spend of the current budget week. It is not safe for concurrent use;
// callers serialize access per session.
type Tracker struct {
	settings  Settings
	weekStart time.Time
	spent     int64
}

func NewTracker(settings Settings) *Tracker {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &Tracker{settings: settings}
}

func (t *Tracker) Settings() Settings {
	return t.settings
}

// Record adds amount to the week containing ts. A later week resets the spend to zero.
// Amounts from a week before the current one are ignored.
func (t *Tracker) Record(amount int64, ts time.Time) Status {
	start := WeekStart(ts, t.settings.FirstDay, t.settings.Location)
	if t.weekStart.IsZero() || start.After(t.weekStart) {
		if !t.weekStart.IsZero() {
			log.Infof("new budget week %s, resetting spent %d", start.Format(time.DateOnly), t.spent)
		}
		t.weekStart = start
		t.spent = 0
	}
	if start.Equal(t.weekStart) {
		t.spent += amount
	} else {
		log.Debugf("amount %d at %s belongs to a past week, not counted", amount, ts)
	}
	return t.Status(ts)
}

// Revert takes back an amount recorded earlier. It never moves the week backwards, so amounts
// from a week that has already been closed are left alone.
func (t *Tracker) Revert(amount int64, ts time.Time) {
	start := WeekStart(ts, t.settings.FirstDay, t.settings.Location)
	if t.weekStart.IsZero() || !start.Equal(t.weekStart) {
		log.Debugf("amount %d at %s is outside the current week, nothing to revert", amount, ts)
		return
	}
	t.spent -= amount
	if t.spent < 0 {
		t.spent = 0
	}
}

// Status reports the budget as seen at now without changing it. A week after the tracked one
// reads as empty.
func (t *Tracker) Status(now time.Time) Status {
	start := WeekStart(now, t.settings.FirstDay, t.settings.Location)
	spent := int64(0)
	if !t.weekStart.IsZero() && !start.After(t.weekStart) {
		start = t.weekStart
		spent = t.spent
	}
	return t.settings.evaluate(start, spent, now)
}

func (s Settings) evaluate(weekStart time.Time, spent int64, at time.Time) Status {
	status := Status{
		Week:      WeekNumberFromDate(weekStart, s.FirstDay),
		WeekStart: weekStart,
		WeekEnd:   weekStart.AddDate(0, 0, 7),
		Limit:     s.Limit,
		Spent:     spent,
		Remaining: s.Limit - spent,
		Level:     LevelNormal,
	}
	if s.Limit > 0 {
		status.UsedPercent = float64(spent) * 100 / float64(s.Limit)
	}

	early := dayOfWeek(at.In(s.Location), s.FirstDay) < s.EarlyWarningDays
	switch {
	case spent > s.Limit:
		status.Level = LevelOver
	case s.Limit > 0 && spent*100 >= s.Limit*s.WarningPercent && early:
		status.Level = LevelWarning
	}
	return status
}
