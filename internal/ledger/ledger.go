// Package ledger holds the set of calendar days a user was active on
// and derives the current streak from it.
package ledger

import (
	"sort"
	"time"
)

const dayLayout = "2006-01-02"

// Day is a calendar-day key in the user's local timezone, formatted YYYY-MM-DD.
type Day string

func DayOf(t time.Time) Day {
	return Day(t.Format(dayLayout))
}

func (d Day) Valid() bool {
	_, err := time.Parse(dayLayout, string(d))
	return err == nil
}

func (d Day) Time(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dayLayout, string(d), loc)
}

type Ledger struct {
	days map[Day]struct{}
}

func New() *Ledger {
	return &Ledger{days: make(map[Day]struct{})}
}

func FromDays(days []Day) *Ledger {
	l := New()
	for _, d := range days {
		l.days[d] = struct{}{}
	}
	return l
}

// Mark is idempotent: marking an already marked day has no additional effect.
func (l *Ledger) Mark(d Day) {
	l.days[d] = struct{}{}
}

// Unmark is idempotent: removing an absent day is a no-op.
func (l *Ledger) Unmark(d Day) {
	delete(l.days, d)
}

func (l *Ledger) IsMarked(d Day) bool {
	_, ok := l.days[d]
	return ok
}

// Reset clears the entire set. Only explicit user action should reach here.
func (l *Ledger) Reset() {
	l.days = make(map[Day]struct{})
}

func (l *Ledger) Len() int {
	return len(l.days)
}

func (l *Ledger) Days() []Day {
	days := make([]Day, 0, len(l.days))
	for d := range l.days {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}

// CurrentStreak walks backward one calendar day at a time starting at today,
// counting consecutive marked days and stopping at the first gap. Today itself
// counts only if marked. Lookback is unbounded.
func CurrentStreak(l *Ledger, today time.Time) int {
	streak := 0
	for i := 0; ; i++ {
		if !l.IsMarked(DayOf(today.AddDate(0, 0, -i))) {
			break
		}
		streak++
	}
	return streak
}
