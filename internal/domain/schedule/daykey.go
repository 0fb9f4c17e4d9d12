package schedule

import (
	"strconv"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const dateLayout = "2006-01-02"

type KeyKind int

const (
	KeyDate KeyKind = iota + 1
	KeyWeekday
)

// DayKey is the discriminated form of BarberSchedule.Day: either a calendar
// date ("2006-01-02") or a weekday index ("0" is Sunday).
type DayKey struct {
	Kind    KeyKind
	Date    time.Time
	Weekday time.Weekday
}

func ParseDayKey(s string) (DayKey, error) {
	if len(s) == 1 {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 || n > 6 {
			return DayKey{}, httperr.ErrBusiness("invalid_day")
		}
		return DayKey{Kind: KeyWeekday, Weekday: time.Weekday(n)}, nil
	}

	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return DayKey{}, httperr.ErrBusiness("invalid_day")
	}
	return DayKey{Kind: KeyDate, Date: d}, nil
}

func (k DayKey) String() string {
	if k.Kind == KeyWeekday {
		return strconv.Itoa(int(k.Weekday))
	}
	return k.Date.Format(dateLayout)
}

// DateKey is the date override key of t's wall-clock day.
func DateKey(t time.Time) string {
	return t.Format(dateLayout)
}

// WeekdayKey is the recurring override key of t's weekday.
func WeekdayKey(t time.Time) string {
	return strconv.Itoa(int(t.Weekday()))
}
