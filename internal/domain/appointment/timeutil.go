package appointment

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const MinutesPerDay = 24 * 60

// TimeToMinutes converts "HH:mm" to minutes since midnight.
// Malformed parts count as zero; use ParseHM where input must be validated.
func TimeToMinutes(hm string) int {
	h, m, _ := strings.Cut(hm, ":")
	hours, _ := strconv.Atoi(h)
	minutes, _ := strconv.Atoi(m)
	return hours*60 + minutes
}

// MinutesToTime formats minutes since midnight as "HH:mm".
func MinutesToTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseHM is the strict form of TimeToMinutes used at input boundaries.
func ParseHM(hm string) (int, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, httperr.ErrBusiness("invalid_time")
	}
	return t.Hour()*60 + t.Minute(), nil
}

// StartMinutes is the wall-clock start of t, in t's own location.
func StartMinutes(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
