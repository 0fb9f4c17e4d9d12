package schedule

import (
	"github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// ValidateOverride checks the times of a day override before it is written.
// The break is optional but both ends must be set together and sit inside
// the working window.
func ValidateOverride(start, end, breakStart, breakEnd string) error {
	s, err := appointment.ParseHM(start)
	if err != nil {
		return err
	}
	e, err := appointment.ParseHM(end)
	if err != nil {
		return err
	}
	if e <= s {
		return httperr.ErrBusiness("invalid_window")
	}

	if breakStart == "" && breakEnd == "" {
		return nil
	}
	if breakStart == "" || breakEnd == "" {
		return httperr.ErrBusiness("incomplete_break")
	}

	bs, err := appointment.ParseHM(breakStart)
	if err != nil {
		return err
	}
	be, err := appointment.ParseHM(breakEnd)
	if err != nil {
		return err
	}
	if be <= bs || bs < s || be > e {
		return httperr.ErrBusiness("invalid_break")
	}
	return nil
}
