package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// SlotPolicy decides whether a start instant can be booked with a barber.
// It shares the rules of the availability query so a booking is accepted
// only where a slot could have been offered: inside the window, clear of
// the break and on the step grid counted from the window start.
type SlotPolicy struct {
	resolver    *schedule.Resolver
	clock       timezone.Clock
	step        int
	horizonDays int
}

func NewSlotPolicy(resolver *schedule.Resolver, clock timezone.Clock, step, horizonDays int) *SlotPolicy {
	if step <= 0 {
		step = domain.DefaultStep
	}
	return &SlotPolicy{resolver: resolver, clock: clock, step: step, horizonDays: horizonDays}
}

// InHorizon checks that day lies between today and today + horizonDays.
func (p *SlotPolicy) InHorizon(day time.Time) error {
	today := p.clock.Today()
	d := timezone.StartOfDay(day.In(p.clock.Location()))
	if d.Before(today) || d.After(today.AddDate(0, 0, p.horizonDays)) {
		return httperr.ErrBusiness("date_out_of_range")
	}
	return nil
}

func (p *SlotPolicy) Check(ctx context.Context, barberID string, start time.Time, service string) error {
	start = start.In(p.clock.Location())

	if !start.After(p.clock.Now()) {
		return httperr.ErrBusiness("too_soon")
	}
	if err := p.InHorizon(start); err != nil {
		return err
	}

	win, err := p.resolver.Resolve(ctx, barberID, start)
	if err != nil {
		return err
	}
	if !win.Bookable() {
		return httperr.ErrBusiness("barber_not_working")
	}

	s := domain.StartMinutes(start)
	e := s + domain.DurationOf(service)
	if s < win.Window.StartMin || e > win.Window.EndMin {
		return httperr.ErrBusiness("outside_working_hours")
	}
	if win.Break != nil && s < win.Break.EndMin && e > win.Break.StartMin {
		return httperr.ErrBusiness("outside_working_hours")
	}
	if (s-win.Window.StartMin)%p.step != 0 || start.Second() != 0 || start.Nanosecond() != 0 {
		return httperr.ErrBusiness("invalid_slot")
	}
	return nil
}
