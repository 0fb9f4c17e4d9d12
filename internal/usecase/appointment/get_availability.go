package appointment

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type GetAvailability struct {
	repo     domain.Repository
	resolver *schedule.Resolver
	policy   *SlotPolicy
	clock    timezone.Clock
	step     int
	log      *zap.Logger
}

func NewGetAvailability(
	repo domain.Repository,
	resolver *schedule.Resolver,
	policy *SlotPolicy,
	clock timezone.Clock,
	step int,
	log *zap.Logger,
) *GetAvailability {
	return &GetAvailability{
		repo:     repo,
		resolver: resolver,
		policy:   policy,
		clock:    clock,
		step:     step,
		log:      log,
	}
}

// Execute lists the bookable start times of a service with a barber on one
// day. A barber who is not working gets an empty list with Working false;
// store failures past the barber lookup also degrade to an empty list.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (*domain.Availability, error) {

	if _, err := uc.repo.GetBarber(ctx, in.BarberID); err != nil {
		return nil, err
	}

	day := timezone.StartOfDay(in.Date.In(uc.clock.Location()))
	if err := uc.policy.InHorizon(day); err != nil {
		return nil, err
	}

	duration := domain.DurationOf(in.Service)
	out := &domain.Availability{
		Date:     schedule.DateKey(day),
		BarberID: in.BarberID,
		Service:  in.Service,
		Duration: duration,
		Slots:    []string{},
	}

	log := uc.log.With(zap.String("barber_id", in.BarberID), zap.String("date", out.Date))

	win, err := uc.resolver.Resolve(ctx, in.BarberID, day)
	if err != nil {
		log.Warn("schedule lookup failed, no availability", zap.Error(err))
		return out, nil
	}
	out.Source = string(win.Source)
	if !win.Bookable() {
		return out, nil
	}
	out.Working = true

	booked, err := uc.repo.ListAppointmentsForDay(ctx, in.BarberID, day, day.AddDate(0, 0, 1))
	if err != nil {
		log.Warn("booked appointments unavailable, no availability", zap.Error(err))
		return out, nil
	}

	cutoff := -1
	if now := uc.clock.Now(); day.Equal(uc.clock.Today()) {
		cutoff = domain.StartMinutes(now)
	}

	for slot := range domain.Slots(win.Window, win.Break, duration, uc.step, booked) {
		if domain.TimeToMinutes(slot) <= cutoff {
			continue
		}
		out.Slots = append(out.Slots, slot)
	}

	return out, nil
}
