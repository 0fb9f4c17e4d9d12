package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Source string

const (
	SourceDateOverride    Source = "date_override"
	SourceWeekdayOverride Source = "weekday_override"
	SourceProfileDefault  Source = "profile_default"
	SourceSystemDefault   Source = "system_default"
)

// EffectiveWindow is the resolved working range of a barber on one day.
type EffectiveWindow struct {
	Window appointment.Window `json:"window"`
	Break  *appointment.Break `json:"break,omitempty"`
	Source Source             `json:"source"`
}

// Bookable is false for the system default, which is only shown to users
// and never offered for booking.
func (w EffectiveWindow) Bookable() bool {
	return w.Source != SourceSystemDefault && w.Window.EndMin > w.Window.StartMin
}

type Repository interface {
	// FindOverride returns nil, nil when no override exists for the key.
	FindOverride(ctx context.Context, barberID, day string) (*models.BarberSchedule, error)
	GetBarber(ctx context.Context, barberID string) (*models.User, error)
}

type Resolver struct {
	repo     Repository
	fallback appointment.Window
}

func NewResolver(repo Repository, fallback appointment.Window) *Resolver {
	return &Resolver{repo: repo, fallback: fallback}
}

// Resolve picks the window for barberID on date's wall-clock day: a date
// override, then a weekday override, then the barber's predicted window,
// then the system default.
func (r *Resolver) Resolve(
	ctx context.Context,
	barberID string,
	date time.Time,
) (EffectiveWindow, error) {

	keys := []struct {
		key    string
		source Source
	}{
		{DateKey(date), SourceDateOverride},
		{WeekdayKey(date), SourceWeekdayOverride},
	}

	for _, k := range keys {
		ov, err := r.repo.FindOverride(ctx, barberID, k.key)
		if err != nil {
			return EffectiveWindow{}, fmt.Errorf("find override %s: %w", k.key, err)
		}
		if ov != nil {
			return fromOverride(ov, k.source), nil
		}
	}

	barber, err := r.repo.GetBarber(ctx, barberID)
	if err != nil {
		return EffectiveWindow{}, err
	}
	if barber.StartTimePred != nil && barber.EndTimePred != nil {
		return EffectiveWindow{
			Window: appointment.Window{StartMin: *barber.StartTimePred, EndMin: *barber.EndTimePred},
			Source: SourceProfileDefault,
		}, nil
	}

	return EffectiveWindow{Window: r.fallback, Source: SourceSystemDefault}, nil
}

func fromOverride(ov *models.BarberSchedule, source Source) EffectiveWindow {
	w := EffectiveWindow{
		Window: appointment.Window{
			StartMin: appointment.TimeToMinutes(ov.StartTime),
			EndMin:   appointment.TimeToMinutes(ov.EndTime),
		},
		Source: source,
	}
	if ov.HasBreak() {
		w.Break = &appointment.Break{
			StartMin: appointment.TimeToMinutes(ov.BreakStart),
			EndMin:   appointment.TimeToMinutes(ov.BreakEnd),
		}
	}
	return w
}
