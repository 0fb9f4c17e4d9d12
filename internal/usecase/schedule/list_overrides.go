package schedule

import (
	"context"
	"time"

	dschedule "github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ListOverrides is public: clients read it to see when a barber works.
type ListOverrides struct {
	repo Repository
}

func NewListOverrides(repo Repository) *ListOverrides {
	return &ListOverrides{repo: repo}
}

func (uc *ListOverrides) Execute(ctx context.Context, barberID string) ([]models.BarberSchedule, error) {
	if _, err := uc.repo.GetBarber(ctx, barberID); err != nil {
		return nil, err
	}
	return uc.repo.ListOverrides(ctx, barberID)
}

// ResolveWindow reports the effective window of a barber on a day, with
// the rule it came from.
type ResolveWindow struct {
	resolver *dschedule.Resolver
}

func NewResolveWindow(resolver *dschedule.Resolver) *ResolveWindow {
	return &ResolveWindow{resolver: resolver}
}

func (uc *ResolveWindow) Execute(ctx context.Context, barberID string, day time.Time) (dschedule.EffectiveWindow, error) {
	return uc.resolver.Resolve(ctx, barberID, day)
}
