package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/liveview"
)

// WatchAppointments opens a live view of the actor's appointments. The view
// stops with ctx.
type WatchAppointments struct {
	repo     domain.Repository
	registry *liveview.Registry
}

func NewWatchAppointments(repo domain.Repository, registry *liveview.Registry) *WatchAppointments {
	return &WatchAppointments{repo: repo, registry: registry}
}

func (uc *WatchAppointments) Execute(
	ctx context.Context,
	actor domain.Principal,
	filters domain.Filters,
) *liveview.View {
	return uc.registry.Open(ctx, uc.repo.WatchAppointments(ctx, actor), actor, filters)
}

// SetFilters changes the filters of a running view owned by actor.
func (uc *WatchAppointments) SetFilters(actor domain.Principal, viewID string, filters domain.Filters) bool {
	v, ok := uc.registry.Lookup(viewID, actor.ID)
	if !ok {
		return false
	}
	v.SetFilters(filters)
	return true
}
