package schedule

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
)

type DeleteOverride struct {
	repo  Repository
	audit *audit.Dispatcher
}

func NewDeleteOverride(repo Repository, audit *audit.Dispatcher) *DeleteOverride {
	return &DeleteOverride{repo: repo, audit: audit}
}

func (uc *DeleteOverride) Execute(ctx context.Context, actor domain.Principal, id string) error {
	s, err := uc.repo.GetOverride(ctx, id)
	if err != nil {
		return err
	}
	if err := canManage(actor, s.BarberID); err != nil {
		return err
	}
	if err := uc.repo.DeleteOverride(ctx, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actor.ID,
		Action:   "schedule_deleted",
		Entity:   "barber_schedule",
		EntityID: id,
		Metadata: map[string]any{"barberId": s.BarberID, "day": s.Day},
	})
	return nil
}
