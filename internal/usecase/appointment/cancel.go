package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
)

// CancelAppointment removes a scheduled appointment. Cancellation deletes the
// record; no tombstone is kept.
type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actor domain.Principal,
	appointmentID string,
) error {

	ap, err := loadVisible(ctx, uc.repo, appointmentID, actor)
	if err != nil {
		return err
	}

	if err := domain.CanCancel(domain.Status(ap.Status)); err != nil {
		return err
	}

	if err := uc.repo.DeleteAppointment(ctx, ap.ID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actor.ID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: map[string]any{"barberId": ap.BarberID, "date": ap.Date},
	})

	return nil
}
