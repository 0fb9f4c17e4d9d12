package appointment

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// UpdateAppointmentInput resubmits a booking. Empty fields keep their value.
type UpdateAppointmentInput struct {
	Actor domain.Principal
	ID    string

	BarberID    string
	Service     string
	Date        string
	Time        string
	ClientName  string
	ClientPhone string
}

type UpdateAppointment struct {
	repo   domain.Repository
	policy *SlotPolicy
	clock  timezone.Clock
	audit  *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	policy *SlotPolicy,
	clock timezone.Clock,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:   repo,
		policy: policy,
		clock:  clock,
		audit:  audit,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := loadVisible(ctx, uc.repo, in.ID, in.Actor)
	if err != nil {
		return nil, err
	}
	if err := domain.CanEdit(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	if in.BarberID != "" && in.BarberID != ap.BarberID {
		if in.Actor.Role == domain.RoleAdmin {
			return nil, httperr.ErrForbidden("other_barber")
		}
		barber, err := uc.repo.GetBarber(ctx, in.BarberID)
		if err != nil {
			return nil, err
		}
		ap.BarberID, ap.Barber = barber.ID, barber.Name
	}

	if s := strings.TrimSpace(in.Service); s != "" {
		ap.Service = s
	}
	if n := strings.TrimSpace(in.ClientName); n != "" {
		ap.ClientName = n
	}
	if p := strings.TrimSpace(in.ClientPhone); p != "" {
		ap.ClientPhone = p
	}

	if in.Date != "" || in.Time != "" {
		local := ap.Date.In(uc.clock.Location())
		date, hm := in.Date, in.Time
		if date == "" {
			date = schedule.DateKey(local)
		}
		if hm == "" {
			hm = local.Format("15:04")
		}
		start, err := timezone.ParseDateTime(date, hm, uc.clock.Location())
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_date_or_time")
		}
		ap.Date = start
	}

	if err := uc.policy.Check(ctx, ap.BarberID, ap.Date, ap.Service); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointmentIfFree(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  in.Actor.ID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: map[string]any{"barberId": ap.BarberID, "date": ap.Date, "service": ap.Service},
	})

	return ap, nil
}
