package appointment

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	Actor domain.Principal

	BarberID string
	Service  string
	Date     string
	Time     string

	// Client fields are taken from the actor when a client books for
	// themselves.
	ClientID    string
	ClientName  string
	ClientEmail string
	ClientPhone string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo   domain.Repository
	policy *SlotPolicy
	clock  timezone.Clock
	audit  *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	policy *SlotPolicy,
	clock timezone.Clock,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:   repo,
		policy: policy,
		clock:  clock,
		audit:  audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Who books for whom
	// --------------------------------------------------
	switch in.Actor.Role {
	case domain.RoleClient:
		in.ClientID = in.Actor.ID
		if in.ClientName == "" {
			in.ClientName = in.Actor.Name
		}
	case domain.RoleAdmin:
		if in.BarberID == "" {
			in.BarberID = in.Actor.ID
		}
		if in.BarberID != in.Actor.ID {
			return nil, httperr.ErrForbidden("other_barber")
		}
	case domain.RoleSuperAdmin:
	default:
		return nil, httperr.ErrForbidden("role_not_allowed")
	}

	in.Service = strings.TrimSpace(in.Service)
	in.ClientName = strings.TrimSpace(in.ClientName)
	if in.BarberID == "" || in.Service == "" || in.ClientName == "" {
		return nil, httperr.ErrBusiness("missing_fields")
	}

	// --------------------------------------------------
	// Date / time in shop time
	// --------------------------------------------------
	start, err := timezone.ParseDateTime(in.Date, in.Time, uc.clock.Location())
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// --------------------------------------------------
	// Barber + working window
	// --------------------------------------------------
	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}

	if err := uc.policy.Check(ctx, barber.ID, start, in.Service); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Guarded insert
	// --------------------------------------------------
	ap := &models.Appointment{
		ClientID:    in.ClientID,
		ClientName:  in.ClientName,
		ClientEmail: strings.ToLower(strings.TrimSpace(in.ClientEmail)),
		ClientPhone: strings.TrimSpace(in.ClientPhone),
		BarberID:    barber.ID,
		Barber:      barber.Name,
		Service:     in.Service,
		Date:        start,
		Status:      string(domain.InitialStatus()),
	}

	if err := uc.repo.CreateAppointmentIfFree(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  in.Actor.ID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: map[string]any{"barberId": ap.BarberID, "date": ap.Date, "service": ap.Service},
	})

	return ap, nil
}
