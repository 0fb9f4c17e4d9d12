package user

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// UpdateUserInput carries a partial profile. Nil fields are left alone.
type UpdateUserInput struct {
	Name  *string
	Phone *string

	// Only a super admin may change these.
	Role          *string
	BarberID      *string
	BarberName    *string
	IsSubscribed  *bool
	StartTimePred *int
	EndTimePred   *int
}

type UpdateUser struct {
	repo  Repository
	audit *audit.Dispatcher
}

func NewUpdateUser(repo Repository, audit *audit.Dispatcher) *UpdateUser {
	return &UpdateUser{repo: repo, audit: audit}
}

func (uc *UpdateUser) Execute(
	ctx context.Context,
	actor domain.Principal,
	uid string,
	in UpdateUserInput,
) (*models.User, error) {

	super := actor.Role == domain.RoleSuperAdmin
	if !super && actor.ID != uid {
		return nil, httperr.ErrForbidden("not_your_profile")
	}

	fields := map[string]any{}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, httperr.ErrBusiness("invalid_name")
		}
		fields["name"] = name
	}
	if in.Phone != nil {
		fields["phone"] = strings.TrimSpace(*in.Phone)
	}

	restricted := in.Role != nil || in.BarberID != nil || in.BarberName != nil || in.IsSubscribed != nil
	// Barbers keep their own predicted window.
	window := in.StartTimePred != nil || in.EndTimePred != nil
	if restricted && !super {
		return nil, httperr.ErrForbidden("role_not_allowed")
	}
	if window && !super && actor.Role != domain.RoleAdmin {
		return nil, httperr.ErrForbidden("role_not_allowed")
	}

	if in.Role != nil {
		role, ok := domain.ParseRole(*in.Role)
		if !ok {
			return nil, httperr.ErrBusiness("invalid_role")
		}
		fields["role"] = string(role)
	}
	if in.BarberID != nil {
		fields["barber_id"] = *in.BarberID
	}
	if in.BarberName != nil {
		fields["barber_name"] = *in.BarberName
	}
	if in.IsSubscribed != nil {
		fields["is_subscribed"] = *in.IsSubscribed
	}

	if window {
		current, err := uc.repo.GetUser(ctx, uid)
		if err != nil {
			return nil, err
		}
		start, end := current.StartTimePred, current.EndTimePred
		if in.StartTimePred != nil {
			start = in.StartTimePred
		}
		if in.EndTimePred != nil {
			end = in.EndTimePred
		}
		if start == nil || end == nil || *start < 0 || *end > domain.MinutesPerDay || *end <= *start {
			return nil, httperr.ErrBusiness("invalid_window")
		}
		fields["start_time_pred"] = *start
		fields["end_time_pred"] = *end
	}

	if len(fields) == 0 {
		return uc.repo.GetUser(ctx, uid)
	}

	if err := uc.repo.UpdateUser(ctx, uid, fields); err != nil {
		return nil, err
	}

	if super && actor.ID != uid {
		uc.audit.Dispatch(audit.Event{
			ActorID:  actor.ID,
			Action:   "user_updated",
			Entity:   "user",
			EntityID: uid,
		})
	}

	return uc.repo.GetUser(ctx, uid)
}
