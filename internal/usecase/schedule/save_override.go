package schedule

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	dschedule "github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type SaveOverrideInput struct {
	Actor    domain.Principal
	BarberID string

	// Day is a calendar date or a weekday index.
	Day        string
	StartTime  string
	EndTime    string
	BreakStart string
	BreakEnd   string
}

type SaveOverride struct {
	repo  Repository
	audit *audit.Dispatcher
}

func NewSaveOverride(repo Repository, audit *audit.Dispatcher) *SaveOverride {
	return &SaveOverride{repo: repo, audit: audit}
}

func (uc *SaveOverride) Execute(ctx context.Context, in SaveOverrideInput) (*models.BarberSchedule, error) {
	barberID := in.BarberID
	if barberID == "" {
		barberID = in.Actor.ID
	}
	if err := canManage(in.Actor, barberID); err != nil {
		return nil, err
	}
	if _, err := uc.repo.GetBarber(ctx, barberID); err != nil {
		return nil, err
	}

	key, err := dschedule.ParseDayKey(strings.TrimSpace(in.Day))
	if err != nil {
		return nil, err
	}

	start := strings.TrimSpace(in.StartTime)
	end := strings.TrimSpace(in.EndTime)
	bs := strings.TrimSpace(in.BreakStart)
	be := strings.TrimSpace(in.BreakEnd)
	if err := dschedule.ValidateOverride(start, end, bs, be); err != nil {
		return nil, err
	}

	s := &models.BarberSchedule{
		BarberID:   barberID,
		Day:        key.String(),
		StartTime:  start,
		EndTime:    end,
		BreakStart: bs,
		BreakEnd:   be,
	}
	if err := uc.repo.SaveOverride(ctx, s); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  in.Actor.ID,
		Action:   "schedule_saved",
		Entity:   "barber_schedule",
		EntityID: s.ID,
		Metadata: map[string]any{"barberId": barberID, "day": s.Day},
	})

	return s, nil
}
