package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/store"
)

type ScheduleGormRepository struct {
	schedules *store.Collection[models.BarberSchedule]
	users     *store.Collection[models.User]
}

func NewScheduleGormRepository(c *Collections) *ScheduleGormRepository {
	return &ScheduleGormRepository{schedules: c.Schedules, users: c.Users}
}

func (r *ScheduleGormRepository) GetBarber(ctx context.Context, barberID string) (*models.User, error) {
	return getBarber(ctx, r.users, barberID)
}

func (r *ScheduleGormRepository) FindOverride(
	ctx context.Context,
	barberID string,
	day string,
) (*models.BarberSchedule, error) {

	found, err := r.schedules.Query(ctx, store.Query{
		Where: map[string]any{"barber_id": barberID, "day": day},
		Limit: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

func (r *ScheduleGormRepository) ListOverrides(
	ctx context.Context,
	barberID string,
) ([]models.BarberSchedule, error) {

	return r.schedules.Query(ctx, store.Query{
		Where:   map[string]any{"barber_id": barberID},
		OrderBy: "day ASC",
	})
}

// SaveOverride upserts s. Without an id it is keyed on (barber, day).
func (r *ScheduleGormRepository) SaveOverride(
	ctx context.Context,
	s *models.BarberSchedule,
) error {

	if s.ID == "" {
		existing, err := r.FindOverride(ctx, s.BarberID, s.Day)
		if err != nil {
			return err
		}
		if existing != nil {
			s.ID = existing.ID
		} else {
			s.ID = uuid.NewString()
		}
	}

	return r.schedules.Upsert(ctx, s.ID, map[string]any{
		"barber_id":   s.BarberID,
		"day":         s.Day,
		"start_time":  s.StartTime,
		"end_time":    s.EndTime,
		"break_start": s.BreakStart,
		"break_end":   s.BreakEnd,
	})
}

func (r *ScheduleGormRepository) GetOverride(
	ctx context.Context,
	id string,
) (*models.BarberSchedule, error) {

	s, err := r.schedules.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, httperr.ErrNotFound("schedule_not_found")
	}
	return s, err
}

func (r *ScheduleGormRepository) DeleteOverride(ctx context.Context, id string) error {
	err := r.schedules.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return httperr.ErrNotFound("schedule_not_found")
	}
	return err
}

var _ schedule.Repository = (*ScheduleGormRepository)(nil)
