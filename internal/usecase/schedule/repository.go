package schedule

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Repository interface {
	ListOverrides(ctx context.Context, barberID string) ([]models.BarberSchedule, error)
	SaveOverride(ctx context.Context, s *models.BarberSchedule) error
	GetOverride(ctx context.Context, id string) (*models.BarberSchedule, error)
	DeleteOverride(ctx context.Context, id string) error
	GetBarber(ctx context.Context, barberID string) (*models.User, error)
}
