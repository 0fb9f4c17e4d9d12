package repository

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/store"
)

// getBarber loads a profile and checks that it belongs to a barber.
func getBarber(
	ctx context.Context,
	users *store.Collection[models.User],
	barberID string,
) (*models.User, error) {

	u, err := users.Get(ctx, barberID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, httperr.ErrNotFound("barber_not_found")
	}
	if err != nil {
		return nil, err
	}

	if role, _ := domain.ParseRole(u.Role); role != domain.RoleAdmin {
		return nil, httperr.ErrNotFound("barber_not_found")
	}
	return u, nil
}
