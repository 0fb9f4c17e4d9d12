package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// loadVisible returns the appointment only when actor's role scope includes
// it; anything else reads as not found.
func loadVisible(
	ctx context.Context,
	repo domain.Repository,
	id string,
	actor domain.Principal,
) (*models.Appointment, error) {

	ap, err := repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.Visible(*ap, actor) {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}
	return ap, nil
}
