package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Repository interface {
	// -------- Barber --------
	GetBarber(
		ctx context.Context,
		barberID string,
	) (*models.User, error)

	// -------- Appointment (read) --------
	GetAppointment(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	ListAppointmentsForDay(
		ctx context.Context,
		barberID string,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointments(
		ctx context.Context,
		scope Principal,
	) ([]models.Appointment, error)

	WatchAppointments(
		ctx context.Context,
		scope Principal,
	) <-chan []models.Appointment

	// -------- Appointment (guarded writes) --------
	// CreateAppointmentIfFree and UpdateAppointmentIfFree re-run the conflict
	// check under lock and fail with a slot_taken conflict.
	CreateAppointmentIfFree(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointmentIfFree(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	UpdateAppointmentStatus(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id string,
	) error
}
