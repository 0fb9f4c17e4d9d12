package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/store"
)

type AppointmentGormRepository struct {
	appointments *store.Collection[models.Appointment]
	users        *store.Collection[models.User]
	loc          *time.Location
}

func NewAppointmentGormRepository(c *Collections, loc *time.Location) *AppointmentGormRepository {
	return &AppointmentGormRepository{
		appointments: c.Appointments,
		users:        c.Users,
		loc:          loc,
	}
}

// --------------------------------------------------
// Barber
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBarber(
	ctx context.Context,
	barberID string,
) (*models.User, error) {
	return getBarber(ctx, r.users, barberID)
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	ap, err := r.appointments.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}
	return ap, err
}

func (r *AppointmentGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	barberID string,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	return r.appointments.Query(ctx, store.Query{
		Where:   map[string]any{"barber_id": barberID},
		Range:   &store.Range{Field: "date", From: start, To: end},
		OrderBy: "date ASC",
	})
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	scope domain.Principal,
) ([]models.Appointment, error) {

	return r.appointments.Query(ctx, scopeQuery(scope))
}

func (r *AppointmentGormRepository) WatchAppointments(
	ctx context.Context,
	scope domain.Principal,
) <-chan []models.Appointment {

	return r.appointments.Subscribe(ctx, scopeQuery(scope))
}

// scopeQuery narrows the read to what the role may see. The view builder
// applies the same rule again on the result.
func scopeQuery(p domain.Principal) store.Query {
	q := store.Query{OrderBy: "date ASC"}
	switch p.Role {
	case domain.RoleSuperAdmin:
	case domain.RoleAdmin:
		q.Where = map[string]any{"barber_id": p.ID}
	case domain.RoleClient:
		q.Where = map[string]any{"client_id": p.ID}
	default:
		q.Where = map[string]any{"id": ""}
	}
	return q
}

// --------------------------------------------------
// Appointment (guarded writes)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointmentIfFree(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.appointments.DB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.assertFree(tx, ap); err != nil {
			return err
		}
		return tx.Create(ap).Error
	})
	if err != nil {
		return err
	}

	r.appointments.Notify(ctx)
	return nil
}

func (r *AppointmentGormRepository) UpdateAppointmentIfFree(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.appointments.DB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.assertFree(tx, ap); err != nil {
			return err
		}

		res := tx.Model(&models.Appointment{}).
			Where("id = ?", ap.ID).
			Updates(map[string]any{
				"barber_id":    ap.BarberID,
				"barber":       ap.Barber,
				"service":      ap.Service,
				"date":         ap.Date,
				"client_name":  ap.ClientName,
				"client_email": ap.ClientEmail,
				"client_phone": ap.ClientPhone,
				"updated_at":   time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrNotFound("appointment_not_found")
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.appointments.Notify(ctx)
	return nil
}

// assertFree locks the barber's profile row, which serializes every booking
// for that barber, then re-runs the conflict check against the committed
// appointments of the same day.
func (r *AppointmentGormRepository) assertFree(tx *gorm.DB, ap *models.Appointment) error {
	var barber models.User
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", ap.BarberID).
		First(&barber).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrNotFound("barber_not_found")
		}
		return err
	}

	local := ap.Date.In(r.loc)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, r.loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var booked []models.Appointment
	q := tx.Where(
		"barber_id = ? AND date >= ? AND date < ?",
		ap.BarberID, dayStart, dayEnd,
	)
	if ap.ID != "" {
		q = q.Where("id <> ?", ap.ID)
	}
	if err := q.Find(&booked).Error; err != nil {
		return err
	}
	for i := range booked {
		normalizeAppointment(&booked[i], r.loc)
	}

	start := domain.StartMinutes(local)
	if domain.IsConflicting(booked, start, start+domain.DurationOf(ap.Service)) {
		return httperr.ErrConflict("slot_taken")
	}
	return nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) UpdateAppointmentStatus(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.appointments.Upsert(ctx, ap.ID, map[string]any{
		"status":       ap.Status,
		"completed_at": ap.CompletedAt,
	})
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id string,
) error {

	err := r.appointments.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return httperr.ErrNotFound("appointment_not_found")
	}
	return err
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
