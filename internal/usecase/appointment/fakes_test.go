package appointment

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type fakeRepo struct {
	barbers      map[string]*models.User
	overrides    map[string]*models.BarberSchedule
	appointments []models.Appointment
	listErr      error
	nextID       int

	live chan []models.Appointment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		barbers:   map[string]*models.User{},
		overrides: map[string]*models.BarberSchedule{},
	}
}

func (f *fakeRepo) addBarber(id, name string) {
	u := &models.User{Name: name, Role: "admin"}
	u.ID = id
	f.barbers[id] = u
}

func (f *fakeRepo) GetBarber(_ context.Context, id string) (*models.User, error) {
	if u, ok := f.barbers[id]; ok {
		return u, nil
	}
	return nil, httperr.ErrNotFound("barber_not_found")
}

func (f *fakeRepo) FindOverride(_ context.Context, barberID, day string) (*models.BarberSchedule, error) {
	return f.overrides[barberID+"/"+day], nil
}

func (f *fakeRepo) GetAppointment(_ context.Context, id string) (*models.Appointment, error) {
	for _, ap := range f.appointments {
		if ap.ID == id {
			cp := ap
			return &cp, nil
		}
	}
	return nil, httperr.ErrNotFound("appointment_not_found")
}

func (f *fakeRepo) ListAppointmentsForDay(_ context.Context, barberID string, start, end time.Time) ([]models.Appointment, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.BarberID == barberID && !ap.Date.Before(start) && ap.Date.Before(end) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAppointments(_ context.Context, _ domain.Principal) ([]models.Appointment, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return slices.Clone(f.appointments), nil
}

func (f *fakeRepo) WatchAppointments(_ context.Context, _ domain.Principal) <-chan []models.Appointment {
	return f.live
}

func (f *fakeRepo) conflicts(ap *models.Appointment) bool {
	var sameDay []models.Appointment
	for _, other := range f.appointments {
		if other.ID != ap.ID && other.BarberID == ap.BarberID &&
			timezone.StartOfDay(other.Date).Equal(timezone.StartOfDay(ap.Date)) {
			sameDay = append(sameDay, other)
		}
	}
	s := domain.StartMinutes(ap.Date)
	return domain.IsConflicting(sameDay, s, s+domain.DurationOf(ap.Service))
}

func (f *fakeRepo) CreateAppointmentIfFree(_ context.Context, ap *models.Appointment) error {
	if f.conflicts(ap) {
		return httperr.ErrConflict("slot_taken")
	}
	f.nextID++
	ap.ID = "ap" + strconv.Itoa(f.nextID)
	f.appointments = append(f.appointments, *ap)
	return nil
}

func (f *fakeRepo) UpdateAppointmentIfFree(_ context.Context, ap *models.Appointment) error {
	if f.conflicts(ap) {
		return httperr.ErrConflict("slot_taken")
	}
	return f.replace(ap)
}

func (f *fakeRepo) UpdateAppointmentStatus(_ context.Context, ap *models.Appointment) error {
	return f.replace(ap)
}

func (f *fakeRepo) replace(ap *models.Appointment) error {
	for i := range f.appointments {
		if f.appointments[i].ID == ap.ID {
			f.appointments[i] = *ap
			return nil
		}
	}
	return httperr.ErrNotFound("appointment_not_found")
}

func (f *fakeRepo) DeleteAppointment(_ context.Context, id string) error {
	for i := range f.appointments {
		if f.appointments[i].ID == id {
			f.appointments = slices.Delete(f.appointments, i, i+1)
			return nil
		}
	}
	return httperr.ErrNotFound("appointment_not_found")
}

var (
	_ domain.Repository   = (*fakeRepo)(nil)
	_ schedule.Repository = (*fakeRepo)(nil)
)

type nopSink struct{}

func (nopSink) Log(context.Context, audit.Event) error { return nil }

var errStore = errors.New("store unavailable")

// 2026-03-10 08:00 UTC, a Tuesday.
var now = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

type fixture struct {
	repo     *fakeRepo
	clock    timezone.Clock
	policy   *SlotPolicy
	resolver *schedule.Resolver
	audit    *audit.Dispatcher
}

func newFixture() *fixture {
	repo := newFakeRepo()
	repo.addBarber("b1", "Juan")
	repo.addBarber("b2", "Luis")
	// Tuesdays 09:00-17:00 with a 13:00-14:00 break.
	repo.overrides["b1/2"] = &models.BarberSchedule{
		BarberID: "b1", Day: "2",
		StartTime: "09:00", EndTime: "17:00",
		BreakStart: "13:00", BreakEnd: "14:00",
	}
	repo.overrides["b2/2"] = &models.BarberSchedule{BarberID: "b2", Day: "2", StartTime: "09:00", EndTime: "17:00"}

	clock := timezone.FixedClock(now)
	resolver := schedule.NewResolver(repo, domain.Window{StartMin: 540, EndMin: 1020})
	return &fixture{
		repo:     repo,
		clock:    clock,
		resolver: resolver,
		policy:   NewSlotPolicy(resolver, clock, 15, 30),
		audit:    audit.NewDispatcher(nopSink{}, zap.NewNop()),
	}
}

func (fx *fixture) book(barberID string, hour, minute int, service, clientID string) models.Appointment {
	ap := models.Appointment{
		BarberID: barberID,
		ClientID: clientID,
		Service:  service,
		Date:     time.Date(2026, 3, 10, hour, minute, 0, 0, time.UTC),
		Status:   string(domain.StatusScheduled),
	}
	_ = fx.repo.CreateAppointmentIfFree(context.Background(), &ap)
	return ap
}

var (
	clientActor = domain.Principal{ID: "c1", Role: domain.RoleClient, Name: "Ana"}
	barberActor = domain.Principal{ID: "b1", Role: domain.RoleAdmin, Name: "Juan"}
	superActor  = domain.Principal{ID: "root", Role: domain.RoleSuperAdmin}
)
