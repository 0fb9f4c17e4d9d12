package schedule

import (
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type fakeRepo struct {
	barbers   map[string]bool
	schedules map[string]models.BarberSchedule
}

func newFakeRepo(barbers ...string) *fakeRepo {
	f := &fakeRepo{barbers: map[string]bool{}, schedules: map[string]models.BarberSchedule{}}
	for _, b := range barbers {
		f.barbers[b] = true
	}
	return f
}

func (f *fakeRepo) GetBarber(_ context.Context, id string) (*models.User, error) {
	if !f.barbers[id] {
		return nil, httperr.ErrNotFound("barber_not_found")
	}
	u := &models.User{Role: "admin"}
	u.ID = id
	return u, nil
}

func (f *fakeRepo) ListOverrides(_ context.Context, barberID string) ([]models.BarberSchedule, error) {
	var out []models.BarberSchedule
	for _, s := range f.schedules {
		if s.BarberID == barberID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

func (f *fakeRepo) SaveOverride(_ context.Context, s *models.BarberSchedule) error {
	for id, existing := range f.schedules {
		if existing.BarberID == s.BarberID && existing.Day == s.Day {
			s.ID = id
		}
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	f.schedules[s.ID] = *s
	return nil
}

func (f *fakeRepo) GetOverride(_ context.Context, id string) (*models.BarberSchedule, error) {
	s, ok := f.schedules[id]
	if !ok {
		return nil, httperr.ErrNotFound("schedule_not_found")
	}
	return &s, nil
}

func (f *fakeRepo) DeleteOverride(_ context.Context, id string) error {
	delete(f.schedules, id)
	return nil
}

type nopSink struct{}

func (nopSink) Log(context.Context, audit.Event) error { return nil }

var (
	juan   = domain.Principal{ID: "b1", Role: domain.RoleAdmin}
	boss   = domain.Principal{ID: "root", Role: domain.RoleSuperAdmin}
	client = domain.Principal{ID: "c1", Role: domain.RoleClient}
)

func newAudit() *audit.Dispatcher {
	return audit.NewDispatcher(nopSink{}, zap.NewNop())
}

func TestSaveOverride_UpsertsByDay(t *testing.T) {
	repo := newFakeRepo("b1")
	uc := NewSaveOverride(repo, newAudit())
	ctx := context.Background()

	first, err := uc.Execute(ctx, SaveOverrideInput{Actor: juan, Day: "2", StartTime: "09:00", EndTime: "17:00"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if first.BarberID != "b1" {
		t.Fatalf("barber defaults to the actor, got %q", first.BarberID)
	}

	second, err := uc.Execute(ctx, SaveOverrideInput{
		Actor: juan, Day: "2",
		StartTime: "10:00", EndTime: "18:00",
		BreakStart: "13:00", BreakEnd: "14:00",
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if second.ID != first.ID || len(repo.schedules) != 1 {
		t.Fatalf("override was not replaced: %d stored", len(repo.schedules))
	}
	if got := repo.schedules[first.ID]; got.StartTime != "10:00" || got.BreakEnd != "14:00" {
		t.Fatalf("stored %+v", got)
	}
}

func TestSaveOverride_Rejections(t *testing.T) {
	tests := []struct {
		name string
		in   SaveOverrideInput
		code string
	}{
		{"client", SaveOverrideInput{Actor: client, BarberID: "b1", Day: "2", StartTime: "09:00", EndTime: "17:00"}, "role_not_allowed"},
		{"other barber", SaveOverrideInput{Actor: juan, BarberID: "b2", Day: "2", StartTime: "09:00", EndTime: "17:00"}, "other_barber"},
		{"unknown barber", SaveOverrideInput{Actor: boss, BarberID: "nobody", Day: "2", StartTime: "09:00", EndTime: "17:00"}, "barber_not_found"},
		{"bad day", SaveOverrideInput{Actor: juan, Day: "7", StartTime: "09:00", EndTime: "17:00"}, "invalid_day"},
		{"bad date", SaveOverrideInput{Actor: juan, Day: "2026-02-30", StartTime: "09:00", EndTime: "17:00"}, "invalid_day"},
		{"inverted", SaveOverrideInput{Actor: juan, Day: "2", StartTime: "17:00", EndTime: "09:00"}, "invalid_window"},
		{"half break", SaveOverrideInput{Actor: juan, Day: "2", StartTime: "09:00", EndTime: "17:00", BreakStart: "13:00"}, "incomplete_break"},
		{"break outside", SaveOverrideInput{Actor: juan, Day: "2", StartTime: "09:00", EndTime: "17:00", BreakStart: "16:30", BreakEnd: "17:30"}, "invalid_break"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo("b1", "b2")
			_, err := NewSaveOverride(repo, newAudit()).Execute(context.Background(), tt.in)
			if !httperr.IsBusiness(err, tt.code) {
				t.Fatalf("err = %v, want %s", err, tt.code)
			}
			if len(repo.schedules) != 0 {
				t.Fatalf("rejected override was stored")
			}
		})
	}
}

func TestSaveOverride_SuperAdminForAnyBarber(t *testing.T) {
	repo := newFakeRepo("b2")
	s, err := NewSaveOverride(repo, newAudit()).Execute(context.Background(), SaveOverrideInput{
		Actor: boss, BarberID: "b2", Day: "2026-03-14", StartTime: "10:00", EndTime: "14:00",
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if s.Day != "2026-03-14" || s.BarberID != "b2" {
		t.Fatalf("stored %+v", s)
	}
}

func TestDeleteOverride_Ownership(t *testing.T) {
	repo := newFakeRepo("b1", "b2")
	ctx := context.Background()
	s := &models.BarberSchedule{BarberID: "b2", Day: "1", StartTime: "09:00", EndTime: "12:00"}
	_ = repo.SaveOverride(ctx, s)

	uc := NewDeleteOverride(repo, newAudit())
	if err := uc.Execute(ctx, juan, s.ID); !httperr.IsBusiness(err, "other_barber") {
		t.Fatalf("err = %v, want other_barber", err)
	}
	if err := uc.Execute(ctx, boss, s.ID); err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if err := uc.Execute(ctx, boss, s.ID); !httperr.IsBusiness(err, "schedule_not_found") {
		t.Fatalf("err = %v, want schedule_not_found", err)
	}
}

func TestListOverrides(t *testing.T) {
	repo := newFakeRepo("b1")
	ctx := context.Background()
	_ = repo.SaveOverride(ctx, &models.BarberSchedule{BarberID: "b1", Day: "5", StartTime: "09:00", EndTime: "12:00"})
	_ = repo.SaveOverride(ctx, &models.BarberSchedule{BarberID: "b1", Day: "1", StartTime: "09:00", EndTime: "12:00"})

	got, err := NewListOverrides(repo).Execute(ctx, "b1")
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(got) != 2 || got[0].Day != "1" {
		t.Fatalf("got %+v", got)
	}

	if _, err := NewListOverrides(repo).Execute(ctx, "ghost"); !httperr.IsBusiness(err, "barber_not_found") {
		t.Fatalf("err = %v, want barber_not_found", err)
	}
}
