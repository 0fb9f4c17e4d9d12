package user

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/identity"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type fakeRepo struct {
	users     map[string]models.User
	createErr error
	deleteErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[string]models.User{}}
}

func (f *fakeRepo) FindUser(_ context.Context, uid string) (*models.User, error) {
	u, ok := f.users[uid]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f *fakeRepo) GetUser(ctx context.Context, uid string) (*models.User, error) {
	u, _ := f.FindUser(ctx, uid)
	if u == nil {
		return nil, httperr.ErrNotFound("user_not_found")
	}
	return u, nil
}

func (f *fakeRepo) CreateUser(_ context.Context, u *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.users[u.ID] = *u
	return nil
}

func (f *fakeRepo) UpdateUser(_ context.Context, uid string, fields map[string]any) error {
	u, ok := f.users[uid]
	if !ok {
		return httperr.ErrNotFound("user_not_found")
	}
	for k, v := range fields {
		switch k {
		case "name":
			u.Name = v.(string)
		case "phone":
			u.Phone = v.(string)
		case "role":
			u.Role = v.(string)
		case "is_subscribed":
			u.IsSubscribed = v.(bool)
		case "start_time_pred":
			n := v.(int)
			u.StartTimePred = &n
		case "end_time_pred":
			n := v.(int)
			u.EndTimePred = &n
		}
	}
	f.users[uid] = u
	return nil
}

func (f *fakeRepo) DeleteUser(_ context.Context, uid string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.users, uid)
	return nil
}

func (f *fakeRepo) ListUsers(_ context.Context, roles ...string) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if len(roles) == 0 {
			out = append(out, u)
			continue
		}
		for _, r := range roles {
			if u.Role == r {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

type fakeAccounts struct {
	created []string
	deleted []string
	resets  []string
}

func (a *fakeAccounts) CreateAccount(_ context.Context, email, password string) (*identity.Principal, error) {
	if password == "" {
		return nil, errors.New("empty password")
	}
	a.created = append(a.created, email)
	return &identity.Principal{UID: "acc-" + email, Email: email}, nil
}

func (a *fakeAccounts) DeleteAccount(_ context.Context, uid string) error {
	a.deleted = append(a.deleted, uid)
	return nil
}

func (a *fakeAccounts) SendPasswordResetLink(_ context.Context, email string) error {
	a.resets = append(a.resets, email)
	return nil
}

type nopSink struct{}

func (nopSink) Log(context.Context, audit.Event) error { return nil }

var (
	boss   = domain.Principal{ID: "root", Role: domain.RoleSuperAdmin}
	barber = domain.Principal{ID: "b1", Role: domain.RoleAdmin}
	client = domain.Principal{ID: "c1", Role: domain.RoleClient}
)

func newAudit() *audit.Dispatcher {
	return audit.NewDispatcher(nopSink{}, zap.NewNop())
}

func acceptAll(string) bool { return true }

func seed(repo *fakeRepo, id, role string) {
	u := models.User{Name: id, Role: role}
	u.ID = id
	repo.users[id] = u
}

func TestEnsureProfile(t *testing.T) {
	repo := newFakeRepo()
	uc := NewEnsureProfile(repo, zap.NewNop())
	ctx := context.Background()

	u, err := uc.Execute(ctx, identity.Principal{UID: "u1", Email: "maria@example.com"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if u.Role != "client" || u.Name != "maria" || u.ID != "u1" {
		t.Fatalf("profile = %+v", u)
	}

	repo.UpdateUser(ctx, "u1", map[string]any{"role": "admin"})
	again, err := uc.Execute(ctx, identity.Principal{UID: "u1", Email: "maria@example.com", DisplayName: "Maria"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if again.Role != "admin" || again.Name != "maria" {
		t.Fatalf("existing profile was overwritten: %+v", again)
	}

	anon, err := uc.Execute(ctx, identity.Principal{UID: "anon", IsAnonymous: true})
	if err != nil || anon != nil {
		t.Fatalf("anonymous got profile %+v, err %v", anon, err)
	}
}

func TestRegisterUser(t *testing.T) {
	repo := newFakeRepo()
	accounts := &fakeAccounts{}
	uc := NewRegisterUser(repo, accounts, newAudit(), acceptAll, zap.NewNop())

	u, err := uc.Execute(context.Background(), RegisterUserInput{
		Actor: boss, Name: " Luis ", Email: "Luis@Example.com", Role: "barbero",
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if u.Role != "admin" || u.Email != "luis@example.com" || u.Name != "Luis" || u.BarberID != u.ID {
		t.Fatalf("profile = %+v", u)
	}
	if len(accounts.resets) != 1 || accounts.resets[0] != "luis@example.com" {
		t.Fatalf("setup link not sent: %v", accounts.resets)
	}
}

func TestRegisterUser_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		in    RegisterUserInput
		valid bool
		code  string
	}{
		{"not super", RegisterUserInput{Actor: barber, Name: "x", Email: "x@y.com", Role: "client"}, true, "role_not_allowed"},
		{"bad role", RegisterUserInput{Actor: boss, Name: "x", Email: "x@y.com", Role: "owner"}, true, "invalid_role"},
		{"no email", RegisterUserInput{Actor: boss, Name: "x", Role: "client"}, true, "missing_fields"},
		{"dead domain", RegisterUserInput{Actor: boss, Name: "x", Email: "x@nowhere.invalid", Role: "client"}, false, "invalid_email_domain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := &fakeAccounts{}
			check := func(string) bool { return tt.valid }
			_, err := NewRegisterUser(newFakeRepo(), accounts, newAudit(), check, zap.NewNop()).
				Execute(context.Background(), tt.in)
			if !httperr.IsBusiness(err, tt.code) {
				t.Fatalf("err = %v, want %s", err, tt.code)
			}
			if len(accounts.created) != 0 {
				t.Fatalf("account created on rejection")
			}
		})
	}
}

func TestRegisterUser_RollsBackAccount(t *testing.T) {
	repo := newFakeRepo()
	repo.createErr = errors.New("disk full")
	accounts := &fakeAccounts{}

	_, err := NewRegisterUser(repo, accounts, newAudit(), acceptAll, zap.NewNop()).
		Execute(context.Background(), RegisterUserInput{Actor: boss, Name: "x", Email: "x@y.com", Role: "client"})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(accounts.deleted) != 1 || accounts.deleted[0] != "acc-x@y.com" {
		t.Fatalf("account not rolled back: %v", accounts.deleted)
	}
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("self edits contact fields", func(t *testing.T) {
		repo := newFakeRepo()
		seed(repo, "c1", "client")
		name, phone := "Ana", "555"
		u, err := NewUpdateUser(repo, newAudit()).Execute(ctx, client, "c1", UpdateUserInput{Name: &name, Phone: &phone})
		if err != nil {
			t.Fatalf("Execute error: %v", err)
		}
		if u.Name != "Ana" || u.Phone != "555" {
			t.Fatalf("profile = %+v", u)
		}
	})

	t.Run("self cannot promote", func(t *testing.T) {
		repo := newFakeRepo()
		seed(repo, "c1", "client")
		role := "super_admin"
		_, err := NewUpdateUser(repo, newAudit()).Execute(ctx, client, "c1", UpdateUserInput{Role: &role})
		if !httperr.IsBusiness(err, "role_not_allowed") {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("other profile", func(t *testing.T) {
		repo := newFakeRepo()
		seed(repo, "c2", "client")
		name := "x"
		_, err := NewUpdateUser(repo, newAudit()).Execute(ctx, client, "c2", UpdateUserInput{Name: &name})
		if !httperr.IsBusiness(err, "not_your_profile") {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("barber sets window", func(t *testing.T) {
		repo := newFakeRepo()
		seed(repo, "b1", "admin")
		start, end := 540, 1020
		u, err := NewUpdateUser(repo, newAudit()).Execute(ctx, barber, "b1", UpdateUserInput{StartTimePred: &start, EndTimePred: &end})
		if err != nil {
			t.Fatalf("Execute error: %v", err)
		}
		if *u.StartTimePred != 540 || *u.EndTimePred != 1020 {
			t.Fatalf("profile = %+v", u)
		}

		bad := 300
		_, err = NewUpdateUser(repo, newAudit()).Execute(ctx, barber, "b1", UpdateUserInput{EndTimePred: &bad})
		if !httperr.IsBusiness(err, "invalid_window") {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("super changes role", func(t *testing.T) {
		repo := newFakeRepo()
		seed(repo, "c1", "client")
		role, sub := "barber", true
		u, err := NewUpdateUser(repo, newAudit()).Execute(ctx, boss, "c1", UpdateUserInput{Role: &role, IsSubscribed: &sub})
		if err != nil {
			t.Fatalf("Execute error: %v", err)
		}
		if u.Role != "admin" || !u.IsSubscribed {
			t.Fatalf("profile = %+v", u)
		}
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("removes both", func(t *testing.T) {
		repo := newFakeRepo()
		seed(repo, "c1", "client")
		accounts := &fakeAccounts{}
		if err := NewDeleteUser(repo, accounts, newAudit(), zap.NewNop()).Execute(ctx, boss, "c1"); err != nil {
			t.Fatalf("Execute error: %v", err)
		}
		if _, ok := repo.users["c1"]; ok || len(accounts.deleted) != 1 {
			t.Fatalf("users %v, deleted accounts %v", repo.users, accounts.deleted)
		}
	})

	t.Run("not super", func(t *testing.T) {
		repo := newFakeRepo()
		seed(repo, "c1", "client")
		err := NewDeleteUser(repo, &fakeAccounts{}, newAudit(), zap.NewNop()).Execute(ctx, barber, "c1")
		if !httperr.IsBusiness(err, "role_not_allowed") {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("self", func(t *testing.T) {
		repo := newFakeRepo()
		seed(repo, "root", "super_admin")
		err := NewDeleteUser(repo, &fakeAccounts{}, newAudit(), zap.NewNop()).Execute(ctx, boss, "root")
		if !httperr.IsBusiness(err, "cannot_delete_self") {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("profile failure surfaces", func(t *testing.T) {
		repo := newFakeRepo()
		seed(repo, "c1", "client")
		repo.deleteErr = errors.New("locked")
		err := NewDeleteUser(repo, &fakeAccounts{}, newAudit(), zap.NewNop()).Execute(ctx, boss, "c1")
		if err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestListUsers_Barbers(t *testing.T) {
	repo := newFakeRepo()
	seed(repo, "b1", "admin")
	seed(repo, "b2", "barbero")
	seed(repo, "c1", "client")

	got, err := NewListUsers(repo).Barbers(context.Background())
	if err != nil {
		t.Fatalf("Barbers error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d barbers, want 2", len(got))
	}

	all, _ := NewListUsers(repo).Execute(context.Background())
	if len(all) != 3 {
		t.Fatalf("got %d users, want 3", len(all))
	}
}
