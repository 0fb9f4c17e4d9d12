package user

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type RegisterUserInput struct {
	Actor domain.Principal

	Name  string
	Email string
	Phone string
	Role  string
}

// RegisterUser creates an account with a throwaway password plus its
// profile, then mails a reset link so the user picks their own password.
type RegisterUser struct {
	repo       Repository
	accounts   Accounts
	audit      *audit.Dispatcher
	emailValid func(string) bool
	log        *zap.Logger
}

func NewRegisterUser(
	repo Repository,
	accounts Accounts,
	audit *audit.Dispatcher,
	emailValid func(string) bool,
	log *zap.Logger,
) *RegisterUser {
	return &RegisterUser{
		repo:       repo,
		accounts:   accounts,
		audit:      audit,
		emailValid: emailValid,
		log:        log,
	}
}

func (uc *RegisterUser) Execute(ctx context.Context, in RegisterUserInput) (*models.User, error) {
	if in.Actor.Role != domain.RoleSuperAdmin {
		return nil, httperr.ErrForbidden("role_not_allowed")
	}

	role, ok := domain.ParseRole(in.Role)
	if !ok {
		return nil, httperr.ErrBusiness("invalid_role")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	name := strings.TrimSpace(in.Name)
	if email == "" || name == "" {
		return nil, httperr.ErrBusiness("missing_fields")
	}
	if !uc.emailValid(email) {
		return nil, httperr.ErrBusiness("invalid_email_domain")
	}

	p, err := uc.accounts.CreateAccount(ctx, email, uuid.NewString())
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Name:  name,
		Email: email,
		Phone: strings.TrimSpace(in.Phone),
		Role:  string(role),
	}
	u.ID = p.UID
	if role == domain.RoleAdmin {
		u.BarberID = p.UID
		u.BarberName = name
	}

	if err := uc.repo.CreateUser(ctx, u); err != nil {
		if delErr := uc.accounts.DeleteAccount(ctx, p.UID); delErr != nil {
			uc.log.Error("orphaned account after profile failure", zap.String("uid", p.UID), zap.Error(delErr))
		}
		return nil, err
	}

	if err := uc.accounts.SendPasswordResetLink(ctx, email); err != nil {
		uc.log.Warn("setup link not sent", zap.String("uid", p.UID), zap.Error(err))
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  in.Actor.ID,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: u.ID,
		Metadata: map[string]any{"role": u.Role},
	})

	return u, nil
}
