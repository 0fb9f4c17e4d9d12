package user

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/identity"
)

// DeleteUser removes the identity account and the profile paired with it.
type DeleteUser struct {
	repo     Repository
	accounts Accounts
	audit    *audit.Dispatcher
	log      *zap.Logger
}

func NewDeleteUser(repo Repository, accounts Accounts, audit *audit.Dispatcher, log *zap.Logger) *DeleteUser {
	return &DeleteUser{repo: repo, accounts: accounts, audit: audit, log: log}
}

func (uc *DeleteUser) Execute(ctx context.Context, actor domain.Principal, uid string) error {
	if actor.Role != domain.RoleSuperAdmin {
		return httperr.ErrForbidden("role_not_allowed")
	}
	if actor.ID == uid {
		return httperr.ErrBusiness("cannot_delete_self")
	}

	if _, err := uc.repo.GetUser(ctx, uid); err != nil {
		return err
	}

	// A missing account still lets the profile go.
	if err := uc.accounts.DeleteAccount(ctx, uid); err != nil && !errors.Is(err, identity.ErrAccountNotFound) {
		return err
	}

	if err := uc.repo.DeleteUser(ctx, uid); err != nil {
		uc.log.Error("orphaned profile after account deletion", zap.String("uid", uid), zap.Error(err))
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actor.ID,
		Action:   "user_deleted",
		Entity:   "user",
		EntityID: uid,
	})
	return nil
}
