package user

import (
	"context"
	"strings"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/identity"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// EnsureProfile creates the client profile of a principal on its first
// sign-in. Anonymous principals get no profile.
type EnsureProfile struct {
	repo Repository
	log  *zap.Logger
}

func NewEnsureProfile(repo Repository, log *zap.Logger) *EnsureProfile {
	return &EnsureProfile{repo: repo, log: log}
}

func (uc *EnsureProfile) Execute(ctx context.Context, p identity.Principal) (*models.User, error) {
	existing, err := uc.repo.FindUser(ctx, p.UID)
	if err != nil {
		return nil, err
	}
	if existing != nil || p.IsAnonymous {
		return existing, nil
	}

	name := p.DisplayName
	if name == "" {
		name, _, _ = strings.Cut(p.Email, "@")
	}

	u := &models.User{
		Name:         name,
		Email:        p.Email,
		PhotoURL:     p.PhotoURL,
		Role:         string(domain.RoleClient),
		IsSubscribed: false,
	}
	u.ID = p.UID

	if err := uc.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	uc.log.Info("profile created on first sign-in", zap.String("uid", p.UID))
	return u, nil
}
