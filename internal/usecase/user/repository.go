package user

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/identity"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Repository interface {
	// FindUser returns nil, nil when uid has no profile.
	FindUser(ctx context.Context, uid string) (*models.User, error)
	GetUser(ctx context.Context, uid string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
	UpdateUser(ctx context.Context, uid string, fields map[string]any) error
	DeleteUser(ctx context.Context, uid string) error
	ListUsers(ctx context.Context, roles ...string) ([]models.User, error)
}

// Accounts is the identity side of a user.
type Accounts interface {
	CreateAccount(ctx context.Context, email, password string) (*identity.Principal, error)
	DeleteAccount(ctx context.Context, uid string) error
	SendPasswordResetLink(ctx context.Context, email string) error
}
