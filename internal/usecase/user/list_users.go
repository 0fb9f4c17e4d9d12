package user

import (
	"context"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ListUsers struct {
	repo Repository
}

func NewListUsers(repo Repository) *ListUsers {
	return &ListUsers{repo: repo}
}

func (uc *ListUsers) Execute(ctx context.Context) ([]models.User, error) {
	return uc.repo.ListUsers(ctx)
}

// Barbers lists every profile whose role reads as admin, legacy tags
// included.
func (uc *ListUsers) Barbers(ctx context.Context) ([]models.User, error) {
	return uc.repo.ListUsers(ctx, string(domain.RoleAdmin), "barber", "barbero")
}
