package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/store"
)

type UserGormRepository struct {
	users *store.Collection[models.User]
}

func NewUserGormRepository(c *Collections) *UserGormRepository {
	return &UserGormRepository{users: c.Users}
}

// FindUser returns nil, nil when uid has no profile.
func (r *UserGormRepository) FindUser(ctx context.Context, uid string) (*models.User, error) {
	u, err := r.users.Get(ctx, uid)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return u, err
}

func (r *UserGormRepository) GetUser(ctx context.Context, uid string) (*models.User, error) {
	u, err := r.users.Get(ctx, uid)
	if errors.Is(err, store.ErrNotFound) {
		return nil, httperr.ErrNotFound("user_not_found")
	}
	return u, err
}

func (r *UserGormRepository) CreateUser(ctx context.Context, u *models.User) error {
	_, err := r.users.Insert(ctx, u)
	return err
}

// UpdateUser merges fields into the profile of uid.
func (r *UserGormRepository) UpdateUser(ctx context.Context, uid string, fields map[string]any) error {
	if _, err := r.GetUser(ctx, uid); err != nil {
		return err
	}
	return r.users.Upsert(ctx, uid, fields)
}

func (r *UserGormRepository) DeleteUser(ctx context.Context, uid string) error {
	err := r.users.Delete(ctx, uid)
	if errors.Is(err, store.ErrNotFound) {
		return httperr.ErrNotFound("user_not_found")
	}
	return err
}

// ListUsers lists profiles, optionally restricted to a set of role tags.
func (r *UserGormRepository) ListUsers(ctx context.Context, roles ...string) ([]models.User, error) {
	q := store.Query{OrderBy: "name ASC"}
	if len(roles) > 0 {
		q.Where = map[string]any{"role": roles}
	}
	return r.users.Query(ctx, q)
}

// SearchClients lists client profiles whose name, phone or email contains
// term, newest first.
func (r *UserGormRepository) SearchClients(ctx context.Context, term string) ([]models.User, error) {
	q := r.users.DB(ctx).Where("role = ?", "client")

	if term = strings.ToLower(strings.TrimSpace(term)); term != "" {
		like := "%" + term + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	clients := []models.User{}
	if err := q.Order("created_at DESC").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("search clients: %w", err)
	}
	return clients, nil
}
