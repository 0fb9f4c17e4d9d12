package repository

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/store"
)

type ServiceGormRepository struct {
	services *store.Collection[models.Service]
}

func NewServiceGormRepository(c *Collections) *ServiceGormRepository {
	return &ServiceGormRepository{services: c.Services}
}

func (r *ServiceGormRepository) ListServices(ctx context.Context, activeOnly bool) ([]models.Service, error) {
	q := store.Query{OrderBy: "name ASC"}
	if activeOnly {
		q.Where = map[string]any{"active": true}
	}
	return r.services.Query(ctx, q)
}

func (r *ServiceGormRepository) GetService(ctx context.Context, id string) (*models.Service, error) {
	s, err := r.services.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, httperr.ErrNotFound("service_not_found")
	}
	return s, err
}

// CreateService rejects a key already in the catalog.
func (r *ServiceGormRepository) CreateService(ctx context.Context, s *models.Service) error {
	existing, err := r.services.Query(ctx, store.Query{
		Where: map[string]any{"key": s.Key},
		Limit: 1,
	})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return httperr.ErrConflict("service_key_taken")
	}

	_, err = r.services.Insert(ctx, s)
	return err
}

func (r *ServiceGormRepository) UpdateService(ctx context.Context, id string, fields map[string]any) (*models.Service, error) {
	if _, err := r.GetService(ctx, id); err != nil {
		return nil, err
	}
	if err := r.services.Upsert(ctx, id, fields); err != nil {
		return nil, err
	}
	return r.GetService(ctx, id)
}

func (r *ServiceGormRepository) DeleteService(ctx context.Context, id string) error {
	err := r.services.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return httperr.ErrNotFound("service_not_found")
	}
	return err
}
