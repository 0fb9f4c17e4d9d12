package identity

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// accountStore persists identity accounts. Emails are unique among
// password accounts; federated accounts are keyed by the provider uid.
type accountStore struct {
	db *gorm.DB
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *accountStore) get(ctx context.Context, uid string) (*models.Account, error) {
	var a models.Account
	err := s.db.WithContext(ctx).Where("id = ?", uid).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *accountStore) findByEmail(ctx context.Context, email string) (*models.Account, error) {
	var a models.Account
	err := s.db.WithContext(ctx).
		Where("email = ? AND provider = ?", normalizeEmail(email), providerPassword).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// create inserts a password account unless the email is taken.
func (s *accountStore) create(ctx context.Context, a *models.Account) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Account{}).
			Where("email = ? AND provider = ?", a.Email, providerPassword).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailAlreadyInUse
		}
		return tx.Create(a).Error
	})
}

// saveFederated creates or refreshes the account behind a provider uid.
func (s *accountStore) saveFederated(ctx context.Context, a *models.Account) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Account
		err := tx.Where("id = ?", a.ID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(a).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&existing).Updates(map[string]any{
			"email":        a.Email,
			"display_name": a.DisplayName,
			"photo_url":    a.PhotoURL,
			"anonymous":    a.Anonymous,
			"provider":     a.Provider,
		}).Error
	})
}

func (s *accountStore) setPassword(ctx context.Context, uid, hash string) error {
	res := s.db.WithContext(ctx).Model(&models.Account{}).
		Where("id = ?", uid).
		Update("password_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (s *accountStore) delete(ctx context.Context, uid string) error {
	res := s.db.WithContext(ctx).Where("id = ?", uid).Delete(&models.Account{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}
