package photo

import (
	"context"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

type ProfileUpdater interface {
	UpdateUser(ctx context.Context, uid string, fields map[string]any) error
}

// Service stores profile photos. A nil Service means photos are not
// configured.
type Service struct {
	objects ObjectStore
	users   ProfileUpdater
	log     *zap.Logger
}

func NewService(objects ObjectStore, users ProfileUpdater, log *zap.Logger) *Service {
	return &Service{objects: objects, users: users, log: log}
}

// SetProfilePhoto transcodes r, uploads it under a fresh key and points
// the profile of uid at it. It returns the public URL.
func (s *Service) SetProfilePhoto(ctx context.Context, uid string, r io.Reader) (string, error) {
	body, err := Transcode(r, MaxSide)
	if err != nil {
		return "", err
	}

	key := "profiles/" + uid + "/" + uuid.NewString() + ".webp"
	url, err := s.objects.Put(ctx, key, body, "image/webp")
	if err != nil {
		s.log.Error("photo upload failed", zap.String("uid", uid), zap.Error(err))
		return "", httperr.ErrExternal("photo_upload_failed", err)
	}

	if err := s.users.UpdateUser(ctx, uid, map[string]any{"photo_url": url}); err != nil {
		return "", err
	}
	return url, nil
}
