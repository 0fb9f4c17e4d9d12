package identity

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Principal is the signed-in identity, independent of its profile.
type Principal struct {
	UID         string `json:"uid"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	PhotoURL    string `json:"photoUrl,omitempty"`
	IsAnonymous bool   `json:"isAnonymous"`
}

// Session is a principal together with the token that authenticates it.
type Session struct {
	ID        string    `json:"-"`
	Principal Principal `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func principalOf(a *models.Account) Principal {
	return Principal{
		UID:         a.ID,
		Email:       a.Email,
		DisplayName: a.DisplayName,
		PhotoURL:    a.PhotoURL,
		IsAnonymous: a.Anonymous,
	}
}
