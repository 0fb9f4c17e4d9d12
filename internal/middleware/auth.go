package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/identity"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const (
	ContextPrincipal = "principal"
	ContextSession   = "session"
	ContextProfile   = "profile"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*identity.Session, error)
}

type SessionChecker interface {
	Check(ctx context.Context, sessionID string, anonymous bool) error
}

// ProfileResolver returns the profile of p, creating it when missing.
type ProfileResolver interface {
	Execute(ctx context.Context, p identity.Principal) (*models.User, error)
}

// AuthMiddleware accepts a Bearer session token, applies the idle policy
// and loads the caller's profile and role.
func AuthMiddleware(auth Authenticator, guard SessionChecker, profiles ProfileResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		token, ok := BearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_authorization_header"})
			return
		}

		ctx := c.Request.Context()

		sess, err := auth.Authenticate(ctx, token)
		if err != nil {
			httperr.Respond(c, err)
			return
		}

		if err := guard.Check(ctx, sess.ID, sess.Principal.IsAnonymous); err != nil {
			httperr.Respond(c, err)
			return
		}

		profile, err := profiles.Execute(ctx, sess.Principal)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		if profile == nil {
			httperr.Respond(c, httperr.ErrForbidden("profile_missing"))
			return
		}

		role, _ := domain.ParseRole(profile.Role)

		c.Set(ContextSession, sess)
		c.Set(ContextProfile, profile)
		c.Set(ContextPrincipal, domain.Principal{
			ID:   sess.Principal.UID,
			Role: role,
			Name: profile.Name,
		})

		c.Next()
	}
}

// BearerToken extracts the token of an "Authorization: Bearer" header.
func BearerToken(c *gin.Context) (string, bool) {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func PrincipalFrom(c *gin.Context) domain.Principal {
	return c.MustGet(ContextPrincipal).(domain.Principal)
}

func SessionFrom(c *gin.Context) *identity.Session {
	return c.MustGet(ContextSession).(*identity.Session)
}

func ProfileFrom(c *gin.Context) *models.User {
	return c.MustGet(ContextProfile).(*models.User)
}

// RequireRoles lets through callers holding one of roles.
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := PrincipalFrom(c)
		for _, r := range roles {
			if p.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "role_not_allowed"})
	}
}
