package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/identity"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type IdentityService interface {
	SignInWithCredentials(ctx context.Context, email, password string) (*identity.Session, error)
	SignInWithFederated(ctx context.Context, idToken string) (*identity.Session, error)
	Authenticate(ctx context.Context, token string) (*identity.Session, error)
	SignOut(ctx context.Context, sessionID string) error
	CreateAccount(ctx context.Context, email, password string) (*identity.Principal, error)
	SendPasswordResetLink(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type SessionTracker interface {
	RecordSignIn(ctx context.Context, sessionID string) error
	Check(ctx context.Context, sessionID string, anonymous bool) error
	Release(ctx context.Context, sessionID string)
}

type AuthHandler struct {
	identity   IdentityService
	sessions   SessionTracker
	profiles   middleware.ProfileResolver
	emailValid func(string) bool
}

func NewAuthHandler(
	identity IdentityService,
	sessions SessionTracker,
	profiles middleware.ProfileResolver,
	emailValid func(string) bool,
) *AuthHandler {
	return &AuthHandler{
		identity:   identity,
		sessions:   sessions,
		profiles:   profiles,
		emailValid: emailValid,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type FederatedRequest struct {
	IDToken string `json:"idToken"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// --------- Handlers ---------

// Register is client self sign-up.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !h.emailValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "")
		return
	}

	if _, err := h.identity.CreateAccount(c.Request.Context(), email, req.Password); err != nil {
		httperr.Respond(c, err)
		return
	}

	sess, err := h.identity.SignInWithCredentials(c.Request.Context(), email, req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.startSession(c, http.StatusCreated, sess)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	sess, err := h.identity.SignInWithCredentials(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.startSession(c, http.StatusOK, sess)
}

// Federated exchanges a provider ID token. An empty token means the user
// closed the provider popup.
func (h *AuthHandler) Federated(c *gin.Context) {
	var req FederatedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "")
		return
	}

	sess, err := h.identity.SignInWithFederated(c.Request.Context(), req.IDToken)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.startSession(c, http.StatusOK, sess)
}

// Logout always succeeds; an unknown token has nothing to revoke.
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	if token, ok := middleware.BearerToken(c); ok {
		if sess, err := h.identity.Authenticate(ctx, token); err == nil {
			if err := h.identity.SignOut(ctx, sess.ID); err != nil {
				httperr.Respond(c, err)
				return
			}
			h.sessions.Release(ctx, sess.ID)
		}
	}

	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "")
		return
	}

	if err := h.identity.SendPasswordResetLink(c.Request.Context(), req.Email); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.Status(http.StatusAccepted)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "")
		return
	}

	if err := h.identity.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// startSession starts the idle clock, bootstraps the profile and answers
// with the token. Anonymous sessions are signed out on the spot.
func (h *AuthHandler) startSession(c *gin.Context, status int, sess *identity.Session) {
	ctx := c.Request.Context()

	if err := h.sessions.RecordSignIn(ctx, sess.ID); err != nil {
		httperr.Respond(c, httperr.ErrExternal("session_store_unavailable", err))
		return
	}

	if sess.Principal.IsAnonymous {
		httperr.Respond(c, h.sessions.Check(ctx, sess.ID, true))
		return
	}

	profile, err := h.profiles.Execute(ctx, sess.Principal)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(status, gin.H{
		"token":     sess.Token,
		"expiresAt": sess.ExpiresAt,
		"user":      profileView(profile),
	})
}

func profileView(u *models.User) gin.H {
	return gin.H{
		"uid":           u.ID,
		"name":          u.Name,
		"email":         u.Email,
		"photoUrl":      u.PhotoURL,
		"phone":         u.Phone,
		"role":          u.Role,
		"barberId":      u.BarberID,
		"barberName":    u.BarberName,
		"isSubscribed":  u.IsSubscribed,
		"startTimePred": u.StartTimePred,
		"endTimePred":   u.EndTimePred,
	}
}
