package identity

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const (
	providerPassword = "password"
	resetTokenTTL    = time.Hour
)

type Config struct {
	Secret   string
	TokenTTL time.Duration
	// ResetURL is the page that receives ?token= from reset links.
	ResetURL string
}

// Service is the identity provider of the application: it owns accounts,
// issues and revokes session tokens and verifies federated sign-ins.
type Service struct {
	accounts    *accountStore
	tokens      *tokenIssuer
	revocations Revocations
	verifier    TokenVerifier
	mailer      Mailer
	hub         *authHub
	cfg         Config
	log         *zap.Logger
}

// NewService builds the identity service. verifier may be nil, in which case
// federated sign-in fails with ErrProviderError.
func NewService(
	db *gorm.DB,
	cfg Config,
	revocations Revocations,
	verifier TokenVerifier,
	mailer Mailer,
	log *zap.Logger,
) *Service {
	return &Service{
		accounts:    &accountStore{db: db},
		tokens:      &tokenIssuer{secret: []byte(cfg.Secret), now: time.Now},
		revocations: revocations,
		verifier:    verifier,
		mailer:      mailer,
		hub:         newAuthHub(),
		cfg:         cfg,
		log:         log,
	}
}

func (s *Service) SignInWithCredentials(ctx context.Context, email, password string) (*Session, error) {
	acc, err := s.accounts.findByEmail(ctx, email)
	if errors.Is(err, ErrAccountNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if acc.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.newSession(principalOf(acc))
}

// SignInWithFederated exchanges a provider ID token for a session. An empty
// token means the user abandoned the provider flow.
func (s *Service) SignInWithFederated(ctx context.Context, idToken string) (*Session, error) {
	if idToken == "" {
		return nil, ErrProviderCancelled
	}
	if s.verifier == nil {
		return nil, fmt.Errorf("%w: no federated provider configured", ErrProviderError)
	}

	fed, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		s.log.Warn("federated token rejected", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrProviderError, err)
	}

	provider := fed.Provider
	if provider == "" || provider == providerPassword {
		provider = "federated"
	}

	acc := &models.Account{
		ID:          fed.UID,
		Email:       normalizeEmail(fed.Email),
		Provider:    provider,
		DisplayName: fed.DisplayName,
		PhotoURL:    fed.PhotoURL,
		Anonymous:   fed.Anonymous,
	}
	if err := s.accounts.saveFederated(ctx, acc); err != nil {
		return nil, err
	}

	return s.newSession(principalOf(acc))
}

// Authenticate resolves a session token. Signed-out tokens and tokens of
// deleted accounts are rejected.
func (s *Service) Authenticate(ctx context.Context, token string) (*Session, error) {
	claims, err := s.tokens.parse(token, purposeSession)
	if err != nil {
		return nil, err
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("revocation lookup: %w", err)
	}
	if revoked {
		return nil, ErrTokenInvalid
	}

	acc, err := s.accounts.get(ctx, claims.Subject)
	if errors.Is(err, ErrAccountNotFound) {
		return nil, ErrTokenInvalid
	}
	if err != nil {
		return nil, err
	}

	return &Session{
		ID:        claims.ID,
		Principal: principalOf(acc),
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// SignOut revokes the session everywhere and notifies its watchers.
func (s *Service) SignOut(ctx context.Context, sessionID string) error {
	if err := s.revocations.Revoke(ctx, sessionID, s.tokens.now().Add(s.cfg.TokenTTL)); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	s.hub.signedOut(sessionID)
	return nil
}

// AuthState streams the principal of sessionID, then nil after sign-out.
func (s *Service) AuthState(ctx context.Context, sess *Session) <-chan *Principal {
	p := sess.Principal
	return s.hub.watch(ctx, sess.ID, &p)
}

// CreateAccount registers a password account.
func (s *Service) CreateAccount(ctx context.Context, email, password string) (*Principal, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	acc := &models.Account{
		ID:           uuid.NewString(),
		Email:        normalizeEmail(email),
		PasswordHash: string(hash),
		Provider:     providerPassword,
	}
	if err := s.accounts.create(ctx, acc); err != nil {
		return nil, err
	}

	p := principalOf(acc)
	return &p, nil
}

func (s *Service) DeleteAccount(ctx context.Context, uid string) error {
	return s.accounts.delete(ctx, uid)
}

// SendPasswordResetLink mails a one-hour reset link. Unknown emails succeed
// silently so the endpoint cannot be used to probe accounts.
func (s *Service) SendPasswordResetLink(ctx context.Context, email string) error {
	acc, err := s.accounts.findByEmail(ctx, email)
	if errors.Is(err, ErrAccountNotFound) {
		s.log.Info("password reset requested for unknown email")
		return nil
	}
	if err != nil {
		return err
	}

	token, _, err := s.tokens.issue(principalOf(acc), purposeReset, resetTokenTTL)
	if err != nil {
		return fmt.Errorf("sign reset token: %w", err)
	}

	link := s.cfg.ResetURL + "?token=" + url.QueryEscape(token)
	return s.mailer.SendPasswordReset(ctx, acc.Email, link)
}

// ResetPassword consumes a reset token. Each token works once.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := s.tokens.parse(token, purposeReset)
	if err != nil {
		return err
	}

	used, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return fmt.Errorf("revocation lookup: %w", err)
	}
	if used {
		return ErrTokenInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.accounts.setPassword(ctx, claims.Subject, string(hash)); err != nil {
		return err
	}

	return s.revocations.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

func (s *Service) newSession(p Principal) (*Session, error) {
	token, claims, err := s.tokens.issue(p, purposeSession, s.cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}
	return &Session{
		ID:        claims.ID,
		Principal: p,
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
