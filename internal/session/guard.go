package session

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

var (
	ErrStale     = httperr.ErrAuthExpired("session_expired")
	ErrAnonymous = httperr.ErrAuthExpired("anonymous_session")
)

// SignOuter ends the identity session behind sessionID.
type SignOuter interface {
	SignOut(ctx context.Context, sessionID string) error
}

// Guard applies the idle policy on every authorized request.
type Guard struct {
	store   ActivityStore
	signOut SignOuter
	maxIdle time.Duration
	log     *zap.Logger

	now func() time.Time
}

func NewGuard(store ActivityStore, signOut SignOuter, maxIdle time.Duration, log *zap.Logger) *Guard {
	return &Guard{
		store:   store,
		signOut: signOut,
		maxIdle: maxIdle,
		log:     log,
		now:     time.Now,
	}
}

// RecordSignIn starts the idle clock of a new session.
func (g *Guard) RecordSignIn(ctx context.Context, sessionID string) error {
	return g.store.Touch(ctx, sessionID, g.now())
}

// Check lets a fresh session through and slides its idle clock. Anonymous
// and stale sessions, including ones with no recorded activity, are signed
// out before Check returns.
func (g *Guard) Check(ctx context.Context, sessionID string, anonymous bool) error {
	if anonymous {
		g.expire(ctx, sessionID, "anonymous")
		return ErrAnonymous
	}

	now, err := g.fresh(ctx, sessionID)
	if err != nil {
		return err
	}

	if err := g.store.Touch(ctx, sessionID, now); err != nil {
		g.log.Warn("session touch failed", zap.String("session_id", sessionID), zap.Error(err))
	}
	return nil
}

// Verify applies the idle policy without sliding the clock. Open streams
// poll it: receiving pushed updates is not activity.
func (g *Guard) Verify(ctx context.Context, sessionID string) error {
	_, err := g.fresh(ctx, sessionID)
	return err
}

func (g *Guard) fresh(ctx context.Context, sessionID string) (time.Time, error) {
	last, err := g.store.LastActivity(ctx, sessionID)
	if err != nil {
		return time.Time{}, httperr.ErrExternal("session_store_unavailable", err)
	}

	now := g.now()
	if !IsFresh(last, now, g.maxIdle) {
		g.expire(ctx, sessionID, "idle")
		return now, ErrStale
	}
	return now, nil
}

// Release drops the bookkeeping of a session that was signed out elsewhere.
func (g *Guard) Release(ctx context.Context, sessionID string) {
	if err := g.store.Forget(ctx, sessionID); err != nil {
		g.log.Warn("session forget failed", zap.String("session_id", sessionID), zap.Error(err))
	}
}

func (g *Guard) expire(ctx context.Context, sessionID, reason string) {
	if err := g.signOut.SignOut(ctx, sessionID); err != nil {
		g.log.Error("forced sign-out failed",
			zap.String("session_id", sessionID),
			zap.String("reason", reason),
			zap.Error(err),
		)
	}
	g.Release(ctx, sessionID)
}

// IsExpired reports whether err came from the guard's policy.
func IsExpired(err error) bool {
	return errors.Is(err, ErrStale) || errors.Is(err, ErrAnonymous)
}
