package identity

import "github.com/BruksfildServices01/barber-booking/internal/httperr"

var (
	ErrInvalidCredentials = httperr.ErrUnauthorized("invalid_credentials")
	ErrProviderCancelled  = httperr.ErrUnauthorized("provider_cancelled")
	ErrProviderError      = httperr.ErrExternal("provider_error", nil)
	ErrEmailAlreadyInUse  = httperr.ErrConflict("email_already_in_use")
	ErrTokenInvalid       = httperr.ErrUnauthorized("invalid_token")
	ErrAccountNotFound    = httperr.ErrNotFound("account_not_found")
)
