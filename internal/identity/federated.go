package identity

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// FederatedIdentity is what a provider vouches for after verifying its own
// token.
type FederatedIdentity struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
	Provider    string
	Anonymous   bool
}

type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*FederatedIdentity, error)
}

// FirebaseVerifier accepts Firebase ID tokens from any configured sign-in
// provider, anonymous sign-in included.
type FirebaseVerifier struct {
	client *auth.Client
}

func NewFirebaseVerifier(ctx context.Context, credentialsFile string) (*FirebaseVerifier, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}
	return &FirebaseVerifier{client: client}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*FederatedIdentity, error) {
	tok, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}

	claim := func(name string) string {
		s, _ := tok.Claims[name].(string)
		return s
	}

	return &FederatedIdentity{
		UID:         tok.UID,
		Email:       claim("email"),
		DisplayName: claim("name"),
		PhotoURL:    claim("picture"),
		Provider:    tok.Firebase.SignInProvider,
		Anonymous:   tok.Firebase.SignInProvider == "anonymous",
	}, nil
}
