package middleware

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
)

// TokenVerifier verifies Firebase ID tokens. *auth.Client implements it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

var _ TokenVerifier = (*auth.Client)(nil)

// verifyFirebaseToken returns the Firebase UID carried by a valid ID token.
func verifyFirebaseToken(ctx context.Context, verifier TokenVerifier, idToken string) (string, error) {
	token, err := verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("invalid or expired ID token: %w", err)
	}
	if token.UID == "" {
		return "", fmt.Errorf("ID token has no subject")
	}
	return token.UID, nil
}
