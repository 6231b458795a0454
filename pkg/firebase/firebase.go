// Package firebase verifies Firebase ID tokens for the auth middleware and the
// token exchange endpoint.
package firebase

import (
	"context"
	"errors"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/anonto42/skillshare/backend/pkg/logger"
)

var ErrNotConfigured = errors.New("firebase is not configured")

// App wraps the Firebase auth client. A nil *App rejects every token.
type App struct {
	authClient *auth.Client
}

// Init builds the auth client from a service account file. An empty path
// disables Firebase and returns nil without error.
func Init(ctx context.Context, credentialsPath string, log logger.Logger) (*App, error) {
	log = log.WithComponent("firebase")
	if credentialsPath == "" {
		log.Warn("FIREBASE_CREDENTIALS_PATH not set, Firebase ID tokens will be rejected")
		return nil, nil
	}

	if _, err := os.Stat(credentialsPath); err != nil {
		return nil, fmt.Errorf("firebase credentials file not readable at %s: %w", credentialsPath, err)
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase auth client: %w", err)
	}

	log.Info("Firebase auth client initialized")
	return &App{authClient: authClient}, nil
}

func (a *App) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if a == nil || a.authClient == nil {
		return nil, ErrNotConfigured
	}
	return a.authClient.VerifyIDToken(ctx, idToken)
}
