package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/anonto42/skillshare/backend/internal/models"
)

// UserIDKey is the echo context key holding the authenticated user id.
const UserIDKey = "userID"

const tokenTTL = 72 * time.Hour

// JWTAuthMiddleware accepts a locally issued HS256 token or, when verifier is
// not nil, a Firebase ID token. Either way the caller's user id ends up under
// UserIDKey.
func JWTAuthMiddleware(secret string, verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}

			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
			}
			tokenString := parts[1]

			claims, err := ParseToken(secret, tokenString)
			if err == nil {
				c.Set("user", claims)
				c.Set(UserIDKey, claims.UserID)
				return next(c)
			}
			if errors.Is(err, jwt.ErrSignatureInvalid) || verifier == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token").SetInternal(err)
			}

			uid, ferr := verifyFirebaseToken(c.Request().Context(), verifier, tokenString)
			if ferr != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token").SetInternal(ferr)
			}
			c.Set(UserIDKey, uid)
			return next(c)
		}
	}
}

// ParseToken validates a locally issued token and returns its claims.
func ParseToken(secret, tokenString string) (*models.JwtCustomClaims, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// IssueToken signs a token for userID that expires after 72 hours.
func IssueToken(secret, userID, email string, now time.Time) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
