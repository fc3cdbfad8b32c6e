package middleware

import (
	"fmt"
	"strings"

	"finsight/internal/errors"
	"finsight/internal/handlers"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

const (
	// APIKeyHeader is the header carrying a static API key
	APIKeyHeader = "X-API-Key"
	// ClientIDContextKey is the context key for the authenticated client
	ClientIDContextKey = "client_id"
)

// RequireAuth creates a middleware that accepts either a bearer JWT signed
// with the configured HMAC secret or a static API key matching one of the
// configured bcrypt hashes.
func RequireAuth(jwtSecret []byte, apiKeyHashes []string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if apiKey := c.Request().Header.Get(APIKeyHeader); apiKey != "" {
				if !matchesAnyHash(apiKey, apiKeyHashes) {
					return handlers.SendError(c, errors.AuthInvalidCredentials)
				}
				c.Set(ClientIDContextKey, "api-key")
				return next(c)
			}

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return handlers.SendError(c, errors.AuthMissingToken)
			}

			token, err := extractBearerToken(authHeader)
			if err != nil {
				return handlers.SendError(c, errors.AuthInvalidTokenFormat)
			}

			claims, err := validateToken(token, jwtSecret)
			if err != nil {
				if strings.Contains(err.Error(), jwt.ErrTokenExpired.Error()) {
					return handlers.SendError(c, errors.AuthExpiredToken)
				}
				return handlers.SendError(c, errors.AuthInvalidTokenFormat)
			}

			subject, _ := claims.GetSubject()
			c.Set(ClientIDContextKey, subject)

			return next(c)
		}
	}
}

// extractBearerToken pulls the token out of an Authorization header
func extractBearerToken(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", fmt.Errorf("malformed authorization header")
	}
	return parts[1], nil
}

// validateToken parses and verifies an HMAC-signed JWT
func validateToken(tokenString string, secret []byte) (jwt.Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return token.Claims, nil
}

func matchesAnyHash(apiKey string, hashes []string) bool {
	for _, hash := range hashes {
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(apiKey)) == nil {
			return true
		}
	}
	return false
}
