package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"finchat/internal/httputil"
)

// ContextKey is a type for context keys
type ContextKey string

const (
	// UserIDKey is the context key for the authenticated user id
	UserIDKey ContextKey = "userId"
	// UsernameKey is the context key for the authenticated username
	UsernameKey ContextKey = "username"
)

// ErrInvalidToken is returned when token validation fails
var ErrInvalidToken = errors.New("invalid token")

// AccessTokenTTL is the lifetime of issued access tokens.
const AccessTokenTTL = 30 * time.Minute

// JWTMiddleware creates a chi middleware that validates Bearer tokens
// and puts the user id and username into the request context.
func JWTMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				httputil.Unauthorized(w, "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				httputil.Unauthorized(w, "invalid authorization header format")
				return
			}

			claims, err := ValidateJWT(parts[1], secret)
			if err != nil {
				httputil.Unauthorized(w, "invalid token")
				return
			}

			ctx := r.Context()
			if userID, ok := claims["userId"].(string); ok {
				ctx = context.WithValue(ctx, UserIDKey, userID)
			}
			if sub, ok := claims["sub"].(string); ok {
				ctx = context.WithValue(ctx, UsernameKey, sub)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IssueAccessToken creates a signed HS256 access token for the user.
func IssueAccessToken(userID, username, secret string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":    username,
		"userId": userID,
		"iat":    now.Unix(),
		"exp":    now.Add(AccessTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateJWT validates a JWT token and returns its claims
func ValidateJWT(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// GetUserID extracts the authenticated user id from context
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

// GetUsername extracts the authenticated username from context
func GetUsername(ctx context.Context) string {
	if name, ok := ctx.Value(UsernameKey).(string); ok {
		return name
	}
	return ""
}
