package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestIssueAndValidateAccessToken(t *testing.T) {
	token, err := IssueAccessToken("u1", "taro", testSecret)
	require.NoError(t, err)

	claims, err := ValidateJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "taro", claims["sub"])
	assert.Equal(t, "u1", claims["userId"])
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := IssueAccessToken("u1", "taro", testSecret)
	require.NoError(t, err)

	_, err = ValidateJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	claims := jwt.MapClaims{
		"sub":    "taro",
		"userId": "u1",
		"iat":    time.Now().Add(-time.Hour).Unix(),
		"exp":    time.Now().Add(-time.Minute).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ValidateJWT(token, testSecret)
	assert.Error(t, err)
}

func TestJWTMiddlewarePopulatesContext(t *testing.T) {
	token, err := IssueAccessToken("u1", "taro", testSecret)
	require.NoError(t, err)

	var gotUserID, gotUsername string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = GetUserID(r.Context())
		gotUsername = GetUsername(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	JWTMiddleware(testSecret)(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", gotUserID)
	assert.Equal(t, "taro", gotUsername)
}

func TestJWTMiddlewareRejectsMissingAndMalformedHeaders(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})
	mw := JWTMiddleware(testSecret)(next)

	for _, header := range []string{"", "Token abc", "Bearer not-a-jwt"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		mw.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}
