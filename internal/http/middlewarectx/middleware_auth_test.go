package middlewarectx

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookvault/bookvault/internal/lib/jwt"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestJWTMiddleware(t *testing.T) {
	maker := jwt.NewMaker("test_secret_key", 15*time.Minute)

	token, err := maker.GenerateToken(42)
	require.NoError(t, err)

	expiredMaker := jwt.NewMaker("test_secret_key", -time.Minute)
	expiredToken, err := expiredMaker.GenerateToken(42)
	require.NoError(t, err)

	foreignMaker := jwt.NewMaker("another_secret_key", 15*time.Minute)
	foreignToken, err := foreignMaker.GenerateToken(42)
	require.NoError(t, err)

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedBody   string
		expectNext     bool
	}{
		{
			name:           "valid token",
			authHeader:     "Bearer " + token,
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "missing header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "access token required",
		},
		{
			name:           "header without bearer prefix",
			authHeader:     token,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "access token required",
		},
		{
			name:           "malformed token",
			authHeader:     "Bearer not.a.token",
			expectedStatus: http.StatusForbidden,
			expectedBody:   "invalid or expired token",
		},
		{
			name:           "expired token",
			authHeader:     "Bearer " + expiredToken,
			expectedStatus: http.StatusForbidden,
			expectedBody:   "invalid or expired token",
		},
		{
			name:           "token signed with another key",
			authHeader:     "Bearer " + foreignToken,
			expectedStatus: http.StatusForbidden,
			expectedBody:   "invalid or expired token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				userID, ok := UserIDFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, int64(42), userID)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			JWTMiddleware(maker, newNoopLogger())(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectNext, nextCalled)
			if tt.expectedBody != "" {
				assert.Contains(t, rr.Body.String(), tt.expectedBody)
			}
		})
	}
}

func TestUserIDFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)

	_, ok := UserIDFromContext(req.Context())
	assert.False(t, ok)
}
