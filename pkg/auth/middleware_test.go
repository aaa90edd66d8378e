package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type stubGate struct {
	err error
}

func (g *stubGate) VerifyAdmin(ctx context.Context, userID int) error {
	return g.err
}

func TestAuthMiddleware(t *testing.T) {
	jwtService := &JWTService{}
	validToken, err := jwtService.GenerateJWT(1, time.Now().Add(time.Hour))
	assert.NoError(t, err)

	tests := []struct {
		name         string
		authHeader   string
		expectedCode int
		expectNext   bool
	}{
		{
			name:         "Valid token",
			authHeader:   "Bearer " + validToken,
			expectedCode: http.StatusOK,
			expectNext:   true,
		},
		{
			name:         "Missing header",
			authHeader:   "",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "Not a bearer token",
			authHeader:   "Basic abc123",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "Invalid token",
			authHeader:   "Bearer invalid.token.string",
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				userID, ok := r.Context().Value(UserIDKey).(int)
				assert.True(t, ok)
				assert.Equal(t, 1, userID)
			})

			req := httptest.NewRequest("GET", "/api/user/balance", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			AuthMiddleware(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.Equal(t, tt.expectNext, nextCalled)
		})
	}
}

func TestAdminMiddleware(t *testing.T) {
	tests := []struct {
		name         string
		userID       any
		gateErr      error
		expectedCode int
		expectNext   bool
	}{
		{
			name:         "Admin passes through",
			userID:       1,
			expectedCode: http.StatusOK,
			expectNext:   true,
		},
		{
			name:         "Non-admin rejected",
			userID:       2,
			gateErr:      errors.New("user is not an admin"),
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "No user in context",
			userID:       nil,
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
			})

			req := httptest.NewRequest("GET", "/api/admin/users", nil)
			if tt.userID != nil {
				req = req.WithContext(context.WithValue(req.Context(), UserIDKey, tt.userID))
			}
			rr := httptest.NewRecorder()

			AdminMiddleware(&stubGate{err: tt.gateErr})(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.Equal(t, tt.expectNext, nextCalled)
		})
	}
}
