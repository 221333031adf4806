package auth_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelarm/taskbox-be/internal/auth"
)

func TestUserIDFromContext(t *testing.T) {
	tests := []struct {
		name       string
		ctx        context.Context
		expectedID int64
		expectedOK bool
	}{
		{
			name:       "context with user id",
			ctx:        context.WithValue(context.Background(), auth.UserIDKey, int64(123)),
			expectedID: 123,
			expectedOK: true,
		},
		{
			name:       "empty context",
			ctx:        context.Background(),
			expectedID: 0,
			expectedOK: false,
		},
		{
			name:       "wrong value type",
			ctx:        context.WithValue(context.Background(), auth.UserIDKey, "not-an-int64"),
			expectedID: 0,
			expectedOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, ok := auth.UserIDFromContext(tt.ctx)
			assert.Equal(t, tt.expectedID, userID)
			assert.Equal(t, tt.expectedOK, ok)
		})
	}
}

func TestMiddleware(t *testing.T) {
	m := auth.NewTokenManager(testSecret, time.Hour)

	validToken, err := m.Issue(123)
	require.NoError(t, err)

	expired := auth.NewTokenManager(testSecret, -time.Minute)
	expiredToken, err := expired.Issue(123)
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		require.True(t, ok, "user id must be in the context")
		fmt.Fprintf(w, "OK for user %d", userID)
	})

	handler := m.Middleware()(next)

	tests := []struct {
		name           string
		header         string
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "valid token",
			header:         "Bearer " + validToken,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "no header",
			header:         "",
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Missing Authorization Header",
		},
		{
			name:           "wrong scheme",
			header:         "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Missing Authorization Header",
		},
		{
			name:           "bearer with no credential",
			header:         "Bearer",
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Missing Authorization Header",
		},
		{
			name:           "garbage token",
			header:         "Bearer garbage",
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  "Invalid token",
		},
		{
			name:           "tampered signature",
			header:         "Bearer " + validToken[:len(validToken)-4] + "AAAA",
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  "Invalid token",
		},
		{
			name:           "expired token",
			header:         "Bearer " + expiredToken,
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Token has expired",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedError != "" {
				var body map[string]string
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.expectedError, body["error"])
			} else {
				assert.Equal(t, "OK for user 123", rec.Body.String())
			}
		})
	}
}
