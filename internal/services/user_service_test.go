package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelarm/taskbox-be/internal/services"
)

func newUserService(t *testing.T) *services.UserService {
	t.Helper()
	db := newTestDB(t)
	return services.NewUserService(db, services.NewAuditService(db))
}

func TestUserService_Register(t *testing.T) {
	svc := newUserService(t)

	user, err := svc.Register("alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotZero(t, user.ID)
	assert.Empty(t, user.PasswordHash, "hash must not be returned")
}

func TestUserService_Register_DuplicateUsername(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.Register("alice", "pw1")
	require.NoError(t, err)

	_, err = svc.Register("alice", "another-pw")
	assert.ErrorIs(t, err, services.ErrUsernameTaken)
}

func TestUserService_Authenticate(t *testing.T) {
	svc := newUserService(t)

	registered, err := svc.Register("alice", "pw1")
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"correct credentials", "alice", "pw1", nil},
		{"wrong password", "alice", "pw2", services.ErrInvalidCredentials},
		{"unknown username", "bob", "pw1", services.ErrInvalidCredentials},
		{"empty password", "alice", "", services.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Authenticate(tt.username, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, registered.ID, user.ID)
			assert.Empty(t, user.PasswordHash)
		})
	}
}
