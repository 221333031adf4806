package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/avelarm/taskbox-be/internal/auth"
	"github.com/avelarm/taskbox-be/internal/models"
)

// Domain errors surfaced by the user service. Handlers map these to
// HTTP statuses; anything else is an internal error.
var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(username, password string) (models.User, error)
	Authenticate(username, password string) (models.User, error)
}

// UserService provides business logic for user accounts.
type UserService struct {
	db    *sql.DB
	audit AuditServiceProvider
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB, audit AuditServiceProvider) *UserService {
	return &UserService{db: db, audit: audit}
}

// getByUsername retrieves a single user by username, including the
// password hash. Used only by Register and Authenticate.
func (s *UserService) getByUsername(username string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, username, password_hash, created_at FROM users WHERE username = ?", username)
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Register creates a new user account, hashing the password. Returns
// ErrUsernameTaken when the username is already in use.
func (s *UserService) Register(username, password string) (models.User, error) {
	if _, err := s.getByUsername(username); err == nil {
		s.audit.Record("auth.register_conflict", nil, username)
		return models.User{}, ErrUsernameTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return models.User{}, err
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	stmt, err := s.db.Prepare("INSERT INTO users(username, password_hash) VALUES(?, ?)")
	if err != nil {
		return models.User{}, err
	}
	defer stmt.Close()

	res, err := stmt.Exec(username, hashedPassword)
	if err != nil {
		// The UNIQUE constraint backstops a concurrent registration
		// that slipped past the lookup above.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			s.audit.Record("auth.register_conflict", nil, username)
			return models.User{}, ErrUsernameTaken
		}
		return models.User{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}

	// Return user without password hash
	return models.User{ID: id, Username: username}, nil
}

// Authenticate verifies a user's credentials. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (s *UserService) Authenticate(username, password string) (models.User, error) {
	user, err := s.getByUsername(username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.audit.Record("auth.login_failed", nil, username)
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		s.audit.Record("auth.login_failed", &user.ID, username)
		return models.User{}, ErrInvalidCredentials
	}

	// Don't hand the password hash back to callers
	user.PasswordHash = ""
	return user, nil
}
