package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/avelarm/taskbox-be/internal/auth"
	"github.com/avelarm/taskbox-be/internal/services"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	users  services.UserServiceProvider
	tokens *auth.TokenManager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users services.UserServiceProvider, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// CredentialsPayload defines the structure for register and login requests.
type CredentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles new user registration.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "username and password are required")
		return
	}
	if payload.Username == "" || payload.Password == "" {
		respondError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	_, err := h.users.Register(payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			respondError(w, http.StatusConflict, "username already exists")
			return
		}
		log.Error().Err(err).Str("username", payload.Username).Msg("Failed to register user")
		respondError(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"message": "registered"})
}

// Login handles user authentication and token issuance.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "username and password are required")
		return
	}
	if payload.Username == "" || payload.Password == "" {
		respondError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := h.users.Authenticate(payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Warn().Str("username", payload.Username).Msg("Failed authentication attempt")
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		log.Error().Err(err).Str("username", payload.Username).Msg("Authentication lookup failed")
		respondError(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to issue token")
		respondError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"access_token": token})
}
