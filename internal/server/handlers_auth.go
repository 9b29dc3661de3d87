package server

import (
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"

	"github.com/finsightlabs/finsight/internal/models"
)

// hashPassword hashes a password with bcrypt. bcrypt only considers the
// first 72 bytes, so longer inputs are truncated explicitly rather than
// silently by the library.
func hashPassword(password string) (string, error) {
	raw := []byte(password)
	if len(raw) > 72 {
		raw = raw[:72]
	}
	hash, err := bcrypt.GenerateFromPassword(raw, bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// checkPassword compares a password against a bcrypt hash.
func checkPassword(hash, password string) bool {
	raw := []byte(password)
	if len(raw) > 72 {
		raw = raw[:72]
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), raw) == nil
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// handleAuthRegister handles POST /api/auth/register.
func (s *Server) handleAuthRegister(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		WriteError(w, http.StatusBadRequest, "A valid email is required")
		return
	}
	if len(req.Password) < 8 {
		WriteError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Password hashing failed")
		WriteError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         "user",
	}

	if err := s.app.Store.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			WriteError(w, http.StatusConflict, "An account with this email already exists")
			return
		}
		s.logger.Error().Err(err).Msg("Failed to create user")
		WriteError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	token, err := signJWT(user, s.app.Config)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to sign token")
		WriteError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	WriteJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

// handleAuthLogin handles POST /api/auth/login.
func (s *Server) handleAuthLogin(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	user, err := s.app.Store.GetUserByEmail(r.Context(), req.Email)
	if err != nil || !checkPassword(user.PasswordHash, req.Password) {
		// Same response whether the email or the password is wrong.
		WriteError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := signJWT(user, s.app.Config)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to sign token")
		WriteError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	WriteJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

// handleAuthValidate handles POST /api/auth/validate. Returns the current
// user when the bearer token is valid.
func (s *Server) handleAuthValidate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	user, err := s.app.Store.GetUser(r.Context(), userID)
	if err != nil {
		w.Header().Set("WWW-Authenticate", "Bearer")
		WriteError(w, http.StatusUnauthorized, "User not found")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"valid": true,
		"user":  user,
	})
}
