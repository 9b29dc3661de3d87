package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/finsightlabs/finsight/internal/models"
)

// handleAccounts handles GET and POST /api/accounts.
func (s *Server) handleAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		accounts, err := s.app.Store.ListAccounts(r.Context(), userID)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to list accounts")
			WriteError(w, http.StatusInternalServerError, "Failed to list accounts")
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"accounts": accounts})

	case http.MethodPost:
		var req struct {
			Name        string `json:"name"`
			Type        string `json:"type"`
			Currency    string `json:"currency"`
			Description string `json:"description"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			WriteError(w, http.StatusBadRequest, "Account name is required")
			return
		}
		if !models.ValidAccountType(req.Type) {
			WriteError(w, http.StatusBadRequest, "Account type must be 'debit' or 'credit'")
			return
		}

		account := &models.Account{
			ID:          uuid.New().String(),
			UserID:      userID,
			Name:        req.Name,
			Type:        req.Type,
			Currency:    req.Currency,
			Description: req.Description,
		}
		if err := s.app.Store.SaveAccount(r.Context(), account); err != nil {
			s.logger.Error().Err(err).Msg("Failed to create account")
			WriteError(w, http.StatusInternalServerError, "Failed to create account")
			return
		}
		WriteJSON(w, http.StatusCreated, account)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleAccountByID handles GET and PUT /api/accounts/{id}. PUT updates
// name, description, and currency; the account type is fixed at creation.
func (s *Server) handleAccountByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id := PathParam(r, "/api/accounts/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Account id is required")
		return
	}

	account, err := s.app.Store.GetAccount(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Account not found")
			return
		}
		s.logger.Error().Err(err).Msg("Failed to get account")
		WriteError(w, http.StatusInternalServerError, "Failed to get account")
		return
	}

	switch r.Method {
	case http.MethodGet:
		WriteJSON(w, http.StatusOK, account)

	case http.MethodPut:
		var req struct {
			Name        *string `json:"name"`
			Currency    *string `json:"currency"`
			Description *string `json:"description"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				WriteError(w, http.StatusBadRequest, "Account name cannot be empty")
				return
			}
			account.Name = name
		}
		if req.Currency != nil {
			account.Currency = *req.Currency
		}
		if req.Description != nil {
			account.Description = *req.Description
		}

		if err := s.app.Store.SaveAccount(r.Context(), account); err != nil {
			s.logger.Error().Err(err).Msg("Failed to update account")
			WriteError(w, http.StatusInternalServerError, "Failed to update account")
			return
		}
		WriteJSON(w, http.StatusOK, account)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut)
	}
}
