package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/finsightlabs/finsight/internal/clients/yahoo"
	"github.com/finsightlabs/finsight/internal/models"
)

// handleInvestmentAccounts handles GET and POST /api/investments/accounts.
func (s *Server) handleInvestmentAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		accounts, err := s.app.Store.ListInvestmentAccounts(r.Context(), userID)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to list investment accounts")
			WriteError(w, http.StatusInternalServerError, "Failed to list investment accounts")
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"accounts": accounts})

	case http.MethodPost:
		var req struct {
			Name        string `json:"name"`
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

		account := &models.InvestmentAccount{
			ID:          uuid.New().String(),
			UserID:      userID,
			Name:        req.Name,
			Currency:    req.Currency,
			Description: req.Description,
		}
		if err := s.app.Store.SaveInvestmentAccount(r.Context(), account); err != nil {
			s.logger.Error().Err(err).Msg("Failed to create investment account")
			WriteError(w, http.StatusInternalServerError, "Failed to create investment account")
			return
		}
		WriteJSON(w, http.StatusCreated, account)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleInvestmentAccountByID handles GET and PUT /api/investments/accounts/{id}.
func (s *Server) handleInvestmentAccountByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id := PathParam(r, "/api/investments/accounts/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Investment account id is required")
		return
	}

	account, err := s.app.Store.GetInvestmentAccount(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Investment account not found")
			return
		}
		s.logger.Error().Err(err).Msg("Failed to get investment account")
		WriteError(w, http.StatusInternalServerError, "Failed to get investment account")
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

		if err := s.app.Store.SaveInvestmentAccount(r.Context(), account); err != nil {
			s.logger.Error().Err(err).Msg("Failed to update investment account")
			WriteError(w, http.StatusInternalServerError, "Failed to update investment account")
			return
		}
		WriteJSON(w, http.StatusOK, account)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut)
	}
}

// handleInvestments handles GET and POST /api/investments.
func (s *Server) handleInvestments(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		investments, err := s.app.Store.ListInvestments(r.Context(), userID)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to list investments")
			WriteError(w, http.StatusInternalServerError, "Failed to list investments")
			return
		}

		accounts, err := s.app.Store.ListInvestmentAccounts(r.Context(), userID)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to list investment accounts")
			WriteError(w, http.StatusInternalServerError, "Failed to list investments")
			return
		}
		names := make(map[string]string, len(accounts))
		for _, a := range accounts {
			names[a.ID] = a.Name
		}

		rows := make([]models.InvestmentWithAccount, 0, len(investments))
		for _, inv := range investments {
			rows = append(rows, models.InvestmentWithAccount{
				Investment:  *inv,
				AccountName: names[inv.InvestmentAccountID],
			})
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"investments": rows})

	case http.MethodPost:
		var req struct {
			InvestmentAccountID string  `json:"investmentAccountId"`
			AssetType           string  `json:"assetType"`
			AssetName           string  `json:"assetName"`
			Amount              float64 `json:"amount"`
			Description         string  `json:"description"`
			Reference           string  `json:"reference"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}

		req.AssetName = strings.ToUpper(strings.TrimSpace(req.AssetName))
		if req.AssetName == "" {
			WriteError(w, http.StatusBadRequest, "Asset name is required")
			return
		}
		if !models.ValidAssetType(req.AssetType) {
			WriteError(w, http.StatusBadRequest, "Asset type must be 'stock', 'bond', or 'crypto'")
			return
		}
		if req.Amount <= 0 {
			WriteError(w, http.StatusBadRequest, "Amount must be a positive number")
			return
		}

		// Ownership check on the parent account.
		if _, err := s.app.Store.GetInvestmentAccount(r.Context(), userID, req.InvestmentAccountID); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				WriteError(w, http.StatusNotFound, "Investment account not found")
				return
			}
			s.logger.Error().Err(err).Msg("Failed to verify investment account")
			WriteError(w, http.StatusInternalServerError, "Failed to create investment")
			return
		}

		inv := &models.Investment{
			ID:                  uuid.New().String(),
			UserID:              userID,
			InvestmentAccountID: req.InvestmentAccountID,
			AssetType:           req.AssetType,
			AssetName:           req.AssetName,
			Amount:              req.Amount,
			Description:         req.Description,
			Reference:           req.Reference,
			Status:              models.InvestmentStatusActive,
		}
		if err := s.app.Store.SaveInvestment(r.Context(), inv); err != nil {
			s.logger.Error().Err(err).Msg("Failed to create investment")
			WriteError(w, http.StatusInternalServerError, "Failed to create investment")
			return
		}
		WriteJSON(w, http.StatusCreated, inv)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleInvestmentByID handles GET and PUT /api/investments/{id}. A closed
// holding rejects every update with 403.
func (s *Server) handleInvestmentByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id := PathParam(r, "/api/investments/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Investment id is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		inv, err := s.app.Store.GetInvestment(r.Context(), userID, id)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				WriteError(w, http.StatusNotFound, "Investment not found")
				return
			}
			s.logger.Error().Err(err).Msg("Failed to get investment")
			WriteError(w, http.StatusInternalServerError, "Failed to get investment")
			return
		}
		WriteJSON(w, http.StatusOK, inv)

	case http.MethodPut:
		var req models.InvestmentUpdate
		if !DecodeJSON(w, r, &req) {
			return
		}

		inv, err := s.app.Store.UpdateInvestment(r.Context(), userID, id, req)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrNotFound):
				WriteError(w, http.StatusNotFound, "Investment not found")
			case errors.Is(err, models.ErrInvestmentClosed):
				WriteError(w, http.StatusForbidden, "Closed investments cannot be modified")
			default:
				s.logger.Error().Err(err).Msg("Failed to update investment")
				WriteError(w, http.StatusInternalServerError, "Failed to update investment")
			}
			return
		}
		WriteJSON(w, http.StatusOK, inv)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut)
	}
}

// handleInvestmentPrice handles GET /api/investments/price?assetName=X.
// Unlike the dashboard summary, this surfaces lookup failures to the caller.
func (s *Server) handleInvestmentPrice(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	if _, ok := requireUser(w, r); !ok {
		return
	}

	assetName := strings.TrimSpace(r.URL.Query().Get("assetName"))
	if assetName == "" {
		WriteError(w, http.StatusBadRequest, "assetName query parameter is required")
		return
	}

	quote, err := s.app.MarketClient.GetPrice(r.Context(), assetName)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Price not found for "+assetName)
			return
		}
		var apiErr *yahoo.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			WriteError(w, http.StatusNotFound, "Price not found for "+assetName)
			return
		}
		s.logger.Warn().Err(err).Str("symbol", assetName).Msg("Price lookup failed")
		WriteError(w, http.StatusBadGateway, "Failed to fetch price for "+assetName)
		return
	}

	WriteJSON(w, http.StatusOK, quote)
}
