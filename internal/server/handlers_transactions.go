package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/finsightlabs/finsight/internal/models"
)

const transactionDateLayout = "2006-01-02"

// handleTransactions handles GET and POST /api/transactions.
//
// GET supports page/limit pagination plus accountIds, types, startDate, and
// endDate filters. The end date is inclusive by day: endDate=2026-03-01
// includes everything created on that day. Each row carries the owning
// account's name.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.listTransactions(w, r, userID)
	case http.MethodPost:
		s.createTransaction(w, r, userID)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request, userID string) {
	filter := models.TransactionFilter{
		AccountIDs: QueryList(r, "accountIds"),
		Types:      QueryList(r, "types"),
	}

	if raw := r.URL.Query().Get("startDate"); raw != "" {
		t, err := time.Parse(transactionDateLayout, raw)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "startDate must be YYYY-MM-DD")
			return
		}
		filter.StartDate = t
	}
	if raw := r.URL.Query().Get("endDate"); raw != "" {
		t, err := time.Parse(transactionDateLayout, raw)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "endDate must be YYYY-MM-DD")
			return
		}
		// Inclusive by day: the filter boundary is exclusive, so move it
		// to the start of the next day.
		filter.EndDate = t.AddDate(0, 0, 1)
	}

	txns, err := s.app.Store.ListTransactions(r.Context(), userID, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list transactions")
		WriteError(w, http.StatusInternalServerError, "Failed to list transactions")
		return
	}

	page := QueryInt(r, "page", 1)
	limit := QueryInt(r, "limit", 20)
	total := len(txns)

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	pageTxns := txns[start:end]

	accounts, err := s.app.Store.ListAccounts(r.Context(), userID)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list accounts")
		WriteError(w, http.StatusInternalServerError, "Failed to list transactions")
		return
	}
	names := make(map[string]string, len(accounts))
	for _, a := range accounts {
		names[a.ID] = a.Name
	}

	rows := make([]models.TransactionWithAccount, 0, len(pageTxns))
	for _, txn := range pageTxns {
		rows = append(rows, models.TransactionWithAccount{
			Transaction: *txn,
			AccountName: names[txn.AccountID],
		})
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": rows,
		"total":        total,
		"page":         page,
		"limit":        limit,
	})
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request, userID string) {
	var req struct {
		AccountID   string  `json:"accountId"`
		Amount      float64 `json:"amount"`
		Type        string  `json:"type"`
		Description string  `json:"description"`
		Category    string  `json:"category"`
		Reference   string  `json:"reference"`
		Status      string  `json:"status"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	if req.Amount <= 0 {
		WriteError(w, http.StatusBadRequest, "Amount must be a positive number")
		return
	}
	if !models.ValidTransactionType(req.Type) {
		WriteError(w, http.StatusBadRequest, "Transaction type must be 'credit' or 'debit'")
		return
	}
	if req.Status == "" {
		req.Status = models.TransactionStatusPending
	}
	if !models.ValidTransactionStatus(req.Status) {
		WriteError(w, http.StatusBadRequest, "Transaction status must be 'pending', 'completed', or 'rejected'")
		return
	}

	// Ownership check on the referenced account.
	if _, err := s.app.Store.GetAccount(r.Context(), userID, req.AccountID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Account not found")
			return
		}
		s.logger.Error().Err(err).Msg("Failed to verify account")
		WriteError(w, http.StatusInternalServerError, "Failed to create transaction")
		return
	}

	txn := &models.Transaction{
		ID:          uuid.New().String(),
		UserID:      userID,
		AccountID:   req.AccountID,
		Amount:      req.Amount,
		Type:        req.Type,
		Description: req.Description,
		Category:    req.Category,
		Reference:   req.Reference,
		Status:      req.Status,
	}
	if err := s.app.Store.SaveTransaction(r.Context(), txn); err != nil {
		s.logger.Error().Err(err).Msg("Failed to create transaction")
		WriteError(w, http.StatusInternalServerError, "Failed to create transaction")
		return
	}
	WriteJSON(w, http.StatusCreated, txn)
}

// handleTransactionByID handles GET and PUT /api/transactions/{id}. PUT only
// changes the status, and only pending transactions may move, to completed
// or rejected.
func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id := PathParam(r, "/api/transactions/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Transaction id is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		txn, err := s.app.Store.GetTransaction(r.Context(), userID, id)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				WriteError(w, http.StatusNotFound, "Transaction not found")
				return
			}
			s.logger.Error().Err(err).Msg("Failed to get transaction")
			WriteError(w, http.StatusInternalServerError, "Failed to get transaction")
			return
		}
		WriteJSON(w, http.StatusOK, txn)

	case http.MethodPut:
		var req struct {
			Status string `json:"status"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}

		txn, err := s.app.Store.UpdateTransactionStatus(r.Context(), userID, id, req.Status)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrNotFound):
				WriteError(w, http.StatusNotFound, "Transaction not found")
			case errors.Is(err, models.ErrInvalidStatusTransition):
				WriteError(w, http.StatusBadRequest, "Only pending transactions can move to completed or rejected")
			default:
				s.logger.Error().Err(err).Msg("Failed to update transaction")
				WriteError(w, http.StatusInternalServerError, "Failed to update transaction")
			}
			return
		}
		WriteJSON(w, http.StatusOK, txn)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut)
	}
}
