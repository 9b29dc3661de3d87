package server

import (
	"net/http"
	"time"

	"github.com/finsightlabs/finsight/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/shutdown", s.handleShutdown)

	// Auth
	mux.HandleFunc("/api/auth/register", s.handleAuthRegister)
	mux.HandleFunc("/api/auth/login", s.handleAuthLogin)
	mux.HandleFunc("/api/auth/validate", s.handleAuthValidate)

	// Accounts
	mux.HandleFunc("/api/accounts/", s.handleAccountByID)
	mux.HandleFunc("/api/accounts", s.handleAccounts)

	// Transactions
	mux.HandleFunc("/api/transactions/", s.handleTransactionByID)
	mux.HandleFunc("/api/transactions", s.handleTransactions)

	// Investments
	mux.HandleFunc("/api/investments/accounts/", s.handleInvestmentAccountByID)
	mux.HandleFunc("/api/investments/accounts", s.handleInvestmentAccounts)
	mux.HandleFunc("/api/investments/price", s.handleInvestmentPrice)
	mux.HandleFunc("/api/investments/", s.handleInvestmentByID)
	mux.HandleFunc("/api/investments", s.handleInvestments)

	// Dashboard
	mux.HandleFunc("/api/dashboard/summary", s.handleDashboardSummary)
	mux.HandleFunc("/api/dashboard/allocation", s.handleDashboardAllocation)

	// AI analysis
	mux.HandleFunc("/api/ai/dashboard-summary", s.handleAIDashboardSummary)
	mux.HandleFunc("/api/ai/financial-analysis", s.handleAIFinancialAnalysis)
}

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

// handleShutdown handles POST /api/shutdown (dev mode only).
func (s *Server) handleShutdown(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if s.app.Config.IsProduction() {
		WriteError(w, http.StatusForbidden, "Shutdown endpoint disabled in production")
		return
	}

	s.logger.Info().Msg("Shutdown requested via HTTP endpoint")

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Shutting down gracefully...\n"))

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	if s.shutdownChan != nil {
		go func() {
			time.Sleep(100 * time.Millisecond)
			s.shutdownChan <- struct{}{}
		}()
	}
}
