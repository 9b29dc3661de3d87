package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type aiAnalysisResponse struct {
	Success      bool   `json:"success"`
	AnalysisText string `json:"analysisText"`
}

// handleAIDashboardSummary handles POST /api/ai/dashboard-summary. The
// client sends its dashboard summary JSON plus a free-text question; the
// response is markdown analysis text.
func (s *Server) handleAIDashboardSummary(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	if _, ok := requireUser(w, r); !ok {
		return
	}

	if s.app.GeminiClient == nil {
		WriteError(w, http.StatusServiceUnavailable, "AI analysis is not configured")
		return
	}

	var req struct {
		SummaryData  json.RawMessage `json:"summaryData"`
		UserQuestion string          `json:"userQuestion"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if len(req.SummaryData) == 0 {
		WriteError(w, http.StatusBadRequest, "summaryData is required")
		return
	}

	question := strings.TrimSpace(req.UserQuestion)
	if question == "" {
		question = "Give me a concise overview of my financial position."
	}

	prompt := fmt.Sprintf(`You are a personal finance assistant. Below is a JSON snapshot of the user's dashboard: bank account balances, investment holdings with live prices, and recent transactions.

Dashboard data:
%s

User question: %s

Answer in concise markdown. Reference concrete figures from the data. Do not invent numbers that are not present.`, string(req.SummaryData), question)

	text, err := s.app.GeminiClient.GenerateContent(r.Context(), prompt)
	if err != nil {
		s.logger.Error().Err(err).Msg("AI dashboard summary failed")
		WriteError(w, http.StatusBadGateway, "AI analysis failed")
		return
	}

	WriteJSON(w, http.StatusOK, aiAnalysisResponse{Success: true, AnalysisText: text})
}

// handleAIFinancialAnalysis handles POST /api/ai/financial-analysis —
// free-form analysis over a transaction or investment subset.
func (s *Server) handleAIFinancialAnalysis(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	if _, ok := requireUser(w, r); !ok {
		return
	}

	if s.app.GeminiClient == nil {
		WriteError(w, http.StatusServiceUnavailable, "AI analysis is not configured")
		return
	}

	var req struct {
		Transactions json.RawMessage `json:"transactions"`
		Investments  json.RawMessage `json:"investments"`
		UserQuestion string          `json:"userQuestion"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if len(req.Transactions) == 0 && len(req.Investments) == 0 {
		WriteError(w, http.StatusBadRequest, "transactions or investments data is required")
		return
	}

	question := strings.TrimSpace(req.UserQuestion)
	if question == "" {
		question = "What patterns do you see in this data?"
	}

	var b strings.Builder
	b.WriteString("You are a personal finance assistant. Analyse the user's financial records below.\n\n")
	if len(req.Transactions) > 0 {
		fmt.Fprintf(&b, "Transactions:\n%s\n\n", string(req.Transactions))
	}
	if len(req.Investments) > 0 {
		fmt.Fprintf(&b, "Investments:\n%s\n\n", string(req.Investments))
	}
	fmt.Fprintf(&b, "User question: %s\n\nAnswer in concise markdown. Reference concrete figures from the data. Do not invent numbers that are not present.", question)

	text, err := s.app.GeminiClient.GenerateContent(r.Context(), b.String())
	if err != nil {
		s.logger.Error().Err(err).Msg("AI financial analysis failed")
		WriteError(w, http.StatusBadGateway, "AI analysis failed")
		return
	}

	WriteJSON(w, http.StatusOK, aiAnalysisResponse{Success: true, AnalysisText: text})
}
