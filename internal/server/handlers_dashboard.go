package server

import (
	"errors"
	"net/http"

	"github.com/finsightlabs/finsight/internal/services/summary"
)

// handleDashboardSummary handles GET /api/dashboard/summary.
func (s *Server) handleDashboardSummary(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	result, err := s.app.SummaryService.BuildSummary(r.Context(), userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to build dashboard summary")
		WriteError(w, http.StatusInternalServerError, "Failed to build dashboard summary")
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// handleDashboardAllocation handles GET /api/dashboard/allocation — a PNG
// pie chart of portfolio value by asset.
func (s *Server) handleDashboardAllocation(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	png, err := s.app.SummaryService.RenderAllocationChart(r.Context(), userID)
	if err != nil {
		if errors.Is(err, summary.ErrNoHoldings) {
			WriteError(w, http.StatusNotFound, "No valued holdings to chart")
			return
		}
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to render allocation chart")
		WriteError(w, http.StatusInternalServerError, "Failed to render allocation chart")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
