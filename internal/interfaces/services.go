// Package interfaces defines service contracts for Finsight
package interfaces

import (
	"context"

	"github.com/finsightlabs/finsight/internal/models"
)

// SummaryService computes the consolidated dashboard view for a user.
type SummaryService interface {
	// BuildSummary assembles balances, portfolio valuation, movers, and
	// recent activity for the given user. Individual price-fetch failures
	// degrade those holdings to zero value rather than failing the call.
	BuildSummary(ctx context.Context, userID string) (*models.DashboardSummary, error)

	// RenderAllocationChart renders a PNG pie chart of the user's current
	// holding values grouped by asset name.
	RenderAllocationChart(ctx context.Context, userID string) ([]byte, error)
}
