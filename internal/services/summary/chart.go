package summary

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoHoldings is returned when the user has nothing with a nonzero value
// to chart.
var ErrNoHoldings = errors.New("no valued holdings to chart")

var allocationPalette = []string{
	"2563eb", // blue-600
	"16a34a", // green-600
	"d97706", // amber-600
	"dc2626", // red-600
	"7c3aed", // violet-600
	"0891b2", // cyan-600
	"db2777", // pink-600
	"65a30d", // lime-600
}

// RenderAllocationChart renders a PNG pie chart of the user's portfolio split
// by asset. Slices are the current value per asset name, largest first.
func (s *Service) RenderAllocationChart(ctx context.Context, userID string) ([]byte, error) {
	summary, err := s.BuildSummary(ctx, userID)
	if err != nil {
		return nil, err
	}

	byAsset := make(map[string]float64)
	for _, detail := range summary.InvestmentDetails {
		if detail.CurrentValue > 0 {
			byAsset[detail.AssetName] += detail.CurrentValue
		}
	}
	if len(byAsset) == 0 {
		return nil, ErrNoHoldings
	}

	names := make([]string, 0, len(byAsset))
	for name := range byAsset {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if byAsset[names[i]] != byAsset[names[j]] {
			return byAsset[names[i]] > byAsset[names[j]]
		}
		return names[i] < names[j]
	})

	values := make([]chart.Value, 0, len(names))
	for i, name := range names {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s $%.0f", name, byAsset[name]),
			Value: byAsset[name],
			Style: chart.Style{
				FillColor: drawing.ColorFromHex(allocationPalette[i%len(allocationPalette)]),
			},
		})
	}

	graph := chart.PieChart{
		Title:  "Portfolio Allocation",
		Width:  600,
		Height: 600,
		Values: values,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}
