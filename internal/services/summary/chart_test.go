package summary

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsightlabs/finsight/internal/models"
)

var pngMagic = []byte{0x89, 0x50, 0x4E, 0x47}

func TestRenderAllocationChart(t *testing.T) {
	store := &mockStore{
		investments: []*models.Investment{
			holding("i1", "BTC", 1),
			holding("i2", "ETH", 10),
		},
	}
	market := newMockMarket()
	market.quotes["BTC"] = &models.PriceQuote{Symbol: "BTC", CurrentPrice: 60000, PreviousClose: 60000}
	market.quotes["ETH"] = &models.PriceQuote{Symbol: "ETH", CurrentPrice: 3000, PreviousClose: 3000}

	svc := newTestService(store, market)
	png, err := svc.RenderAllocationChart(context.Background(), "u1")
	require.NoError(t, err)
	require.NotEmpty(t, png)
	assert.True(t, bytes.HasPrefix(png, pngMagic), "output should be a PNG")
}

func TestRenderAllocationChartNoHoldings(t *testing.T) {
	svc := newTestService(&mockStore{}, newMockMarket())

	_, err := svc.RenderAllocationChart(context.Background(), "u1")
	require.ErrorIs(t, err, ErrNoHoldings)
}

func TestRenderAllocationChartZeroPrices(t *testing.T) {
	// Holdings whose price lookup failed have zero value and nothing to
	// chart.
	store := &mockStore{
		investments: []*models.Investment{holding("i1", "MYSTERY", 5)},
	}
	svc := newTestService(store, newMockMarket())

	_, err := svc.RenderAllocationChart(context.Background(), "u1")
	require.ErrorIs(t, err, ErrNoHoldings)
}
