// Package interfaces defines service contracts for Finsight
package interfaces

import (
	"context"

	"github.com/finsightlabs/finsight/internal/models"
)

// MarketClient resolves a ticker symbol to a live price quote.
type MarketClient interface {
	// GetPrice retrieves the current price and previous close for a symbol.
	// A fetch failure is an error here; dashboard aggregation absorbs it
	// into a zero-valued quote.
	GetPrice(ctx context.Context, symbol string) (*models.PriceQuote, error)
}

// AIClient generates natural-language analysis text.
type AIClient interface {
	// GenerateContent generates markdown analysis from a prompt.
	GenerateContent(ctx context.Context, prompt string) (string, error)
}
