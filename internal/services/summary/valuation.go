package summary

import (
	"github.com/finsightlabs/finsight/internal/models"
)

// ValuateHoldings combines holdings with resolved prices into per-holding
// valuations and a portfolio total. Amount is a quantity of the asset, not a
// currency figure.
func ValuateHoldings(investments []*models.Investment, quotes map[string]models.PriceQuote) ([]models.InvestmentDetail, float64) {
	details := make([]models.InvestmentDetail, 0, len(investments))
	var total float64

	for _, inv := range investments {
		quote := quotes[inv.AssetName]
		currentValue := quote.CurrentPrice * inv.Amount

		var changePercent float64
		if quote.PreviousClose > 0 {
			changePercent = (quote.CurrentPrice - quote.PreviousClose) / quote.PreviousClose * 100
		}

		details = append(details, models.InvestmentDetail{
			Investment:    *inv,
			CurrentPrice:  quote.CurrentPrice,
			PreviousClose: quote.PreviousClose,
			CurrentValue:  currentValue,
			ChangePercent: changePercent,
		})
		total += currentValue
	}

	return details, total
}
