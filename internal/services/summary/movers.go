package summary

import (
	"github.com/finsightlabs/finsight/internal/models"
)

// Movers holds the dashboard highlight entries. A nil field means there is no
// qualifying mover and serializes as an explicit JSON null.
type Movers struct {
	TopAccountGainer *models.AccountBalance
	TopAccountLoser  *models.AccountBalance
	TopGainer        *models.InvestmentDetail
	TopLoser         *models.InvestmentDetail
}

// RankMovers selects the top gaining and losing account and investment.
// Accounts rank by recent credit/debit volume, investments by percent change.
// Ties resolve to the first occurrence in input order.
func RankMovers(balances []models.AccountBalance, details []models.InvestmentDetail) Movers {
	var movers Movers

	for i := range balances {
		b := &balances[i]
		if b.RecentCredits > 0 && (movers.TopAccountGainer == nil || b.RecentCredits > movers.TopAccountGainer.RecentCredits) {
			movers.TopAccountGainer = b
		}
		if b.RecentDebits > 0 && (movers.TopAccountLoser == nil || b.RecentDebits > movers.TopAccountLoser.RecentDebits) {
			movers.TopAccountLoser = b
		}
	}

	for i := range details {
		d := &details[i]
		if d.ChangePercent > 0 && (movers.TopGainer == nil || d.ChangePercent > movers.TopGainer.ChangePercent) {
			movers.TopGainer = d
		}
		if d.ChangePercent < 0 && (movers.TopLoser == nil || d.ChangePercent < movers.TopLoser.ChangePercent) {
			movers.TopLoser = d
		}
	}

	return movers
}
