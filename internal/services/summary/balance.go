package summary

import (
	"time"

	"github.com/finsightlabs/finsight/internal/models"
)

const recentWindow = 24 * time.Hour

// ComputeAccountSummary derives an account's balance figures from its
// transactions. The balance is never stored; it is always recomputed here.
//
// Sign convention: for a debit (asset) account, credits increase the balance
// and debits decrease it. For a credit (liability) account the signs invert,
// so the balance tracks the amount owed.
func ComputeAccountSummary(account *models.Account, transactions []*models.Transaction, now time.Time) models.AccountBalance {
	cutoff := now.Add(-recentWindow)

	var balance, recentCredits, recentDebits float64
	for _, txn := range transactions {
		if txn.AccountID != account.ID {
			continue
		}

		// All statuses contribute, pending included.
		switch account.Type {
		case models.AccountTypeCredit:
			if txn.Type == models.TransactionTypeDebit {
				balance += txn.Amount
			} else {
				balance -= txn.Amount
			}
		default:
			if txn.Type == models.TransactionTypeCredit {
				balance += txn.Amount
			} else {
				balance -= txn.Amount
			}
		}

		// Strictly inside the trailing window.
		if txn.CreatedAt.After(cutoff) {
			if txn.Type == models.TransactionTypeCredit {
				recentCredits += txn.Amount
			} else {
				recentDebits += txn.Amount
			}
		}
	}

	netWorthImpact := balance
	if account.Type == models.AccountTypeCredit {
		netWorthImpact = -balance
	}

	return models.AccountBalance{
		ID:             account.ID,
		Name:           account.Name,
		Type:           account.Type,
		Balance:        balance,
		NetWorthImpact: netWorthImpact,
		RecentCredits:  recentCredits,
		RecentDebits:   recentDebits,
	}
}

// ComputeAccountSummaries runs the balance calculation for every account and
// returns the per-account figures plus the total bank balance, which is the
// sum of net worth impacts.
func ComputeAccountSummaries(accounts []*models.Account, transactions []*models.Transaction, now time.Time) ([]models.AccountBalance, float64) {
	balances := make([]models.AccountBalance, 0, len(accounts))
	var total float64
	for _, account := range accounts {
		summary := ComputeAccountSummary(account, transactions, now)
		balances = append(balances, summary)
		total += summary.NetWorthImpact
	}
	return balances, total
}
