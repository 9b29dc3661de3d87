package models

// AccountBalance is the per-account output of the balance calculator.
// Balance accumulates every transaction with the account's sign rule;
// RecentCredits/RecentDebits are unsigned sums over the trailing 24 hours,
// split by the transaction's own type.
type AccountBalance struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	Balance        float64 `json:"balance"`
	NetWorthImpact float64 `json:"netWorthImpact"`
	RecentCredits  float64 `json:"recentCredits"`
	RecentDebits   float64 `json:"recentDebits"`
}

// InvestmentDetail is a holding joined with its resolved market price.
// ChangePercent is zero whenever the previous close is unavailable.
type InvestmentDetail struct {
	Investment
	CurrentPrice  float64 `json:"currentPrice"`
	PreviousClose float64 `json:"previousClose"`
	CurrentValue  float64 `json:"currentValue"`
	ChangePercent float64 `json:"changePercent"`
}

// DashboardSummary is the consolidated dashboard payload. Mover fields are
// explicit nulls when no account or holding qualifies, never omitted.
type DashboardSummary struct {
	TotalBankBalance     float64                  `json:"totalBankBalance"`
	TotalInvestmentValue float64                  `json:"totalInvestmentValue"`
	AccountBalances      []AccountBalance         `json:"accountBalances"`
	RecentTransactions   []TransactionWithAccount `json:"recentTransactions"`
	InvestmentDetails    []InvestmentDetail       `json:"investmentDetails"`
	TopGainer            *InvestmentDetail        `json:"topGainer"`
	TopLoser             *InvestmentDetail        `json:"topLoser"`
	TopAccountGainer     *AccountBalance          `json:"topAccountGainer"`
	TopAccountLoser      *AccountBalance          `json:"topAccountLoser"`
}
