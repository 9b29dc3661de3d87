package models

import "time"

// Asset types and investment statuses.
const (
	AssetTypeStock  = "Stock"
	AssetTypeBond   = "Bond"
	AssetTypeCrypto = "Crypto"

	InvestmentStatusActive = "active"
	InvestmentStatusClosed = "closed"
)

// InvestmentAccount groups holdings. It carries no derived balance of its
// own — portfolio value is computed from the holdings it contains.
type InvestmentAccount struct {
	ID          string    `json:"id" badgerhold:"key"`
	UserID      string    `json:"userId" badgerhold:"index"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Currency    string    `json:"currency,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Investment is a quantity of a named asset held under an investment
// account. Amount is a quantity, not a currency value. Once Status is
// closed the holding is immutable.
type Investment struct {
	ID                  string    `json:"id" badgerhold:"key"`
	UserID              string    `json:"userId" badgerhold:"index"`
	InvestmentAccountID string    `json:"investmentAccountId" badgerhold:"index"`
	AssetType           string    `json:"assetType"`
	AssetName           string    `json:"assetName"`
	Amount              float64   `json:"amount"`
	Description         string    `json:"description,omitempty"`
	Reference           string    `json:"reference,omitempty"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// ValidAssetType reports whether t is a recognised asset type.
func ValidAssetType(t string) bool {
	return t == AssetTypeStock || t == AssetTypeBond || t == AssetTypeCrypto
}

// ValidInvestmentStatus reports whether s is a recognised holding status.
func ValidInvestmentStatus(s string) bool {
	return s == InvestmentStatusActive || s == InvestmentStatusClosed
}

// InvestmentUpdate carries the mutable holding fields. Nil pointers leave
// the stored value unchanged.
type InvestmentUpdate struct {
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Reference   *string `json:"reference"`
}

// InvestmentWithAccount decorates a holding with its parent account name.
type InvestmentWithAccount struct {
	Investment
	AccountName string `json:"accountName"`
}
