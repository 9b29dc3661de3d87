package models

import "time"

// Account types. A debit account is asset-style (credits increase value);
// a credit account is liability-style (debits increase the owed balance).
const (
	AccountTypeDebit  = "debit"
	AccountTypeCredit = "credit"
)

// Account is a bank-style account. Balance is never stored — it is always
// derived from the account's transactions.
type Account struct {
	ID          string    `json:"id" badgerhold:"key"`
	UserID      string    `json:"userId" badgerhold:"index"`
	Name        string    `json:"name"`
	Type        string    `json:"type"` // immutable after creation
	Currency    string    `json:"currency,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ValidAccountType reports whether t is a recognised account type.
func ValidAccountType(t string) bool {
	return t == AccountTypeDebit || t == AccountTypeCredit
}
