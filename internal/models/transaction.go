package models

import "time"

// Transaction types and statuses.
const (
	TransactionTypeCredit = "credit"
	TransactionTypeDebit  = "debit"

	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusRejected  = "rejected"
)

// Transaction is a single credit or debit against an account. Amount is
// always positive; the account type decides how it moves the balance.
type Transaction struct {
	ID          string    `json:"id" badgerhold:"key"`
	UserID      string    `json:"userId" badgerhold:"index"`
	AccountID   string    `json:"accountId" badgerhold:"index"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Reference   string    `json:"reference,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ValidTransactionType reports whether t is a recognised transaction type.
func ValidTransactionType(t string) bool {
	return t == TransactionTypeCredit || t == TransactionTypeDebit
}

// ValidTransactionStatus reports whether s is a recognised status.
func ValidTransactionStatus(s string) bool {
	switch s {
	case TransactionStatusPending, TransactionStatusCompleted, TransactionStatusRejected:
		return true
	}
	return false
}

// TransactionWithAccount decorates a transaction with its account's display
// name for list and dashboard responses.
type TransactionWithAccount struct {
	Transaction
	AccountName string `json:"accountName"`
}

// TransactionFilter narrows transaction list queries. Zero values mean
// "no constraint". EndDate is exclusive; callers wanting an inclusive
// calendar day add one day before querying.
type TransactionFilter struct {
	AccountIDs []string
	Types      []string
	StartDate  time.Time
	EndDate    time.Time
}
