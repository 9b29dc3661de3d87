// Package interfaces defines service contracts for Finsight
package interfaces

import (
	"context"

	"github.com/finsightlabs/finsight/internal/models"
)

// FinanceStore is the persistence boundary for all user-owned entities.
// Every read is scoped by userID; an entity owned by a different user is
// reported as models.ErrNotFound, indistinguishable from absence.
type FinanceStore interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// Accounts
	SaveAccount(ctx context.Context, account *models.Account) error
	GetAccount(ctx context.Context, userID, id string) (*models.Account, error)
	ListAccounts(ctx context.Context, userID string) ([]*models.Account, error)

	// Transactions
	SaveTransaction(ctx context.Context, txn *models.Transaction) error
	GetTransaction(ctx context.Context, userID, id string) (*models.Transaction, error)
	ListTransactions(ctx context.Context, userID string, filter models.TransactionFilter) ([]*models.Transaction, error)
	ListRecentTransactions(ctx context.Context, userID string, limit int) ([]*models.Transaction, error)

	// UpdateTransactionStatus enforces the lifecycle rule: only a pending
	// transaction may change status, and only to completed or rejected.
	UpdateTransactionStatus(ctx context.Context, userID, id, status string) (*models.Transaction, error)

	// Investment accounts
	SaveInvestmentAccount(ctx context.Context, account *models.InvestmentAccount) error
	GetInvestmentAccount(ctx context.Context, userID, id string) (*models.InvestmentAccount, error)
	ListInvestmentAccounts(ctx context.Context, userID string) ([]*models.InvestmentAccount, error)

	// Investments
	SaveInvestment(ctx context.Context, inv *models.Investment) error
	GetInvestment(ctx context.Context, userID, id string) (*models.Investment, error)
	ListInvestments(ctx context.Context, userID string) ([]*models.Investment, error)

	// UpdateInvestment rejects any write against a closed holding with
	// models.ErrInvestmentClosed before mutating the record.
	UpdateInvestment(ctx context.Context, userID, id string, update models.InvestmentUpdate) (*models.Investment, error)

	Close() error
}
