// Package financedb implements FinanceStore using BadgerHold.
// All entities are keyed by uuid and scoped by owning user; a read of an
// entity owned by someone else reports models.ErrNotFound.
package financedb

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/finsightlabs/finsight/internal/common"
	"github.com/finsightlabs/finsight/internal/interfaces"
	"github.com/finsightlabs/finsight/internal/models"
)

// Store implements interfaces.FinanceStore using BadgerHold.
type Store struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// NewStore creates a new FinanceStore backed by BadgerHold.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create financedb path %s: %w", path, err)
	}
	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil
	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open financedb at %s: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("FinanceDB opened")
	return &Store{db: db, logger: logger}, nil
}

// --- Users ---

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	email := strings.ToLower(strings.TrimSpace(user.Email))
	var existing []models.User
	if err := s.db.Find(&existing, badgerhold.Where("Email").Eq(email)); err == nil && len(existing) > 0 {
		return fmt.Errorf("user with email '%s': %w", email, models.ErrDuplicateEmail)
	}

	now := time.Now()
	user.Email = email
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := s.db.Insert(user.ID, user); err != nil {
		return fmt.Errorf("failed to create user '%s': %w", user.ID, err)
	}
	s.logger.Debug().Str("user_id", user.ID).Msg("User created")
	return nil
}

func (s *Store) GetUser(_ context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := s.db.Get(userID, &user); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("user '%s': %w", userID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user '%s': %w", userID, err)
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var users []models.User
	if err := s.db.Find(&users, badgerhold.Where("Email").Eq(email)); err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("user with email '%s': %w", email, models.ErrNotFound)
	}
	return &users[0], nil
}

// --- Accounts ---

func (s *Store) SaveAccount(_ context.Context, account *models.Account) error {
	now := time.Now()
	var existing models.Account
	if err := s.db.Get(account.ID, &existing); err == nil {
		account.CreatedAt = existing.CreatedAt
		// Account type never changes after creation.
		account.Type = existing.Type
	} else if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now

	if err := s.db.Upsert(account.ID, account); err != nil {
		return fmt.Errorf("failed to save account '%s': %w", account.ID, err)
	}
	return nil
}

func (s *Store) GetAccount(_ context.Context, userID, id string) (*models.Account, error) {
	var account models.Account
	if err := s.db.Get(id, &account); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("account '%s': %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get account '%s': %w", id, err)
	}
	if account.UserID != userID {
		return nil, fmt.Errorf("account '%s': %w", id, models.ErrNotFound)
	}
	return &account, nil
}

func (s *Store) ListAccounts(_ context.Context, userID string) ([]*models.Account, error) {
	var accounts []models.Account
	if err := s.db.Find(&accounts, badgerhold.Where("UserID").Eq(userID).Index("UserID")); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].CreatedAt.Before(accounts[j].CreatedAt)
	})
	result := make([]*models.Account, len(accounts))
	for i := range accounts {
		result[i] = &accounts[i]
	}
	return result, nil
}

// --- Transactions ---

func (s *Store) SaveTransaction(_ context.Context, txn *models.Transaction) error {
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now()
	}
	if err := s.db.Upsert(txn.ID, txn); err != nil {
		return fmt.Errorf("failed to save transaction '%s': %w", txn.ID, err)
	}
	return nil
}

func (s *Store) GetTransaction(_ context.Context, userID, id string) (*models.Transaction, error) {
	var txn models.Transaction
	if err := s.db.Get(id, &txn); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("transaction '%s': %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get transaction '%s': %w", id, err)
	}
	if txn.UserID != userID {
		return nil, fmt.Errorf("transaction '%s': %w", id, models.ErrNotFound)
	}
	return &txn, nil
}

func (s *Store) ListTransactions(_ context.Context, userID string, filter models.TransactionFilter) ([]*models.Transaction, error) {
	var txns []models.Transaction
	if err := s.db.Find(&txns, badgerhold.Where("UserID").Eq(userID).Index("UserID")); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	var result []*models.Transaction
	for i := range txns {
		if !matchesFilter(&txns[i], filter) {
			continue
		}
		result = append(result, &txns[i])
	}

	// Newest first
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *Store) ListRecentTransactions(ctx context.Context, userID string, limit int) ([]*models.Transaction, error) {
	txns, err := s.ListTransactions(ctx, userID, models.TransactionFilter{})
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(txns) > limit {
		txns = txns[:limit]
	}
	return txns, nil
}

func (s *Store) UpdateTransactionStatus(ctx context.Context, userID, id, status string) (*models.Transaction, error) {
	txn, err := s.GetTransaction(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	// Lifecycle rule: only pending transactions move, and only to
	// completed or rejected.
	if txn.Status != models.TransactionStatusPending {
		return nil, fmt.Errorf("transaction '%s' is %s: %w", id, txn.Status, models.ErrInvalidStatusTransition)
	}
	if status != models.TransactionStatusCompleted && status != models.TransactionStatusRejected {
		return nil, fmt.Errorf("status '%s' not allowed: %w", status, models.ErrInvalidStatusTransition)
	}

	txn.Status = status
	if err := s.db.Upsert(txn.ID, txn); err != nil {
		return nil, fmt.Errorf("failed to update transaction '%s': %w", id, err)
	}
	return txn, nil
}

func matchesFilter(txn *models.Transaction, filter models.TransactionFilter) bool {
	if len(filter.AccountIDs) > 0 && !containsString(filter.AccountIDs, txn.AccountID) {
		return false
	}
	if len(filter.Types) > 0 && !containsString(filter.Types, txn.Type) {
		return false
	}
	if !filter.StartDate.IsZero() && txn.CreatedAt.Before(filter.StartDate) {
		return false
	}
	if !filter.EndDate.IsZero() && !txn.CreatedAt.Before(filter.EndDate) {
		return false
	}
	return true
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// --- Investment accounts ---

func (s *Store) SaveInvestmentAccount(_ context.Context, account *models.InvestmentAccount) error {
	now := time.Now()
	var existing models.InvestmentAccount
	if err := s.db.Get(account.ID, &existing); err == nil {
		account.CreatedAt = existing.CreatedAt
	} else if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now

	if err := s.db.Upsert(account.ID, account); err != nil {
		return fmt.Errorf("failed to save investment account '%s': %w", account.ID, err)
	}
	return nil
}

func (s *Store) GetInvestmentAccount(_ context.Context, userID, id string) (*models.InvestmentAccount, error) {
	var account models.InvestmentAccount
	if err := s.db.Get(id, &account); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("investment account '%s': %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get investment account '%s': %w", id, err)
	}
	if account.UserID != userID {
		return nil, fmt.Errorf("investment account '%s': %w", id, models.ErrNotFound)
	}
	return &account, nil
}

func (s *Store) ListInvestmentAccounts(_ context.Context, userID string) ([]*models.InvestmentAccount, error) {
	var accounts []models.InvestmentAccount
	if err := s.db.Find(&accounts, badgerhold.Where("UserID").Eq(userID).Index("UserID")); err != nil {
		return nil, fmt.Errorf("failed to list investment accounts: %w", err)
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].CreatedAt.After(accounts[j].CreatedAt)
	})
	result := make([]*models.InvestmentAccount, len(accounts))
	for i := range accounts {
		result[i] = &accounts[i]
	}
	return result, nil
}

// --- Investments ---

func (s *Store) SaveInvestment(_ context.Context, inv *models.Investment) error {
	now := time.Now()
	var existing models.Investment
	if err := s.db.Get(inv.ID, &existing); err == nil {
		inv.CreatedAt = existing.CreatedAt
	} else if inv.CreatedAt.IsZero() {
		inv.CreatedAt = now
	}
	inv.UpdatedAt = now

	if err := s.db.Upsert(inv.ID, inv); err != nil {
		return fmt.Errorf("failed to save investment '%s': %w", inv.ID, err)
	}
	return nil
}

func (s *Store) GetInvestment(_ context.Context, userID, id string) (*models.Investment, error) {
	var inv models.Investment
	if err := s.db.Get(id, &inv); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("investment '%s': %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get investment '%s': %w", id, err)
	}
	if inv.UserID != userID {
		return nil, fmt.Errorf("investment '%s': %w", id, models.ErrNotFound)
	}
	return &inv, nil
}

func (s *Store) ListInvestments(_ context.Context, userID string) ([]*models.Investment, error) {
	var invs []models.Investment
	if err := s.db.Find(&invs, badgerhold.Where("UserID").Eq(userID).Index("UserID")); err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	sort.Slice(invs, func(i, j int) bool {
		return invs[i].CreatedAt.After(invs[j].CreatedAt)
	})
	result := make([]*models.Investment, len(invs))
	for i := range invs {
		result[i] = &invs[i]
	}
	return result, nil
}

func (s *Store) UpdateInvestment(ctx context.Context, userID, id string, update models.InvestmentUpdate) (*models.Investment, error) {
	inv, err := s.GetInvestment(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	// A closed holding is immutable. Checked before any field is applied.
	if inv.Status == models.InvestmentStatusClosed {
		return nil, fmt.Errorf("investment '%s': %w", id, models.ErrInvestmentClosed)
	}

	if update.Status != nil && !models.ValidInvestmentStatus(*update.Status) {
		return nil, fmt.Errorf("invalid investment status '%s'", *update.Status)
	}

	if update.Description != nil {
		inv.Description = *update.Description
	}
	if update.Reference != nil {
		inv.Reference = *update.Reference
	}
	if update.Status != nil {
		inv.Status = *update.Status
	}
	inv.UpdatedAt = time.Now()

	if err := s.db.Upsert(inv.ID, inv); err != nil {
		return nil, fmt.Errorf("failed to update investment '%s': %w", id, err)
	}
	return inv, nil
}

// Close shuts down the BadgerHold database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ensure Store implements FinanceStore
var _ interfaces.FinanceStore = (*Store)(nil)
