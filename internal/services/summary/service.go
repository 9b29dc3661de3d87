// Package summary builds the consolidated dashboard view: account balances,
// portfolio valuation, movers, and recent activity.
package summary

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/finsightlabs/finsight/internal/common"
	"github.com/finsightlabs/finsight/internal/interfaces"
	"github.com/finsightlabs/finsight/internal/models"
)

const (
	// DefaultRecentTransactions is the number of recent transactions shown
	// on the dashboard.
	DefaultRecentTransactions = 5

	// defaultPriceTimeout bounds each symbol lookup so a slow upstream
	// cannot stall the whole summary.
	defaultPriceTimeout = 5 * time.Second
)

// Service aggregates a user's finances into a DashboardSummary.
type Service struct {
	store                 interfaces.FinanceStore
	market                interfaces.MarketClient
	logger                *common.Logger
	now                   func() time.Time
	priceTimeout          time.Duration
	recentLimit           int
	includeClosedHoldings bool
}

// ServiceOption configures the summary service.
type ServiceOption func(*Service)

// WithLogger sets a custom logger.
func WithLogger(logger *common.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithClock overrides the time source. Used by tests to pin the recent
// transaction window.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// WithPriceTimeout bounds each individual price lookup.
func WithPriceTimeout(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.priceTimeout = d
		}
	}
}

// WithRecentTransactionLimit sets how many recent transactions the summary
// carries.
func WithRecentTransactionLimit(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.recentLimit = n
		}
	}
}

// WithIncludeClosedHoldings controls whether closed holdings are valuated and
// counted in the portfolio total.
func WithIncludeClosedHoldings(include bool) ServiceOption {
	return func(s *Service) {
		s.includeClosedHoldings = include
	}
}

// NewService creates a new summary service.
func NewService(store interfaces.FinanceStore, market interfaces.MarketClient, opts ...ServiceOption) *Service {
	service := &Service{
		store:                 store,
		market:                market,
		logger:                common.NewDefaultLogger(),
		now:                   time.Now,
		priceTimeout:          defaultPriceTimeout,
		recentLimit:           DefaultRecentTransactions,
		includeClosedHoldings: true,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// BuildSummary assembles the dashboard summary for a user.
func (s *Service) BuildSummary(ctx context.Context, userID string) (*models.DashboardSummary, error) {
	accounts, transactions, investments, err := s.fetchUserData(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	accountBalances, totalBankBalance := ComputeAccountSummaries(accounts, transactions, now)

	holdings := investments
	if !s.includeClosedHoldings {
		holdings = make([]*models.Investment, 0, len(investments))
		for _, inv := range investments {
			if inv.Status != models.InvestmentStatusClosed {
				holdings = append(holdings, inv)
			}
		}
	}

	quotes := s.resolvePrices(ctx, holdings)
	investmentDetails, totalInvestmentValue := ValuateHoldings(holdings, quotes)

	movers := RankMovers(accountBalances, investmentDetails)

	recent, err := s.recentTransactions(ctx, userID, accounts)
	if err != nil {
		return nil, err
	}

	return &models.DashboardSummary{
		TotalBankBalance:     totalBankBalance,
		TotalInvestmentValue: totalInvestmentValue,
		AccountBalances:      accountBalances,
		RecentTransactions:   recent,
		InvestmentDetails:    investmentDetails,
		TopGainer:            movers.TopGainer,
		TopLoser:             movers.TopLoser,
		TopAccountGainer:     movers.TopAccountGainer,
		TopAccountLoser:      movers.TopAccountLoser,
	}, nil
}

// fetchUserData loads accounts, transactions, and investments concurrently.
// The three reads are independent.
func (s *Service) fetchUserData(ctx context.Context, userID string) ([]*models.Account, []*models.Transaction, []*models.Investment, error) {
	var (
		wg           sync.WaitGroup
		accounts     []*models.Account
		transactions []*models.Transaction
		investments  []*models.Investment
		accountsErr  error
		txnsErr      error
		invsErr      error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		accounts, accountsErr = s.store.ListAccounts(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		transactions, txnsErr = s.store.ListTransactions(ctx, userID, models.TransactionFilter{})
	}()
	go func() {
		defer wg.Done()
		investments, invsErr = s.store.ListInvestments(ctx, userID)
	}()
	wg.Wait()

	if accountsErr != nil {
		return nil, nil, nil, fmt.Errorf("failed to load accounts: %w", accountsErr)
	}
	if txnsErr != nil {
		return nil, nil, nil, fmt.Errorf("failed to load transactions: %w", txnsErr)
	}
	if invsErr != nil {
		return nil, nil, nil, fmt.Errorf("failed to load investments: %w", invsErr)
	}
	return accounts, transactions, investments, nil
}

// resolvePrices fetches a quote for each distinct asset name concurrently.
// Holdings of the same asset share one lookup. A failed lookup degrades to a
// zero quote; it never fails the summary.
func (s *Service) resolvePrices(ctx context.Context, investments []*models.Investment) map[string]models.PriceQuote {
	seen := make(map[string]bool)
	var symbols []string
	for _, inv := range investments {
		if inv.AssetName == "" || seen[inv.AssetName] {
			continue
		}
		seen[inv.AssetName] = true
		symbols = append(symbols, inv.AssetName)
	}

	quotes := make(map[string]models.PriceQuote, len(symbols))
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for _, symbol := range symbols {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()

			callCtx, cancel := context.WithTimeout(ctx, s.priceTimeout)
			defer cancel()

			quote, err := s.market.GetPrice(callCtx, symbol)
			if err != nil || quote == nil {
				s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Price lookup failed, using zero quote")
				quote = &models.PriceQuote{Symbol: symbol}
			}

			mu.Lock()
			quotes[symbol] = *quote
			mu.Unlock()
		}(symbol)
	}
	wg.Wait()

	return quotes
}

// recentTransactions reads the latest transactions and attaches the owning
// account's display name.
func (s *Service) recentTransactions(ctx context.Context, userID string, accounts []*models.Account) ([]models.TransactionWithAccount, error) {
	txns, err := s.store.ListRecentTransactions(ctx, userID, s.recentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent transactions: %w", err)
	}

	names := make(map[string]string, len(accounts))
	for _, account := range accounts {
		names[account.ID] = account.Name
	}

	result := make([]models.TransactionWithAccount, 0, len(txns))
	for _, txn := range txns {
		result = append(result, models.TransactionWithAccount{
			Transaction: *txn,
			AccountName: names[txn.AccountID],
		})
	}
	return result, nil
}

// Ensure Service implements SummaryService
var _ interfaces.SummaryService = (*Service)(nil)
