package summary

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/finsightlabs/finsight/internal/common"
	"github.com/finsightlabs/finsight/internal/models"
)

// --- Mocks ---

type mockStore struct {
	accounts     []*models.Account
	transactions []*models.Transaction
	investments  []*models.Investment
	listErr      error
}

func (m *mockStore) CreateUser(_ context.Context, _ *models.User) error { return nil }
func (m *mockStore) GetUser(_ context.Context, _ string) (*models.User, error) {
	return nil, models.ErrNotFound
}
func (m *mockStore) GetUserByEmail(_ context.Context, _ string) (*models.User, error) {
	return nil, models.ErrNotFound
}
func (m *mockStore) SaveAccount(_ context.Context, _ *models.Account) error { return nil }
func (m *mockStore) GetAccount(_ context.Context, _, _ string) (*models.Account, error) {
	return nil, models.ErrNotFound
}
func (m *mockStore) ListAccounts(_ context.Context, _ string) ([]*models.Account, error) {
	return m.accounts, m.listErr
}
func (m *mockStore) SaveTransaction(_ context.Context, _ *models.Transaction) error { return nil }
func (m *mockStore) GetTransaction(_ context.Context, _, _ string) (*models.Transaction, error) {
	return nil, models.ErrNotFound
}
func (m *mockStore) ListTransactions(_ context.Context, _ string, _ models.TransactionFilter) ([]*models.Transaction, error) {
	return m.transactions, m.listErr
}
func (m *mockStore) ListRecentTransactions(_ context.Context, _ string, limit int) ([]*models.Transaction, error) {
	txns := m.transactions
	if limit > 0 && len(txns) > limit {
		txns = txns[:limit]
	}
	return txns, m.listErr
}
func (m *mockStore) UpdateTransactionStatus(_ context.Context, _, _, _ string) (*models.Transaction, error) {
	return nil, models.ErrNotFound
}
func (m *mockStore) SaveInvestmentAccount(_ context.Context, _ *models.InvestmentAccount) error {
	return nil
}
func (m *mockStore) GetInvestmentAccount(_ context.Context, _, _ string) (*models.InvestmentAccount, error) {
	return nil, models.ErrNotFound
}
func (m *mockStore) ListInvestmentAccounts(_ context.Context, _ string) ([]*models.InvestmentAccount, error) {
	return nil, nil
}
func (m *mockStore) SaveInvestment(_ context.Context, _ *models.Investment) error { return nil }
func (m *mockStore) GetInvestment(_ context.Context, _, _ string) (*models.Investment, error) {
	return nil, models.ErrNotFound
}
func (m *mockStore) ListInvestments(_ context.Context, _ string) ([]*models.Investment, error) {
	return m.investments, m.listErr
}
func (m *mockStore) UpdateInvestment(_ context.Context, _, _ string, _ models.InvestmentUpdate) (*models.Investment, error) {
	return nil, models.ErrNotFound
}
func (m *mockStore) Close() error { return nil }

type mockMarket struct {
	mu     sync.Mutex
	quotes map[string]*models.PriceQuote
	errs   map[string]error
	calls  map[string]int
}

func newMockMarket() *mockMarket {
	return &mockMarket{
		quotes: map[string]*models.PriceQuote{},
		errs:   map[string]error{},
		calls:  map[string]int{},
	}
}

func (m *mockMarket) GetPrice(_ context.Context, symbol string) (*models.PriceQuote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[symbol]++
	if err := m.errs[symbol]; err != nil {
		return nil, err
	}
	if q, ok := m.quotes[symbol]; ok {
		return q, nil
	}
	return nil, models.ErrNotFound
}

func (m *mockMarket) callCount(symbol string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[symbol]
}

func newTestService(store *mockStore, market *mockMarket, opts ...ServiceOption) *Service {
	base := []ServiceOption{
		WithLogger(common.NewSilentLogger()),
		WithClock(func() time.Time { return testNow }),
	}
	return NewService(store, market, append(base, opts...)...)
}

func holding(id, assetName string, amount float64) *models.Investment {
	return &models.Investment{
		ID:                  id,
		UserID:              "u1",
		InvestmentAccountID: "ia1",
		AssetType:           models.AssetTypeCrypto,
		AssetName:           assetName,
		Amount:              amount,
		Status:              models.InvestmentStatusActive,
	}
}

// --- Tests ---

func TestBuildSummaryValuation(t *testing.T) {
	store := &mockStore{
		investments: []*models.Investment{
			holding("i1", "BTC", 1),
			holding("i2", "BTC", 2),
		},
	}
	market := newMockMarket()
	market.quotes["BTC"] = &models.PriceQuote{Symbol: "BTC", CurrentPrice: 100, PreviousClose: 50}

	svc := newTestService(store, market)
	got, err := svc.BuildSummary(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got.InvestmentDetails) != 2 {
		t.Fatalf("expected 2 investment details, got %d", len(got.InvestmentDetails))
	}
	if got.InvestmentDetails[0].CurrentValue != 100 {
		t.Errorf("expected first holding value 100, got %.2f", got.InvestmentDetails[0].CurrentValue)
	}
	if got.InvestmentDetails[1].CurrentValue != 200 {
		t.Errorf("expected second holding value 200, got %.2f", got.InvestmentDetails[1].CurrentValue)
	}
	if got.TotalInvestmentValue != 300 {
		t.Errorf("expected total investment value 300, got %.2f", got.TotalInvestmentValue)
	}
	if got.InvestmentDetails[0].ChangePercent != 100 {
		t.Errorf("expected changePercent 100, got %.2f", got.InvestmentDetails[0].ChangePercent)
	}
}

func TestBuildSummaryDeduplicatesPriceLookups(t *testing.T) {
	store := &mockStore{
		investments: []*models.Investment{
			holding("i1", "BTC", 1),
			holding("i2", "BTC", 3),
			holding("i3", "ETH", 2),
		},
	}
	market := newMockMarket()
	market.quotes["BTC"] = &models.PriceQuote{Symbol: "BTC", CurrentPrice: 10, PreviousClose: 10}
	market.quotes["ETH"] = &models.PriceQuote{Symbol: "ETH", CurrentPrice: 5, PreviousClose: 5}

	svc := newTestService(store, market)
	got, err := svc.BuildSummary(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n := market.callCount("BTC"); n != 1 {
		t.Errorf("expected exactly 1 BTC lookup for 2 holdings, got %d", n)
	}
	if n := market.callCount("ETH"); n != 1 {
		t.Errorf("expected exactly 1 ETH lookup, got %d", n)
	}
	if got.InvestmentDetails[0].CurrentPrice != got.InvestmentDetails[1].CurrentPrice {
		t.Error("holdings of the same asset should share one resolved price")
	}
}

func TestBuildSummaryAbsorbsPriceFailures(t *testing.T) {
	store := &mockStore{
		investments: []*models.Investment{
			holding("i1", "BTC", 1),
			holding("i2", "DOGE", 100),
		},
	}
	market := newMockMarket()
	market.quotes["BTC"] = &models.PriceQuote{Symbol: "BTC", CurrentPrice: 40, PreviousClose: 40}
	market.errs["DOGE"] = errors.New("upstream down")

	svc := newTestService(store, market)
	got, err := svc.BuildSummary(context.Background(), "u1")
	if err != nil {
		t.Fatalf("a single symbol failure must not fail the summary: %v", err)
	}

	if got.TotalInvestmentValue != 40 {
		t.Errorf("failed symbol should value at zero, expected total 40, got %.2f", got.TotalInvestmentValue)
	}
	doge := got.InvestmentDetails[1]
	if doge.CurrentPrice != 0 || doge.PreviousClose != 0 || doge.ChangePercent != 0 {
		t.Errorf("failed symbol should degrade to a zero quote, got %+v", doge)
	}
}

func TestChangePercentGuard(t *testing.T) {
	details, _ := ValuateHoldings(
		[]*models.Investment{holding("i1", "NEWLISTING", 10)},
		map[string]models.PriceQuote{
			"NEWLISTING": {Symbol: "NEWLISTING", CurrentPrice: 12, PreviousClose: 0},
		},
	)
	if details[0].ChangePercent != 0 {
		t.Errorf("changePercent must be 0 when previousClose is not positive, got %.2f", details[0].ChangePercent)
	}
	if details[0].CurrentValue != 120 {
		t.Errorf("expected currentValue 120, got %.2f", details[0].CurrentValue)
	}
}

func TestMoversNilWhenNoQualifiers(t *testing.T) {
	balances := []models.AccountBalance{
		{ID: "a1", RecentCredits: 0, RecentDebits: 0},
	}
	details := []models.InvestmentDetail{
		{ChangePercent: 0},
	}

	movers := RankMovers(balances, details)
	if movers.TopAccountGainer != nil || movers.TopAccountLoser != nil {
		t.Error("account movers should be nil without recent activity")
	}
	if movers.TopGainer != nil || movers.TopLoser != nil {
		t.Error("investment movers should be nil without nonzero change")
	}
}

func TestMoversSelection(t *testing.T) {
	balances := []models.AccountBalance{
		{ID: "a1", RecentCredits: 100, RecentDebits: 30},
		{ID: "a2", RecentCredits: 250, RecentDebits: 10},
	}
	details := []models.InvestmentDetail{
		{Investment: models.Investment{ID: "i1"}, ChangePercent: 5},
		{Investment: models.Investment{ID: "i2"}, ChangePercent: -8},
		{Investment: models.Investment{ID: "i3"}, ChangePercent: 12},
	}

	movers := RankMovers(balances, details)
	if movers.TopAccountGainer == nil || movers.TopAccountGainer.ID != "a2" {
		t.Errorf("expected account gainer a2, got %+v", movers.TopAccountGainer)
	}
	if movers.TopAccountLoser == nil || movers.TopAccountLoser.ID != "a1" {
		t.Errorf("expected account loser a1, got %+v", movers.TopAccountLoser)
	}
	if movers.TopGainer == nil || movers.TopGainer.ID != "i3" {
		t.Errorf("expected gainer i3, got %+v", movers.TopGainer)
	}
	if movers.TopLoser == nil || movers.TopLoser.ID != "i2" {
		t.Errorf("expected loser i2, got %+v", movers.TopLoser)
	}
}

func TestMoversTieBreakFirstOccurrence(t *testing.T) {
	details := []models.InvestmentDetail{
		{Investment: models.Investment{ID: "i1"}, ChangePercent: 7},
		{Investment: models.Investment{ID: "i2"}, ChangePercent: 7},
	}

	movers := RankMovers(nil, details)
	if movers.TopGainer == nil || movers.TopGainer.ID != "i1" {
		t.Errorf("tie should resolve to the first occurrence, got %+v", movers.TopGainer)
	}
}

func TestBuildSummaryRecentTransactions(t *testing.T) {
	account := debitAccount("a1")
	var txns []*models.Transaction
	for i := 0; i < 8; i++ {
		txns = append(txns, txn("a1", models.TransactionTypeCredit, float64(i+1), testNow.Add(-time.Duration(i)*time.Hour)))
	}
	store := &mockStore{accounts: []*models.Account{account}, transactions: txns}

	svc := newTestService(store, newMockMarket())
	got, err := svc.BuildSummary(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got.RecentTransactions) != 5 {
		t.Fatalf("expected 5 recent transactions, got %d", len(got.RecentTransactions))
	}
	for _, row := range got.RecentTransactions {
		if row.AccountName != "Everyday" {
			t.Errorf("expected account name attached, got %q", row.AccountName)
		}
	}
}

func TestBuildSummaryExcludesClosedHoldingsWhenConfigured(t *testing.T) {
	closed := holding("i2", "ETH", 4)
	closed.Status = models.InvestmentStatusClosed
	store := &mockStore{
		investments: []*models.Investment{holding("i1", "BTC", 1), closed},
	}
	market := newMockMarket()
	market.quotes["BTC"] = &models.PriceQuote{Symbol: "BTC", CurrentPrice: 10, PreviousClose: 10}
	market.quotes["ETH"] = &models.PriceQuote{Symbol: "ETH", CurrentPrice: 10, PreviousClose: 10}

	svc := newTestService(store, market, WithIncludeClosedHoldings(false))
	got, err := svc.BuildSummary(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got.InvestmentDetails) != 1 {
		t.Fatalf("expected only the active holding, got %d", len(got.InvestmentDetails))
	}
	if got.TotalInvestmentValue != 10 {
		t.Errorf("closed holding should not count towards the total, got %.2f", got.TotalInvestmentValue)
	}
	if n := market.callCount("ETH"); n != 0 {
		t.Errorf("excluded holding should not trigger a price lookup, got %d calls", n)
	}
}

func TestBuildSummaryStoreFailure(t *testing.T) {
	store := &mockStore{listErr: errors.New("db closed")}
	svc := newTestService(store, newMockMarket())

	if _, err := svc.BuildSummary(context.Background(), "u1"); err == nil {
		t.Fatal("expected storage failure to surface")
	}
}
