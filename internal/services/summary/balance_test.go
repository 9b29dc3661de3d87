package summary

import (
	"testing"
	"time"

	"github.com/finsightlabs/finsight/internal/models"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func debitAccount(id string) *models.Account {
	return &models.Account{ID: id, UserID: "u1", Name: "Everyday", Type: models.AccountTypeDebit}
}

func creditAccount(id string) *models.Account {
	return &models.Account{ID: id, UserID: "u1", Name: "Visa", Type: models.AccountTypeCredit}
}

func txn(accountID, txnType string, amount float64, createdAt time.Time) *models.Transaction {
	return &models.Transaction{
		ID:        accountID + "-" + txnType + "-" + createdAt.Format(time.RFC3339Nano),
		UserID:    "u1",
		AccountID: accountID,
		Amount:    amount,
		Type:      txnType,
		Status:    models.TransactionStatusCompleted,
		CreatedAt: createdAt,
	}
}

func TestDebitAccountSigns(t *testing.T) {
	account := debitAccount("a1")
	txns := []*models.Transaction{
		txn("a1", models.TransactionTypeCredit, 500, testNow.Add(-48*time.Hour)),
		txn("a1", models.TransactionTypeDebit, 120, testNow.Add(-48*time.Hour)),
	}

	got := ComputeAccountSummary(account, txns, testNow)
	if got.Balance != 380 {
		t.Errorf("expected balance 380, got %.2f", got.Balance)
	}
	if got.NetWorthImpact != 380 {
		t.Errorf("expected netWorthImpact 380, got %.2f", got.NetWorthImpact)
	}
}

func TestCreditAccountSigns(t *testing.T) {
	account := creditAccount("c1")
	txns := []*models.Transaction{
		// A charge on the card grows the owed balance; a payment shrinks it.
		txn("c1", models.TransactionTypeDebit, 300, testNow.Add(-48*time.Hour)),
		txn("c1", models.TransactionTypeCredit, 100, testNow.Add(-48*time.Hour)),
	}

	got := ComputeAccountSummary(account, txns, testNow)
	if got.Balance != 200 {
		t.Errorf("expected balance 200, got %.2f", got.Balance)
	}
	if got.NetWorthImpact != -200 {
		t.Errorf("expected netWorthImpact -200, got %.2f", got.NetWorthImpact)
	}
}

func TestBalanceIgnoresOtherAccounts(t *testing.T) {
	account := debitAccount("a1")
	txns := []*models.Transaction{
		txn("a1", models.TransactionTypeCredit, 50, testNow.Add(-time.Hour)),
		txn("a2", models.TransactionTypeCredit, 9999, testNow.Add(-time.Hour)),
	}

	got := ComputeAccountSummary(account, txns, testNow)
	if got.Balance != 50 {
		t.Errorf("expected balance 50, got %.2f", got.Balance)
	}
}

func TestPendingTransactionsCount(t *testing.T) {
	account := debitAccount("a1")
	pending := txn("a1", models.TransactionTypeCredit, 75, testNow.Add(-time.Hour))
	pending.Status = models.TransactionStatusPending

	got := ComputeAccountSummary(account, []*models.Transaction{pending}, testNow)
	if got.Balance != 75 {
		t.Errorf("pending transaction should contribute to balance, got %.2f", got.Balance)
	}
}

func TestRecentWindowBoundary(t *testing.T) {
	account := debitAccount("a1")
	justOutside := txn("a1", models.TransactionTypeCredit, 10, testNow.Add(-24*time.Hour-time.Millisecond))
	justInside := txn("a1", models.TransactionTypeCredit, 20, testNow.Add(-23*time.Hour-59*time.Minute))
	exactBoundary := txn("a1", models.TransactionTypeDebit, 5, testNow.Add(-24*time.Hour))

	got := ComputeAccountSummary(account, []*models.Transaction{justOutside, justInside, exactBoundary}, testNow)

	if got.RecentCredits != 20 {
		t.Errorf("expected recentCredits 20 (only the in-window credit), got %.2f", got.RecentCredits)
	}
	if got.RecentDebits != 0 {
		t.Errorf("a transaction at exactly now-24h is outside the window, got recentDebits %.2f", got.RecentDebits)
	}
	// All three still count towards the running balance.
	if got.Balance != 25 {
		t.Errorf("expected balance 25, got %.2f", got.Balance)
	}
}

func TestRecentSplitUsesTransactionType(t *testing.T) {
	// The 24h split follows the transaction's own type even on a credit
	// account, where a debit raises the balance.
	account := creditAccount("c1")
	txns := []*models.Transaction{
		txn("c1", models.TransactionTypeDebit, 40, testNow.Add(-time.Hour)),
		txn("c1", models.TransactionTypeCredit, 15, testNow.Add(-2*time.Hour)),
	}

	got := ComputeAccountSummary(account, txns, testNow)
	if got.RecentDebits != 40 {
		t.Errorf("expected recentDebits 40, got %.2f", got.RecentDebits)
	}
	if got.RecentCredits != 15 {
		t.Errorf("expected recentCredits 15, got %.2f", got.RecentCredits)
	}
}

func TestTotalBankBalanceSumsNetWorthImpact(t *testing.T) {
	accounts := []*models.Account{debitAccount("a1"), creditAccount("c1")}
	txns := []*models.Transaction{
		txn("a1", models.TransactionTypeCredit, 1000, testNow.Add(-72*time.Hour)),
		txn("c1", models.TransactionTypeDebit, 400, testNow.Add(-72*time.Hour)),
	}

	balances, total := ComputeAccountSummaries(accounts, txns, testNow)
	if len(balances) != 2 {
		t.Fatalf("expected 2 account balances, got %d", len(balances))
	}
	if total != 600 {
		t.Errorf("expected total bank balance 600 (1000 asset - 400 liability), got %.2f", total)
	}
}
