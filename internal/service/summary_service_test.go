package service

import (
	"errors"
	"testing"
	"time"

	"github.com/tallyapp/tally-backend/internal/domain"
	"github.com/tallyapp/tally-backend/internal/testutil"
)

func newSummaryFixture(t *testing.T) (*SummaryService, *testutil.MockTransactionRepository, *domain.Account, *domain.Category) {
	t.Helper()

	accountRepo := testutil.NewMockAccountRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	transactionRepo := testutil.NewMockTransactionRepository(accountRepo, categoryRepo)

	account := accountRepo.AddAccount(&domain.Account{UserID: "user-1", Name: "Checking"})
	category := categoryRepo.AddCategory(&domain.Category{UserID: "user-1", Name: "Groceries"})

	return NewSummaryService(transactionRepo), transactionRepo, account, category
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGetSummary_TotalsAndChanges(t *testing.T) {
	svc, repo, account, _ := newSummaryFixture(t)

	from := day(2024, 2, 1)
	to := day(2024, 2, 11)

	// Current window: income 1000, expenses -400
	repo.AddTransaction(&domain.Transaction{Date: day(2024, 2, 5), Amount: 1000, Payee: "Employer", AccountID: account.ID})
	repo.AddTransaction(&domain.Transaction{Date: day(2024, 2, 7), Amount: -400, Payee: "Store", AccountID: account.ID})

	// Previous window (2024-01-22..2024-02-01): income 500, expenses -400
	repo.AddTransaction(&domain.Transaction{Date: day(2024, 1, 25), Amount: 500, Payee: "Employer", AccountID: account.ID})
	repo.AddTransaction(&domain.Transaction{Date: day(2024, 1, 28), Amount: -400, Payee: "Store", AccountID: account.ID})

	result, err := svc.GetSummary("user-1", SummaryInput{From: &from, To: &to})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Income != 1000 {
		t.Errorf("Expected income 1000, got %d", result.Income)
	}
	if result.Expenses != -400 {
		t.Errorf("Expected expenses -400, got %d", result.Expenses)
	}
	if result.Remaining != 600 {
		t.Errorf("Expected remaining 600, got %d", result.Remaining)
	}
	if result.IncomeChange != 100 {
		t.Errorf("Expected income change 100, got %d", result.IncomeChange)
	}
	if result.ExpensesChange != 0 {
		t.Errorf("Expected expenses change 0, got %d", result.ExpensesChange)
	}
	if result.RemainingChange != 500 {
		t.Errorf("Expected remaining change 500, got %d", result.RemainingChange)
	}
}

func TestGetSummary_ZeroBasePreviousPeriod(t *testing.T) {
	svc, repo, account, _ := newSummaryFixture(t)

	from := day(2024, 2, 1)
	to := day(2024, 2, 11)
	repo.AddTransaction(&domain.Transaction{Date: day(2024, 2, 5), Amount: 1000, Payee: "Employer", AccountID: account.ID})

	result, err := svc.GetSummary("user-1", SummaryInput{From: &from, To: &to})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.IncomeChange != 100 {
		t.Errorf("Expected income change 100 on zero base, got %d", result.IncomeChange)
	}
	if result.ExpensesChange != 0 {
		t.Errorf("Expected expenses change 0 on zero base, got %d", result.ExpensesChange)
	}
}

func TestGetSummary_GapFilledDays(t *testing.T) {
	svc, repo, account, _ := newSummaryFixture(t)

	from := day(2024, 1, 1)
	to := day(2024, 1, 5)
	repo.AddTransaction(&domain.Transaction{Date: day(2024, 1, 1), Amount: 1000, Payee: "Employer", AccountID: account.ID})
	repo.AddTransaction(&domain.Transaction{Date: day(2024, 1, 3), Amount: -500, Payee: "Store", AccountID: account.ID})

	result, err := svc.GetSummary("user-1", SummaryInput{From: &from, To: &to})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(result.Days) != 5 {
		t.Fatalf("Expected 5 days, got %d", len(result.Days))
	}
	if result.Days[0].Income != 1000 {
		t.Errorf("Expected income 1000 on day 1, got %d", result.Days[0].Income)
	}
	if result.Days[2].Expenses != 500 {
		t.Errorf("Expected expenses 500 on day 3, got %d", result.Days[2].Expenses)
	}
	if result.Days[1].Income != 0 || result.Days[1].Expenses != 0 {
		t.Errorf("Expected day 2 zero-filled, got %+v", result.Days[1])
	}
}

func TestGetSummary_CategoryConsolidation(t *testing.T) {
	svc, repo, account, _ := newSummaryFixture(t)

	from := day(2024, 1, 1)
	to := day(2024, 1, 31)

	names := []string{"A", "B", "C", "D", "E"}
	amounts := []int64{-500, -300, -200, -100, -50}
	for i, name := range names {
		category := repo.Categories.AddCategory(&domain.Category{UserID: "user-1", Name: name})
		id := category.ID
		repo.AddTransaction(&domain.Transaction{
			Date: day(2024, 1, 10), Amount: amounts[i], Payee: "Store",
			AccountID: account.ID, CategoryID: &id,
		})
	}

	result, err := svc.GetSummary("user-1", SummaryInput{From: &from, To: &to})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(result.Categories) != 4 {
		t.Fatalf("Expected 4 categories, got %d", len(result.Categories))
	}
	if result.Categories[0].Name != "A" || result.Categories[0].Value != 500 {
		t.Errorf("Expected A:500 first, got %s:%d", result.Categories[0].Name, result.Categories[0].Value)
	}
	if result.Categories[3].Name != domain.OtherCategoryName || result.Categories[3].Value != 150 {
		t.Errorf("Expected Other:150 last, got %s:%d", result.Categories[3].Name, result.Categories[3].Value)
	}
}

func TestGetSummary_UncategorizedExpensesExcludedFromBreakdown(t *testing.T) {
	svc, repo, account, category := newSummaryFixture(t)

	from := day(2024, 1, 1)
	to := day(2024, 1, 31)
	repo.AddTransaction(&domain.Transaction{Date: day(2024, 1, 10), Amount: -700, Payee: "Store", AccountID: account.ID})
	repo.AddTransaction(&domain.Transaction{
		Date: day(2024, 1, 12), Amount: -300, Payee: "Market",
		AccountID: account.ID, CategoryID: &category.ID,
	})

	result, err := svc.GetSummary("user-1", SummaryInput{From: &from, To: &to})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(result.Categories) != 1 || result.Categories[0].Name != "Groceries" {
		t.Fatalf("Expected only the categorized expense in the breakdown, got %v", result.Categories)
	}
	// Period totals still include the uncategorized expense
	if result.Expenses != -1000 {
		t.Errorf("Expected expenses -1000, got %d", result.Expenses)
	}
}

func TestGetSummary_EmptyWindowPlaceholder(t *testing.T) {
	svc, _, _, _ := newSummaryFixture(t)

	from := day(2024, 1, 1)
	to := day(2024, 1, 31)

	result, err := svc.GetSummary("user-1", SummaryInput{From: &from, To: &to})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(result.Categories) != 1 || result.Categories[0].Name != domain.PlaceholderCategoryName {
		t.Errorf("Expected placeholder category, got %v", result.Categories)
	}
	if result.Income != 0 || result.Expenses != 0 || result.Remaining != 0 {
		t.Errorf("Expected zero totals, got %+v", result)
	}
}

func TestGetSummary_AccountFilter(t *testing.T) {
	svc, repo, account, _ := newSummaryFixture(t)
	other := repo.Accounts.AddAccount(&domain.Account{UserID: "user-1", Name: "Savings"})

	from := day(2024, 1, 1)
	to := day(2024, 1, 31)
	repo.AddTransaction(&domain.Transaction{Date: day(2024, 1, 10), Amount: 1000, Payee: "Employer", AccountID: account.ID})
	repo.AddTransaction(&domain.Transaction{Date: day(2024, 1, 10), Amount: 5000, Payee: "Employer", AccountID: other.ID})

	result, err := svc.GetSummary("user-1", SummaryInput{From: &from, To: &to, AccountID: &account.ID})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Income != 1000 {
		t.Errorf("Expected income 1000 for the filtered account, got %d", result.Income)
	}
}

func TestGetSummary_ExcludesOtherUsers(t *testing.T) {
	svc, repo, account, _ := newSummaryFixture(t)
	foreign := repo.Accounts.AddAccount(&domain.Account{UserID: "user-2", Name: "Foreign"})

	from := day(2024, 1, 1)
	to := day(2024, 1, 31)
	repo.AddTransaction(&domain.Transaction{Date: day(2024, 1, 10), Amount: 1000, Payee: "Employer", AccountID: account.ID})
	repo.AddTransaction(&domain.Transaction{Date: day(2024, 1, 10), Amount: 9999, Payee: "Employer", AccountID: foreign.ID})

	result, err := svc.GetSummary("user-1", SummaryInput{From: &from, To: &to})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Income != 1000 {
		t.Errorf("Expected income 1000 scoped to the caller, got %d", result.Income)
	}
}

func TestGetSummary_RepositoryError(t *testing.T) {
	svc, repo, _, _ := newSummaryFixture(t)

	repoErr := errors.New("connection lost")
	repo.PeriodTotalsFn = func(string, *string, domain.Window) (*domain.PeriodTotals, error) {
		return nil, repoErr
	}

	if _, err := svc.GetSummary("user-1", SummaryInput{}); !errors.Is(err, repoErr) {
		t.Errorf("Expected repository error to propagate, got %v", err)
	}
}
