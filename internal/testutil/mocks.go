package testutil

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/tallyapp/tally-backend/internal/domain"
	"github.com/tallyapp/tally-backend/internal/util"
)

// MockAccountRepository is a mock implementation of domain.AccountRepository
type MockAccountRepository struct {
	Accounts map[string]*domain.Account
}

// NewMockAccountRepository creates a new MockAccountRepository
func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{Accounts: make(map[string]*domain.Account)}
}

// AddAccount seeds an account (helper for tests)
func (m *MockAccountRepository) AddAccount(account *domain.Account) *domain.Account {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	m.Accounts[account.ID] = account
	return account
}

// Create creates a new account
func (m *MockAccountRepository) Create(account *domain.Account) (*domain.Account, error) {
	account.ID = uuid.NewString()
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	m.Accounts[account.ID] = account
	return account, nil
}

// GetByID retrieves an account owned by the user
func (m *MockAccountRepository) GetByID(userID, id string) (*domain.Account, error) {
	if account, ok := m.Accounts[id]; ok && account.UserID == userID {
		return account, nil
	}
	return nil, domain.ErrAccountNotFound
}

// GetAllByUser lists the user's accounts
func (m *MockAccountRepository) GetAllByUser(userID string) ([]*domain.Account, error) {
	var result []*domain.Account
	for _, account := range m.Accounts {
		if account.UserID == userID {
			result = append(result, account)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Update renames an owned account
func (m *MockAccountRepository) Update(userID, id, name string) (*domain.Account, error) {
	account, err := m.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	account.Name = name
	account.UpdatedAt = time.Now()
	return account, nil
}

// Delete removes an owned account
func (m *MockAccountRepository) Delete(userID, id string) error {
	if _, err := m.GetByID(userID, id); err != nil {
		return err
	}
	delete(m.Accounts, id)
	return nil
}

// BulkDelete removes the owned subset of the requested ids
func (m *MockAccountRepository) BulkDelete(userID string, ids []string) ([]string, error) {
	deleted := []string{}
	for _, id := range ids {
		if account, ok := m.Accounts[id]; ok && account.UserID == userID {
			delete(m.Accounts, id)
			deleted = append(deleted, id)
		}
	}
	return deleted, nil
}

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories map[string]*domain.Category
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{Categories: make(map[string]*domain.Category)}
}

// AddCategory seeds a category (helper for tests)
func (m *MockCategoryRepository) AddCategory(category *domain.Category) *domain.Category {
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	m.Categories[category.ID] = category
	return category
}

// Create creates a new category
func (m *MockCategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	category.ID = uuid.NewString()
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	m.Categories[category.ID] = category
	return category, nil
}

// GetByID retrieves a category owned by the user
func (m *MockCategoryRepository) GetByID(userID, id string) (*domain.Category, error) {
	if category, ok := m.Categories[id]; ok && category.UserID == userID {
		return category, nil
	}
	return nil, domain.ErrCategoryNotFound
}

// GetAllByUser lists the user's categories
func (m *MockCategoryRepository) GetAllByUser(userID string) ([]*domain.Category, error) {
	var result []*domain.Category
	for _, category := range m.Categories {
		if category.UserID == userID {
			result = append(result, category)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Update renames an owned category
func (m *MockCategoryRepository) Update(userID, id, name string) (*domain.Category, error) {
	category, err := m.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	category.Name = name
	category.UpdatedAt = time.Now()
	return category, nil
}

// Delete removes an owned category
func (m *MockCategoryRepository) Delete(userID, id string) error {
	if _, err := m.GetByID(userID, id); err != nil {
		return err
	}
	delete(m.Categories, id)
	return nil
}

// BulkDelete removes the owned subset of the requested ids
func (m *MockCategoryRepository) BulkDelete(userID string, ids []string) ([]string, error) {
	deleted := []string{}
	for _, id := range ids {
		if category, ok := m.Categories[id]; ok && category.UserID == userID {
			delete(m.Categories, id)
			deleted = append(deleted, id)
		}
	}
	return deleted, nil
}

// MockTransactionRepository is a mock implementation of
// domain.TransactionRepository. Ownership resolves through the account
// repository the same way the SQL joins do, and the aggregate methods compute
// their results from the in-memory transactions.
type MockTransactionRepository struct {
	Transactions map[string]*domain.Transaction
	Accounts     *MockAccountRepository
	Categories   *MockCategoryRepository

	PeriodTotalsFn func(userID string, accountID *string, window domain.Window) (*domain.PeriodTotals, error)
}

// NewMockTransactionRepository creates a new MockTransactionRepository backed
// by the given account and category mocks
func NewMockTransactionRepository(accounts *MockAccountRepository, categories *MockCategoryRepository) *MockTransactionRepository {
	return &MockTransactionRepository{
		Transactions: make(map[string]*domain.Transaction),
		Accounts:     accounts,
		Categories:   categories,
	}
}

// AddTransaction seeds a transaction (helper for tests)
func (m *MockTransactionRepository) AddTransaction(t *domain.Transaction) *domain.Transaction {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	m.Transactions[t.ID] = t
	return t
}

func (m *MockTransactionRepository) owns(userID string, t *domain.Transaction) bool {
	account, ok := m.Accounts.Accounts[t.AccountID]
	return ok && account.UserID == userID
}

func inWindow(t *domain.Transaction, window domain.Window) bool {
	d := util.StartOfDay(t.Date)
	return !d.Before(util.StartOfDay(window.Start)) && !d.After(util.StartOfDay(window.End))
}

func matchesAccount(t *domain.Transaction, accountID *string) bool {
	return accountID == nil || t.AccountID == *accountID
}

// Create creates a new transaction
func (m *MockTransactionRepository) Create(t *domain.Transaction) (*domain.Transaction, error) {
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	m.Transactions[t.ID] = t
	return t, nil
}

// BulkCreate creates multiple transactions
func (m *MockTransactionRepository) BulkCreate(transactions []*domain.Transaction) ([]*domain.Transaction, error) {
	created := make([]*domain.Transaction, 0, len(transactions))
	for _, t := range transactions {
		inserted, err := m.Create(t)
		if err != nil {
			return nil, err
		}
		created = append(created, inserted)
	}
	return created, nil
}

// GetByID retrieves a transaction owned by the user
func (m *MockTransactionRepository) GetByID(userID, id string) (*domain.Transaction, error) {
	if t, ok := m.Transactions[id]; ok && m.owns(userID, t) {
		return t, nil
	}
	return nil, domain.ErrTransactionNotFound
}

// GetByUser lists the user's transactions newest-first
func (m *MockTransactionRepository) GetByUser(userID string, filters *domain.TransactionFilters) ([]*domain.TransactionRow, error) {
	var result []*domain.TransactionRow
	for _, t := range m.Transactions {
		if !m.owns(userID, t) {
			continue
		}
		if filters != nil {
			if !matchesAccount(t, filters.AccountID) {
				continue
			}
			if filters.StartDate != nil && t.Date.Before(util.StartOfDay(*filters.StartDate)) {
				continue
			}
			if filters.EndDate != nil && t.Date.After(util.StartOfDay(*filters.EndDate)) {
				continue
			}
		}

		row := &domain.TransactionRow{Transaction: *t}
		if account, ok := m.Accounts.Accounts[t.AccountID]; ok {
			row.Account = account.Name
		}
		if t.CategoryID != nil {
			if category, ok := m.Categories.Categories[*t.CategoryID]; ok {
				name := category.Name
				row.Category = &name
			}
		}
		result = append(result, row)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.After(result[j].Date) })
	return result, nil
}

// Update replaces the mutable fields of an owned transaction
func (m *MockTransactionRepository) Update(userID, id string, data *domain.UpdateTransactionData) (*domain.Transaction, error) {
	t, err := m.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	t.Date = data.Date
	t.Amount = data.Amount
	t.Payee = data.Payee
	t.Notes = data.Notes
	t.AccountID = data.AccountID
	t.CategoryID = data.CategoryID
	t.UpdatedAt = time.Now()
	return t, nil
}

// Delete removes an owned transaction
func (m *MockTransactionRepository) Delete(userID, id string) error {
	if _, err := m.GetByID(userID, id); err != nil {
		return err
	}
	delete(m.Transactions, id)
	return nil
}

// BulkDelete removes the owned subset of the requested ids
func (m *MockTransactionRepository) BulkDelete(userID string, ids []string) ([]string, error) {
	deleted := []string{}
	for _, id := range ids {
		if t, ok := m.Transactions[id]; ok && m.owns(userID, t) {
			delete(m.Transactions, id)
			deleted = append(deleted, id)
		}
	}
	return deleted, nil
}

// PeriodTotals computes the period sums from the in-memory transactions
func (m *MockTransactionRepository) PeriodTotals(userID string, accountID *string, window domain.Window) (*domain.PeriodTotals, error) {
	if m.PeriodTotalsFn != nil {
		return m.PeriodTotalsFn(userID, accountID, window)
	}

	var totals domain.PeriodTotals
	for _, t := range m.Transactions {
		if !m.owns(userID, t) || !matchesAccount(t, accountID) || !inWindow(t, window) {
			continue
		}
		if t.Amount >= 0 {
			totals.Income += t.Amount
		} else {
			totals.Expenses += t.Amount
		}
		totals.Remaining += t.Amount
	}
	return &totals, nil
}

// CategoryTotals computes absolute expense sums per category name, largest
// first. Uncategorized expenses are excluded.
func (m *MockTransactionRepository) CategoryTotals(userID string, accountID *string, window domain.Window) ([]domain.CategoryTotal, error) {
	sums := make(map[string]int64)
	for _, t := range m.Transactions {
		if !m.owns(userID, t) || !matchesAccount(t, accountID) || !inWindow(t, window) {
			continue
		}
		if t.Amount >= 0 || t.CategoryID == nil {
			continue
		}
		category, ok := m.Categories.Categories[*t.CategoryID]
		if !ok {
			continue
		}
		sums[category.Name] += -t.Amount
	}

	var totals []domain.CategoryTotal
	for name, value := range sums {
		totals = append(totals, domain.CategoryTotal{Name: name, Value: value})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Value > totals[j].Value })
	return totals, nil
}

// DailyTotals computes income and absolute expense sums per active day,
// ascending
func (m *MockTransactionRepository) DailyTotals(userID string, accountID *string, window domain.Window) ([]domain.DayTotal, error) {
	sums := make(map[time.Time]*domain.DayTotal)
	for _, t := range m.Transactions {
		if !m.owns(userID, t) || !matchesAccount(t, accountID) || !inWindow(t, window) {
			continue
		}
		day := util.StartOfDay(t.Date)
		entry, ok := sums[day]
		if !ok {
			entry = &domain.DayTotal{Date: day}
			sums[day] = entry
		}
		if t.Amount >= 0 {
			entry.Income += t.Amount
		} else {
			entry.Expenses += -t.Amount
		}
	}

	var totals []domain.DayTotal
	for _, entry := range sums {
		totals = append(totals, *entry)
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Date.Before(totals[j].Date) })
	return totals, nil
}
