package domain

import "time"

// Transaction is a single ledger entry. Amount is stored in milliunits:
// a signed 64-bit integer where negative values are expenses and
// non-negative values are income. All aggregation is integer arithmetic.
type Transaction struct {
	ID         string    `json:"id"`
	Date       time.Time `json:"date"`
	Amount     int64     `json:"amount"`
	Payee      string    `json:"payee"`
	Notes      *string   `json:"notes,omitempty"`
	AccountID  string    `json:"accountId"`
	CategoryID *string   `json:"categoryId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TransactionRow is a list row with the display names joined in.
type TransactionRow struct {
	Transaction
	Account  string  `json:"account"`
	Category *string `json:"category,omitempty"`
}

// TransactionFilters narrows list queries. Nil fields are not applied.
type TransactionFilters struct {
	AccountID *string
	StartDate *time.Time
	EndDate   *time.Time
}

// UpdateTransactionData is the full set of mutable transaction fields.
type UpdateTransactionData struct {
	Date       time.Time
	Amount     int64
	Payee      string
	Notes      *string
	AccountID  string
	CategoryID *string
}

// TransactionRepository combines transaction CRUD with the aggregate queries
// behind the summary endpoint. All reads and mutations are scoped to the
// requesting user through the owning account; the bulk mutations compute the
// eligible subset and act on it in a single atomic statement.
type TransactionRepository interface {
	Create(transaction *Transaction) (*Transaction, error)
	BulkCreate(transactions []*Transaction) ([]*Transaction, error)
	GetByID(userID, id string) (*Transaction, error)
	GetByUser(userID string, filters *TransactionFilters) ([]*TransactionRow, error)
	Update(userID, id string, data *UpdateTransactionData) (*Transaction, error)
	Delete(userID, id string) error
	BulkDelete(userID string, ids []string) ([]string, error)

	PeriodTotals(userID string, accountID *string, window Window) (*PeriodTotals, error)
	CategoryTotals(userID string, accountID *string, window Window) ([]CategoryTotal, error)
	DailyTotals(userID string, accountID *string, window Window) ([]DayTotal, error)
}
