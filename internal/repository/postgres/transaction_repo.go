package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tallyapp/tally-backend/internal/domain"
)

// TransactionRepository implements domain.TransactionRepository using
// PostgreSQL. Every query reaches transactions through their owning account,
// so rows belonging to other users are invisible to both reads and mutations.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `id, date, amount, payee, notes, account_id, category_id, created_at, updated_at`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	var date pgtype.Date
	err := row.Scan(&t.ID, &date, &t.Amount, &t.Payee, &t.Notes, &t.AccountID, &t.CategoryID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.Date = date.Time
	return &t, nil
}

func pgDate(t *domain.Transaction) pgtype.Date {
	return pgtype.Date{Time: t.Date, Valid: true}
}

// Create inserts a new transaction with a generated id
func (r *TransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO transactions (id, date, amount, payee, notes, account_id, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+transactionColumns,
		uuid.NewString(), pgDate(transaction), transaction.Amount, transaction.Payee,
		transaction.Notes, transaction.AccountID, transaction.CategoryID)
	return scanTransaction(row)
}

// BulkCreate inserts multiple transactions in one database transaction so a
// failed row leaves nothing behind. Each row receives a generated id.
func (r *TransactionRepository) BulkCreate(transactions []*domain.Transaction) ([]*domain.Transaction, error) {
	ctx := context.Background()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	created := make([]*domain.Transaction, 0, len(transactions))
	for _, t := range transactions {
		row := tx.QueryRow(ctx, `
			INSERT INTO transactions (id, date, amount, payee, notes, account_id, category_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+transactionColumns,
			uuid.NewString(), pgDate(t), t.Amount, t.Payee, t.Notes, t.AccountID, t.CategoryID)
		inserted, err := scanTransaction(row)
		if err != nil {
			return nil, err
		}
		created = append(created, inserted)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a transaction owned by the given user
func (r *TransactionRepository) GetByID(userID, id string) (*domain.Transaction, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT t.id, t.date, t.amount, t.payee, t.notes, t.account_id, t.category_id, t.created_at, t.updated_at
		FROM transactions t
		INNER JOIN accounts a ON t.account_id = a.id
		WHERE t.id = $1 AND a.user_id = $2`,
		id, userID)
	transaction, err := scanTransaction(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return transaction, nil
}

// GetByUser lists the user's transactions newest-first with account and
// category names joined in. Nil filter fields are not applied.
func (r *TransactionRepository) GetByUser(userID string, filters *domain.TransactionFilters) ([]*domain.TransactionRow, error) {
	ctx := context.Background()

	var accountID *string
	var startDate, endDate pgtype.Date
	if filters != nil {
		accountID = filters.AccountID
		if filters.StartDate != nil {
			startDate = pgtype.Date{Time: *filters.StartDate, Valid: true}
		}
		if filters.EndDate != nil {
			endDate = pgtype.Date{Time: *filters.EndDate, Valid: true}
		}
	}

	rows, err := r.pool.Query(ctx, `
		SELECT t.id, t.date, t.amount, t.payee, t.notes, t.account_id, t.category_id,
		       t.created_at, t.updated_at, a.name, c.name
		FROM transactions t
		INNER JOIN accounts a ON t.account_id = a.id
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE a.user_id = $1
		  AND ($2::text IS NULL OR t.account_id = $2::text)
		  AND ($3::date IS NULL OR t.date >= $3::date)
		  AND ($4::date IS NULL OR t.date <= $4::date)
		ORDER BY t.date DESC`,
		userID, accountID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.TransactionRow
	for rows.Next() {
		var tr domain.TransactionRow
		var date pgtype.Date
		err := rows.Scan(&tr.ID, &date, &tr.Amount, &tr.Payee, &tr.Notes, &tr.AccountID,
			&tr.CategoryID, &tr.CreatedAt, &tr.UpdatedAt, &tr.Account, &tr.Category)
		if err != nil {
			return nil, err
		}
		tr.Date = date.Time
		result = append(result, &tr)
	}
	return result, rows.Err()
}

// Update replaces the mutable fields of a transaction owned by the given
// user. The ownership check and the write happen in one statement: the CTE
// computes the eligible row and the UPDATE touches only that row, so a
// concurrent ownership change cannot slip between check and act.
func (r *TransactionRepository) Update(userID, id string, data *domain.UpdateTransactionData) (*domain.Transaction, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		WITH eligible AS (
			SELECT t.id
			FROM transactions t
			INNER JOIN accounts a ON t.account_id = a.id
			WHERE t.id = $1 AND a.user_id = $2
		)
		UPDATE transactions
		SET date = $3, amount = $4, payee = $5, notes = $6, account_id = $7, category_id = $8, updated_at = now()
		WHERE id IN (SELECT id FROM eligible)
		RETURNING `+transactionColumns,
		id, userID, pgtype.Date{Time: data.Date, Valid: true}, data.Amount,
		data.Payee, data.Notes, data.AccountID, data.CategoryID)
	transaction, err := scanTransaction(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return transaction, nil
}

// Delete removes a transaction owned by the given user, atomically with the
// ownership check.
func (r *TransactionRepository) Delete(userID, id string) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `
		WITH eligible AS (
			SELECT t.id
			FROM transactions t
			INNER JOIN accounts a ON t.account_id = a.id
			WHERE t.id = $1 AND a.user_id = $2
		)
		DELETE FROM transactions
		WHERE id IN (SELECT id FROM eligible)`,
		id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// BulkDelete removes the owned subset of the requested ids and returns the
// ids actually removed. Ids that are absent or owned by another user are
// skipped, making the operation idempotent under retries.
func (r *TransactionRepository) BulkDelete(userID string, ids []string) ([]string, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		WITH eligible AS (
			SELECT t.id
			FROM transactions t
			INNER JOIN accounts a ON t.account_id = a.id
			WHERE t.id = ANY($1) AND a.user_id = $2
		)
		DELETE FROM transactions
		WHERE id IN (SELECT id FROM eligible)
		RETURNING id`,
		ids, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deleted := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		deleted = append(deleted, id)
	}
	return deleted, rows.Err()
}

// PeriodTotals sums income (non-negative amounts), expenses (negative
// amounts, kept negative) and the net remaining over the window. Empty
// windows yield zeros, never NULLs.
func (r *TransactionRepository) PeriodTotals(userID string, accountID *string, window domain.Window) (*domain.PeriodTotals, error) {
	ctx := context.Background()
	var totals domain.PeriodTotals
	err := r.pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN t.amount >= 0 THEN t.amount ELSE 0 END), 0)::bigint AS income,
			COALESCE(SUM(CASE WHEN t.amount < 0 THEN t.amount ELSE 0 END), 0)::bigint AS expenses,
			COALESCE(SUM(t.amount), 0)::bigint AS remaining
		FROM transactions t
		INNER JOIN accounts a ON t.account_id = a.id
		WHERE a.user_id = $1
		  AND ($2::text IS NULL OR t.account_id = $2::text)
		  AND t.date >= $3 AND t.date <= $4`,
		userID, accountID,
		pgtype.Date{Time: window.Start, Valid: true},
		pgtype.Date{Time: window.End, Valid: true},
	).Scan(&totals.Income, &totals.Expenses, &totals.Remaining)
	if err != nil {
		return nil, err
	}
	return &totals, nil
}

// CategoryTotals sums absolute expense amounts per category name over the
// window, ordered largest first. Uncategorized expenses do not appear; the
// inner join drops them.
func (r *TransactionRepository) CategoryTotals(userID string, accountID *string, window domain.Window) ([]domain.CategoryTotal, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT c.name, SUM(ABS(t.amount))::bigint AS value
		FROM transactions t
		INNER JOIN accounts a ON t.account_id = a.id
		INNER JOIN categories c ON t.category_id = c.id
		WHERE a.user_id = $1
		  AND ($2::text IS NULL OR t.account_id = $2::text)
		  AND t.amount < 0
		  AND t.date >= $3 AND t.date <= $4
		GROUP BY c.name
		ORDER BY SUM(ABS(t.amount)) DESC`,
		userID, accountID,
		pgtype.Date{Time: window.Start, Valid: true},
		pgtype.Date{Time: window.End, Valid: true})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []domain.CategoryTotal
	for rows.Next() {
		var t domain.CategoryTotal
		if err := rows.Scan(&t.Name, &t.Value); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// DailyTotals sums income and absolute expenses per day over the window,
// ascending. Only days with at least one transaction appear; the gap filler
// densifies the series afterwards.
func (r *TransactionRepository) DailyTotals(userID string, accountID *string, window domain.Window) ([]domain.DayTotal, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT t.date,
			COALESCE(SUM(CASE WHEN t.amount >= 0 THEN t.amount ELSE 0 END), 0)::bigint AS income,
			COALESCE(SUM(CASE WHEN t.amount < 0 THEN ABS(t.amount) ELSE 0 END), 0)::bigint AS expenses
		FROM transactions t
		INNER JOIN accounts a ON t.account_id = a.id
		WHERE a.user_id = $1
		  AND ($2::text IS NULL OR t.account_id = $2::text)
		  AND t.date >= $3 AND t.date <= $4
		GROUP BY t.date
		ORDER BY t.date`,
		userID, accountID,
		pgtype.Date{Time: window.Start, Valid: true},
		pgtype.Date{Time: window.End, Valid: true})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []domain.DayTotal
	for rows.Next() {
		var t domain.DayTotal
		var date pgtype.Date
		if err := rows.Scan(&date, &t.Income, &t.Expenses); err != nil {
			return nil, err
		}
		t.Date = date.Time
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
