package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tallyapp/tally-backend/internal/domain"
)

// AccountRepository implements domain.AccountRepository using PostgreSQL
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const accountColumns = `id, user_id, name, created_at, updated_at`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	if err := row.Scan(&a.ID, &a.UserID, &a.Name, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new account with a generated id
func (r *AccountRepository) Create(account *domain.Account) (*domain.Account, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (id, user_id, name)
		VALUES ($1, $2, $3)
		RETURNING `+accountColumns,
		uuid.NewString(), account.UserID, account.Name)
	return scanAccount(row)
}

// GetByID retrieves an account owned by the given user
func (r *AccountRepository) GetByID(userID, id string) (*domain.Account, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE id = $1 AND user_id = $2`,
		id, userID)
	account, err := scanAccount(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// GetAllByUser retrieves all accounts owned by the given user
func (r *AccountRepository) GetAllByUser(userID string) ([]*domain.Account, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE user_id = $1
		ORDER BY name`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// Update renames an account owned by the given user
func (r *AccountRepository) Update(userID, id, name string) (*domain.Account, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		UPDATE accounts
		SET name = $3, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING `+accountColumns,
		id, userID, name)
	account, err := scanAccount(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// Delete removes an account owned by the given user
func (r *AccountRepository) Delete(userID, id string) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM accounts
		WHERE id = $1 AND user_id = $2`,
		id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// BulkDelete removes the requested accounts owned by the given user and
// returns the ids actually removed. Ids that do not exist or belong to
// another user are silently skipped.
func (r *AccountRepository) BulkDelete(userID string, ids []string) ([]string, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		DELETE FROM accounts
		WHERE id = ANY($1) AND user_id = $2
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
