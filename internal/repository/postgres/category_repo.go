package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tallyapp/tally-backend/internal/domain"
)

// CategoryRepository implements domain.CategoryRepository using PostgreSQL
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

const categoryColumns = `id, user_id, name, created_at, updated_at`

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new category with a generated id
func (r *CategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO categories (id, user_id, name)
		VALUES ($1, $2, $3)
		RETURNING `+categoryColumns,
		uuid.NewString(), category.UserID, category.Name)
	return scanCategory(row)
}

// GetByID retrieves a category owned by the given user
func (r *CategoryRepository) GetByID(userID, id string) (*domain.Category, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE id = $1 AND user_id = $2`,
		id, userID)
	category, err := scanCategory(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// GetAllByUser retrieves all categories owned by the given user
func (r *CategoryRepository) GetAllByUser(userID string) ([]*domain.Category, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE user_id = $1
		ORDER BY name`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// Update renames a category owned by the given user
func (r *CategoryRepository) Update(userID, id, name string) (*domain.Category, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		UPDATE categories
		SET name = $3, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING `+categoryColumns,
		id, userID, name)
	category, err := scanCategory(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// Delete removes a category owned by the given user
func (r *CategoryRepository) Delete(userID, id string) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM categories
		WHERE id = $1 AND user_id = $2`,
		id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// BulkDelete removes the requested categories owned by the given user and
// returns the ids actually removed.
func (r *CategoryRepository) BulkDelete(userID string, ids []string) ([]string, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		DELETE FROM categories
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
