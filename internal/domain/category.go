package domain

import "time"

// Category is an optional label for transactions. Ownership mirrors Account;
// category filtering never substitutes for the account ownership check.
type Category struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CategoryRepository interface {
	Create(category *Category) (*Category, error)
	GetByID(userID, id string) (*Category, error)
	GetAllByUser(userID string) ([]*Category, error)
	Update(userID, id, name string) (*Category, error)
	Delete(userID, id string) error
	BulkDelete(userID string, ids []string) ([]string, error)
}
