package domain

import "time"

// Account is a ledger account owned by exactly one user. Every transaction
// belongs to an account, which is how ownership is established.
type Account struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type AccountRepository interface {
	Create(account *Account) (*Account, error)
	GetByID(userID, id string) (*Account, error)
	GetAllByUser(userID string) ([]*Account, error)
	Update(userID, id, name string) (*Account, error)
	Delete(userID, id string) error
	BulkDelete(userID string, ids []string) ([]string, error)
}
