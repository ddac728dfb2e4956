package service

import (
	"strings"
	"time"

	"github.com/tallyapp/tally-backend/internal/domain"
	"github.com/tallyapp/tally-backend/internal/websocket"
)

// TransactionService handles transaction-related business logic
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	accountRepo     domain.AccountRepository
	categoryRepo    domain.CategoryRepository
	events          websocket.EventPublisher
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(
	transactionRepo domain.TransactionRepository,
	accountRepo domain.AccountRepository,
	categoryRepo domain.CategoryRepository,
	events websocket.EventPublisher,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		events:          events,
	}
}

// CreateTransactionInput holds the input for creating a transaction
type CreateTransactionInput struct {
	Date       time.Time
	Amount     int64
	Payee      string
	Notes      *string
	AccountID  string
	CategoryID *string
}

// validate normalizes and checks the input fields, returning the cleaned
// payee and notes. Account and category ownership is verified against the
// caller so a transaction can never attach to another user's account.
func (s *TransactionService) validate(userID string, input CreateTransactionInput) (payee string, notes *string, err error) {
	payee = strings.TrimSpace(input.Payee)
	if payee == "" {
		return "", nil, domain.ErrPayeeRequired
	}
	if len(payee) > domain.MaxPayeeLength {
		return "", nil, domain.ErrPayeeTooLong
	}

	if input.Notes != nil {
		trimmed := strings.TrimSpace(*input.Notes)
		if trimmed != "" {
			if len(trimmed) > domain.MaxNotesLength {
				return "", nil, domain.ErrNotesTooLong
			}
			notes = &trimmed
		}
	}

	if _, err := s.accountRepo.GetByID(userID, input.AccountID); err != nil {
		return "", nil, domain.ErrAccountNotFound
	}
	if input.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(userID, *input.CategoryID); err != nil {
			return "", nil, domain.ErrCategoryNotFound
		}
	}
	return payee, notes, nil
}

// CreateTransaction creates a new transaction with validation
func (s *TransactionService) CreateTransaction(userID string, input CreateTransactionInput) (*domain.Transaction, error) {
	payee, notes, err := s.validate(userID, input)
	if err != nil {
		return nil, err
	}

	created, err := s.transactionRepo.Create(&domain.Transaction{
		Date:       input.Date,
		Amount:     input.Amount,
		Payee:      payee,
		Notes:      notes,
		AccountID:  input.AccountID,
		CategoryID: input.CategoryID,
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(userID, websocket.TransactionCreated(created))
	return created, nil
}

// BulkCreateTransactions validates and creates a batch of transactions in
// one atomic store operation.
func (s *TransactionService) BulkCreateTransactions(userID string, inputs []CreateTransactionInput) ([]*domain.Transaction, error) {
	if len(inputs) == 0 {
		return []*domain.Transaction{}, nil
	}

	transactions := make([]*domain.Transaction, 0, len(inputs))
	for _, input := range inputs {
		payee, notes, err := s.validate(userID, input)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, &domain.Transaction{
			Date:       input.Date,
			Amount:     input.Amount,
			Payee:      payee,
			Notes:      notes,
			AccountID:  input.AccountID,
			CategoryID: input.CategoryID,
		})
	}

	created, err := s.transactionRepo.BulkCreate(transactions)
	if err != nil {
		return nil, err
	}

	for _, t := range created {
		s.events.Publish(userID, websocket.TransactionCreated(t))
	}
	return created, nil
}

// GetTransactions lists the user's transactions with optional filters
func (s *TransactionService) GetTransactions(userID string, filters *domain.TransactionFilters) ([]*domain.TransactionRow, error) {
	return s.transactionRepo.GetByUser(userID, filters)
}

// GetTransactionByID retrieves a single transaction owned by the user
func (s *TransactionService) GetTransactionByID(userID, id string) (*domain.Transaction, error) {
	return s.transactionRepo.GetByID(userID, id)
}

// UpdateTransaction replaces the mutable fields of an owned transaction
func (s *TransactionService) UpdateTransaction(userID, id string, input CreateTransactionInput) (*domain.Transaction, error) {
	payee, notes, err := s.validate(userID, input)
	if err != nil {
		return nil, err
	}

	updated, err := s.transactionRepo.Update(userID, id, &domain.UpdateTransactionData{
		Date:       input.Date,
		Amount:     input.Amount,
		Payee:      payee,
		Notes:      notes,
		AccountID:  input.AccountID,
		CategoryID: input.CategoryID,
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(userID, websocket.TransactionUpdated(updated))
	return updated, nil
}

// DeleteTransaction deletes an owned transaction
func (s *TransactionService) DeleteTransaction(userID, id string) error {
	if err := s.transactionRepo.Delete(userID, id); err != nil {
		return err
	}
	s.events.Publish(userID, websocket.TransactionDeleted(map[string]string{"id": id}))
	return nil
}

// BulkDeleteTransactions deletes the owned subset of the requested ids and
// returns the ids actually removed. An empty subset is not an error.
func (s *TransactionService) BulkDeleteTransactions(userID string, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return []string{}, nil
	}
	deleted, err := s.transactionRepo.BulkDelete(userID, ids)
	if err != nil {
		return nil, err
	}
	if len(deleted) > 0 {
		s.events.Publish(userID, websocket.TransactionDeleted(map[string][]string{"ids": deleted}))
	}
	return deleted, nil
}
