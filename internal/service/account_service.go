package service

import (
	"strings"

	"github.com/tallyapp/tally-backend/internal/domain"
	"github.com/tallyapp/tally-backend/internal/websocket"
)

// AccountService handles account-related business logic
type AccountService struct {
	accountRepo domain.AccountRepository
	events      websocket.EventPublisher
}

// NewAccountService creates a new AccountService
func NewAccountService(accountRepo domain.AccountRepository, events websocket.EventPublisher) *AccountService {
	return &AccountService{accountRepo: accountRepo, events: events}
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return "", domain.ErrNameTooLong
	}
	return name, nil
}

// CreateAccount creates a new account for the user
func (s *AccountService) CreateAccount(userID, name string) (*domain.Account, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}
	return s.accountRepo.Create(&domain.Account{UserID: userID, Name: name})
}

// GetAccounts lists the user's accounts
func (s *AccountService) GetAccounts(userID string) ([]*domain.Account, error) {
	return s.accountRepo.GetAllByUser(userID)
}

// UpdateAccount renames an owned account
func (s *AccountService) UpdateAccount(userID, id, name string) (*domain.Account, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}
	return s.accountRepo.Update(userID, id, name)
}

// DeleteAccount deletes an owned account
func (s *AccountService) DeleteAccount(userID, id string) error {
	if err := s.accountRepo.Delete(userID, id); err != nil {
		return err
	}
	s.events.Publish(userID, websocket.AccountDeleted(map[string]string{"id": id}))
	return nil
}

// BulkDeleteAccounts deletes the owned subset of the requested ids and
// returns the ids actually removed.
func (s *AccountService) BulkDeleteAccounts(userID string, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return []string{}, nil
	}
	deleted, err := s.accountRepo.BulkDelete(userID, ids)
	if err != nil {
		return nil, err
	}
	if len(deleted) > 0 {
		s.events.Publish(userID, websocket.AccountDeleted(map[string][]string{"ids": deleted}))
	}
	return deleted, nil
}
