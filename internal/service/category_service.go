package service

import (
	"github.com/tallyapp/tally-backend/internal/domain"
	"github.com/tallyapp/tally-backend/internal/websocket"
)

// CategoryService handles category-related business logic
type CategoryService struct {
	categoryRepo domain.CategoryRepository
	events       websocket.EventPublisher
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository, events websocket.EventPublisher) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, events: events}
}

// CreateCategory creates a new category for the user
func (s *CategoryService) CreateCategory(userID, name string) (*domain.Category, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}
	return s.categoryRepo.Create(&domain.Category{UserID: userID, Name: name})
}

// GetCategories lists the user's categories
func (s *CategoryService) GetCategories(userID string) ([]*domain.Category, error) {
	return s.categoryRepo.GetAllByUser(userID)
}

// UpdateCategory renames an owned category
func (s *CategoryService) UpdateCategory(userID, id, name string) (*domain.Category, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}
	return s.categoryRepo.Update(userID, id, name)
}

// DeleteCategory deletes an owned category
func (s *CategoryService) DeleteCategory(userID, id string) error {
	if err := s.categoryRepo.Delete(userID, id); err != nil {
		return err
	}
	s.events.Publish(userID, websocket.CategoryDeleted(map[string]string{"id": id}))
	return nil
}

// BulkDeleteCategories deletes the owned subset of the requested ids and
// returns the ids actually removed.
func (s *CategoryService) BulkDeleteCategories(userID string, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return []string{}, nil
	}
	deleted, err := s.categoryRepo.BulkDelete(userID, ids)
	if err != nil {
		return nil, err
	}
	if len(deleted) > 0 {
		s.events.Publish(userID, websocket.CategoryDeleted(map[string][]string{"ids": deleted}))
	}
	return deleted, nil
}
