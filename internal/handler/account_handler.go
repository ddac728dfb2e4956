package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/tallyapp/tally-backend/internal/domain"
	"github.com/tallyapp/tally-backend/internal/middleware"
	"github.com/tallyapp/tally-backend/internal/service"
)

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	accountService *service.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// NameRequest represents a create/rename request body
type NameRequest struct {
	Name string `json:"name"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func mapNameError(c echo.Context, err error) (error, bool) {
	if errors.Is(err, domain.ErrNameRequired) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name is required"},
		}), true
	}
	if errors.Is(err, domain.ErrNameTooLong) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name must be 255 characters or less"},
		}), true
	}
	return nil, false
}

// CreateAccount handles POST /api/v1/accounts
func (h *AccountHandler) CreateAccount(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req NameRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	account, err := h.accountService.CreateAccount(userID, req.Name)
	if err != nil {
		if resp, ok := mapNameError(c, err); ok {
			return resp
		}
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to create account")
		return NewInternalError(c, "Failed to create account")
	}

	log.Info().Str("user_id", userID).Str("account_id", account.ID).Str("name", account.Name).Msg("Account created")
	return c.JSON(http.StatusCreated, toAccountResponse(account))
}

// GetAccounts handles GET /api/v1/accounts
func (h *AccountHandler) GetAccounts(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	accounts, err := h.accountService.GetAccounts(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to get accounts")
		return NewInternalError(c, "Failed to get accounts")
	}

	response := make([]AccountResponse, len(accounts))
	for i, account := range accounts {
		response[i] = toAccountResponse(account)
	}
	return c.JSON(http.StatusOK, response)
}

// UpdateAccount handles PUT /api/v1/accounts/:id
func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req NameRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	account, err := h.accountService.UpdateAccount(userID, c.Param("id"), req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return NewNotFoundError(c, "Account not found")
		}
		if resp, ok := mapNameError(c, err); ok {
			return resp
		}
		log.Error().Err(err).Str("user_id", userID).Str("account_id", c.Param("id")).Msg("Failed to update account")
		return NewInternalError(c, "Failed to update account")
	}

	log.Info().Str("user_id", userID).Str("account_id", account.ID).Str("name", account.Name).Msg("Account updated")
	return c.JSON(http.StatusOK, toAccountResponse(account))
}

// DeleteAccount handles DELETE /api/v1/accounts/:id
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id := c.Param("id")
	if err := h.accountService.DeleteAccount(userID, id); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return NewNotFoundError(c, "Account not found")
		}
		log.Error().Err(err).Str("user_id", userID).Str("account_id", id).Msg("Failed to delete account")
		return NewInternalError(c, "Failed to delete account")
	}

	log.Info().Str("user_id", userID).Str("account_id", id).Msg("Account deleted")
	return c.NoContent(http.StatusNoContent)
}

// BulkDeleteAccounts handles POST /api/v1/accounts/bulk-delete
func (h *AccountHandler) BulkDeleteAccounts(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req BulkDeleteRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	deleted, err := h.accountService.BulkDeleteAccounts(userID, req.IDs)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to bulk delete accounts")
		return NewInternalError(c, "Failed to bulk delete accounts")
	}

	log.Info().Str("user_id", userID).Int("requested", len(req.IDs)).Int("deleted", len(deleted)).Msg("Accounts bulk deleted")
	return c.JSON(http.StatusOK, BulkDeleteResponse{Deleted: deleted})
}

func toAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID,
		Name:      account.Name,
		CreatedAt: account.CreatedAt.Format(time.RFC3339),
		UpdatedAt: account.UpdatedAt.Format(time.RFC3339),
	}
}
