package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/tallyapp/tally-backend/internal/domain"
	"github.com/tallyapp/tally-backend/internal/middleware"
	"github.com/tallyapp/tally-backend/internal/money"
	"github.com/tallyapp/tally-backend/internal/service"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// TransactionRequest represents the create/update transaction request body.
// Amount is in milliunits.
type TransactionRequest struct {
	Date       string  `json:"date"`
	Amount     int64   `json:"amount"`
	Payee      string  `json:"payee"`
	Notes      *string `json:"notes,omitempty"`
	AccountID  string  `json:"accountId"`
	CategoryID *string `json:"categoryId,omitempty"`
}

// BulkCreateTransactionsRequest represents the bulk create request body
type BulkCreateTransactionsRequest struct {
	Transactions []TransactionRequest `json:"transactions"`
}

// BulkDeleteRequest represents a bulk delete request body
type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// BulkDeleteResponse reports the ids actually removed
type BulkDeleteResponse struct {
	Deleted []string `json:"deleted"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"`
	Amount        int64   `json:"amount"`
	AmountDisplay string  `json:"amountDisplay"`
	Payee         string  `json:"payee"`
	Notes         *string `json:"notes,omitempty"`
	AccountID     string  `json:"accountId"`
	Account       *string `json:"account,omitempty"`
	CategoryID    *string `json:"categoryId,omitempty"`
	Category      *string `json:"category,omitempty"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

func (r TransactionRequest) toInput() (service.CreateTransactionInput, []ValidationError) {
	if r.Date == "" {
		return service.CreateTransactionInput{}, []ValidationError{
			{Field: "date", Message: "Date is required"},
		}
	}
	date, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return service.CreateTransactionInput{}, []ValidationError{
			{Field: "date", Message: "Must be a date in YYYY-MM-DD format"},
		}
	}
	if r.AccountID == "" {
		return service.CreateTransactionInput{}, []ValidationError{
			{Field: "accountId", Message: "Account is required"},
		}
	}
	return service.CreateTransactionInput{
		Date:       date,
		Amount:     r.Amount,
		Payee:      r.Payee,
		Notes:      r.Notes,
		AccountID:  r.AccountID,
		CategoryID: r.CategoryID,
	}, nil
}

// mapTransactionError translates domain errors into problem responses.
// Unknown errors fall through to a logged 500.
func mapTransactionError(c echo.Context, err error, userID string) error {
	switch {
	case errors.Is(err, domain.ErrPayeeRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "payee", Message: "Payee is required"},
		})
	case errors.Is(err, domain.ErrPayeeTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "payee", Message: "Payee must be 255 characters or less"},
		})
	case errors.Is(err, domain.ErrNotesTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "notes", Message: "Notes must be 1000 characters or less"},
		})
	case errors.Is(err, domain.ErrAccountNotFound):
		return NewNotFoundError(c, "Account not found")
	case errors.Is(err, domain.ErrCategoryNotFound):
		return NewNotFoundError(c, "Category not found")
	case errors.Is(err, domain.ErrTransactionNotFound):
		return NewNotFoundError(c, "Transaction not found")
	}
	log.Error().Err(err).Str("user_id", userID).Msg("Transaction operation failed")
	return NewInternalError(c, "Transaction operation failed")
}

// CreateTransaction handles POST /api/v1/transactions
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, fieldErrs := req.toInput()
	if fieldErrs != nil {
		return NewValidationError(c, "Validation failed", fieldErrs)
	}

	transaction, err := h.transactionService.CreateTransaction(userID, input)
	if err != nil {
		return mapTransactionError(c, err, userID)
	}

	log.Info().Str("user_id", userID).Str("transaction_id", transaction.ID).Msg("Transaction created")
	return c.JSON(http.StatusCreated, toTransactionResponse(transaction))
}

// BulkCreateTransactions handles POST /api/v1/transactions/bulk-create
func (h *TransactionHandler) BulkCreateTransactions(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req BulkCreateTransactionsRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	inputs := make([]service.CreateTransactionInput, 0, len(req.Transactions))
	for _, tr := range req.Transactions {
		input, fieldErrs := tr.toInput()
		if fieldErrs != nil {
			return NewValidationError(c, "Validation failed", fieldErrs)
		}
		inputs = append(inputs, input)
	}

	created, err := h.transactionService.BulkCreateTransactions(userID, inputs)
	if err != nil {
		return mapTransactionError(c, err, userID)
	}

	response := make([]TransactionResponse, len(created))
	for i, t := range created {
		response[i] = toTransactionResponse(t)
	}

	log.Info().Str("user_id", userID).Int("count", len(created)).Msg("Transactions bulk created")
	return c.JSON(http.StatusCreated, response)
}

// GetTransactions handles GET /api/v1/transactions
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var filters domain.TransactionFilters
	if accountID := c.QueryParam("accountId"); accountID != "" {
		filters.AccountID = &accountID
	}
	if raw := c.QueryParam("from"); raw != "" {
		from, err := time.Parse(dateLayout, raw)
		if err != nil {
			return NewValidationError(c, "Invalid date range", []ValidationError{
				{Field: "from", Message: "Must be a date in YYYY-MM-DD format"},
			})
		}
		filters.StartDate = &from
	}
	if raw := c.QueryParam("to"); raw != "" {
		to, err := time.Parse(dateLayout, raw)
		if err != nil {
			return NewValidationError(c, "Invalid date range", []ValidationError{
				{Field: "to", Message: "Must be a date in YYYY-MM-DD format"},
			})
		}
		filters.EndDate = &to
	}

	rows, err := h.transactionService.GetTransactions(userID, &filters)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to get transactions")
		return NewInternalError(c, "Failed to get transactions")
	}

	response := make([]TransactionResponse, len(rows))
	for i, row := range rows {
		response[i] = toTransactionRowResponse(row)
	}
	return c.JSON(http.StatusOK, response)
}

// GetTransaction handles GET /api/v1/transactions/:id
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	transaction, err := h.transactionService.GetTransactionByID(userID, c.Param("id"))
	if err != nil {
		return mapTransactionError(c, err, userID)
	}
	return c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

// UpdateTransaction handles PUT /api/v1/transactions/:id
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, fieldErrs := req.toInput()
	if fieldErrs != nil {
		return NewValidationError(c, "Validation failed", fieldErrs)
	}

	transaction, err := h.transactionService.UpdateTransaction(userID, c.Param("id"), input)
	if err != nil {
		return mapTransactionError(c, err, userID)
	}

	log.Info().Str("user_id", userID).Str("transaction_id", transaction.ID).Msg("Transaction updated")
	return c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

// DeleteTransaction handles DELETE /api/v1/transactions/:id
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id := c.Param("id")
	if err := h.transactionService.DeleteTransaction(userID, id); err != nil {
		return mapTransactionError(c, err, userID)
	}

	log.Info().Str("user_id", userID).Str("transaction_id", id).Msg("Transaction deleted")
	return c.NoContent(http.StatusNoContent)
}

// BulkDeleteTransactions handles POST /api/v1/transactions/bulk-delete.
// Only the caller's transactions are removed; foreign or unknown ids are
// silently skipped and the response lists what was actually deleted.
func (h *TransactionHandler) BulkDeleteTransactions(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req BulkDeleteRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	deleted, err := h.transactionService.BulkDeleteTransactions(userID, req.IDs)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to bulk delete transactions")
		return NewInternalError(c, "Failed to bulk delete transactions")
	}

	log.Info().Str("user_id", userID).Int("requested", len(req.IDs)).Int("deleted", len(deleted)).Msg("Transactions bulk deleted")
	return c.JSON(http.StatusOK, BulkDeleteResponse{Deleted: deleted})
}

func toTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            t.ID,
		Date:          t.Date.Format(dateLayout),
		Amount:        t.Amount,
		AmountDisplay: money.FromMilliunits(t.Amount).StringFixed(2),
		Payee:         t.Payee,
		Notes:         t.Notes,
		AccountID:     t.AccountID,
		CategoryID:    t.CategoryID,
		CreatedAt:     t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     t.UpdatedAt.Format(time.RFC3339),
	}
}

func toTransactionRowResponse(row *domain.TransactionRow) TransactionResponse {
	resp := toTransactionResponse(&row.Transaction)
	account := row.Account
	resp.Account = &account
	resp.Category = row.Category
	return resp
}
