package handler

import (
	"context"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/tallyapp/tally-backend/internal/domain"
	"github.com/tallyapp/tally-backend/internal/middleware"
	"github.com/tallyapp/tally-backend/internal/service"
	"github.com/tallyapp/tally-backend/internal/testutil"
	"github.com/tallyapp/tally-backend/internal/websocket"
)

// setupAuthContext injects an authenticated user id the way the auth
// middleware does
func setupAuthContext(c echo.Context, userID string) {
	ctx := context.WithValue(c.Request().Context(), middleware.UserIDKey, userID)
	c.SetRequest(c.Request().WithContext(ctx))
}

type fixture struct {
	accountRepo     *testutil.MockAccountRepository
	categoryRepo    *testutil.MockCategoryRepository
	transactionRepo *testutil.MockTransactionRepository

	accountService     *service.AccountService
	categoryService    *service.CategoryService
	transactionService *service.TransactionService
	summaryService     *service.SummaryService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	accountRepo := testutil.NewMockAccountRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	transactionRepo := testutil.NewMockTransactionRepository(accountRepo, categoryRepo)
	publisher := &websocket.NoOpPublisher{}

	return &fixture{
		accountRepo:        accountRepo,
		categoryRepo:       categoryRepo,
		transactionRepo:    transactionRepo,
		accountService:     service.NewAccountService(accountRepo, publisher),
		categoryService:    service.NewCategoryService(categoryRepo, publisher),
		transactionService: service.NewTransactionService(transactionRepo, accountRepo, categoryRepo, publisher),
		summaryService:     service.NewSummaryService(transactionRepo),
	}
}

func (f *fixture) addAccount(userID, name string) *domain.Account {
	return f.accountRepo.AddAccount(&domain.Account{UserID: userID, Name: name})
}
