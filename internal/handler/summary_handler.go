package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/tallyapp/tally-backend/internal/domain"
	"github.com/tallyapp/tally-backend/internal/middleware"
	"github.com/tallyapp/tally-backend/internal/service"
)

// dateLayout is the calendar-date format accepted on query parameters
const dateLayout = "2006-01-02"

// SummaryHandler handles summary-related HTTP requests
type SummaryHandler struct {
	summaryService *service.SummaryService
}

// NewSummaryHandler creates a new SummaryHandler
func NewSummaryHandler(summaryService *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// CategoryTotalResponse represents one category slice in the summary
type CategoryTotalResponse struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// DayTotalResponse represents one day of the gap-filled series
type DayTotalResponse struct {
	Date     string `json:"date"`
	Income   int64  `json:"income"`
	Expenses int64  `json:"expenses"`
}

// SummaryResponse represents the summary API response. Monetary values are
// milliunits; change values are whole percentage points.
type SummaryResponse struct {
	Remaining       int64                   `json:"remaining"`
	RemainingChange int64                   `json:"remainingChange"`
	Income          int64                   `json:"income"`
	IncomeChange    int64                   `json:"incomeChange"`
	Expenses        int64                   `json:"expenses"`
	ExpensesChange  int64                   `json:"expensesChange"`
	Categories      []CategoryTotalResponse `json:"categories"`
	Days            []DayTotalResponse      `json:"days"`
}

// GetSummary handles GET /api/v1/summary
func (h *SummaryHandler) GetSummary(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var input service.SummaryInput

	if raw := c.QueryParam("from"); raw != "" {
		from, err := time.Parse(dateLayout, raw)
		if err != nil {
			return NewValidationError(c, "Invalid date range", []ValidationError{
				{Field: "from", Message: "Must be a date in YYYY-MM-DD format"},
			})
		}
		input.From = &from
	}
	if raw := c.QueryParam("to"); raw != "" {
		to, err := time.Parse(dateLayout, raw)
		if err != nil {
			return NewValidationError(c, "Invalid date range", []ValidationError{
				{Field: "to", Message: "Must be a date in YYYY-MM-DD format"},
			})
		}
		input.To = &to
	}
	if accountID := c.QueryParam("accountId"); accountID != "" {
		input.AccountID = &accountID
	}

	result, err := h.summaryService.GetSummary(userID, input)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to build summary")
		return NewInternalError(c, "Failed to build summary")
	}

	return c.JSON(http.StatusOK, toSummaryResponse(result))
}

func toSummaryResponse(result *domain.SummaryResult) SummaryResponse {
	categories := make([]CategoryTotalResponse, len(result.Categories))
	for i, cat := range result.Categories {
		categories[i] = CategoryTotalResponse{Name: cat.Name, Value: cat.Value}
	}

	days := make([]DayTotalResponse, len(result.Days))
	for i, day := range result.Days {
		days[i] = DayTotalResponse{
			Date:     day.Date.Format(dateLayout),
			Income:   day.Income,
			Expenses: day.Expenses,
		}
	}

	return SummaryResponse{
		Remaining:       result.Remaining,
		RemainingChange: result.RemainingChange,
		Income:          result.Income,
		IncomeChange:    result.IncomeChange,
		Expenses:        result.Expenses,
		ExpensesChange:  result.ExpensesChange,
		Categories:      categories,
		Days:            days,
	}
}
