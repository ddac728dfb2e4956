package service

import (
	"time"

	"github.com/tallyapp/tally-backend/internal/domain"
	"golang.org/x/sync/errgroup"
)

// SummaryService assembles the period-over-period financial summary.
type SummaryService struct {
	transactionRepo domain.TransactionRepository
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(transactionRepo domain.TransactionRepository) *SummaryService {
	return &SummaryService{transactionRepo: transactionRepo}
}

// SummaryInput holds the optional filters for a summary request
type SummaryInput struct {
	From      *time.Time
	To        *time.Time
	AccountID *string
}

// GetSummary resolves the reporting and comparison windows, aggregates both
// periods, and assembles totals, deltas, the consolidated category breakdown
// and the gap-filled daily series. The two period aggregations are
// independent and run concurrently.
func (s *SummaryService) GetSummary(userID string, input SummaryInput) (*domain.SummaryResult, error) {
	current, previous := domain.ResolveWindow(input.From, input.To, time.Now().UTC())

	var currentTotals, previousTotals *domain.PeriodTotals
	var g errgroup.Group
	g.Go(func() error {
		totals, err := s.transactionRepo.PeriodTotals(userID, input.AccountID, current)
		if err != nil {
			return err
		}
		currentTotals = totals
		return nil
	})
	g.Go(func() error {
		totals, err := s.transactionRepo.PeriodTotals(userID, input.AccountID, previous)
		if err != nil {
			return err
		}
		previousTotals = totals
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	categories, err := s.transactionRepo.CategoryTotals(userID, input.AccountID, current)
	if err != nil {
		return nil, err
	}

	activeDays, err := s.transactionRepo.DailyTotals(userID, input.AccountID, current)
	if err != nil {
		return nil, err
	}

	return &domain.SummaryResult{
		Remaining:       currentTotals.Remaining,
		RemainingChange: domain.PercentageChange(currentTotals.Remaining, previousTotals.Remaining),
		Income:          currentTotals.Income,
		IncomeChange:    domain.PercentageChange(currentTotals.Income, previousTotals.Income),
		Expenses:        currentTotals.Expenses,
		ExpensesChange:  domain.PercentageChange(currentTotals.Expenses, previousTotals.Expenses),
		Categories:      domain.ConsolidateCategories(categories),
		Days:            domain.FillMissingDays(activeDays, current),
	}, nil
}
