package domain

import (
	"math"
	"time"

	"github.com/tallyapp/tally-backend/internal/util"
)

// DefaultPeriodDays is the window length used when the caller omits a range.
const DefaultPeriodDays = 30

const (
	// TopCategoryCount is the number of categories kept verbatim before the
	// remainder is folded into a single bucket.
	TopCategoryCount = 3
	// OtherCategoryName labels the folded remainder bucket.
	OtherCategoryName = "Other"
	// PlaceholderCategoryName is the single entry returned when the window
	// contains no categorized expenses.
	PlaceholderCategoryName = "no activity in period"
)

// Window is an inclusive calendar-date range scoping aggregation.
// Start is never after End.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days returns the whole-day span between Start and End.
func (w Window) Days() int {
	return util.DaysBetween(w.Start, w.End)
}

// PeriodTotals holds the three period sums in milliunits. Expenses stays
// negative; Remaining is the net of all amounts.
type PeriodTotals struct {
	Income    int64 `json:"income"`
	Expenses  int64 `json:"expenses"`
	Remaining int64 `json:"remaining"`
}

// CategoryTotal is an absolute expense sum for one category name.
type CategoryTotal struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// DayTotal holds one day's income and absolute expense sums.
type DayTotal struct {
	Date     time.Time `json:"date"`
	Income   int64     `json:"income"`
	Expenses int64     `json:"expenses"`
}

// SummaryResult is the assembled summary response. Monetary fields are
// milliunits; the change fields are whole percentage points.
type SummaryResult struct {
	Remaining       int64           `json:"remaining"`
	RemainingChange int64           `json:"remainingChange"`
	Income          int64           `json:"income"`
	IncomeChange    int64           `json:"incomeChange"`
	Expenses        int64           `json:"expenses"`
	ExpensesChange  int64           `json:"expensesChange"`
	Categories      []CategoryTotal `json:"categories"`
	Days            []DayTotal      `json:"days"`
}

// ResolveWindow derives the reporting window and its comparison window from
// optional bounds. Missing bounds default to a trailing DefaultPeriodDays-day
// window ending at now. The comparison window is the primary window shifted
// backward by its own day length, so both always have identical duration.
func ResolveWindow(from, to *time.Time, now time.Time) (current, previous Window) {
	end := util.StartOfDay(now)
	if to != nil {
		end = util.StartOfDay(*to)
	}
	start := end.AddDate(0, 0, -DefaultPeriodDays)
	if from != nil {
		start = util.StartOfDay(*from)
	}
	if start.After(end) {
		start = end
	}

	length := util.DaysBetween(start, end)
	current = Window{Start: start, End: end}
	previous = Window{
		Start: start.AddDate(0, 0, -length),
		End:   end.AddDate(0, 0, -length),
	}
	return current, previous
}

// PercentageChange converts a (current, previous) pair into a signed whole
// percentage. A zero base collapses to 100 for any positive arrival and 0
// otherwise; callers must not assume ratio semantics near zero.
func PercentageChange(current, previous int64) int64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	ratio := float64(current-previous) / math.Abs(float64(previous))
	return int64(math.Round(ratio * 100))
}

// ConsolidateCategories reduces a descending-ordered category list to the top
// TopCategoryCount entries plus an "Other" bucket holding the remainder sum.
// The bucket is only appended when the remainder is strictly positive. An
// empty input yields the single placeholder entry.
func ConsolidateCategories(totals []CategoryTotal) []CategoryTotal {
	if len(totals) == 0 {
		return []CategoryTotal{{Name: PlaceholderCategoryName, Value: 0}}
	}
	if len(totals) <= TopCategoryCount {
		return append([]CategoryTotal(nil), totals...)
	}

	result := append([]CategoryTotal(nil), totals[:TopCategoryCount]...)
	var rest int64
	for _, t := range totals[TopCategoryCount:] {
		rest += t.Value
	}
	if rest > 0 {
		result = append(result, CategoryTotal{Name: OtherCategoryName, Value: rest})
	}
	return result
}

// FillMissingDays expands sparse per-day totals into one entry per calendar
// day of the window, ascending, zero-filling days with no activity. The
// output always has exactly window.Days()+1 entries.
func FillMissingDays(sparse []DayTotal, window Window) []DayTotal {
	byDate := make(map[time.Time]DayTotal, len(sparse))
	for _, d := range sparse {
		byDate[util.StartOfDay(d.Date)] = d
	}

	start := util.StartOfDay(window.Start)
	end := util.StartOfDay(window.End)
	days := make([]DayTotal, 0, window.Days()+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if hit, ok := byDate[d]; ok {
			days = append(days, DayTotal{Date: d, Income: hit.Income, Expenses: hit.Expenses})
		} else {
			days = append(days, DayTotal{Date: d})
		}
	}
	return days
}
