package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/Dan9191/finsight/internal/models"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
	hoursPerDay = 24
)

// totals splits transactions into total income and total (absolute) expenses.
func totals(txs []models.Transaction) (income, expenses float64) {
	for _, tx := range txs {
		switch {
		case tx.Amount > 0:
			income += tx.Amount
		case tx.Amount < 0:
			expenses += -tx.Amount
		}
	}
	return income, expenses
}

func netBalance(txs []models.Transaction) float64 {
	var sum float64
	for _, tx := range txs {
		sum += tx.Amount
	}
	return sum
}

// calendarDay truncates t to midnight UTC of its calendar date.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dateBounds(txs []models.Transaction) (first, last time.Time) {
	for i, tx := range txs {
		d := calendarDay(tx.Date)
		if i == 0 || d.Before(first) {
			first = d
		}
		if i == 0 || d.After(last) {
			last = d
		}
	}
	return first, last
}

// spanDays is the number of whole days between the earliest and latest transaction.
func spanDays(txs []models.Transaction) int {
	if len(txs) == 0 {
		return 0
	}
	first, last := dateBounds(txs)
	return daysBetween(first, last)
}

func daysBetween(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / hoursPerDay))
}

// floorDays counts the whole days in d, rounding toward negative infinity.
func floorDays(d time.Duration) int {
	return int(math.Floor(d.Hours() / hoursPerDay))
}

// monthsOfData converts the data span into months, treating a same-day
// history as one month and never returning less than one.
func monthsOfData(txs []models.Transaction) float64 {
	span := spanDays(txs)
	if span == 0 {
		span = 30
	}
	return math.Max(1, float64(span)/30)
}

// monthlySavings is the average net inflow per month of data.
func monthlySavings(txs []models.Transaction) float64 {
	if len(txs) == 0 {
		return 0
	}
	income, expenses := totals(txs)
	return (income - expenses) / monthsOfData(txs)
}

func savingsRate(income, expenses float64) float64 {
	if income <= 0 {
		return 0
	}
	return (income - expenses) / income * 100
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStd is the standard deviation with Bessel's correction.
func sampleStd(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sq float64
	for _, v := range values {
		sq += (v - m) * (v - m)
	}
	return math.Sqrt(sq / float64(len(values)-1))
}

func expenseMagnitudes(txs []models.Transaction) []float64 {
	var out []float64
	for _, tx := range txs {
		if tx.Amount < 0 {
			out = append(out, -tx.Amount)
		}
	}
	return out
}

// addMonths moves t by n calendar months, clamping to the last day of the
// target month instead of overflowing into the next one.
func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	target := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	lastDay := time.Date(target.Year(), target.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(target.Year(), target.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// sortedByDate returns a date-ordered copy so callers never reorder the input.
func sortedByDate(txs []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

func intPtr(v int) *int {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}

func stringPtr(v string) *string {
	return &v
}
