package analytics

import (
	"testing"
	"time"

	"github.com/Dan9191/finsight/internal/models"
)

func day(t *testing.T, raw string) time.Time {
	t.Helper()
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		t.Fatalf("parse date %q: %v", raw, err)
	}
	return d
}

func txn(t *testing.T, date, desc string, amount float64, category string) models.Transaction {
	t.Helper()
	return models.Transaction{
		Date:        day(t, date),
		Description: desc,
		Amount:      amount,
		Category:    category,
		Source:      "csv_upload",
	}
}

func fixedEngine(t *testing.T, now string) *Engine {
	t.Helper()
	fixed := day(t, now)
	return NewEngine(WithClock(func() time.Time { return fixed }))
}

func almostEqual(a, b float64) bool {
	const eps = 1e-9
	d := a - b
	return d < eps && d > -eps
}
