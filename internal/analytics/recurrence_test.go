package analytics

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/Dan9191/finsight/internal/models"
)

func TestDetectSubscriptions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		txs  []models.Transaction
		want []models.RecurrenceEntry
	}{
		{
			name: "repeated charge",
			txs: []models.Transaction{
				txn(t, "2024-01-05", "NETFLIX", -15, ""),
				txn(t, "2024-02-05", "NETFLIX", -15, ""),
			},
			want: []models.RecurrenceEntry{
				{Name: "NETFLIX", Amount: 15, Total: 30, Occurrences: 2, Frequency: FrequencyMonthly},
			},
		},
		{
			name: "single charge",
			txs:  []models.Transaction{txn(t, "2024-01-05", "NETFLIX", -15, "")},
			want: []models.RecurrenceEntry{},
		},
		{
			name: "different amounts are different subscriptions",
			txs: []models.Transaction{
				txn(t, "2024-01-05", "NETFLIX", -15, ""),
				txn(t, "2024-02-05", "NETFLIX", -18, ""),
			},
			want: []models.RecurrenceEntry{},
		},
		{
			name: "largest first",
			txs: []models.Transaction{
				txn(t, "2024-01-01", "SPOTIFY", -10, ""),
				txn(t, "2024-01-02", "RENT", -1000, "Housing"),
				txn(t, "2024-01-03", "NETFLIX", -15, ""),
				txn(t, "2024-01-04", "COFFEE", -4, "Food"),
				txn(t, "2024-02-01", "SPOTIFY", -10, ""),
				txn(t, "2024-02-02", "RENT", -1000, "Housing"),
				txn(t, "2024-02-03", "NETFLIX", -15, ""),
				txn(t, "2024-03-02", "RENT", -1000, "Housing"),
				txn(t, "2024-03-05", "REFUND", 15, ""),
				txn(t, "2024-03-06", "REFUND", 15, ""),
			},
			want: []models.RecurrenceEntry{
				{Name: "RENT", Amount: 1000, Total: 3000, Occurrences: 3, Frequency: FrequencyMonthly},
				{Name: "NETFLIX", Amount: 15, Total: 30, Occurrences: 2, Frequency: FrequencyMonthly},
				{Name: "SPOTIFY", Amount: 10, Total: 20, Occurrences: 2, Frequency: FrequencyMonthly},
			},
		},
	}

	e := NewEngine()
	for _, c := range cases {
		got, err := e.DetectSubscriptions(c.txs)
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Fatalf("%s:\nwant: %+v\ngot:  %+v", c.name, c.want, got)
		}
	}
}

func TestDetectIncomePatterns(t *testing.T) {
	t.Parallel()

	txs := []models.Transaction{
		txn(t, "2024-01-01", "SALARY", 3000, ""),
		txn(t, "2024-01-10", "GIFT", 500, ""),
		txn(t, "2024-01-12", "FREELANCE", 300, ""),
		txn(t, "2024-01-20", "FREELANCE", 400, ""),
		txn(t, "2024-01-25", "FREELANCE", 500, ""),
		txn(t, "2024-01-31", "SALARY", 3000, ""),
		txn(t, "2024-02-01", "RENT", -900, "Housing"),
	}
	got, err := NewEngine().DetectIncomePatterns(txs)
	if err != nil {
		t.Fatalf("detect income patterns: %v", err)
	}
	want := []models.RecurrenceEntry{
		{Name: "SALARY", Amount: 3000, Total: 6000, Occurrences: 2, Frequency: FrequencyRegular},
		{Name: "FREELANCE", Amount: 400, Total: 1200, Occurrences: 3, Frequency: FrequencyRegular},
		{Name: "GIFT", Amount: 500, Total: 500, Occurrences: 1, Frequency: FrequencyOneTime},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected income patterns\nwant: %+v\ngot:  %+v", want, got)
	}
}

func salaryHistory(t *testing.T) []models.Transaction {
	return []models.Transaction{
		txn(t, "2024-03-01", "ACME PAYROLL", 3000, ""),
		txn(t, "2024-01-01", "ACME PAYROLL", 3000, ""),
		txn(t, "2024-01-31", "ACME PAYROLL", 3000, ""),
		txn(t, "2024-01-15", "FREELANCE", 400, ""),
		txn(t, "2024-02-15", "FREELANCE", 400, ""),
		txn(t, "2024-02-20", "GROCERIES", -120, "Food"),
	}
}

func TestPredictSalaryOnTime(t *testing.T) {
	t.Parallel()

	got, err := fixedEngine(t, "2024-03-20").PredictSalary(salaryHistory(t))
	if err != nil {
		t.Fatalf("predict salary: %v", err)
	}
	want := models.SalaryPrediction{
		Source:          "ACME PAYROLL",
		ExpectedAmount:  3000,
		NextDate:        "2024-03-31",
		LastDate:        "2024-03-01",
		AvgIntervalDays: 30,
		IsDelayed:       false,
		DaysLate:        0,
		Confidence:      45,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected prediction\nwant: %+v\ngot:  %+v", want, got)
	}
}

func TestPredictSalaryDelayed(t *testing.T) {
	t.Parallel()

	fixed := day(t, "2024-04-05").Add(12 * time.Hour)
	e := NewEngine(WithClock(func() time.Time { return fixed }))
	got, err := e.PredictSalary(salaryHistory(t))
	if err != nil {
		t.Fatalf("predict salary: %v", err)
	}
	if !got.IsDelayed || got.DaysLate != 5 {
		t.Fatalf("expected 5 days late, got %+v", got)
	}
}

func TestPredictSalaryErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		txs  []models.Transaction
		want error
	}{
		{"no data", nil, ErrNoTransactions},
		{"expenses only", []models.Transaction{txn(t, "2024-01-01", "RENT", -900, "")}, ErrNoIncome},
		{"one-off income", []models.Transaction{
			txn(t, "2024-01-01", "BONUS", 900, ""),
			txn(t, "2024-02-01", "GIFT", 100, ""),
		}, ErrNoRecurringIncome},
	}
	e := NewEngine()
	for _, c := range cases {
		if _, err := e.PredictSalary(c.txs); !errors.Is(err, c.want) {
			t.Errorf("%s: want %v got %v", c.name, c.want, err)
		}
	}
}

func TestSalaryConfidenceCapsAtHundred(t *testing.T) {
	t.Parallel()

	var txs []models.Transaction
	start := day(t, "2023-01-01")
	for i := 0; i < 8; i++ {
		txs = append(txs, models.Transaction{Date: start.AddDate(0, i, 0), Description: "PAYROLL", Amount: 2500})
	}
	got, err := fixedEngine(t, "2023-08-15").PredictSalary(txs)
	if err != nil {
		t.Fatalf("predict salary: %v", err)
	}
	if got.Confidence != 100 {
		t.Fatalf("expected confidence 100, got %d", got.Confidence)
	}
}
