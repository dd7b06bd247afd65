package analytics

import (
	"errors"
	"reflect"
	"testing"

	"github.com/Dan9191/finsight/internal/models"
)

func reportHistory(t *testing.T) []models.Transaction {
	return []models.Transaction{
		txn(t, "2024-01-01", "ACME PAYROLL", 3000, ""),
		txn(t, "2024-01-03", "NETFLIX", -15.99, "Entertainment"),
		txn(t, "2024-01-05", "RENT", -1200, "Housing"),
		txn(t, "2024-01-12", "GROCERIES", -140.5, "Food"),
		txn(t, "2024-01-31", "ACME PAYROLL", 3000, ""),
		txn(t, "2024-02-03", "NETFLIX", -15.99, "Entertainment"),
		txn(t, "2024-02-05", "RENT", -1200, "Housing"),
		txn(t, "2024-02-14", "GROCERIES", -96.2, "Food"),
	}
}

func TestReportAllSections(t *testing.T) {
	t.Parallel()

	report := fixedEngine(t, "2024-02-15").Report(reportHistory(t), nil)
	if len(report.Errors) != 0 {
		t.Fatalf("unexpected section errors: %v", report.Errors)
	}
	if report.Summary == nil || report.Salary == nil || report.Emergencies == nil ||
		report.Personality == nil || report.Budget == nil {
		t.Fatalf("expected every section to be filled, got %+v", report)
	}
	if len(report.Forecast) != DefaultForecastDays {
		t.Fatalf("expected %d forecast points, got %d", DefaultForecastDays, len(report.Forecast))
	}
	if len(report.Savings) != DefaultProjectionMonths+1 {
		t.Fatalf("expected %d projections, got %d", DefaultProjectionMonths+1, len(report.Savings))
	}
	if len(report.Subscriptions) != 2 || report.Subscriptions[0].Name != "RENT" {
		t.Fatalf("unexpected subscriptions: %+v", report.Subscriptions)
	}
	if report.Salary.Source != "ACME PAYROLL" || report.Salary.IsDelayed {
		t.Fatalf("unexpected salary prediction: %+v", report.Salary)
	}
	if len(report.Suggestions) == 0 {
		t.Fatal("expected investment suggestions alongside the summary")
	}
}

func TestReportIsolatesFailingSections(t *testing.T) {
	t.Parallel()

	report := NewEngine().Report(nil, nil)
	if report.Salary != nil {
		t.Fatalf("expected no salary section, got %+v", report.Salary)
	}
	if report.Errors["salary"] != ErrNoTransactions.Error() {
		t.Fatalf("expected salary error %q, got %v", ErrNoTransactions, report.Errors)
	}
	if len(report.Errors) != 1 {
		t.Fatalf("only the salary section should fail, got %v", report.Errors)
	}
	if report.Summary == nil || report.Personality == nil || report.Personality.PersonalityType != UnknownType {
		t.Fatalf("other sections should still be computed, got %+v", report)
	}
}

func TestEngineDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	txs := reportHistory(t)
	// reverse so that sorting inside the engine would be visible
	for i, j := 0, len(txs)-1; i < j; i, j = i+1, j-1 {
		txs[i], txs[j] = txs[j], txs[i]
	}
	original := make([]models.Transaction, len(txs))
	copy(original, txs)

	e := fixedEngine(t, "2024-02-15")
	first := e.Report(txs, nil)
	second := e.Report(txs, nil)

	if !reflect.DeepEqual(txs, original) {
		t.Fatal("report reordered or modified the input history")
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("report is not deterministic for identical input")
	}
}

func TestGuardRecoversPanics(t *testing.T) {
	t.Parallel()

	run := func() (err error) {
		defer guard("explode", &err)
		var m map[string]int
		m["x"] = 1
		return nil
	}
	err := run()
	if !errors.Is(err, ErrComputation) {
		t.Fatalf("expected computation error, got %v", err)
	}
}
