package analytics

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/Dan9191/finsight/internal/models"
)

// spikeHistory has fourteen small food expenses, one large spike and a salary.
func spikeHistory(t *testing.T, desc, category string) []models.Transaction {
	txs := []models.Transaction{txn(t, "2024-01-01", "SALARY", 3000, "")}
	for i := 1; i <= 14; i++ {
		txs = append(txs, txn(t, fmt.Sprintf("2024-01-%02d", i), "LUNCH", -10, "Food"))
	}
	return append(txs, txn(t, "2024-01-15", desc, -1000, category))
}

func TestDetectEmergenciesMedicalSpike(t *testing.T) {
	t.Parallel()

	got, err := NewEngine().DetectEmergencies(spikeHistory(t, "City Hospital", ""))
	if err != nil {
		t.Fatalf("detect emergencies: %v", err)
	}
	want := []models.EmergencyAlert{{
		Type:        AlertMedicalEmergency,
		Severity:    SeverityHigh,
		Description: "Large medical expense detected: $1000.00",
		Date:        "2024-01-15",
		Amount:      1000,
	}}
	if !reflect.DeepEqual(got.Alerts, want) {
		t.Fatalf("unexpected alerts\nwant: %+v\ngot:  %+v", want, got.Alerts)
	}
	if !got.HasEmergency {
		t.Fatal("expected a high severity emergency")
	}
	if got.RecoveryDays != 7 {
		t.Fatalf("expected 7 recovery days, got %d", got.RecoveryDays)
	}
	if got.CurrentBalance != 1860 {
		t.Fatalf("expected balance 1860, got %v", got.CurrentBalance)
	}
	wantCutbacks := []models.Cutback{{Category: "Food", CurrentSpending: 140, SuggestedReduction: 42, SavingsPotential: 42}}
	if !reflect.DeepEqual(got.SuggestedCutbacks, wantCutbacks) {
		t.Fatalf("unexpected cutbacks: %+v", got.SuggestedCutbacks)
	}
}

func TestDetectEmergenciesHealthCategoryIsMedical(t *testing.T) {
	t.Parallel()

	got, err := NewEngine().DetectEmergencies(spikeHistory(t, "DR SMITH", "Health"))
	if err != nil {
		t.Fatalf("detect emergencies: %v", err)
	}
	if len(got.Alerts) != 1 || got.Alerts[0].Type != AlertMedicalEmergency {
		t.Fatalf("expected medical alert, got %+v", got.Alerts)
	}
}

func TestDetectEmergenciesUnusualExpense(t *testing.T) {
	t.Parallel()

	got, err := NewEngine().DetectEmergencies(spikeHistory(t, "TV STORE", "Shopping"))
	if err != nil {
		t.Fatalf("detect emergencies: %v", err)
	}
	if len(got.Alerts) != 1 {
		t.Fatalf("expected one alert, got %+v", got.Alerts)
	}
	alert := got.Alerts[0]
	if alert.Type != AlertUnusualExpense || alert.Severity != SeverityMedium {
		t.Fatalf("expected medium unusual expense, got %+v", alert)
	}
	if alert.Description != "Unusually large expense: TV STORE ($1000.00)" {
		t.Fatalf("unexpected description %q", alert.Description)
	}
	if got.HasEmergency {
		t.Fatal("medium alerts must not raise an emergency")
	}
	if len(got.SuggestedCutbacks) != 2 || got.SuggestedCutbacks[0].Category != "Food" || got.SuggestedCutbacks[1].Category != "Shopping" {
		t.Fatalf("expected Food and Shopping cutbacks, got %+v", got.SuggestedCutbacks)
	}
}

func TestDetectEmergenciesFewExpensesSkipsOutliers(t *testing.T) {
	t.Parallel()

	txs := []models.Transaction{
		txn(t, "2024-01-01", "LUNCH", -10, "Food"),
		txn(t, "2024-01-02", "LUNCH", -10, "Food"),
		txn(t, "2024-01-03", "HOSPITAL", -5000, "Health"),
	}
	got, err := NewEngine().DetectEmergencies(txs)
	if err != nil {
		t.Fatalf("detect emergencies: %v", err)
	}
	if len(got.Alerts) != 0 || got.RecoveryDays != 0 {
		t.Fatalf("expected no alerts for short history, got %+v", got)
	}
}

func TestDetectEmergenciesIncomeDrop(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		lastMonth float64
		wantAlert bool
	}{
		{"sharp drop", 1000, true},
		{"exactly thirty percent", 2100, true},
		{"mild drop", 2500, false},
	}
	for _, c := range cases {
		txs := []models.Transaction{
			txn(t, "2024-01-01", "SALARY", 1500, ""),
			txn(t, "2024-01-15", "SALARY", 1500, ""),
			txn(t, "2024-02-01", "SALARY", 3000, ""),
			txn(t, "2024-03-01", "SALARY", c.lastMonth, ""),
		}
		got, err := NewEngine().DetectEmergencies(txs)
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if c.wantAlert != got.HasEmergency {
			t.Fatalf("%s: want emergency=%v got %+v", c.name, c.wantAlert, got)
		}
		if !c.wantAlert {
			continue
		}
		alert := got.Alerts[0]
		if alert.Type != AlertIncomeDrop || *alert.Expected != 3000 || *alert.Actual != c.lastMonth {
			t.Fatalf("%s: unexpected alert %+v", c.name, alert)
		}
	}
}

func TestDetectEmergenciesIncomeDropDescription(t *testing.T) {
	t.Parallel()

	txs := []models.Transaction{
		txn(t, "2024-01-01", "SALARY", 1500, ""),
		txn(t, "2024-01-15", "SALARY", 1500, ""),
		txn(t, "2024-02-01", "SALARY", 3000, ""),
		txn(t, "2024-03-01", "SALARY", 1000, ""),
	}
	got, err := NewEngine().DetectEmergencies(txs)
	if err != nil {
		t.Fatalf("detect emergencies: %v", err)
	}
	if got.Alerts[0].Description != "Income dropped 67% compared to average" {
		t.Fatalf("unexpected description %q", got.Alerts[0].Description)
	}
}

func TestDetectEmergenciesEmpty(t *testing.T) {
	t.Parallel()

	got, err := NewEngine().DetectEmergencies(nil)
	if err != nil {
		t.Fatalf("detect emergencies: %v", err)
	}
	if got.Alerts == nil || got.SuggestedCutbacks == nil || got.HasEmergency || got.RecoveryDays != 0 {
		t.Fatalf("expected empty report, got %+v", got)
	}
}
