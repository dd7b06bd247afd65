package analytics

import (
	"reflect"
	"testing"

	"github.com/Dan9191/finsight/internal/models"
)

func budgetHistory(t *testing.T) []models.Transaction {
	return []models.Transaction{
		txn(t, "2023-10-01", "SALARY", 3000, ""),
		txn(t, "2023-10-31", "GROCERIES", -300, "Food"),
		txn(t, "2023-10-31", "RENT", -1000, "Housing"),
		txn(t, "2023-10-31", "MISC", -100, ""),
	}
}

func TestGenerateBudget(t *testing.T) {
	t.Parallel()

	plan, err := fixedEngine(t, "2024-01-01").GenerateBudget(budgetHistory(t), nil)
	if err != nil {
		t.Fatalf("generate budget: %v", err)
	}
	want := models.BudgetPlan{
		CategoryBudgets:    map[string]float64{"Food": 270, "Housing": 1050, "Other": 105},
		SuggestedSavings:   600,
		TotalBudget:        1425,
		MonthlyIncome:      3000,
		RecommendedMonthly: 2400,
	}
	if !reflect.DeepEqual(plan, want) {
		t.Fatalf("unexpected plan\nwant: %+v\ngot:  %+v", want, plan)
	}
}

func TestGenerateBudgetGoalsRaiseSavings(t *testing.T) {
	t.Parallel()

	goals := []models.Goal{
		{Name: "Car", TargetAmount: 10000, CurrentSaved: 1000, Deadline: day(t, "2024-03-31")},
		{Name: "Done", TargetAmount: 500, CurrentSaved: 500, Deadline: day(t, "2024-02-01")},
	}
	plan, err := fixedEngine(t, "2024-01-01").GenerateBudget(budgetHistory(t), goals)
	if err != nil {
		t.Fatalf("generate budget: %v", err)
	}
	if plan.SuggestedSavings != 3000 {
		t.Fatalf("expected goal driven savings of 3000, got %v", plan.SuggestedSavings)
	}
	if plan.RecommendedMonthly != 2400 {
		t.Fatalf("recommended spending should ignore goals, got %v", plan.RecommendedMonthly)
	}
}

func TestGenerateBudgetEmpty(t *testing.T) {
	t.Parallel()

	plan, err := NewEngine().GenerateBudget(nil, nil)
	if err != nil {
		t.Fatalf("generate budget: %v", err)
	}
	if plan.CategoryBudgets == nil || len(plan.CategoryBudgets) != 0 || plan.TotalBudget != 0 {
		t.Fatalf("expected empty plan, got %+v", plan)
	}
}

func TestSpendingBreakdown(t *testing.T) {
	t.Parallel()

	txs := append(budgetHistory(t), txn(t, "2023-11-02", "CAFE", -12.345, "Food"))
	got, err := NewEngine().SpendingBreakdown(txs)
	if err != nil {
		t.Fatalf("spending breakdown: %v", err)
	}
	want := map[string]float64{"Food": 312.35, "Housing": 1000, "Uncategorized": 100}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected breakdown\nwant: %v\ngot:  %v", want, got)
	}
}
