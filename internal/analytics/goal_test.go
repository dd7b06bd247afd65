package analytics

import (
	"reflect"
	"testing"

	"github.com/Dan9191/finsight/internal/models"
)

// savingHistory saves 2000 over exactly one month of data.
func savingHistory(t *testing.T) []models.Transaction {
	return []models.Transaction{
		txn(t, "2023-10-01", "SALARY", 3000, ""),
		txn(t, "2023-10-31", "RENT", -1000, "Housing"),
	}
}

func TestPlanGoalAchievable(t *testing.T) {
	t.Parallel()

	e := fixedEngine(t, "2024-01-01")
	got, err := e.PlanGoal(12000, day(t, "2024-12-26"), savingHistory(t), 2000)
	if err != nil {
		t.Fatalf("plan goal: %v", err)
	}
	if !got.IsAchievable || got.Shortfall != 0 {
		t.Fatalf("expected achievable goal without shortfall, got %+v", got)
	}
	if got.MonthsLeft != 12 || got.MonthlySavingsNeeded != 833.33 || got.CurrentMonthlySavings != 2000 {
		t.Fatalf("unexpected pace: %+v", got)
	}
	if got.RealisticMonths == nil || *got.RealisticMonths != 5 {
		t.Fatalf("expected 5 realistic months, got %v", got.RealisticMonths)
	}
	if got.RealisticDate == nil || *got.RealisticDate != "2024-06-01" {
		t.Fatalf("expected realistic date 2024-06-01, got %v", got.RealisticDate)
	}
	wantSuggestions := []string{
		"Goal is achievable with current savings rate!",
		"You could reach this goal ahead of schedule",
	}
	if !reflect.DeepEqual(got.Suggestions, wantSuggestions) {
		t.Fatalf("unexpected suggestions: %v", got.Suggestions)
	}
	wantMilestones := []models.Milestone{
		{Percentage: 25, Amount: 3000, EstimatedDate: "2024-01-01"},
		{Percentage: 50, Amount: 6000, EstimatedDate: "2024-03-01"},
		{Percentage: 75, Amount: 9000, EstimatedDate: "2024-04-01"},
		{Percentage: 100, Amount: 12000, EstimatedDate: "2024-06-01"},
	}
	if !reflect.DeepEqual(got.Milestones, wantMilestones) {
		t.Fatalf("unexpected milestones\nwant: %+v\ngot:  %+v", wantMilestones, got.Milestones)
	}
	if got.ProgressPercentage != 16.7 {
		t.Fatalf("expected progress 16.7, got %v", got.ProgressPercentage)
	}
}

func TestPlanGoalSuggestionLadder(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		target float64
		want   []string
	}{
		{"small gap", 2300, []string{"Cut discretionary spending by $300.00/month"}},
		{"medium gap", 2800, []string{
			"Consider reducing entertainment and dining out",
			"Find additional income of $800.00/month",
		}},
		{"large gap", 5000, []string{
			"Goal may need to be adjusted or timeline extended",
			"Realistic target date: March 2024",
		}},
	}

	e := fixedEngine(t, "2024-01-01")
	for _, c := range cases {
		got, err := e.PlanGoal(c.target, day(t, "2024-01-31"), savingHistory(t), 0)
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if got.IsAchievable {
			t.Fatalf("%s: expected unachievable goal", c.name)
		}
		if !reflect.DeepEqual(got.Suggestions, c.want) {
			t.Fatalf("%s:\nwant: %v\ngot:  %v", c.name, c.want, got.Suggestions)
		}
	}
}

func TestPlanGoalWithoutHistory(t *testing.T) {
	t.Parallel()

	got, err := fixedEngine(t, "2024-01-01").PlanGoal(1000, day(t, "2024-06-01"), nil, 0)
	if err != nil {
		t.Fatalf("plan goal: %v", err)
	}
	if got.IsAchievable {
		t.Fatal("expected unachievable goal without savings capacity")
	}
	if got.RealisticMonths != nil || got.RealisticDate != nil {
		t.Fatalf("expected undefined realistic estimate, got %v / %v", got.RealisticMonths, got.RealisticDate)
	}
	if len(got.Milestones) != 0 {
		t.Fatalf("expected no milestones, got %+v", got.Milestones)
	}
	if got.Shortfall != got.MonthlySavingsNeeded {
		t.Fatalf("expected shortfall to equal the monthly need, got %+v", got)
	}
}

func TestPlanGoalDeadlineInPastUsesOneMonth(t *testing.T) {
	t.Parallel()

	got, err := fixedEngine(t, "2024-01-01").PlanGoal(600, day(t, "2023-06-01"), savingHistory(t), 0)
	if err != nil {
		t.Fatalf("plan goal: %v", err)
	}
	if got.MonthsLeft != 1 || got.MonthlySavingsNeeded != 600 {
		t.Fatalf("expected one month floor, got %+v", got)
	}
	if !got.IsAchievable || got.Shortfall != 0 {
		t.Fatalf("expected achievable goal, got %+v", got)
	}
}
