package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/Dan9191/finsight/internal/models"
)

var milestonePercentages = []int{25, 50, 75, 100}

// monthsUntil converts the whole days left before deadline into months,
// never returning less than one.
func monthsUntil(now, deadline time.Time) float64 {
	return math.Max(1, float64(floorDays(deadline.Sub(now)))/30)
}

// PlanGoal checks whether target can be reached by deadline at the current
// savings pace and lays out milestones toward it.
func (e *Engine) PlanGoal(target float64, deadline time.Time, txs []models.Transaction, saved float64) (plan models.GoalPlan, err error) {
	defer guard("plan goal", &err)

	now := e.now()
	remaining := target - saved
	monthsLeft := monthsUntil(now, deadline)
	needed := remaining / monthsLeft
	capacity := monthlySavings(txs)

	achievable := capacity >= needed
	shortfall := math.Max(0, needed-capacity)

	var realisticMonths *float64
	var realisticDate *time.Time
	if capacity > 0 {
		months := remaining / capacity
		realisticMonths = floatPtr(round1(months))
		d := addMonths(now, int(months))
		realisticDate = &d
	}

	plan = models.GoalPlan{
		TargetAmount:          round2(target),
		CurrentSaved:          round2(saved),
		Remaining:             round2(remaining),
		Deadline:              deadline.Format(dateLayout),
		MonthsLeft:            round1(monthsLeft),
		MonthlySavingsNeeded:  round2(needed),
		CurrentMonthlySavings: round2(capacity),
		IsAchievable:          achievable,
		Shortfall:             round2(shortfall),
		RealisticMonths:       realisticMonths,
		Suggestions:           goalSuggestions(achievable, shortfall, capacity, needed, realisticDate),
		Milestones:            []models.Milestone{},
	}
	if realisticDate != nil {
		plan.RealisticDate = stringPtr(realisticDate.Format(dateLayout))
	}
	if target > 0 {
		plan.ProgressPercentage = round1(saved / target * 100)
	}

	if capacity > 0 {
		for _, pct := range milestonePercentages {
			amount := target * float64(pct) / 100
			months := (amount - saved) / capacity
			if months <= 0 {
				continue
			}
			plan.Milestones = append(plan.Milestones, models.Milestone{
				Percentage:    pct,
				Amount:        round2(amount),
				EstimatedDate: addMonths(now, int(months)).Format(dateLayout),
			})
		}
	}
	return plan, nil
}

// goalSuggestions walks the decision ladder: small gaps get a precise cut,
// medium gaps get cuts plus extra income, anything larger asks to adjust the goal.
func goalSuggestions(achievable bool, shortfall, capacity, needed float64, realisticDate *time.Time) []string {
	if achievable {
		suggestions := []string{"Goal is achievable with current savings rate!"}
		if capacity > needed*1.5 {
			suggestions = append(suggestions, "You could reach this goal ahead of schedule")
		}
		return suggestions
	}

	switch {
	case shortfall < capacity*0.2:
		return []string{fmt.Sprintf("Cut discretionary spending by $%.2f/month", shortfall)}
	case shortfall < capacity*0.5:
		return []string{
			"Consider reducing entertainment and dining out",
			fmt.Sprintf("Find additional income of $%.2f/month", shortfall),
		}
	}

	suggestions := []string{"Goal may need to be adjusted or timeline extended"}
	if realisticDate != nil {
		suggestions = append(suggestions, fmt.Sprintf("Realistic target date: %s", realisticDate.Format("January 2006")))
	}
	return suggestions
}
