package analytics

import (
	"math"

	"github.com/Dan9191/finsight/internal/models"
)

const (
	discretionaryCut = 0.9
	essentialBuffer  = 1.05
	savingsShare     = 0.2
	uncategorized    = "Uncategorized"
)

// GenerateBudget derives monthly category budgets from past spending and
// sets a savings target that also covers the active goals.
func (e *Engine) GenerateBudget(txs []models.Transaction, goals []models.Goal) (plan models.BudgetPlan, err error) {
	defer guard("generate budget", &err)

	plan = models.BudgetPlan{CategoryBudgets: map[string]float64{}}
	if len(txs) == 0 {
		return plan, nil
	}

	months := monthsOfData(txs)

	spending := make(map[string]float64)
	for _, tx := range txs {
		if tx.Amount < 0 {
			spending[tx.CategoryOr(defaultCategory)] += -tx.Amount
		}
	}

	var total float64
	for category, amount := range spending {
		factor := essentialBuffer
		if discretionaryCategories[category] {
			factor = discretionaryCut
		}
		budget := round2(amount / months * factor)
		plan.CategoryBudgets[category] = budget
		total += budget
	}

	income, _ := totals(txs)
	monthlyIncome := income / months
	savingsTarget := math.Max(0, round2(monthlyIncome*savingsShare))

	now := e.now()
	var goalNeed float64
	for _, g := range goals {
		if g.Remaining() <= 0 {
			continue
		}
		goalNeed += g.Remaining() / monthsUntil(now, g.Deadline)
	}

	plan.TotalBudget = round2(total)
	plan.MonthlyIncome = round2(monthlyIncome)
	plan.SuggestedSavings = math.Max(savingsTarget, round2(goalNeed))
	plan.RecommendedMonthly = round2(monthlyIncome - savingsTarget)
	return plan, nil
}

// SpendingBreakdown totals expenses per category.
func (e *Engine) SpendingBreakdown(txs []models.Transaction) (breakdown map[string]float64, err error) {
	defer guard("spending breakdown", &err)

	breakdown = make(map[string]float64)
	for _, tx := range txs {
		if tx.Amount < 0 {
			breakdown[tx.CategoryOr(uncategorized)] += -tx.Amount
		}
	}
	for category, amount := range breakdown {
		breakdown[category] = round2(amount)
	}
	return breakdown, nil
}
