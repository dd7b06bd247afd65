package analytics

import (
	"github.com/Dan9191/finsight/internal/models"
)

// Summarize computes burn rate, runway, savings rate and the health score.
// When balance is nil the current balance is the sum of all amounts.
func (e *Engine) Summarize(txs []models.Transaction, balance *float64) (summary models.AnalyticsSummary, err error) {
	defer guard("summarize", &err)

	if len(txs) == 0 {
		return models.AnalyticsSummary{}, nil
	}

	income, expenses := totals(txs)

	span := spanDays(txs)
	if span == 0 {
		span = 1
	}
	burnDaily := expenses / float64(span)

	current := netBalance(txs)
	if balance != nil {
		current = *balance
	}

	var daysUntilBroke *int
	if burnDaily > 0 && current > 0 {
		daysUntilBroke = intPtr(int(current / burnDaily))
	}

	rate := savingsRate(income, expenses)

	return models.AnalyticsSummary{
		BurnRateDaily:   round2(burnDaily),
		BurnRateMonthly: round2(burnDaily * 30),
		DaysUntilBroke:  daysUntilBroke,
		HealthScore:     healthScore(rate, daysUntilBroke),
		SavingsRate:     round1(rate),
		TotalIncome:     round2(income),
		TotalExpenses:   round2(expenses),
		CurrentBalance:  round2(current),
	}, nil
}
