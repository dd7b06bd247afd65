package analytics

import (
	"fmt"
	"math"

	"github.com/Dan9191/finsight/internal/models"
)

const (
	VerdictAffordable     = "Affordable"
	VerdictRisky          = "Risky"
	VerdictNotRecommended = "Not Recommended"
)

// purchaseState is what the impact ladder looks at.
type purchaseState struct {
	amount     float64
	balance    float64
	newBalance float64
	newRunway  *float64
}

// purchaseImpact holds the health-score penalty rules, first match wins.
var purchaseImpact = []struct {
	when  func(s purchaseState) bool
	delta int
}{
	{func(s purchaseState) bool { return s.newBalance < 0 }, -30},
	{func(s purchaseState) bool { return s.newRunway != nil && *s.newRunway != 0 && *s.newRunway < 30 }, -20},
	{func(s purchaseState) bool { return s.newRunway != nil && *s.newRunway != 0 && *s.newRunway < 90 }, -10},
	{func(s purchaseState) bool { return s.amount > s.balance*0.5 }, -5},
}

func (s purchaseState) scoreDelta() int {
	for _, rule := range purchaseImpact {
		if rule.when(s) {
			return rule.delta
		}
	}
	return 0
}

func (s purchaseState) verdict() string {
	switch {
	case s.newBalance > s.balance*0.3:
		return VerdictAffordable
	case s.newBalance > 0:
		return VerdictRisky
	default:
		return VerdictNotRecommended
	}
}

// SimulatePurchase projects balances with and without a one-off purchase
// over the given number of months and estimates its effect on the health score.
func (e *Engine) SimulatePurchase(amount float64, txs []models.Transaction, months int) (sim models.PurchaseSimulation, err error) {
	defer guard("simulate purchase", &err)

	if len(txs) == 0 {
		return models.PurchaseSimulation{}, ErrNoTransactions
	}

	balance := netBalance(txs)
	savings := monthlySavings(txs)

	summary, err := e.Summarize(txs, nil)
	if err != nil {
		return models.PurchaseSimulation{}, fmt.Errorf("simulate purchase: %w", err)
	}

	state := purchaseState{
		amount:     amount,
		balance:    balance,
		newBalance: balance - amount,
	}
	if summary.BurnRateDaily > 0 {
		state.newRunway = floatPtr(state.newBalance / summary.BurnRateDaily)
	}

	var recoveryDays *int
	message := "You currently have a negative savings rate; recovering this amount will be difficult."
	if savings > 0 {
		days := int(math.RoundToEven(amount / savings * 30))
		recoveryDays = intPtr(days)
		message = fmt.Sprintf("This will take about %d days to recover based on your current savings rate.", days)
	}

	projections := make([]models.PurchaseProjection, 0, max(months, 0)+1)
	for i := 0; i <= months; i++ {
		growth := savings * float64(i)
		projections = append(projections, models.PurchaseProjection{
			Month:           i,
			WithoutPurchase: round2(balance + growth),
			WithPurchase:    round2(state.newBalance + growth),
		})
	}

	return models.PurchaseSimulation{
		PurchaseAmount:    round2(amount),
		CurrentBalance:    round2(balance),
		BalanceAfter:      round2(state.newBalance),
		MonthlySavings:    round2(savings),
		RecoveryDays:      recoveryDays,
		HealthScoreBefore: summary.HealthScore,
		HealthScoreAfter:  max(0, summary.HealthScore+state.scoreDelta()),
		CanAfford:         state.newBalance > 0,
		Projections:       projections,
		Verdict:           state.verdict(),
		ImpactMessage:     message,
	}, nil
}
