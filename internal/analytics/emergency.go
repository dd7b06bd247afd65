package analytics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Dan9191/finsight/internal/models"
)

const (
	AlertMedicalEmergency = "medical_emergency"
	AlertUnusualExpense   = "unusual_expense"
	AlertIncomeDrop       = "income_drop"

	SeverityHigh   = "high"
	SeverityMedium = "medium"

	minExpensesForOutliers = 5
	minIncomeForDropCheck  = 3
	outlierSigmas          = 3
	incomeDropRatio        = 0.7
	cutbackRatio           = 0.3
	defaultCategory        = "Other"
	healthCategory         = "Health"
)

var (
	medicalKeywords = []string{"hospital", "medical", "emergency"}

	// discretionaryCategories are the categories users can cut back on.
	discretionaryCategories = map[string]bool{
		"Entertainment": true,
		"Shopping":      true,
		"Food":          true,
		"Travel":        true,
	}
)

func isMedical(tx models.Transaction) bool {
	if tx.CategoryOr(defaultCategory) == healthCategory {
		return true
	}
	desc := strings.ToLower(tx.Description)
	for _, kw := range medicalKeywords {
		if strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}

// DetectEmergencies flags statistically unusual expenses and sharp income
// drops, and suggests cutbacks on discretionary spending.
func (e *Engine) DetectEmergencies(txs []models.Transaction) (report models.EmergencyReport, err error) {
	defer guard("detect emergencies", &err)

	report = models.EmergencyReport{
		Alerts:            []models.EmergencyAlert{},
		SuggestedCutbacks: []models.Cutback{},
	}
	if len(txs) == 0 {
		return report, nil
	}

	sorted := sortedByDate(txs)
	report.Alerts = append(report.Alerts, expenseOutliers(sorted)...)
	if alert, ok := incomeDrop(sorted); ok {
		report.Alerts = append(report.Alerts, alert)
	}
	report.SuggestedCutbacks = append(report.SuggestedCutbacks, cutbacks(sorted)...)

	// Recovery is measured against the daily net savings pace
	income, expenses := totals(sorted)
	dailySavings := (income - expenses) / float64(max(1, spanDays(sorted)))
	var cost float64
	for _, a := range report.Alerts {
		if a.Type == AlertMedicalEmergency || a.Type == AlertUnusualExpense {
			cost += a.Amount
		}
	}
	if dailySavings > 0 && cost > 0 {
		report.RecoveryDays = int(cost / dailySavings)
	}

	report.CurrentBalance = round2(netBalance(sorted))
	for _, a := range report.Alerts {
		if a.Severity == SeverityHigh {
			report.HasEmergency = true
			break
		}
	}
	return report, nil
}

// expenseOutliers flags expenses more than three standard deviations above the mean.
func expenseOutliers(txs []models.Transaction) []models.EmergencyAlert {
	magnitudes := expenseMagnitudes(txs)
	if len(magnitudes) <= minExpensesForOutliers {
		return nil
	}
	threshold := mean(magnitudes) + outlierSigmas*sampleStd(magnitudes)

	var alerts []models.EmergencyAlert
	for _, tx := range txs {
		amount := -tx.Amount
		if tx.Amount >= 0 || amount <= threshold {
			continue
		}
		alert := models.EmergencyAlert{
			Type:        AlertUnusualExpense,
			Severity:    SeverityMedium,
			Description: fmt.Sprintf("Unusually large expense: %s ($%.2f)", tx.Description, amount),
			Date:        tx.Date.Format(dateLayout),
			Amount:      round2(amount),
		}
		if isMedical(tx) {
			alert.Type = AlertMedicalEmergency
			alert.Severity = SeverityHigh
			alert.Description = fmt.Sprintf("Large medical expense detected: $%.2f", amount)
		}
		alerts = append(alerts, alert)
	}
	return alerts
}

// incomeDrop compares the latest month's income to the average of prior months.
func incomeDrop(txs []models.Transaction) (models.EmergencyAlert, bool) {
	monthly := make(map[string]float64)
	var count int
	for _, tx := range txs {
		if tx.Amount > 0 {
			monthly[tx.Date.Format(monthLayout)] += tx.Amount
			count++
		}
	}
	if count <= minIncomeForDropCheck || len(monthly) < 2 {
		return models.EmergencyAlert{}, false
	}

	months := make([]string, 0, len(monthly))
	for m := range monthly {
		months = append(months, m)
	}
	sort.Strings(months)

	prior := make([]float64, 0, len(months)-1)
	for _, m := range months[:len(months)-1] {
		prior = append(prior, monthly[m])
	}
	expected := mean(prior)
	actual := monthly[months[len(months)-1]]
	if actual > expected*incomeDropRatio {
		return models.EmergencyAlert{}, false
	}

	return models.EmergencyAlert{
		Type:        AlertIncomeDrop,
		Severity:    SeverityHigh,
		Description: fmt.Sprintf("Income dropped %.0f%% compared to average", (expected-actual)/expected*100),
		Expected:    floatPtr(round2(expected)),
		Actual:      floatPtr(round2(actual)),
	}, true
}

// cutbacks suggests a 30% reduction for each discretionary category with spending.
func cutbacks(txs []models.Transaction) []models.Cutback {
	spending := make(map[string]float64)
	for _, tx := range txs {
		category := tx.CategoryOr(defaultCategory)
		if tx.Amount < 0 && discretionaryCategories[category] {
			spending[category] += -tx.Amount
		}
	}

	categories := make([]string, 0, len(spending))
	for c := range spending {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	out := make([]models.Cutback, 0, len(categories))
	for _, c := range categories {
		reduction := round2(spending[c] * cutbackRatio)
		out = append(out, models.Cutback{
			Category:           c,
			CurrentSpending:    round2(spending[c]),
			SuggestedReduction: reduction,
			SavingsPotential:   reduction,
		})
	}
	return out
}
