package service

import (
	"context"
	"fmt"

	"github.com/Dan9191/finsight/internal/analytics"
	"github.com/Dan9191/finsight/internal/models"
)

// onHistory loads the user's transactions and runs fn over them
func onHistory[T any](s *Service, userID int64, op string, fn func([]models.Transaction) (T, error)) (T, error) {
	var zero T
	txs, err := s.store.ListTransactions(userID)
	if err != nil {
		return zero, err
	}
	out, err := fn(txs)
	if err != nil {
		s.userLog(userID).Warnf("%s failed: %v", op, err)
		return zero, err
	}
	return out, nil
}

// Summary returns burn rate, runway and health statistics
func (s *Service) Summary(userID int64) (models.AnalyticsSummary, error) {
	return onHistory(s, userID, "summary", func(txs []models.Transaction) (models.AnalyticsSummary, error) {
		return s.engine.Summarize(txs, nil)
	})
}

// Forecast projects the balance for the next days
func (s *Service) Forecast(userID int64, days int) ([]models.ForecastPoint, error) {
	return onHistory(s, userID, "forecast", func(txs []models.Transaction) ([]models.ForecastPoint, error) {
		return s.engine.Forecast(txs, days)
	})
}

// SavingsProjection projects the balance month by month
func (s *Service) SavingsProjection(userID int64, months int) ([]models.SavingsProjection, error) {
	return onHistory(s, userID, "savings projection", func(txs []models.Transaction) ([]models.SavingsProjection, error) {
		return s.engine.ProjectSavings(txs, months)
	})
}

// Subscriptions lists recurring expenses
func (s *Service) Subscriptions(userID int64) ([]models.RecurrenceEntry, error) {
	return onHistory(s, userID, "subscriptions", s.engine.DetectSubscriptions)
}

// IncomePatterns lists income sources
func (s *Service) IncomePatterns(userID int64) ([]models.RecurrenceEntry, error) {
	return onHistory(s, userID, "income patterns", s.engine.DetectIncomePatterns)
}

// Salary predicts the next salary payment
func (s *Service) Salary(userID int64) (models.SalaryPrediction, error) {
	return onHistory(s, userID, "salary prediction", s.engine.PredictSalary)
}

// Emergencies detects emergency signals
func (s *Service) Emergencies(userID int64) (models.EmergencyReport, error) {
	return onHistory(s, userID, "emergency detection", s.engine.DetectEmergencies)
}

// Personality classifies the user's spending archetype
func (s *Service) Personality(userID int64) (models.PersonalityProfile, error) {
	return onHistory(s, userID, "personality", s.engine.ClassifyPersonality)
}

// Spending totals expenses per category
func (s *Service) Spending(userID int64) (map[string]float64, error) {
	return onHistory(s, userID, "spending breakdown", s.engine.SpendingBreakdown)
}

// Budget generates a monthly budget that also funds the user's goals
func (s *Service) Budget(userID int64) (models.BudgetPlan, error) {
	goals, err := s.store.ListGoals(userID)
	if err != nil {
		return models.BudgetPlan{}, err
	}
	return onHistory(s, userID, "budget", func(txs []models.Transaction) (models.BudgetPlan, error) {
		return s.engine.GenerateBudget(txs, goals)
	})
}

// PurchaseImpact simulates a one-off purchase
func (s *Service) PurchaseImpact(userID int64, amount float64, months int) (models.PurchaseSimulation, error) {
	if amount <= 0 {
		return models.PurchaseSimulation{}, fmt.Errorf("%w: purchase amount must be positive", ErrInvalidInput)
	}
	if months <= 0 {
		months = analytics.DefaultPurchaseMonths
	}
	return onHistory(s, userID, "purchase simulation", func(txs []models.Transaction) (models.PurchaseSimulation, error) {
		return s.engine.SimulatePurchase(amount, txs, months)
	})
}

// Suggestions returns investment advice derived from the summary
func (s *Service) Suggestions(ctx context.Context, userID int64) ([]models.InvestmentSuggestion, error) {
	summary, err := s.Summary(userID)
	if err != nil {
		return nil, err
	}
	return s.withKeyRate(ctx, s.engine.InvestmentSuggestions(summary)), nil
}

// Report runs every analytic for the user
func (s *Service) Report(ctx context.Context, userID int64) (models.Report, error) {
	goals, err := s.store.ListGoals(userID)
	if err != nil {
		return models.Report{}, err
	}
	txs, err := s.store.ListTransactions(userID)
	if err != nil {
		return models.Report{}, err
	}
	report := s.engine.Report(txs, goals)
	for section, msg := range report.Errors {
		s.userLog(userID).Debugf("Report section %s unavailable: %s", section, msg)
	}
	report.Suggestions = s.withKeyRate(ctx, report.Suggestions)
	return report, nil
}

// HealthCheck evaluates the signals behind the e-mail digest
func (s *Service) HealthCheck(userID int64) (models.HealthCheck, error) {
	txs, err := s.store.ListTransactions(userID)
	if err != nil {
		return models.HealthCheck{}, err
	}
	check := models.HealthCheck{}
	if check.Emergencies, err = s.engine.DetectEmergencies(txs); err != nil {
		return models.HealthCheck{}, err
	}
	// Users without a recurring income simply get no salary status
	if salary, err := s.engine.PredictSalary(txs); err == nil {
		check.Salary = &salary
	}
	return check, nil
}

// ListUsers returns every registered user
func (s *Service) ListUsers() ([]models.User, error) {
	return s.store.ListUsers()
}

// withKeyRate cites the current key rate in the investing suggestion. The
// suggestions are returned unchanged when the rate is unavailable.
func (s *Service) withKeyRate(ctx context.Context, suggestions []models.InvestmentSuggestion) []models.InvestmentSuggestion {
	idx := -1
	for i, sg := range suggestions {
		if sg.Title == analytics.TitleConsiderInvesting {
			idx = i
		}
	}
	if idx < 0 || s.rates == nil {
		return suggestions
	}

	rate, err := s.rates.GetKeyRate(ctx)
	if err != nil {
		s.log.Warnf("Key rate unavailable: %v", err)
		return suggestions
	}

	out := make([]models.InvestmentSuggestion, len(suggestions))
	copy(out, suggestions)
	out[idx].Description = fmt.Sprintf("%s The central bank key rate is currently %.2f%%.", out[idx].Description, rate)
	return out
}
