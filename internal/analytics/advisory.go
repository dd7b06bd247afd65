package analytics

import (
	"github.com/Dan9191/finsight/internal/models"
)

const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
	PriorityInfo   = "Info"

	TitleConsiderInvesting = "Consider Investing"
)

// adviceRules are checked in order and every matching rule contributes its
// suggestion.
var adviceRules = []struct {
	when       func(s models.AnalyticsSummary) bool
	suggestion models.InvestmentSuggestion
}{
	{
		when: func(s models.AnalyticsSummary) bool { return s.DaysUntilBroke != nil && *s.DaysUntilBroke < 90 },
		suggestion: models.InvestmentSuggestion{
			Priority:    PriorityHigh,
			Title:       "Build Emergency Fund",
			Description: "Your runway is less than 3 months. Focus on building a 3-6 month emergency fund before investing.",
		},
	},
	{
		when: func(s models.AnalyticsSummary) bool { return s.SavingsRate < 10 },
		suggestion: models.InvestmentSuggestion{
			Priority:    PriorityHigh,
			Title:       "Increase Savings Rate",
			Description: "Try to save at least 10-20% of your income. Review subscriptions and discretionary spending.",
		},
	},
	{
		when: func(s models.AnalyticsSummary) bool { return s.SavingsRate >= 20 },
		suggestion: models.InvestmentSuggestion{
			Priority:    PriorityMedium,
			Title:       TitleConsiderInvesting,
			Description: "Your savings rate is healthy! Consider low-cost index funds or a high-yield savings account.",
		},
	},
	{
		when: func(s models.AnalyticsSummary) bool { return s.CurrentBalance > 5000 && s.HealthScore >= 60 },
		suggestion: models.InvestmentSuggestion{
			Priority:    PriorityLow,
			Title:       "Explore Investment Options",
			Description: "With a stable balance, consider diversifying into stocks, bonds, or retirement accounts.",
		},
	},
}

var keepItUp = models.InvestmentSuggestion{
	Priority:    PriorityInfo,
	Title:       "Keep It Up!",
	Description: "Your finances look stable. Continue monitoring and building your financial cushion.",
}

// InvestmentSuggestions turns a summary into prioritized advice.
func (e *Engine) InvestmentSuggestions(summary models.AnalyticsSummary) []models.InvestmentSuggestion {
	var out []models.InvestmentSuggestion
	for _, rule := range adviceRules {
		if rule.when(summary) {
			out = append(out, rule.suggestion)
		}
	}
	if len(out) == 0 {
		out = append(out, keepItUp)
	}
	return out
}
