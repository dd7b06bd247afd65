package models

// AnalyticsSummary represents burn rate, runway and health statistics
type AnalyticsSummary struct {
	BurnRateDaily   float64 `json:"burn_rate_daily"`
	BurnRateMonthly float64 `json:"burn_rate_monthly"`
	DaysUntilBroke  *int    `json:"days_until_broke"`
	HealthScore     int     `json:"health_score"`
	SavingsRate     float64 `json:"savings_rate"`
	TotalIncome     float64 `json:"total_income"`
	TotalExpenses   float64 `json:"total_expenses"`
	CurrentBalance  float64 `json:"current_balance"`
}

// ForecastPoint represents the projected balance for a specific day
type ForecastPoint struct {
	Date     string  `json:"date"` // Format: YYYY-MM-DD
	Estimate float64 `json:"estimate"`
	Lower    float64 `json:"lower"`
	Upper    float64 `json:"upper"`
}

// SavingsProjection represents the projected balance at a calendar month
type SavingsProjection struct {
	Month            string  `json:"month"` // Format: YYYY-MM
	ProjectedBalance float64 `json:"projected_balance"`
	MonthlySavings   float64 `json:"monthly_savings"`
}

// RecurrenceEntry is a detected repeating expense or income source
type RecurrenceEntry struct {
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"` // Average amount for income sources
	Total       float64 `json:"total"`
	Occurrences int     `json:"occurrences"`
	Frequency   string  `json:"frequency"`
}

// SalaryPrediction estimates the next salary payment
type SalaryPrediction struct {
	Source          string  `json:"source"`
	ExpectedAmount  float64 `json:"expected_amount"`
	NextDate        string  `json:"next_date"`
	LastDate        string  `json:"last_date"`
	AvgIntervalDays float64 `json:"avg_interval_days"`
	IsDelayed       bool    `json:"is_delayed"`
	DaysLate        int     `json:"days_late"`
	Confidence      int     `json:"confidence"`
}

// PurchaseSimulation describes the impact of a one-off purchase
type PurchaseSimulation struct {
	PurchaseAmount    float64              `json:"purchase_amount"`
	CurrentBalance    float64              `json:"current_balance"`
	BalanceAfter      float64              `json:"balance_after"`
	MonthlySavings    float64              `json:"monthly_savings"`
	RecoveryDays      *int                 `json:"recovery_days"`
	HealthScoreBefore int                  `json:"health_score_before"`
	HealthScoreAfter  int                  `json:"health_score_after"`
	CanAfford         bool                 `json:"can_afford"`
	Projections       []PurchaseProjection `json:"projections"`
	Verdict           string               `json:"verdict"`
	ImpactMessage     string               `json:"impact_message"`
}

// PurchaseProjection compares balances with and without a purchase
type PurchaseProjection struct {
	Month           int     `json:"month"`
	WithoutPurchase float64 `json:"without_purchase"`
	WithPurchase    float64 `json:"with_purchase"`
}

// EmergencyAlert is a single detected emergency signal
type EmergencyAlert struct {
	Type        string   `json:"type"`
	Severity    string   `json:"severity"`
	Description string   `json:"description"`
	Date        string   `json:"date,omitempty"`
	Amount      float64  `json:"amount,omitempty"`
	Expected    *float64 `json:"expected,omitempty"`
	Actual      *float64 `json:"actual,omitempty"`
}

// Cutback is a suggested reduction of discretionary spending
type Cutback struct {
	Category           string  `json:"category"`
	CurrentSpending    float64 `json:"current_spending"`
	SuggestedReduction float64 `json:"suggested_reduction"`
	SavingsPotential   float64 `json:"savings_potential"`
}

// EmergencyReport groups emergency alerts and recovery advice
type EmergencyReport struct {
	Alerts            []EmergencyAlert `json:"alerts"`
	SuggestedCutbacks []Cutback        `json:"suggested_cutbacks"`
	RecoveryDays      int              `json:"recovery_days"`
	CurrentBalance    float64          `json:"current_balance"`
	HasEmergency      bool             `json:"has_emergency"`
}

// PersonalityProfile is the spending archetype of a user
type PersonalityProfile struct {
	PersonalityType     string   `json:"personality_type"`
	Traits              []string `json:"traits"`
	Confidence          int      `json:"confidence"`
	SavingsRate         float64  `json:"savings_rate"`
	SpendingVariability float64  `json:"spending_variability"`
	Emoji               string   `json:"emoji"`
}

// InvestmentSuggestion is a single prioritized piece of advice
type InvestmentSuggestion struct {
	Priority    string `json:"priority"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// BudgetPlan is a generated monthly budget
type BudgetPlan struct {
	CategoryBudgets    map[string]float64 `json:"category_budgets"`
	SuggestedSavings   float64            `json:"suggested_savings"`
	TotalBudget        float64            `json:"total_budget"`
	MonthlyIncome      float64            `json:"monthly_income"`
	RecommendedMonthly float64            `json:"recommended_monthly"`
}

// Report bundles every analytic for one user. A failed section carries
// its error message instead of a value.
type Report struct {
	Summary       *AnalyticsSummary      `json:"summary,omitempty"`
	Suggestions   []InvestmentSuggestion `json:"investment_suggestions,omitempty"`
	Forecast      []ForecastPoint        `json:"forecast,omitempty"`
	Savings       []SavingsProjection    `json:"savings_projection,omitempty"`
	Subscriptions []RecurrenceEntry      `json:"subscriptions,omitempty"`
	Income        []RecurrenceEntry      `json:"income_patterns,omitempty"`
	Salary        *SalaryPrediction      `json:"salary,omitempty"`
	Emergencies   *EmergencyReport       `json:"emergencies,omitempty"`
	Personality   *PersonalityProfile    `json:"personality,omitempty"`
	Budget        *BudgetPlan            `json:"budget,omitempty"`
	Errors        map[string]string      `json:"errors,omitempty"`
}

// HealthCheck is the periodic per-user check behind the e-mail digest
type HealthCheck struct {
	Emergencies EmergencyReport   `json:"emergencies"`
	Salary      *SalaryPrediction `json:"salary,omitempty"`
}

// NeedsAttention reports whether the user should be notified
func (h HealthCheck) NeedsAttention() bool {
	return h.Emergencies.HasEmergency || (h.Salary != nil && h.Salary.IsDelayed)
}
