package models

import "time"

// Goal is a savings target with a deadline.
type Goal struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Name         string    `json:"name"`
	TargetAmount float64   `json:"target_amount"`
	CurrentSaved float64   `json:"current_saved"`
	Deadline     time.Time `json:"deadline"`
	CreatedAt    string    `json:"created_at"`
}

// Remaining is the amount still missing to reach the target.
func (g Goal) Remaining() float64 {
	return g.TargetAmount - g.CurrentSaved
}

// GoalPlan describes how a goal can be reached at the current savings pace.
type GoalPlan struct {
	TargetAmount          float64     `json:"target_amount"`
	CurrentSaved          float64     `json:"current_saved"`
	Remaining             float64     `json:"remaining"`
	Deadline              string      `json:"deadline"`
	MonthsLeft            float64     `json:"months_left"`
	MonthlySavingsNeeded  float64     `json:"monthly_savings_needed"`
	CurrentMonthlySavings float64     `json:"current_monthly_savings"`
	IsAchievable          bool        `json:"is_achievable"`
	Shortfall             float64     `json:"shortfall"`
	RealisticMonths       *float64    `json:"realistic_months"`
	RealisticDate         *string     `json:"realistic_date"`
	Suggestions           []string    `json:"suggestions"`
	Milestones            []Milestone `json:"milestones"`
	ProgressPercentage    float64     `json:"progress_percentage"`
}

// Milestone is a fractional checkpoint toward a goal.
type Milestone struct {
	Percentage    int     `json:"percentage"`
	Amount        float64 `json:"amount"`
	EstimatedDate string  `json:"estimated_date"` // Format: YYYY-MM-DD
}
