package models

import "time"

// Transaction represents a financial transaction owned by a user.
// Positive amounts are inflows, negative amounts are outflows.
type Transaction struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category,omitempty"`
	Source      string    `json:"source"`
	IsRecurring bool      `json:"is_recurring"`
	IsAnomaly   bool      `json:"is_anomaly"`
	StatementID *int64    `json:"statement_id,omitempty"`
}

// CategoryOr returns the transaction category or fallback when unset.
func (t Transaction) CategoryOr(fallback string) string {
	if t.Category == "" {
		return fallback
	}
	return t.Category
}
