package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/finsight/internal/models"
)

const goalColumns = `id, user_id, name, target_amount, current_saved, deadline, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGoal(row rowScanner) (models.Goal, error) {
	var g models.Goal
	var createdAt time.Time
	if err := row.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentSaved, &g.Deadline, &createdAt); err != nil {
		return models.Goal{}, err
	}
	g.CreatedAt = createdAt.Format(time.RFC3339)
	return g, nil
}

// CreateGoal stores a savings goal
func (r *Repository) CreateGoal(goal *models.Goal) error {
	query := `
		INSERT INTO finsight.goals (user_id, name, target_amount, current_saved, deadline, created_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	var createdAt time.Time
	err := r.db.QueryRow(query, goal.UserID, goal.Name, goal.TargetAmount, goal.CurrentSaved, goal.Deadline).
		Scan(&goal.ID, &createdAt)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}
	goal.CreatedAt = createdAt.Format(time.RFC3339)
	return nil
}

// ListGoals returns a user's goals ordered by deadline
func (r *Repository) ListGoals(userID int64) ([]models.Goal, error) {
	rows, err := r.db.Query(`
		SELECT `+goalColumns+`
		FROM finsight.goals
		WHERE user_id = $1
		ORDER BY deadline, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// FindGoal retrieves a goal owned by userID
func (r *Repository) FindGoal(userID, id int64) (*models.Goal, error) {
	row := r.db.QueryRow(`
		SELECT `+goalColumns+`
		FROM finsight.goals
		WHERE id = $1 AND user_id = $2`, id, userID)
	g, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("goal %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}
	return &g, nil
}

// UpdateGoalSaved records the amount saved toward a goal
func (r *Repository) UpdateGoalSaved(userID, id int64, saved float64) error {
	res, err := r.db.Exec(`UPDATE finsight.goals SET current_saved = $1 WHERE id = $2 AND user_id = $3`, saved, id, userID)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	if err := affectedOne(res); err != nil {
		return fmt.Errorf("goal %d: %w", id, err)
	}
	return nil
}

// DeleteGoal removes a goal owned by userID
func (r *Repository) DeleteGoal(userID, id int64) error {
	res, err := r.db.Exec(`DELETE FROM finsight.goals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	if err := affectedOne(res); err != nil {
		return fmt.Errorf("goal %d: %w", id, err)
	}
	return nil
}
