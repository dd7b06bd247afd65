package service

import (
	"fmt"
	"strings"

	"github.com/Dan9191/finsight/internal/models"
)

// CreateGoal stores a savings goal
func (s *Service) CreateGoal(userID int64, goal models.Goal) (*models.Goal, error) {
	goal.Name = strings.TrimSpace(goal.Name)
	if goal.Name == "" || goal.TargetAmount <= 0 || goal.Deadline.IsZero() {
		return nil, fmt.Errorf("%w: name, positive target and deadline are required", ErrInvalidInput)
	}
	if goal.CurrentSaved < 0 {
		return nil, fmt.Errorf("%w: saved amount cannot be negative", ErrInvalidInput)
	}
	goal.UserID = userID
	if err := s.store.CreateGoal(&goal); err != nil {
		return nil, err
	}
	s.userLog(userID).Infof("Goal created: %s", goal.Name)
	return &goal, nil
}

// ListGoals returns the user's goals
func (s *Service) ListGoals(userID int64) ([]models.Goal, error) {
	return s.store.ListGoals(userID)
}

// UpdateGoalSaved records progress toward a goal
func (s *Service) UpdateGoalSaved(userID, goalID int64, saved float64) (*models.Goal, error) {
	if saved < 0 {
		return nil, fmt.Errorf("%w: saved amount cannot be negative", ErrInvalidInput)
	}
	if err := s.store.UpdateGoalSaved(userID, goalID, saved); err != nil {
		return nil, err
	}
	return s.store.FindGoal(userID, goalID)
}

// DeleteGoal removes a goal
func (s *Service) DeleteGoal(userID, goalID int64) error {
	return s.store.DeleteGoal(userID, goalID)
}

// PlanGoal runs the goal planner against the user's history
func (s *Service) PlanGoal(userID, goalID int64) (*models.GoalPlan, error) {
	goal, err := s.store.FindGoal(userID, goalID)
	if err != nil {
		return nil, err
	}
	txs, err := s.store.ListTransactions(userID)
	if err != nil {
		return nil, err
	}
	plan, err := s.engine.PlanGoal(goal.TargetAmount, goal.Deadline, txs, goal.CurrentSaved)
	if err != nil {
		s.userLog(userID).Errorf("Goal plan failed: %v", err)
		return nil, err
	}
	return &plan, nil
}
