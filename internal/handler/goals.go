package handler

import (
	"net/http"

	"github.com/Dan9191/finsight/internal/models"
)

type goalRequest struct {
	Name         string  `json:"name"`
	TargetAmount float64 `json:"target_amount"`
	CurrentSaved float64 `json:"current_saved"`
	Deadline     string  `json:"deadline"`
}

type goalProgressRequest struct {
	CurrentSaved float64 `json:"current_saved"`
}

// ListGoals returns the user's goals
func (h *Handler) ListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := h.svc.ListGoals(currentUser(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

// CreateGoal stores a new goal
func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	deadline, err := parseDate(req.Deadline)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	goal, err := h.svc.CreateGoal(currentUser(r), models.Goal{
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		CurrentSaved: req.CurrentSaved,
		Deadline:     deadline,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

// UpdateGoal records progress toward a goal
func (h *Handler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalProgressRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	goal, err := h.svc.UpdateGoalSaved(currentUser(r), pathID(r), req.CurrentSaved)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

// DeleteGoal removes a goal
func (h *Handler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteGoal(currentUser(r), pathID(r)); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GoalPlan returns the feasibility plan for a goal
func (h *Handler) GoalPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.svc.PlanGoal(currentUser(r), pathID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}
