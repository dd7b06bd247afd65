package handler

import (
	"net/http"

	"github.com/Dan9191/finsight/internal/analytics"
)

type purchaseRequest struct {
	Amount float64 `json:"amount"`
	Months int     `json:"months"`
}

// respond writes v, or maps err to an error response
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, v any, err error) {
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Summary(currentUser(r))
	h.respond(w, r, v, err)
}

func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days", analytics.DefaultForecastDays)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	v, err := h.svc.Forecast(currentUser(r), days)
	h.respond(w, r, v, err)
}

func (h *Handler) SavingsProjection(w http.ResponseWriter, r *http.Request) {
	months, err := queryInt(r, "months", analytics.DefaultProjectionMonths)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	v, err := h.svc.SavingsProjection(currentUser(r), months)
	h.respond(w, r, v, err)
}

func (h *Handler) Subscriptions(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Subscriptions(currentUser(r))
	h.respond(w, r, v, err)
}

func (h *Handler) IncomePatterns(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.IncomePatterns(currentUser(r))
	h.respond(w, r, v, err)
}

func (h *Handler) Salary(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Salary(currentUser(r))
	h.respond(w, r, v, err)
}

func (h *Handler) Emergencies(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Emergencies(currentUser(r))
	h.respond(w, r, v, err)
}

func (h *Handler) Personality(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Personality(currentUser(r))
	h.respond(w, r, v, err)
}

func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Suggestions(r.Context(), currentUser(r))
	h.respond(w, r, v, err)
}

func (h *Handler) Budget(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Budget(currentUser(r))
	h.respond(w, r, v, err)
}

func (h *Handler) Spending(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Spending(currentUser(r))
	h.respond(w, r, v, err)
}

func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Report(r.Context(), currentUser(r))
	h.respond(w, r, v, err)
}

// PurchaseImpact simulates a purchase described in the request body
func (h *Handler) PurchaseImpact(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	v, err := h.svc.PurchaseImpact(currentUser(r), req.Amount, req.Months)
	h.respond(w, r, v, err)
}
