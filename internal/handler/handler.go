package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Dan9191/finsight/internal/analytics"
	"github.com/Dan9191/finsight/internal/middleware"
	"github.com/Dan9191/finsight/internal/repository"
	"github.com/Dan9191/finsight/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

type Handler struct {
	svc   *service.Service
	rates service.RateSource
	log   *logrus.Logger
}

func NewHandler(svc *service.Service, rates service.RateSource, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, rates: rates, log: log}
}

// RegisterRoutes mounts the public routes on r and the authenticated ones behind auth
func (h *Handler) RegisterRoutes(r *mux.Router, auth mux.MiddlewareFunc) {
	// Public routes
	r.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/key-rate", h.KeyRate).Methods(http.MethodGet)

	// Protected routes
	api := r.PathPrefix("/").Subrouter()
	api.Use(auth)
	api.HandleFunc("/auth/me", h.Me).Methods(http.MethodGet)

	api.HandleFunc("/transactions", h.ListTransactions).Methods(http.MethodGet)
	api.HandleFunc("/transactions", h.CreateTransaction).Methods(http.MethodPost)
	api.HandleFunc("/transactions/{id:[0-9]+}", h.DeleteTransaction).Methods(http.MethodDelete)
	api.HandleFunc("/upload", h.UploadStatement).Methods(http.MethodPost)
	api.HandleFunc("/statements", h.ListStatements).Methods(http.MethodGet)
	api.HandleFunc("/statements/{id:[0-9]+}", h.DeleteStatement).Methods(http.MethodDelete)

	api.HandleFunc("/goals", h.ListGoals).Methods(http.MethodGet)
	api.HandleFunc("/goals", h.CreateGoal).Methods(http.MethodPost)
	api.HandleFunc("/goals/{id:[0-9]+}", h.UpdateGoal).Methods(http.MethodPut)
	api.HandleFunc("/goals/{id:[0-9]+}", h.DeleteGoal).Methods(http.MethodDelete)
	api.HandleFunc("/goals/{id:[0-9]+}/plan", h.GoalPlan).Methods(http.MethodGet)

	a := api.PathPrefix("/analytics").Subrouter()
	a.HandleFunc("/summary", h.Summary).Methods(http.MethodGet)
	a.HandleFunc("/forecast", h.Forecast).Methods(http.MethodGet)
	a.HandleFunc("/savings-projection", h.SavingsProjection).Methods(http.MethodGet)
	a.HandleFunc("/subscriptions", h.Subscriptions).Methods(http.MethodGet)
	a.HandleFunc("/income-patterns", h.IncomePatterns).Methods(http.MethodGet)
	a.HandleFunc("/salary", h.Salary).Methods(http.MethodGet)
	a.HandleFunc("/emergencies", h.Emergencies).Methods(http.MethodGet)
	a.HandleFunc("/personality", h.Personality).Methods(http.MethodGet)
	a.HandleFunc("/suggestions", h.Suggestions).Methods(http.MethodGet)
	a.HandleFunc("/budget", h.Budget).Methods(http.MethodGet)
	a.HandleFunc("/spending", h.Spending).Methods(http.MethodGet)
	a.HandleFunc("/report", h.Report).Methods(http.MethodGet)
	a.HandleFunc("/purchase-impact", h.PurchaseImpact).Methods(http.MethodPost)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// fail maps err to a status code and writes it
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, repository.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, analytics.ErrNoTransactions),
		errors.Is(err, analytics.ErrNoIncome),
		errors.Is(err, analytics.ErrNoRecurringIncome),
		errors.Is(err, analytics.ErrComputation):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		h.log.WithField("request_id", middleware.RequestID(r.Context())).Errorf("Request failed: %v", err)
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

func decode(r *http.Request, v any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("invalid JSON payload")
	}
	return nil
}

func currentUser(r *http.Request) int64 {
	id, _ := middleware.UserID(r.Context())
	return id
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

// queryInt reads a positive integer query parameter, or def when absent
func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, errors.New(key + " must be a positive integer")
	}
	return v, nil
}

func parseDate(raw string) (time.Time, error) {
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, errors.New("dates must use YYYY-MM-DD")
	}
	return d, nil
}
