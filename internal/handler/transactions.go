package handler

import (
	"net/http"

	"github.com/Dan9191/finsight/internal/models"
)

const maxUploadSize = 10 << 20

type transactionRequest struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Source      string  `json:"source"`
}

// ListTransactions returns the user's transactions
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.svc.ListTransactions(currentUser(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, txs)
}

// CreateTransaction stores a single transaction
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	tx, err := h.svc.AddTransaction(currentUser(r), models.Transaction{
		Date:        date,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Source:      req.Source,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

// DeleteTransaction removes a transaction
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteTransaction(currentUser(r), pathID(r)); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadStatement imports a CSV statement sent as the "file" form field
func (h *Handler) UploadStatement(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "a statement file is required")
		return
	}
	defer file.Close()

	stmt, err := h.svc.ImportStatement(currentUser(r), header.Filename, file)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, stmt)
}

// ListStatements returns the uploaded statements
func (h *Handler) ListStatements(w http.ResponseWriter, r *http.Request) {
	stmts, err := h.svc.ListStatements(currentUser(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stmts)
}

// DeleteStatement removes a statement and its transactions
func (h *Handler) DeleteStatement(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteStatement(currentUser(r), pathID(r)); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
