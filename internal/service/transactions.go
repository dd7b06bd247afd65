package service

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/Dan9191/finsight/internal/models"
	"github.com/Dan9191/finsight/internal/statement"
)

const sourceManual = "manual"

// AddTransaction stores a transaction, filling in the category and the
// anomaly flag from the predictors
func (s *Service) AddTransaction(userID int64, tx models.Transaction) (*models.Transaction, error) {
	tx.Description = strings.TrimSpace(tx.Description)
	if tx.Description == "" || tx.Amount == 0 || tx.Date.IsZero() {
		return nil, fmt.Errorf("%w: date, description and a non-zero amount are required", ErrInvalidInput)
	}
	if math.IsNaN(tx.Amount) || math.IsInf(tx.Amount, 0) {
		return nil, fmt.Errorf("%w: amount must be a finite number", ErrInvalidInput)
	}
	if tx.Source == "" {
		tx.Source = sourceManual
	}
	tx.UserID = userID
	s.enrich(&tx)

	if err := s.store.CreateTransaction(&tx); err != nil {
		return nil, err
	}
	s.userLog(userID).Infof("Transaction %d stored (%s, anomaly=%t)", tx.ID, tx.Category, tx.IsAnomaly)
	return &tx, nil
}

// ImportStatement parses an uploaded CSV statement and stores its transactions
func (s *Service) ImportStatement(userID int64, filename string, r io.Reader) (*models.Statement, error) {
	txs, err := statement.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	for i := range txs {
		txs[i].UserID = userID
		s.enrich(&txs[i])
	}

	stmt := &models.Statement{UserID: userID, Filename: filename}
	if err := s.store.ImportStatement(stmt, txs); err != nil {
		return nil, err
	}
	s.userLog(userID).Infof("Statement %s imported with %d transactions", filename, stmt.TransactionCount)
	return stmt, nil
}

func (s *Service) enrich(tx *models.Transaction) {
	if tx.Category == "" {
		tx.Category = s.predictors.Classifier.Classify(tx.Description, tx.Amount)
	}
	tx.IsAnomaly = s.predictors.Detector.IsAnomalous(tx.Amount)
}

// ListTransactions returns the user's history
func (s *Service) ListTransactions(userID int64) ([]models.Transaction, error) {
	return s.store.ListTransactions(userID)
}

// DeleteTransaction removes one of the user's transactions
func (s *Service) DeleteTransaction(userID, id int64) error {
	return s.store.DeleteTransaction(userID, id)
}

// ListStatements returns the user's uploaded statements
func (s *Service) ListStatements(userID int64) ([]models.Statement, error) {
	return s.store.ListStatements(userID)
}

// DeleteStatement removes a statement together with its transactions
func (s *Service) DeleteStatement(userID, id int64) error {
	if err := s.store.DeleteStatement(userID, id); err != nil {
		return err
	}
	s.userLog(userID).Infof("Statement %d deleted", id)
	return nil
}
