package repository

import (
	"fmt"

	"github.com/Dan9191/finsight/internal/models"
	"github.com/lib/pq"
)

const transactionColumns = `id, user_id, statement_id, date, description, amount, category, source, is_recurring, is_anomaly`

// CreateTransaction stores a single transaction
func (r *Repository) CreateTransaction(tx *models.Transaction) error {
	query := `
		INSERT INTO finsight.transactions (user_id, statement_id, date, description, amount, category, source, is_recurring, is_anomaly)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.db.QueryRow(query, tx.UserID, tx.StatementID, tx.Date, tx.Description, tx.Amount,
		tx.Category, tx.Source, tx.IsRecurring, tx.IsAnomaly).Scan(&tx.ID)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// ImportStatement records an uploaded statement and bulk-copies its
// transactions in a single database transaction.
func (r *Repository) ImportStatement(stmt *models.Statement, txs []models.Transaction) error {
	dbTx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin import: %w", err)
	}
	defer dbTx.Rollback()

	err = dbTx.QueryRow(`
		INSERT INTO finsight.statements (user_id, filename, transaction_count, uploaded_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		RETURNING id, uploaded_at::text`, stmt.UserID, stmt.Filename, len(txs)).
		Scan(&stmt.ID, &stmt.UploadedAt)
	if err != nil {
		return fmt.Errorf("failed to create statement: %w", err)
	}
	stmt.TransactionCount = len(txs)

	copyStmt, err := dbTx.Prepare(pq.CopyInSchema("finsight", "transactions",
		"user_id", "statement_id", "date", "description", "amount", "category", "source", "is_recurring", "is_anomaly"))
	if err != nil {
		return fmt.Errorf("failed to prepare copy: %w", err)
	}
	for _, tx := range txs {
		if _, err := copyStmt.Exec(stmt.UserID, stmt.ID, tx.Date, tx.Description, tx.Amount,
			tx.Category, tx.Source, tx.IsRecurring, tx.IsAnomaly); err != nil {
			copyStmt.Close()
			return fmt.Errorf("failed to copy transaction: %w", err)
		}
	}
	if _, err := copyStmt.Exec(); err != nil {
		copyStmt.Close()
		return fmt.Errorf("failed to flush copy: %w", err)
	}
	if err := copyStmt.Close(); err != nil {
		return fmt.Errorf("failed to close copy: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	return nil
}

// ListTransactions returns a user's transactions ordered by date
func (r *Repository) ListTransactions(userID int64) ([]models.Transaction, error) {
	rows, err := r.db.Query(`
		SELECT `+transactionColumns+`
		FROM finsight.transactions
		WHERE user_id = $1
		ORDER BY date, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txs := []models.Transaction{}
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.StatementID, &tx.Date, &tx.Description, &tx.Amount,
			&tx.Category, &tx.Source, &tx.IsRecurring, &tx.IsAnomaly); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// DeleteTransaction removes a transaction owned by userID
func (r *Repository) DeleteTransaction(userID, id int64) error {
	res, err := r.db.Exec(`DELETE FROM finsight.transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if err := affectedOne(res); err != nil {
		return fmt.Errorf("transaction %d: %w", id, err)
	}
	return nil
}

// ListStatements returns a user's uploaded statements, newest first
func (r *Repository) ListStatements(userID int64) ([]models.Statement, error) {
	rows, err := r.db.Query(`
		SELECT id, user_id, filename, uploaded_at::text, transaction_count
		FROM finsight.statements
		WHERE user_id = $1
		ORDER BY uploaded_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list statements: %w", err)
	}
	defer rows.Close()

	stmts := []models.Statement{}
	for rows.Next() {
		var s models.Statement
		if err := rows.Scan(&s.ID, &s.UserID, &s.Filename, &s.UploadedAt, &s.TransactionCount); err != nil {
			return nil, fmt.Errorf("failed to scan statement: %w", err)
		}
		stmts = append(stmts, s)
	}
	return stmts, rows.Err()
}

// DeleteStatement removes a statement and, by cascade, its transactions
func (r *Repository) DeleteStatement(userID, id int64) error {
	res, err := r.db.Exec(`DELETE FROM finsight.statements WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete statement: %w", err)
	}
	if err := affectedOne(res); err != nil {
		return fmt.Errorf("statement %d: %w", id, err)
	}
	return nil
}
