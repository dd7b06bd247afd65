// Package statement imports bank statement exports into transactions.
package statement

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Dan9191/finsight/internal/models"
)

// SourceCSV marks transactions imported from an uploaded statement.
const SourceCSV = "csv_upload"

// ErrNoColumns is returned when the header has no date or amount column.
var ErrNoColumns = errors.New("statement has no recognizable date and amount columns")

var (
	dateColumns        = []string{"date", "txn_date", "transaction_date", "timestamp", "posting_date"}
	descriptionColumns = []string{"description", "desc", "details", "narration", "merchant", "transaction_details", "memo"}
	amountColumns      = []string{"amount", "txn_amount", "transaction_amount"}
	categoryColumns    = []string{"category", "type", "category_name", "expense_type"}

	dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "01/02/2006", "1/2/2006", "02 Jan 2006", "Jan 2, 2006"}

	descriptionPrefixes = []string{"POS PURCHASE ", "DEBIT CARD PURCHASE ", "REF: "}
)

const unknownDescription = "UNKNOWN TRANSACTION"

// columns holds the index of each recognized header, or -1.
type columns struct {
	date, description, amount, debit, credit, category int
}

func locate(header []string) columns {
	index := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}
	find := func(aliases ...string) int {
		for _, a := range aliases {
			if i, ok := index[a]; ok {
				return i
			}
		}
		return -1
	}
	return columns{
		date:        find(dateColumns...),
		description: find(descriptionColumns...),
		amount:      find(amountColumns...),
		debit:       find("debit"),
		credit:      find("credit"),
		category:    find(categoryColumns...),
	}
}

// Parse reads a CSV statement. Rows with an unreadable date or a zero,
// unreadable or non-finite amount are skipped.
func Parse(r io.Reader) ([]models.Transaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return []models.Transaction{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	cols := locate(header)
	if cols.date < 0 || (cols.amount < 0 && cols.debit < 0 && cols.credit < 0) {
		return nil, ErrNoColumns
	}

	txs := []models.Transaction{}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read line %d: %w", line, err)
		}

		date, ok := parseDate(field(record, cols.date))
		if !ok {
			continue
		}
		amount := rowAmount(record, cols)
		if amount == 0 {
			continue
		}
		txs = append(txs, models.Transaction{
			Date:        date,
			Description: CleanDescription(field(record, cols.description)),
			Amount:      amount,
			Category:    field(record, cols.category),
			Source:      SourceCSV,
		})
	}
	return txs, nil
}

// rowAmount prefers the signed amount column, then debit, then credit.
func rowAmount(record []string, cols columns) float64 {
	if raw := field(record, cols.amount); raw != "" {
		v, _ := parseAmount(raw)
		return v
	}
	if raw := field(record, cols.debit); raw != "" {
		if v, ok := parseAmount(raw); ok {
			return -v
		}
	}
	if raw := field(record, cols.credit); raw != "" {
		if v, ok := parseAmount(raw); ok {
			return v
		}
	}
	return 0
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func parseAmount(raw string) (float64, bool) {
	raw = strings.NewReplacer(",", "", "$", "", " ", "").Replace(raw)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// CleanDescription upper-cases a description, strips card terminal
// prefixes and collapses whitespace.
func CleanDescription(description string) string {
	desc := strings.ToUpper(strings.TrimSpace(description))
	if desc == "" {
		return unknownDescription
	}
	for _, prefix := range descriptionPrefixes {
		if strings.HasPrefix(desc, prefix) {
			desc = strings.TrimSpace(strings.TrimPrefix(desc, prefix))
		}
	}
	return strings.Join(strings.Fields(desc), " ")
}
