package models

// Statement represents an uploaded bank statement file
type Statement struct {
	ID               int64  `json:"id"`
	UserID           int64  `json:"user_id"`
	Filename         string `json:"filename"`
	UploadedAt       string `json:"uploaded_at"`
	TransactionCount int    `json:"transaction_count"`
}
