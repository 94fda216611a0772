package opsnotify

import (
	"github.com/shopspring/decimal"
	"time"
)

const (
	KindDepositRequested  = "deposit_requested"
	KindOrphanTransaction = "orphan_transaction"
)

// Event is an operator notification delivered to the webhook sink
type Event struct {
	ID            string          `json:"id"`
	Kind          string          `json:"kind"`
	Recipient     string          `json:"recipient,omitempty"`
	AccountID     string          `json:"account_id,omitempty"`
	AccountName   string          `json:"account_name,omitempty"`
	AccountEmail  string          `json:"account_email,omitempty"`
	TransactionID string          `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
	Detail        string          `json:"detail,omitempty"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

type SendResponse struct {
	ID       string `json:"id"`
	Accepted bool   `json:"accepted"`
}
