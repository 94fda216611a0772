package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"time"
)

type NotificationKind string

const (
	NotificationDepositRequested  NotificationKind = "deposit_requested"
	NotificationOrphanTransaction NotificationKind = "orphan_transaction"
)

// Notification is an operator-facing event delivered after the fact
type Notification struct {
	Kind          NotificationKind
	AccountID     uuid.UUID
	AccountName   string
	AccountEmail  string
	TransactionID uuid.UUID
	Amount        decimal.Decimal
	Detail        string
	OccurredAt    time.Time
}
