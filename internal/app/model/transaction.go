package model

import (
	"fmt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"time"
)

type Transaction struct {
	ID          uuid.UUID         `json:"id"`
	CreatedAt   time.Time         `json:"created_at"`
	AccountID   uuid.UUID         `json:"account_id"`
	Kind        TransactionKind   `json:"kind"`
	Status      TransactionStatus `json:"status"`
	Amount      decimal.Decimal   `json:"amount"`
	ItemID      uuid.NullUUID     `json:"item_id"`
	InitiatedBy uuid.UUID         `json:"initiated_by"`
	ApprovedBy  uuid.NullUUID     `json:"approved_by"`
	SettledAt   *time.Time        `json:"settled_at,omitempty"`
}

// Signed returns the amount with the sign it contributes to the balance
func (t *Transaction) Signed() decimal.Decimal {
	if t.Kind == TransactionKindPurchase {
		return t.Amount.Neg()
	}
	return t.Amount
}

type TransactionKind int

const (
	TransactionKindDeposit TransactionKind = iota + 1
	TransactionKindPurchase
)

func (k TransactionKind) String() string {
	switch k {
	case TransactionKindDeposit:
		return "DEPOSIT"
	case TransactionKindPurchase:
		return "PURCHASE"
	}
	return fmt.Sprintf("KIND(%d)", int(k))
}

// MarshalText implements the encoding.TextMarshaler interface.
func (k TransactionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

type TransactionStatus int

const (
	TransactionStatusPending TransactionStatus = iota + 1
	TransactionStatusCompleted
	TransactionStatusCancelled
)

func (s TransactionStatus) String() string {
	switch s {
	case TransactionStatusPending:
		return "PENDING"
	case TransactionStatusCompleted:
		return "COMPLETED"
	case TransactionStatusCancelled:
		return "CANCELLED"
	}
	return fmt.Sprintf("STATUS(%d)", int(s))
}

// MarshalText implements the encoding.TextMarshaler interface.
func (s TransactionStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Terminal statuses never change again
func (s TransactionStatus) Terminal() bool {
	return s == TransactionStatusCompleted || s == TransactionStatusCancelled
}

// PendingDeposit is a row of the operator review queue
type PendingDeposit struct {
	ID        uuid.UUID         `json:"id"`
	Amount    decimal.Decimal   `json:"amount"`
	Status    TransactionStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	Account   AccountRef        `json:"user"`
}

// Settlement is the outcome of an operation that completed a transaction
type Settlement struct {
	Transaction    *Transaction    `json:"transaction"`
	Balance        decimal.Decimal `json:"new_balance"`
	Message        string          `json:"message"`
	AlreadySettled bool            `json:"already_settled,omitempty"`
}

type RevenueSummary struct {
	TotalAccounts  int             `json:"total_users"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalPurchases int             `json:"total_purchases"`
	Currency       string          `json:"currency"`
}
