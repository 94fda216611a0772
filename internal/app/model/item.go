package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"time"
)

type ItemStatus string

const (
	ItemStatusAvailable ItemStatus = "available"
	ItemStatusSold      ItemStatus = "sold"
)

type Item struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Status      ItemStatus      `json:"status"`
	OwnerID     uuid.NullUUID   `json:"-"`
	// Delivery is handed to the buyer only
	Delivery  string    `json:"-"`
	CreatedBy uuid.UUID `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ItemDetails is the operator view of an item, delivery included
type ItemDetails struct {
	*Item
	Delivery  string        `json:"delivery"`
	OwnerID   uuid.NullUUID `json:"owner_id"`
	CreatedBy uuid.UUID     `json:"created_by"`
}

// Purchase is what the buyer receives after a successful checkout
type Purchase struct {
	Item      *Item           `json:"item"`
	Delivery  string          `json:"delivery"`
	Balance   decimal.Decimal `json:"new_balance"`
	ReceiptID uuid.UUID       `json:"transaction_id"`
	Message   string          `json:"message"`
}
