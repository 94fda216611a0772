package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"time"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

type Account struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Password  string          `json:"-"`
	Role      Role            `json:"role"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

// IsAdmin reports whether the account may operate the review queue
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// AccountRef is the minimal account identity shown to operators.
// Fields are empty when the referenced account is missing.
type AccountRef struct {
	ID    uuid.NullUUID `json:"id"`
	Name  string        `json:"name,omitempty"`
	Email string        `json:"email,omitempty"`
}
