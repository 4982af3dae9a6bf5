package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is a salon outgoing. Cancelled expenses stay in the table for audit
// but are excluded from every rollup.
type Expense struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SalonID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Category string          `gorm:"type:varchar(40);not null"`
	Amount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Date     time.Time       `gorm:"not null;index"`
	Status   string          `gorm:"type:varchar(20);not null;default:'active'"` // "active" | "cancelled"
	Notes    *string

	ReportedBy uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy *uuid.UUID `gorm:"type:uuid"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

const (
	ExpenseActive    = "active"
	ExpenseCancelled = "cancelled"
)
