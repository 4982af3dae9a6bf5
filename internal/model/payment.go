package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment is one application of money against a bill. Each verified payment
// corresponds to exactly one increment of Bill.PaidAmount — the unique
// IdempotencyKey makes replays a no-op instead of a double count.
type Payment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SalonID    uuid.UUID `gorm:"type:uuid;not null;index"`
	BillID     uuid.UUID `gorm:"type:uuid;not null;index"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`

	Amount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Method string          `gorm:"type:varchar(20);not null"` // "cash" | "card" | "upi" | "wallet"
	Status string          `gorm:"type:varchar(20);not null;default:'verified'"`

	ReceivedBy     uuid.UUID `gorm:"type:uuid;not null"`
	IdempotencyKey *string   `gorm:"uniqueIndex"`
	// ReceiptPDFPath is filled by the receipt worker, relative to PDF_STORAGE_PATH
	ReceiptPDFPath *string
	CreatedAt      time.Time

	Bill *Bill `gorm:"foreignKey:BillID"`
}

// Payment statuses.
const (
	PaymentPending  = "pending"
	PaymentVerified = "verified"
)

// Payment methods.
const (
	MethodCash   = "cash"
	MethodCard   = "card"
	MethodUPI    = "upi"
	MethodWallet = "wallet"
)
