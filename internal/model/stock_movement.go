package model

import (
	"time"

	"github.com/google/uuid"
)

// StockMovement records every change to a product's stock.
// Quantity is signed: positive = stock in, negative = stock out.
// Movements are append-only — never updated or deleted. Cancellations create
// inverse entries. The ledger is the source of truth for audit disputes;
// Product.CurrentStock is the cached derived value.
type StockMovement struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SalonID       uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Type          string    `gorm:"not null"` // "purchase" | "sale" | "adjustment" | "return" | "expired"
	Quantity      int       `gorm:"not null"`
	StockBefore   int       `gorm:"not null"`
	StockAfter    int       `gorm:"not null"`
	Reason        string
	PerformedBy   uuid.UUID `gorm:"type:uuid;not null"`
	// ReferenceID links to the originating Bill when the movement came from a sale
	ReferenceID *uuid.UUID `gorm:"type:uuid"`
	// IdempotencyKey deduplicates replayed movements (offline clients, retries)
	IdempotencyKey *string `gorm:"uniqueIndex"`
	CreatedAt      time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

// TableName overrides GORM's default pluralization.
func (StockMovement) TableName() string { return "stock_movements" }

// Movement types.
const (
	MovementPurchase   = "purchase"
	MovementSale       = "sale"
	MovementAdjustment = "adjustment"
	MovementReturn     = "return"
	MovementExpired    = "expired"
)
