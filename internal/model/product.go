package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a physical retail item owned by a salon.
// CurrentStock is the fast-path cache of the movement ledger: it must always
// equal the sum of all signed StockMovement quantities for this product.
// AvailableStock (current − reserved) is derived, never stored.
type Product struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SalonID       uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_salon_sku"`
	SKU           string          `gorm:"not null;uniqueIndex:idx_salon_sku"`
	Name          string          `gorm:"index;not null"`
	Description   *string
	CurrentStock  int             `gorm:"not null;default:0"`
	ReservedStock int             `gorm:"not null;default:0"`
	MinStock      int             `gorm:"not null;default:0"`
	MaxStock      int             `gorm:"not null;default:0"`
	ReorderLevel  int             `gorm:"not null;default:5"`
	CostPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SellingPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ExpiryDate    *time.Time      `gorm:"index"`
	BatchNumber   *string
	Active        bool `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AvailableStock returns current − reserved. The ledger guarantees this is
// never negative for products mutated through ApplyMovement.
func (p *Product) AvailableStock() int {
	return p.CurrentStock - p.ReservedStock
}
