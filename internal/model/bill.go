package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment status values. DerivePaymentStatus is the only place that computes
// them on the reconciliation path — never set the column independently there.
// StatusVoid is reserved for a future refund/cancellation flow; no transition
// into it is implemented yet.
const (
	StatusUnpaid  = "unpaid"
	StatusPartial = "partial"
	StatusPaid    = "paid"
	StatusVoid    = "void"
)

// DerivePaymentStatus is the pure function paymentStatus(paid, total).
func DerivePaymentStatus(paid, total decimal.Decimal) string {
	switch {
	case paid.LessThanOrEqual(decimal.Zero):
		return StatusUnpaid
	case paid.GreaterThanOrEqual(total):
		return StatusPaid
	default:
		return StatusPartial
	}
}

// Bill is an immutable sales document owned by a salon. Line item prices are
// snapshotted at creation — later catalog price changes never alter a bill.
// PaidAmount only moves forward, through the payment reconciliation path or
// the administrative override.
type Bill struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SalonID       uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_salon_bill_number"`
	CustomerID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	AppointmentID *uuid.UUID `gorm:"type:uuid"`
	BillNumber    int64      `gorm:"not null;uniqueIndex:idx_salon_bill_number"`

	ServiceSubtotal decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ProductSubtotal decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Adjustment      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaidAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PaymentStatus   string          `gorm:"type:varchar(20);not null;default:'unpaid';index"`
	PaymentMethod   *string         `gorm:"type:varchar(20)"`

	BillDate   time.Time `gorm:"not null;index"`
	CreatedBy  uuid.UUID `gorm:"type:uuid;not null"`
	ModifiedBy *uuid.UUID `gorm:"type:uuid"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Items    []BillItem `gorm:"foreignKey:BillID"`
	Customer *Customer  `gorm:"foreignKey:CustomerID"`
}

// BillItem is one priced line of a bill. Kind says whether it references a
// catalog service or a physical product; only product lines touch stock.
type BillItem struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BillID uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind   string    `gorm:"type:varchar(10);not null"` // "service" | "product"
	// RefID points at SalonService.ID or Product.ID depending on Kind
	RefID     uuid.UUID       `gorm:"type:uuid;not null"`
	Name      string          `gorm:"not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// Line item kinds.
const (
	ItemService = "service"
	ItemProduct = "product"
)
