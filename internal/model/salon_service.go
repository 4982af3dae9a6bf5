package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalonService is a catalog entry (haircut, facial, …) a bill line can
// reference. The billing engine snapshots Price into the line item — catalog
// edits never rewrite history.
type SalonService struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SalonID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name     string          `gorm:"not null"`
	Category string          `gorm:"type:varchar(40)"`
	Price    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Duration int             `gorm:"not null;default:30"` // minutes
	Active   bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName keeps the table clear of the generic "services" name.
func (SalonService) TableName() string { return "salon_services" }
