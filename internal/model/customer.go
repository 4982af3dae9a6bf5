package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer is the minimal projection the financial core needs: bills and
// payments reference customers by id only. Full customer CRUD lives in the
// operational service, outside this module.
type Customer struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SalonID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name    string    `gorm:"not null"`
	Phone   *string   `gorm:"type:varchar(20)"`
	Email   *string
	Active  bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
