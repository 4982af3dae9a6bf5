package repository

import (
	"context"

	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogRepository is the read-only view of customers and catalog services
// the billing engine needs to resolve line item references. The writing side
// of these entities lives in the operational CRUD service, outside this
// module.
type CatalogRepository interface {
	FindCustomer(ctx context.Context, salonID, id uuid.UUID) (*model.Customer, error)
	FindService(ctx context.Context, salonID, id uuid.UUID) (*model.SalonService, error)
}

type catalogRepo struct{ db *gorm.DB }

func NewCatalogRepository(db *gorm.DB) CatalogRepository { return &catalogRepo{db: db} }

func (r *catalogRepo) FindCustomer(ctx context.Context, salonID, id uuid.UUID) (*model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND active = true", salonID).
		First(&c, "id = ?", id).Error
	return &c, err
}

func (r *catalogRepo) FindService(ctx context.Context, salonID, id uuid.UUID) (*model.SalonService, error) {
	var s model.SalonService
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND active = true", salonID).
		First(&s, "id = ?", id).Error
	return &s, err
}
