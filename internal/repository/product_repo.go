package repository

import (
	"context"
	"time"

	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, salonID, id uuid.UUID) (*model.Product, error)
	FindByIDTx(tx *gorm.DB, salonID, id uuid.UUID) (*model.Product, error)

	// ApplyStockDeltaTx performs the guarded stock mutation inside a
	// transaction. The guard current_stock + delta >= 0 runs in the UPDATE
	// itself, so concurrent movements against the same product serialize at
	// the row without a read-modify-write race. Returns false when the guard
	// rejected the delta (stock would go negative).
	ApplyStockDeltaTx(tx *gorm.DB, id uuid.UUID, delta, clearReserved int) (bool, error)

	ListLowStock(ctx context.Context, salonID uuid.UUID) ([]model.Product, error)
	ListExpiring(ctx context.Context, salonID uuid.UUID, from, to time.Time) ([]model.Product, error)
	ListBySalon(ctx context.Context, salonID uuid.UUID) ([]model.Product, error)

	// DistinctSalons lists every salon that has at least one product.
	// Used by the background reconciliation sweep.
	DistinctSalons(ctx context.Context) ([]uuid.UUID, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, salonID, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("salon_id = ?", salonID).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productRepo) FindByIDTx(tx *gorm.DB, salonID, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := tx.Where("salon_id = ?", salonID).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productRepo) ApplyStockDeltaTx(tx *gorm.DB, id uuid.UUID, delta, clearReserved int) (bool, error) {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND current_stock + ? >= 0", id, delta).
		Updates(map[string]interface{}{
			"current_stock":  gorm.Expr("current_stock + ?", delta),
			"reserved_stock": gorm.Expr("GREATEST(reserved_stock - ?, 0)", clearReserved),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *productRepo) ListLowStock(ctx context.Context, salonID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND active = true AND current_stock - reserved_stock <= reorder_level", salonID).
		Order("current_stock - reserved_stock ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) ListExpiring(ctx context.Context, salonID uuid.UUID, from, to time.Time) ([]model.Product, error) {
	var products []model.Product
	// NULL expiry means non-perishable — excluded, not "already expired"
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND active = true AND expiry_date IS NOT NULL AND expiry_date >= ? AND expiry_date < ?",
			salonID, from, to).
		Order("expiry_date ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) ListBySalon(ctx context.Context, salonID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Where("salon_id = ?", salonID).Order("sku ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) DistinctSalons(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Distinct("salon_id").
		Pluck("salon_id", &ids).Error
	return ids, err
}

func (r *productRepo) DB() *gorm.DB { return r.db }
