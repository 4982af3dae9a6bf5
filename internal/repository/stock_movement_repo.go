package repository

import (
	"context"

	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/dto"
	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockMovementRepository interface {
	CreateTx(tx *gorm.DB, m *model.StockMovement) error
	FindByIdempotencyKey(ctx context.Context, salonID uuid.UUID, key string) (*model.StockMovement, error)
	List(ctx context.Context, salonID uuid.UUID, filter dto.MovementFilter) ([]model.StockMovement, int64, error)
	// SumBySalon returns SUM(quantity) per product — the ledger truth used by
	// the reconcile pass.
	SumBySalon(ctx context.Context, salonID uuid.UUID) (map[uuid.UUID]int, error)
}

type stockMovementRepo struct{ db *gorm.DB }

func NewStockMovementRepository(db *gorm.DB) StockMovementRepository {
	return &stockMovementRepo{db: db}
}

func (r *stockMovementRepo) CreateTx(tx *gorm.DB, m *model.StockMovement) error {
	return tx.Create(m).Error
}

func (r *stockMovementRepo) FindByIdempotencyKey(ctx context.Context, salonID uuid.UUID, key string) (*model.StockMovement, error) {
	var m model.StockMovement
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND idempotency_key = ?", salonID, key).
		First(&m).Error
	return &m, err
}

func (r *stockMovementRepo) List(ctx context.Context, salonID uuid.UUID, filter dto.MovementFilter) ([]model.StockMovement, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.StockMovement{}).Where("salon_id = ?", salonID)
	if filter.ProductID != "" {
		q = q.Where("product_id = ?", filter.ProductID)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}
	offset := (page - 1) * limit

	var movements []model.StockMovement
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&movements).Error
	return movements, total, err
}

func (r *stockMovementRepo) SumBySalon(ctx context.Context, salonID uuid.UUID) (map[uuid.UUID]int, error) {
	type row struct {
		ProductID uuid.UUID
		Total     int
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.StockMovement{}).
		Select("product_id, COALESCE(SUM(quantity), 0) AS total").
		Where("salon_id = ?", salonID).
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	sums := make(map[uuid.UUID]int, len(rows))
	for _, r := range rows {
		sums[r.ProductID] = r.Total
	}
	return sums, nil
}
