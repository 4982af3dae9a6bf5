package repository

import (
	"context"
	"time"

	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	CreateTx(tx *gorm.DB, p *model.Payment) error
	FindByID(ctx context.Context, salonID, id uuid.UUID) (*model.Payment, error)
	FindByIdempotencyKey(ctx context.Context, salonID uuid.UUID, key string) (*model.Payment, error)
	ListByBill(ctx context.Context, salonID, billID uuid.UUID) ([]model.Payment, error)
	SetReceiptPath(ctx context.Context, id uuid.UUID, path string) error
	// SumByMethod groups verified payments in [from, to) by method — feeds the
	// dashboard payment breakdown.
	SumByMethod(ctx context.Context, salonID uuid.UUID, from, to time.Time) (map[string]decimal.Decimal, error)
}

type paymentRepo struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) PaymentRepository { return &paymentRepo{db: db} }

func (r *paymentRepo) CreateTx(tx *gorm.DB, p *model.Payment) error {
	return tx.Create(p).Error
}

func (r *paymentRepo) FindByID(ctx context.Context, salonID, id uuid.UUID) (*model.Payment, error) {
	var p model.Payment
	err := r.db.WithContext(ctx).Where("salon_id = ?", salonID).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *paymentRepo) FindByIdempotencyKey(ctx context.Context, salonID uuid.UUID, key string) (*model.Payment, error) {
	var p model.Payment
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND idempotency_key = ?", salonID, key).
		First(&p).Error
	return &p, err
}

func (r *paymentRepo) ListByBill(ctx context.Context, salonID, billID uuid.UUID) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND bill_id = ?", salonID, billID).
		Order("created_at ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepo) SetReceiptPath(ctx context.Context, id uuid.UUID, path string) error {
	return r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("id = ?", id).
		Update("receipt_pdf_path", path).Error
}

func (r *paymentRepo) SumByMethod(ctx context.Context, salonID uuid.UUID, from, to time.Time) (map[string]decimal.Decimal, error) {
	type row struct {
		Method string
		Total  decimal.Decimal
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.Payment{}).
		Select("method, COALESCE(SUM(amount), 0) AS total").
		Where("salon_id = ? AND status = ? AND created_at >= ? AND created_at < ?",
			salonID, model.PaymentVerified, from, to).
		Group("method").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	sums := make(map[string]decimal.Decimal, len(rows))
	for _, r := range rows {
		sums[r.Method] = r.Total
	}
	return sums, nil
}
