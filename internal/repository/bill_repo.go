package repository

import (
	"context"
	"time"

	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/dto"
	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RevenueAggregate is the rollup row for bills in a date range.
type RevenueAggregate struct {
	TotalRevenue    decimal.Decimal
	CollectedAmount decimal.Decimal
	BillCount       int64
}

type BillRepository interface {
	CreateTx(tx *gorm.DB, b *model.Bill) error
	NextBillNumberTx(tx *gorm.DB, salonID uuid.UUID) (int64, error)
	FindByID(ctx context.Context, salonID, id uuid.UUID) (*model.Bill, error)
	List(ctx context.Context, salonID uuid.UUID, filter dto.BillFilter) ([]model.Bill, int64, error)

	// ApplyPaymentTx increments paid_amount and recomputes payment_status in
	// ONE statement. The CASE runs against the post-increment value, so the
	// status can never drift from the derived function even under concurrent
	// payments — the row update is the serialization point.
	ApplyPaymentTx(tx *gorm.DB, billID uuid.UUID, amount decimal.Decimal) error

	// OverridePaymentFields is the administrative bypass. Callers own the
	// consistency of what they write.
	OverridePaymentFields(ctx context.Context, salonID, billID uuid.UUID, method string, paid decimal.Decimal, status string, modifiedBy uuid.UUID) error

	Revenue(ctx context.Context, salonID uuid.UUID, from, to time.Time) (*RevenueAggregate, error)

	DB() *gorm.DB
}

type billRepo struct{ db *gorm.DB }

func NewBillRepository(db *gorm.DB) BillRepository { return &billRepo{db: db} }

func (r *billRepo) CreateTx(tx *gorm.DB, b *model.Bill) error {
	return tx.Create(b).Error
}

// NextBillNumberTx allocates the next per-salon bill number. MAX+1 under the
// transaction is enough here: the unique (salon_id, bill_number) index turns a
// rare race into a retryable constraint error instead of a duplicate.
func (r *billRepo) NextBillNumberTx(tx *gorm.DB, salonID uuid.UUID) (int64, error) {
	var next int64
	err := tx.Model(&model.Bill{}).
		Where("salon_id = ?", salonID).
		Select("COALESCE(MAX(bill_number), 0) + 1").
		Scan(&next).Error
	return next, err
}

func (r *billRepo) FindByID(ctx context.Context, salonID, id uuid.UUID) (*model.Bill, error) {
	var b model.Bill
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Customer").
		Where("salon_id = ?", salonID).
		First(&b, "id = ?", id).Error
	return &b, err
}

func (r *billRepo) List(ctx context.Context, salonID uuid.UUID, filter dto.BillFilter) ([]model.Bill, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Bill{}).Where("salon_id = ?", salonID)

	if filter.CustomerID != "" {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}
	switch filter.Status {
	case "", "all":
	default:
		q = q.Where("payment_status = ?", filter.Status)
	}
	if filter.From != "" {
		q = q.Where("bill_date >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("bill_date < ?", filter.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var bills []model.Bill
	err := q.Preload("Items").Order("bill_date DESC").Limit(filter.Limit).Offset(offset).Find(&bills).Error
	return bills, total, err
}

func (r *billRepo) ApplyPaymentTx(tx *gorm.DB, billID uuid.UUID, amount decimal.Decimal) error {
	return tx.Model(&model.Bill{}).
		Where("id = ?", billID).
		Updates(map[string]interface{}{
			"paid_amount": gorm.Expr("paid_amount + ?", amount),
			"payment_status": gorm.Expr(
				`CASE
				   WHEN paid_amount + ? <= 0 THEN 'unpaid'
				   WHEN paid_amount + ? >= total_amount THEN 'paid'
				   ELSE 'partial'
				 END`, amount, amount),
		}).Error
}

func (r *billRepo) OverridePaymentFields(ctx context.Context, salonID, billID uuid.UUID, method string, paid decimal.Decimal, status string, modifiedBy uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&model.Bill{}).
		Where("id = ? AND salon_id = ?", billID, salonID).
		Updates(map[string]interface{}{
			"payment_method": method,
			"paid_amount":    paid,
			"payment_status": status,
			"modified_by":    modifiedBy,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *billRepo) Revenue(ctx context.Context, salonID uuid.UUID, from, to time.Time) (*RevenueAggregate, error) {
	type row struct {
		TotalRevenue    decimal.Decimal
		CollectedAmount decimal.Decimal
		BillCount       int64
	}
	var agg row
	err := r.db.WithContext(ctx).Model(&model.Bill{}).
		Select(`COALESCE(SUM(total_amount), 0) AS total_revenue,
		        COALESCE(SUM(paid_amount), 0)  AS collected_amount,
		        COUNT(*)                       AS bill_count`).
		Where("salon_id = ? AND payment_status IN ('paid', 'partial') AND bill_date >= ? AND bill_date < ?",
			salonID, from, to).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	return &RevenueAggregate{
		TotalRevenue:    agg.TotalRevenue,
		CollectedAmount: agg.CollectedAmount,
		BillCount:       agg.BillCount,
	}, nil
}

func (r *billRepo) DB() *gorm.DB { return r.db }
