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

// ExpenseAggregate is the rollup row for non-cancelled expenses in a range.
type ExpenseAggregate struct {
	TotalExpenses decimal.Decimal
	ExpenseCount  int64
}

type ExpenseRepository interface {
	Create(ctx context.Context, e *model.Expense) error
	FindByID(ctx context.Context, salonID, id uuid.UUID) (*model.Expense, error)
	List(ctx context.Context, salonID uuid.UUID, filter dto.ExpenseFilter) ([]model.Expense, int64, error)
	Cancel(ctx context.Context, salonID, id uuid.UUID) error
	SumActive(ctx context.Context, salonID uuid.UUID, from, to time.Time) (*ExpenseAggregate, error)
}

type expenseRepo struct{ db *gorm.DB }

func NewExpenseRepository(db *gorm.DB) ExpenseRepository { return &expenseRepo{db: db} }

func (r *expenseRepo) Create(ctx context.Context, e *model.Expense) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *expenseRepo) FindByID(ctx context.Context, salonID, id uuid.UUID) (*model.Expense, error) {
	var e model.Expense
	err := r.db.WithContext(ctx).Where("salon_id = ?", salonID).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *expenseRepo) List(ctx context.Context, salonID uuid.UUID, filter dto.ExpenseFilter) ([]model.Expense, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Expense{}).Where("salon_id = ?", salonID)

	switch filter.Status {
	case "all":
	case "cancelled":
		q = q.Where("status = ?", model.ExpenseCancelled)
	default:
		q = q.Where("status = ?", model.ExpenseActive)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.From != "" {
		q = q.Where("date >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("date < ?", filter.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var expenses []model.Expense
	err := q.Order("date DESC").Limit(filter.Limit).Offset(offset).Find(&expenses).Error
	return expenses, total, err
}

func (r *expenseRepo) Cancel(ctx context.Context, salonID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&model.Expense{}).
		Where("id = ? AND salon_id = ? AND status = ?", id, salonID, model.ExpenseActive).
		Update("status", model.ExpenseCancelled)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *expenseRepo) SumActive(ctx context.Context, salonID uuid.UUID, from, to time.Time) (*ExpenseAggregate, error) {
	type row struct {
		TotalExpenses decimal.Decimal
		ExpenseCount  int64
	}
	var agg row
	err := r.db.WithContext(ctx).Model(&model.Expense{}).
		Select("COALESCE(SUM(amount), 0) AS total_expenses, COUNT(*) AS expense_count").
		Where("salon_id = ? AND status = ? AND date >= ? AND date < ?",
			salonID, model.ExpenseActive, from, to).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	return &ExpenseAggregate{TotalExpenses: agg.TotalExpenses, ExpenseCount: agg.ExpenseCount}, nil
}
