package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/dto"
	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/model"
	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ExpenseService interface {
	Create(ctx context.Context, salonID, reportedBy uuid.UUID, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error)
	List(ctx context.Context, salonID uuid.UUID, filter dto.ExpenseFilter) (*dto.ExpenseListResponse, error)
	Cancel(ctx context.Context, salonID, id uuid.UUID) error
}

type expenseService struct {
	repo repository.ExpenseRepository
}

func NewExpenseService(repo repository.ExpenseRepository) ExpenseService {
	return &expenseService{repo: repo}
}

func (s *expenseService) Create(ctx context.Context, salonID, reportedBy uuid.UUID, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date", ErrValidation)
	}

	expense := model.Expense{
		SalonID:    salonID,
		Category:   req.Category,
		Amount:     req.Amount,
		Date:       date,
		Status:     model.ExpenseActive,
		Notes:      req.Notes,
		ReportedBy: reportedBy,
	}
	if err := s.repo.Create(ctx, &expense); err != nil {
		return nil, err
	}
	return expenseToResponse(&expense), nil
}

func (s *expenseService) List(ctx context.Context, salonID uuid.UUID, filter dto.ExpenseFilter) (*dto.ExpenseListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	expenses, total, err := s.repo.List(ctx, salonID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		items = append(items, *expenseToResponse(&expenses[i]))
	}
	return &dto.ExpenseListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// Cancel flips the expense out of every rollup. The row stays for audit.
func (s *expenseService) Cancel(ctx context.Context, salonID, id uuid.UUID) error {
	if err := s.repo.Cancel(ctx, salonID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: expense %s", ErrNotFound, id)
		}
		return err
	}
	return nil
}

func expenseToResponse(e *model.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:       e.ID.String(),
		Category: e.Category,
		Amount:   e.Amount,
		Date:     e.Date.Format("2006-01-02"),
		Status:   e.Status,
		Notes:    e.Notes,
	}
}
