package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/dto"
	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/model"
	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/repository"
	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentService interface {
	RecordPayment(ctx context.Context, salonID, receivedBy uuid.UUID, req dto.RecordPaymentRequest) (*dto.PaymentResponse, error)
	ListBillPayments(ctx context.Context, salonID, billID uuid.UUID) (*dto.PaymentListResponse, error)
}

type paymentService struct {
	payments   repository.PaymentRepository
	bills      repository.BillRepository
	dispatcher *worker.Dispatcher
	// strict rejects payments that would push paid_amount past the total
	strict bool
}

func NewPaymentService(
	payments repository.PaymentRepository,
	bills repository.BillRepository,
	dispatcher *worker.Dispatcher,
	strict bool,
) PaymentService {
	return &paymentService{payments: payments, bills: bills, dispatcher: dispatcher, strict: strict}
}

// ── RecordPayment ─────────────────────────────────────────────────────────────
// Payment insert and bill increment commit in ONE transaction — a payment row
// without its bill update (or the reverse) cannot exist. The increment itself
// recomputes payment_status from the post-increment value in the same UPDATE,
// so concurrent payments against one bill serialize at the row and none are
// lost.

func (s *paymentService) RecordPayment(ctx context.Context, salonID, receivedBy uuid.UUID, req dto.RecordPaymentRequest) (*dto.PaymentResponse, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	billID, err := uuid.Parse(req.BillID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid bill_id", ErrValidation)
	}

	// Replays of the same payment return the original application
	if req.IdempotencyKey != nil && *req.IdempotencyKey != "" {
		if existing, err := s.payments.FindByIdempotencyKey(ctx, salonID, *req.IdempotencyKey); err == nil {
			return s.responseFor(ctx, salonID, existing)
		}
	}

	bill, err := s.bills.FindByID(ctx, salonID, billID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: bill %s", ErrNotFound, req.BillID)
		}
		return nil, err
	}

	// Strict mode refuses overpay. The check reads the pre-transaction value:
	// a concurrent payment can still slide past it, which is why strict mode
	// is advisory — lenient mode (default) accepts overpay entirely.
	if s.strict && bill.PaidAmount.Add(req.Amount).GreaterThan(bill.TotalAmount) {
		return nil, fmt.Errorf("%w: payment would exceed bill total", ErrValidation)
	}

	payment := model.Payment{
		SalonID:        salonID,
		BillID:         billID,
		CustomerID:     bill.CustomerID,
		Amount:         req.Amount,
		Method:         req.Method,
		Status:         model.PaymentVerified,
		ReceivedBy:     receivedBy,
		IdempotencyKey: req.IdempotencyKey,
	}

	txErr := runTx(ctx, s.bills.DB(), func(tx *gorm.DB) error {
		if err := s.payments.CreateTx(tx, &payment); err != nil {
			return err
		}
		return s.bills.ApplyPaymentTx(tx, billID, req.Amount)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Async receipt (PDF + optional email) — best-effort, fire & forget
	if s.dispatcher != nil {
		payload := map[string]interface{}{
			"payment_id": payment.ID.String(),
			"salon_id":   salonID.String(),
		}
		if req.CustomerEmail != nil && *req.CustomerEmail != "" {
			payload["customer_email"] = *req.CustomerEmail
		}
		_ = s.dispatcher.EnqueueReceipt(ctx, payload)
	}

	return s.responseFor(ctx, salonID, &payment)
}

func (s *paymentService) ListBillPayments(ctx context.Context, salonID, billID uuid.UUID) (*dto.PaymentListResponse, error) {
	if _, err := s.bills.FindByID(ctx, salonID, billID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: bill %s", ErrNotFound, billID)
		}
		return nil, err
	}
	payments, err := s.payments.ListByBill(ctx, salonID, billID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.PaymentResponse, 0, len(payments))
	for i := range payments {
		p := &payments[i]
		items = append(items, dto.PaymentResponse{
			ID:        p.ID.String(),
			BillID:    p.BillID.String(),
			Amount:    p.Amount,
			Method:    p.Method,
			Status:    p.Status,
			CreatedAt: p.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	return &dto.PaymentListResponse{Data: items}, nil
}

// responseFor re-reads the bill so the response reflects the committed state,
// not the stale pre-transaction snapshot.
func (s *paymentService) responseFor(ctx context.Context, salonID uuid.UUID, p *model.Payment) (*dto.PaymentResponse, error) {
	bill, err := s.bills.FindByID(ctx, salonID, p.BillID)
	if err != nil {
		return nil, err
	}
	return &dto.PaymentResponse{
		ID:                p.ID.String(),
		BillID:            p.BillID.String(),
		Amount:            p.Amount,
		Method:            p.Method,
		Status:            p.Status,
		CreatedAt:         p.CreatedAt.Format("2006-01-02T15:04:05Z"),
		BillPaidAmount:    bill.PaidAmount,
		BillTotalAmount:   bill.TotalAmount,
		BillPaymentStatus: bill.PaymentStatus,
	}, nil
}
