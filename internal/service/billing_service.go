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
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BillingService interface {
	CreateBill(ctx context.Context, salonID, createdBy uuid.UUID, req dto.CreateBillRequest) (*dto.BillResponse, error)
	GetBill(ctx context.Context, salonID, id uuid.UUID) (*dto.BillResponse, error)
	ListBills(ctx context.Context, salonID uuid.UUID, filter dto.BillFilter) (*dto.BillListResponse, error)
	UpdatePaymentFields(ctx context.Context, salonID, modifiedBy, billID uuid.UUID, req dto.UpdatePaymentFieldsRequest) (*dto.BillResponse, error)
}

type billingService struct {
	bills   repository.BillRepository
	catalog repository.CatalogRepository
	prods   repository.ProductRepository
	stock   StockService
	// strict rejects overpay and derived-status mismatch on the override path
	strict bool
}

func NewBillingService(
	bills repository.BillRepository,
	catalog repository.CatalogRepository,
	prods repository.ProductRepository,
	stock StockService,
	strict bool,
) BillingService {
	return &billingService{bills: bills, catalog: catalog, prods: prods, stock: stock, strict: strict}
}

// ── CreateBill ────────────────────────────────────────────────────────────────
// Single ACID transaction:
//   1. Resolve every line against the catalog, snapshotting prices
//   2. BEGIN TX: next bill number, create bill + items
//   3. Consume stock for product lines via the ledger (guarded decrement)
//   4. COMMIT — any insufficient stock aborts the whole bill

func (s *billingService) CreateBill(ctx context.Context, salonID, createdBy uuid.UUID, req dto.CreateBillRequest) (*dto.BillResponse, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid customer_id", ErrValidation)
	}
	if _, err := s.catalog.FindCustomer(ctx, salonID, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: customer %s", ErrNotFound, req.CustomerID)
		}
		return nil, err
	}

	var appointmentID *uuid.UUID
	if req.AppointmentID != nil {
		id, err := uuid.Parse(*req.AppointmentID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid appointment_id", ErrValidation)
		}
		appointmentID = &id
	}

	// Resolve lines and snapshot prices — catalog changes after this moment
	// never rewrite the bill.
	type resolvedLine struct {
		kind      string
		refID     uuid.UUID
		name      string
		unitPrice decimal.Decimal
		quantity  int
		subtotal  decimal.Decimal
	}

	var resolved []resolvedLine
	serviceSubtotal := decimal.Zero
	productSubtotal := decimal.Zero

	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
		}
		refID, err := uuid.Parse(item.RefID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid ref_id", ErrValidation)
		}

		var name string
		var price decimal.Decimal
		switch item.Kind {
		case model.ItemService:
			svc, err := s.catalog.FindService(ctx, salonID, refID)
			if err != nil {
				return nil, fmt.Errorf("%w: service %s not found", ErrValidation, item.RefID)
			}
			name, price = svc.Name, svc.Price
		case model.ItemProduct:
			p, err := s.prods.FindByID(ctx, salonID, refID)
			if err != nil {
				return nil, fmt.Errorf("%w: product %s not found", ErrValidation, item.RefID)
			}
			if !p.Active {
				return nil, fmt.Errorf("%w: product %s is inactive", ErrValidation, p.Name)
			}
			name, price = p.Name, p.SellingPrice
		default:
			return nil, fmt.Errorf("%w: unknown line kind %q", ErrValidation, item.Kind)
		}

		subtotal := price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		if item.Kind == model.ItemService {
			serviceSubtotal = serviceSubtotal.Add(subtotal)
		} else {
			productSubtotal = productSubtotal.Add(subtotal)
		}
		resolved = append(resolved, resolvedLine{
			kind:      item.Kind,
			refID:     refID,
			name:      name,
			unitPrice: price,
			quantity:  item.Quantity,
			subtotal:  subtotal,
		})
	}

	total := serviceSubtotal.Add(productSubtotal).Add(req.Adjustment)

	var bill model.Bill
	txErr := runTx(ctx, s.bills.DB(), func(tx *gorm.DB) error {
		billNumber, err := s.bills.NextBillNumberTx(tx, salonID)
		if err != nil {
			return err
		}

		bill = model.Bill{
			SalonID:         salonID,
			CustomerID:      customerID,
			AppointmentID:   appointmentID,
			BillNumber:      billNumber,
			ServiceSubtotal: serviceSubtotal,
			ProductSubtotal: productSubtotal,
			Adjustment:      req.Adjustment,
			TotalAmount:     total,
			PaidAmount:      decimal.Zero,
			PaymentStatus:   model.StatusUnpaid,
			BillDate:        time.Now(),
			CreatedBy:       createdBy,
		}
		for _, line := range resolved {
			bill.Items = append(bill.Items, model.BillItem{
				Kind:      line.kind,
				RefID:     line.refID,
				Name:      line.name,
				Quantity:  line.quantity,
				UnitPrice: line.unitPrice,
				Subtotal:  line.subtotal,
			})
		}

		if err := s.bills.CreateTx(tx, &bill); err != nil {
			return err
		}

		// Product lines consume stock in the same transaction — the bill and
		// its stock movements commit or roll back together.
		for _, line := range resolved {
			if line.kind != model.ItemProduct {
				continue
			}
			if err := s.stock.ConsumeForSaleTx(tx, salonID, createdBy, line.refID, bill.ID, line.quantity, bill.BillNumber); err != nil {
				return fmt.Errorf("consuming stock for %s: %w", line.name, err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return billToResponse(&bill), nil
}

// ── UpdatePaymentFields ───────────────────────────────────────────────────────
// Administrative override: writes payment fields directly, bypassing payment
// reconciliation. Lenient mode (default) mirrors the historical behavior and
// trusts the caller; strict mode enforces the derived status and rejects
// overpay.

func (s *billingService) UpdatePaymentFields(ctx context.Context, salonID, modifiedBy, billID uuid.UUID, req dto.UpdatePaymentFieldsRequest) (*dto.BillResponse, error) {
	bill, err := s.bills.FindByID(ctx, salonID, billID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: bill %s", ErrNotFound, billID)
		}
		return nil, err
	}

	if req.PaidAmount.IsNegative() {
		return nil, fmt.Errorf("%w: paid_amount cannot be negative", ErrValidation)
	}

	if s.strict {
		if req.PaidAmount.GreaterThan(bill.TotalAmount) {
			return nil, fmt.Errorf("%w: paid_amount exceeds bill total", ErrValidation)
		}
		if derived := model.DerivePaymentStatus(req.PaidAmount, bill.TotalAmount); req.PaymentStatus != derived {
			return nil, fmt.Errorf("%w: payment_status %q does not match derived status %q", ErrValidation, req.PaymentStatus, derived)
		}
	} else if derived := model.DerivePaymentStatus(req.PaidAmount, bill.TotalAmount); req.PaymentStatus != derived {
		// Lenient mode accepts the write but leaves a trace for the audit.
		log.Warn().
			Str("bill_id", billID.String()).
			Str("supplied_status", req.PaymentStatus).
			Str("derived_status", derived).
			Msg("payment fields override diverges from derived status")
	}

	if err := s.bills.OverridePaymentFields(ctx, salonID, billID, req.PaymentMethod, req.PaidAmount, req.PaymentStatus, modifiedBy); err != nil {
		return nil, err
	}

	updated, err := s.bills.FindByID(ctx, salonID, billID)
	if err != nil {
		return nil, err
	}
	return billToResponse(updated), nil
}

// ── Queries ───────────────────────────────────────────────────────────────────

func (s *billingService) GetBill(ctx context.Context, salonID, id uuid.UUID) (*dto.BillResponse, error) {
	bill, err := s.bills.FindByID(ctx, salonID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: bill %s", ErrNotFound, id)
		}
		return nil, err
	}
	return billToResponse(bill), nil
}

func (s *billingService) ListBills(ctx context.Context, salonID uuid.UUID, filter dto.BillFilter) (*dto.BillListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	bills, total, err := s.bills.List(ctx, salonID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BillResponse, 0, len(bills))
	for i := range bills {
		items = append(items, *billToResponse(&bills[i]))
	}
	return &dto.BillListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func billToResponse(b *model.Bill) *dto.BillResponse {
	items := make([]dto.BillLineResponse, 0, len(b.Items))
	for _, item := range b.Items {
		items = append(items, dto.BillLineResponse{
			Kind:      item.Kind,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		})
	}
	customerName := ""
	if b.Customer != nil {
		customerName = b.Customer.Name
	}
	return &dto.BillResponse{
		ID:              b.ID.String(),
		BillNumber:      b.BillNumber,
		CustomerID:      b.CustomerID.String(),
		CustomerName:    customerName,
		Items:           items,
		ServiceSubtotal: b.ServiceSubtotal,
		ProductSubtotal: b.ProductSubtotal,
		Adjustment:      b.Adjustment,
		TotalAmount:     b.TotalAmount,
		PaidAmount:      b.PaidAmount,
		PaymentStatus:   b.PaymentStatus,
		PaymentMethod:   b.PaymentMethod,
		BillDate:        b.BillDate.Format("2006-01-02"),
		CreatedAt:       b.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
