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
	"gorm.io/gorm"
)

// StockService is the movement ledger: every stock change goes through
// ApplyMovement (or ConsumeForSaleTx from inside a bill transaction) and
// leaves an immutable StockMovement behind.
type StockService interface {
	ApplyMovement(ctx context.Context, salonID, actorID uuid.UUID, req dto.ApplyMovementRequest) (*dto.StockLevelsResponse, error)
	ListMovements(ctx context.Context, salonID uuid.UUID, filter dto.MovementFilter) (*dto.MovementListResponse, error)
	LowStock(ctx context.Context, salonID uuid.UUID) ([]dto.ProductStockView, error)
	ExpiringSoon(ctx context.Context, salonID uuid.UUID, windowDays int) ([]dto.ProductStockView, error)
	Reconcile(ctx context.Context, salonID uuid.UUID) (*dto.ReconcileResponse, error)

	// ConsumeForSaleTx is called within a bill transaction — requires the live tx.
	ConsumeForSaleTx(tx *gorm.DB, salonID, actorID, productID, billID uuid.UUID, qty int, billNumber int64) error
}

type stockService struct {
	products  repository.ProductRepository
	movements repository.StockMovementRepository
}

func NewStockService(products repository.ProductRepository, movements repository.StockMovementRepository) StockService {
	return &stockService{products: products, movements: movements}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── ApplyMovement ─────────────────────────────────────────────────────────────
// The guard lives in the UPDATE itself (current_stock + delta >= 0), so two
// concurrent consuming movements against the same product cannot both pass a
// stale read — one of them hits the guard and fails cleanly.

func (s *stockService) ApplyMovement(ctx context.Context, salonID, actorID uuid.UUID, req dto.ApplyMovementRequest) (*dto.StockLevelsResponse, error) {
	if req.Quantity == 0 {
		return nil, fmt.Errorf("%w: quantity must be non-zero", ErrValidation)
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid product_id", ErrValidation)
	}

	// Replay of an already-applied movement returns the original record
	if req.IdempotencyKey != nil && *req.IdempotencyKey != "" {
		if existing, err := s.movements.FindByIdempotencyKey(ctx, salonID, *req.IdempotencyKey); err == nil {
			return s.levelsFor(ctx, salonID, existing)
		}
	}

	if _, err := s.products.FindByID(ctx, salonID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, req.ProductID)
		}
		return nil, err
	}

	var movement model.StockMovement
	var after *model.Product

	txErr := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		applied, err := s.products.ApplyStockDeltaTx(tx, productID, req.Quantity, req.ClearReserved)
		if err != nil {
			return err
		}
		if !applied {
			return fmt.Errorf("%w: product %s", ErrInsufficientStock, req.ProductID)
		}

		after, err = s.products.FindByIDTx(tx, salonID, productID)
		if err != nil {
			return err
		}

		movement = model.StockMovement{
			SalonID:        salonID,
			ProductID:      productID,
			Type:           req.Type,
			Quantity:       req.Quantity,
			StockBefore:    after.CurrentStock - req.Quantity,
			StockAfter:     after.CurrentStock,
			Reason:         req.Reason,
			PerformedBy:    actorID,
			IdempotencyKey: req.IdempotencyKey,
		}
		return s.movements.CreateTx(tx, &movement)
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.StockLevelsResponse{
		Movement:       movementToResponse(&movement),
		CurrentStock:   after.CurrentStock,
		ReservedStock:  after.ReservedStock,
		AvailableStock: after.AvailableStock(),
	}, nil
}

// ── ConsumeForSaleTx ──────────────────────────────────────────────────────────

func (s *stockService) ConsumeForSaleTx(tx *gorm.DB, salonID, actorID, productID, billID uuid.UUID, qty int, billNumber int64) error {
	applied, err := s.products.ApplyStockDeltaTx(tx, productID, -qty, 0)
	if err != nil {
		return err
	}
	if !applied {
		return fmt.Errorf("%w: product %s", ErrInsufficientStock, productID)
	}

	after, err := s.products.FindByIDTx(tx, salonID, productID)
	if err != nil {
		return err
	}

	billRef := billID
	movement := model.StockMovement{
		SalonID:     salonID,
		ProductID:   productID,
		Type:        model.MovementSale,
		Quantity:    -qty,
		StockBefore: after.CurrentStock + qty,
		StockAfter:  after.CurrentStock,
		Reason:      fmt.Sprintf("Bill #%d", billNumber),
		PerformedBy: actorID,
		ReferenceID: &billRef,
	}
	return s.movements.CreateTx(tx, &movement)
}

// ── Queries ───────────────────────────────────────────────────────────────────

func (s *stockService) ListMovements(ctx context.Context, salonID uuid.UUID, filter dto.MovementFilter) (*dto.MovementListResponse, error) {
	movements, total, err := s.movements.List(ctx, salonID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(movements))
	for i := range movements {
		items = append(items, movementToResponse(&movements[i]))
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 100
	}
	return &dto.MovementListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// LowStock returns products at or below reorder level, most urgent first.
func (s *stockService) LowStock(ctx context.Context, salonID uuid.UUID) ([]dto.ProductStockView, error) {
	products, err := s.products.ListLowStock(ctx, salonID)
	if err != nil {
		return nil, err
	}
	return productsToStockViews(products), nil
}

// ExpiringSoon returns products expiring within [now, now+windowDays).
// Products without an expiry date are not perishable and never appear here.
func (s *stockService) ExpiringSoon(ctx context.Context, salonID uuid.UUID, windowDays int) ([]dto.ProductStockView, error) {
	if windowDays <= 0 {
		return nil, fmt.Errorf("%w: window_days must be positive", ErrValidation)
	}
	now := time.Now()
	products, err := s.products.ListExpiring(ctx, salonID, now, now.AddDate(0, 0, windowDays))
	if err != nil {
		return nil, err
	}
	return productsToStockViews(products), nil
}

// ── Reconcile ─────────────────────────────────────────────────────────────────
// Compares the cached Product.CurrentStock against SUM(movement deltas) — the
// ledger is the source of truth. Read-only: drift is reported, not repaired.

func (s *stockService) Reconcile(ctx context.Context, salonID uuid.UUID) (*dto.ReconcileResponse, error) {
	products, err := s.products.ListBySalon(ctx, salonID)
	if err != nil {
		return nil, err
	}
	sums, err := s.movements.SumBySalon(ctx, salonID)
	if err != nil {
		return nil, err
	}

	mismatches := make([]dto.ReconcileMismatch, 0)
	for i := range products {
		p := &products[i]
		ledger := sums[p.ID]
		if p.CurrentStock != ledger {
			mismatches = append(mismatches, dto.ReconcileMismatch{
				ProductID:   p.ID.String(),
				SKU:         p.SKU,
				CachedStock: p.CurrentStock,
				LedgerStock: ledger,
				Drift:       p.CurrentStock - ledger,
			})
		}
	}

	if len(mismatches) > 0 {
		log.Warn().
			Str("salon_id", salonID.String()).
			Int("mismatches", len(mismatches)).
			Msg("stock reconcile found drift between cache and ledger")
	}

	return &dto.ReconcileResponse{
		Checked:    len(products),
		Mismatches: mismatches,
		Consistent: len(mismatches) == 0,
		RanAt:      time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *stockService) levelsFor(ctx context.Context, salonID uuid.UUID, m *model.StockMovement) (*dto.StockLevelsResponse, error) {
	p, err := s.products.FindByID(ctx, salonID, m.ProductID)
	if err != nil {
		return nil, err
	}
	return &dto.StockLevelsResponse{
		Movement:       movementToResponse(m),
		CurrentStock:   p.CurrentStock,
		ReservedStock:  p.ReservedStock,
		AvailableStock: p.AvailableStock(),
	}, nil
}

func movementToResponse(m *model.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:          m.ID.String(),
		ProductID:   m.ProductID.String(),
		Type:        m.Type,
		Quantity:    m.Quantity,
		StockBefore: m.StockBefore,
		StockAfter:  m.StockAfter,
		Reason:      m.Reason,
		CreatedAt:   m.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func productsToStockViews(products []model.Product) []dto.ProductStockView {
	views := make([]dto.ProductStockView, 0, len(products))
	for i := range products {
		p := &products[i]
		view := dto.ProductStockView{
			ID:             p.ID.String(),
			SKU:            p.SKU,
			Name:           p.Name,
			CurrentStock:   p.CurrentStock,
			ReservedStock:  p.ReservedStock,
			AvailableStock: p.AvailableStock(),
			ReorderLevel:   p.ReorderLevel,
			BatchNumber:    p.BatchNumber,
		}
		if p.ExpiryDate != nil {
			d := p.ExpiryDate.Format("2006-01-02")
			view.ExpiryDate = &d
		}
		views = append(views, view)
	}
	return views
}
