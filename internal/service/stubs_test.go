package service_test

// In-memory repository stubs. Services run their transactions through
// runTx, which passes a nil *gorm.DB straight to the callback when no
// database is wired — so every stub method must accept a nil tx.

import (
	"context"
	"sync"
	"time"

	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/dto"
	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/model"
	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Product repository stub ──────────────────────────────────────────────────

type stubProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, salonID, id uuid.UUID) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.SalonID != salonID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) FindByIDTx(_ *gorm.DB, salonID, id uuid.UUID) (*model.Product, error) {
	return r.FindByID(context.Background(), salonID, id)
}

func (r *stubProductRepo) ApplyStockDeltaTx(_ *gorm.DB, id uuid.UUID, delta, clearReserved int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return false, nil
	}
	if p.CurrentStock+delta < 0 {
		return false, nil
	}
	p.CurrentStock += delta
	p.ReservedStock -= clearReserved
	if p.ReservedStock < 0 {
		p.ReservedStock = 0
	}
	return true, nil
}

func (r *stubProductRepo) ListLowStock(_ context.Context, salonID uuid.UUID) ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Product
	for _, p := range r.products {
		if p.SalonID == salonID && p.Active && p.CurrentStock-p.ReservedStock <= p.ReorderLevel {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) ListExpiring(_ context.Context, salonID uuid.UUID, from, to time.Time) ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Product
	for _, p := range r.products {
		if p.SalonID != salonID || !p.Active || p.ExpiryDate == nil {
			continue
		}
		if !p.ExpiryDate.Before(from) && p.ExpiryDate.Before(to) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) ListBySalon(_ context.Context, salonID uuid.UUID) ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Product
	for _, p := range r.products {
		if p.SalonID == salonID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) DistinctSalons(_ context.Context) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[uuid.UUID]bool)
	var out []uuid.UUID
	for _, p := range r.products {
		if !seen[p.SalonID] {
			seen[p.SalonID] = true
			out = append(out, p.SalonID)
		}
	}
	return out, nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── Stock movement repository stub ───────────────────────────────────────────

type stubMovementRepo struct {
	mu        sync.Mutex
	movements []model.StockMovement
	idemIdx   map[string]*model.StockMovement
}

func newStubMovementRepo() *stubMovementRepo {
	return &stubMovementRepo{idemIdx: make(map[string]*model.StockMovement)}
}

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movements = append(r.movements, *m)
	if m.IdempotencyKey != nil {
		stored := r.movements[len(r.movements)-1]
		r.idemIdx[*m.IdempotencyKey] = &stored
	}
	return nil
}

func (r *stubMovementRepo) FindByIdempotencyKey(_ context.Context, _ uuid.UUID, key string) (*model.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.idemIdx[key]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *stubMovementRepo) List(_ context.Context, salonID uuid.UUID, filter dto.MovementFilter) ([]model.StockMovement, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.StockMovement
	for _, m := range r.movements {
		if m.SalonID != salonID {
			continue
		}
		if filter.ProductID != "" && m.ProductID.String() != filter.ProductID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

func (r *stubMovementRepo) SumBySalon(_ context.Context, salonID uuid.UUID) (map[uuid.UUID]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sums := make(map[uuid.UUID]int)
	for _, m := range r.movements {
		if m.SalonID == salonID {
			sums[m.ProductID] += m.Quantity
		}
	}
	return sums, nil
}

var _ repository.StockMovementRepository = (*stubMovementRepo)(nil)

// ── Bill repository stub ─────────────────────────────────────────────────────

type stubBillRepo struct {
	mu      sync.Mutex
	bills   map[uuid.UUID]*model.Bill
	billSeq int64
}

func newStubBillRepo() *stubBillRepo {
	return &stubBillRepo{bills: make(map[uuid.UUID]*model.Bill)}
}

func (r *stubBillRepo) CreateTx(_ *gorm.DB, b *model.Bill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	for i := range b.Items {
		if b.Items[i].ID == uuid.Nil {
			b.Items[i].ID = uuid.New()
		}
		b.Items[i].BillID = b.ID
	}
	b.CreatedAt = time.Now()
	r.bills[b.ID] = b
	return nil
}

func (r *stubBillRepo) NextBillNumberTx(_ *gorm.DB, _ uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.billSeq++
	return r.billSeq, nil
}

func (r *stubBillRepo) FindByID(_ context.Context, salonID, id uuid.UUID) (*model.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bills[id]
	if !ok || b.SalonID != salonID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *stubBillRepo) List(_ context.Context, salonID uuid.UUID, filter dto.BillFilter) ([]model.Bill, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Bill
	for _, b := range r.bills {
		if b.SalonID != salonID {
			continue
		}
		if filter.Status != "" && filter.Status != "all" && b.PaymentStatus != filter.Status {
			continue
		}
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

// ApplyPaymentTx mirrors the single-statement increment: status is derived
// from the post-increment paid amount under the same lock.
func (r *stubBillRepo) ApplyPaymentTx(_ *gorm.DB, billID uuid.UUID, amount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bills[billID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.PaidAmount = b.PaidAmount.Add(amount)
	b.PaymentStatus = model.DerivePaymentStatus(b.PaidAmount, b.TotalAmount)
	return nil
}

func (r *stubBillRepo) OverridePaymentFields(_ context.Context, salonID, billID uuid.UUID, method string, paid decimal.Decimal, status string, modifiedBy uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bills[billID]
	if !ok || b.SalonID != salonID {
		return gorm.ErrRecordNotFound
	}
	b.PaymentMethod = &method
	b.PaidAmount = paid
	b.PaymentStatus = status
	b.ModifiedBy = &modifiedBy
	return nil
}

func (r *stubBillRepo) Revenue(_ context.Context, salonID uuid.UUID, from, to time.Time) (*repository.RevenueAggregate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	agg := &repository.RevenueAggregate{
		TotalRevenue:    decimal.Zero,
		CollectedAmount: decimal.Zero,
	}
	for _, b := range r.bills {
		if b.SalonID != salonID {
			continue
		}
		if b.PaymentStatus != model.StatusPaid && b.PaymentStatus != model.StatusPartial {
			continue
		}
		if b.BillDate.Before(from) || !b.BillDate.Before(to) {
			continue
		}
		agg.TotalRevenue = agg.TotalRevenue.Add(b.TotalAmount)
		agg.CollectedAmount = agg.CollectedAmount.Add(b.PaidAmount)
		agg.BillCount++
	}
	return agg, nil
}

func (r *stubBillRepo) DB() *gorm.DB { return nil }

var _ repository.BillRepository = (*stubBillRepo)(nil)

// ── Payment repository stub ──────────────────────────────────────────────────

type stubPaymentRepo struct {
	mu       sync.Mutex
	payments []model.Payment
	idemIdx  map[string]*model.Payment
}

func newStubPaymentRepo() *stubPaymentRepo {
	return &stubPaymentRepo{idemIdx: make(map[string]*model.Payment)}
}

func (r *stubPaymentRepo) CreateTx(_ *gorm.DB, p *model.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	r.payments = append(r.payments, *p)
	if p.IdempotencyKey != nil {
		stored := r.payments[len(r.payments)-1]
		r.idemIdx[*p.IdempotencyKey] = &stored
	}
	return nil
}

func (r *stubPaymentRepo) FindByID(_ context.Context, salonID, id uuid.UUID) (*model.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.payments {
		if r.payments[i].ID == id && r.payments[i].SalonID == salonID {
			cp := r.payments[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPaymentRepo) FindByIdempotencyKey(_ context.Context, _ uuid.UUID, key string) (*model.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.idemIdx[key]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubPaymentRepo) ListByBill(_ context.Context, salonID, billID uuid.UUID) ([]model.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Payment
	for _, p := range r.payments {
		if p.SalonID == salonID && p.BillID == billID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubPaymentRepo) SetReceiptPath(_ context.Context, id uuid.UUID, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.payments {
		if r.payments[i].ID == id {
			r.payments[i].ReceiptPDFPath = &path
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubPaymentRepo) SumByMethod(_ context.Context, salonID uuid.UUID, _, _ time.Time) (map[string]decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sums := make(map[string]decimal.Decimal)
	for _, p := range r.payments {
		if p.SalonID == salonID && p.Status == model.PaymentVerified {
			sums[p.Method] = sums[p.Method].Add(p.Amount)
		}
	}
	return sums, nil
}

var _ repository.PaymentRepository = (*stubPaymentRepo)(nil)

// ── Expense repository stub ──────────────────────────────────────────────────

type stubExpenseRepo struct {
	mu       sync.Mutex
	expenses map[uuid.UUID]*model.Expense
}

func newStubExpenseRepo() *stubExpenseRepo {
	return &stubExpenseRepo{expenses: make(map[uuid.UUID]*model.Expense)}
}

func (r *stubExpenseRepo) Create(_ context.Context, e *model.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.expenses[e.ID] = e
	return nil
}

func (r *stubExpenseRepo) FindByID(_ context.Context, salonID, id uuid.UUID) (*model.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.expenses[id]
	if !ok || e.SalonID != salonID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *stubExpenseRepo) List(_ context.Context, salonID uuid.UUID, filter dto.ExpenseFilter) ([]model.Expense, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Expense
	for _, e := range r.expenses {
		if e.SalonID != salonID {
			continue
		}
		switch filter.Status {
		case "all":
		case "cancelled":
			if e.Status != model.ExpenseCancelled {
				continue
			}
		default:
			if e.Status != model.ExpenseActive {
				continue
			}
		}
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (r *stubExpenseRepo) Cancel(_ context.Context, salonID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.expenses[id]
	if !ok || e.SalonID != salonID || e.Status != model.ExpenseActive {
		return gorm.ErrRecordNotFound
	}
	e.Status = model.ExpenseCancelled
	return nil
}

func (r *stubExpenseRepo) SumActive(_ context.Context, salonID uuid.UUID, from, to time.Time) (*repository.ExpenseAggregate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	agg := &repository.ExpenseAggregate{TotalExpenses: decimal.Zero}
	for _, e := range r.expenses {
		if e.SalonID != salonID || e.Status != model.ExpenseActive {
			continue
		}
		if e.Date.Before(from) || !e.Date.Before(to) {
			continue
		}
		agg.TotalExpenses = agg.TotalExpenses.Add(e.Amount)
		agg.ExpenseCount++
	}
	return agg, nil
}

var _ repository.ExpenseRepository = (*stubExpenseRepo)(nil)

// ── Catalog repository stub ──────────────────────────────────────────────────

type stubCatalogRepo struct {
	customers map[uuid.UUID]*model.Customer
	services  map[uuid.UUID]*model.SalonService
}

func newStubCatalogRepo() *stubCatalogRepo {
	return &stubCatalogRepo{
		customers: make(map[uuid.UUID]*model.Customer),
		services:  make(map[uuid.UUID]*model.SalonService),
	}
}

func (r *stubCatalogRepo) FindCustomer(_ context.Context, salonID, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok || c.SalonID != salonID || !c.Active {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCatalogRepo) FindService(_ context.Context, salonID, id uuid.UUID) (*model.SalonService, error) {
	s, ok := r.services[id]
	if !ok || s.SalonID != salonID || !s.Active {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

var _ repository.CatalogRepository = (*stubCatalogRepo)(nil)

// ── Seed helpers ─────────────────────────────────────────────────────────────

func seedProduct(r *stubProductRepo, salonID uuid.UUID, sku, name string, stock, reserved, reorder int, price string) *model.Product {
	p := &model.Product{
		ID:            uuid.New(),
		SalonID:       salonID,
		SKU:           sku,
		Name:          name,
		CurrentStock:  stock,
		ReservedStock: reserved,
		ReorderLevel:  reorder,
		SellingPrice:  decimal.RequireFromString(price),
		Active:        true,
	}
	r.products[p.ID] = p
	return p
}

func seedCustomer(r *stubCatalogRepo, salonID uuid.UUID, name string) *model.Customer {
	c := &model.Customer{ID: uuid.New(), SalonID: salonID, Name: name, Active: true}
	r.customers[c.ID] = c
	return c
}

func seedService(r *stubCatalogRepo, salonID uuid.UUID, name, price string) *model.SalonService {
	s := &model.SalonService{
		ID:      uuid.New(),
		SalonID: salonID,
		Name:    name,
		Price:   decimal.RequireFromString(price),
		Active:  true,
	}
	r.services[s.ID] = s
	return s
}

func seedBill(r *stubBillRepo, salonID uuid.UUID, total string) *model.Bill {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.billSeq++
	b := &model.Bill{
		ID:            uuid.New(),
		SalonID:       salonID,
		CustomerID:    uuid.New(),
		BillNumber:    r.billSeq,
		TotalAmount:   decimal.RequireFromString(total),
		PaidAmount:    decimal.Zero,
		PaymentStatus: model.StatusUnpaid,
		BillDate:      time.Now(),
	}
	r.bills[b.ID] = b
	return b
}
