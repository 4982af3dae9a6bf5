package dto

// ─── Requests ────────────────────────────────────────────────────────────────

// ApplyMovementRequest is bound from POST /v1/stock/movements.
// Quantity is signed: positive = stock in, negative = stock out.
type ApplyMovementRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required"`
	Type      string `json:"type"       validate:"required,oneof=purchase sale adjustment return expired"`
	Reason    string `json:"reason"     validate:"max=200"`
	// ClearReserved releases this many units of reserved stock alongside a
	// consuming movement (a sale fulfilling an earlier reservation).
	ClearReserved int `json:"clear_reserved" validate:"min=0"`
	// IdempotencyKey deduplicates replays from offline clients and retries.
	IdempotencyKey *string `json:"idempotency_key" validate:"omitempty,max=80"`
}

// MovementFilter is bound from query string of GET /v1/stock/movements.
type MovementFilter struct {
	ProductID string `form:"product_id" validate:"omitempty,uuid"`
	Type      string `form:"type"`
	Page      int    `form:"page,default=1"    validate:"min=1"`
	Limit     int    `form:"limit,default=100" validate:"min=1,max=500"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type MovementResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	Type        string `json:"type"`
	Quantity    int    `json:"quantity"`
	StockBefore int    `json:"stock_before"`
	StockAfter  int    `json:"stock_after"`
	Reason      string `json:"reason"`
	CreatedAt   string `json:"created_at"`
}

// StockLevelsResponse reports the product's levels after a movement.
type StockLevelsResponse struct {
	Movement       MovementResponse `json:"movement"`
	CurrentStock   int              `json:"current_stock"`
	ReservedStock  int              `json:"reserved_stock"`
	AvailableStock int              `json:"available_stock"`
}

type MovementListResponse struct {
	Data  []MovementResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// ProductStockView is one row of the low-stock / expiring lists.
type ProductStockView struct {
	ID             string  `json:"id"`
	SKU            string  `json:"sku"`
	Name           string  `json:"name"`
	CurrentStock   int     `json:"current_stock"`
	ReservedStock  int     `json:"reserved_stock"`
	AvailableStock int     `json:"available_stock"`
	ReorderLevel   int     `json:"reorder_level"`
	ExpiryDate     *string `json:"expiry_date,omitempty"`
	BatchNumber    *string `json:"batch_number,omitempty"`
}

// ReconcileMismatch is one product whose cached stock disagrees with the
// movement ledger sum.
type ReconcileMismatch struct {
	ProductID    string `json:"product_id"`
	SKU          string `json:"sku"`
	CachedStock  int    `json:"cached_stock"`
	LedgerStock  int    `json:"ledger_stock"`
	Drift        int    `json:"drift"`
}

type ReconcileResponse struct {
	Checked    int                 `json:"checked"`
	Mismatches []ReconcileMismatch `json:"mismatches"`
	Consistent bool                `json:"consistent"`
	RanAt      string              `json:"ran_at"`
}
