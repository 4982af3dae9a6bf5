package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

// BillLineRequest references a catalog service or a physical product.
// Prices are snapshotted server-side — clients never send them.
type BillLineRequest struct {
	Kind     string `json:"kind"     validate:"required,oneof=service product"`
	RefID    string `json:"ref_id"   validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type CreateBillRequest struct {
	CustomerID    string            `json:"customer_id"    validate:"required,uuid"`
	AppointmentID *string           `json:"appointment_id" validate:"omitempty,uuid"`
	Items         []BillLineRequest `json:"items"          validate:"required,min=1,dive"`
	Adjustment    decimal.Decimal   `json:"adjustment"`
}

// UpdatePaymentFieldsRequest is the administrative override path. It bypasses
// payment reconciliation; in strict mode the supplied status must match the
// derived one and overpay is rejected.
type UpdatePaymentFieldsRequest struct {
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=cash card upi wallet"`
	PaidAmount    decimal.Decimal `json:"paid_amount"    validate:"required"`
	PaymentStatus string          `json:"payment_status" validate:"required,oneof=unpaid partial paid"`
}

// BillFilter is bound from query string of GET /v1/bills.
type BillFilter struct {
	CustomerID string `form:"customer_id" validate:"omitempty,uuid"`
	Status     string `form:"status"      validate:"omitempty,oneof=unpaid partial paid all"`
	From       string `form:"from"` // YYYY-MM-DD
	To         string `form:"to"`   // YYYY-MM-DD, exclusive
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type BillLineResponse struct {
	Kind      string          `json:"kind"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type BillResponse struct {
	ID              string             `json:"id"`
	BillNumber      int64              `json:"bill_number"`
	CustomerID      string             `json:"customer_id"`
	CustomerName    string             `json:"customer_name,omitempty"`
	Items           []BillLineResponse `json:"items"`
	ServiceSubtotal decimal.Decimal    `json:"service_subtotal"`
	ProductSubtotal decimal.Decimal    `json:"product_subtotal"`
	Adjustment      decimal.Decimal    `json:"adjustment"`
	TotalAmount     decimal.Decimal    `json:"total_amount"`
	PaidAmount      decimal.Decimal    `json:"paid_amount"`
	PaymentStatus   string             `json:"payment_status"`
	PaymentMethod   *string            `json:"payment_method,omitempty"`
	BillDate        string             `json:"bill_date"`
	CreatedAt       string             `json:"created_at"`
}

type BillListResponse struct {
	Data  []BillResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
