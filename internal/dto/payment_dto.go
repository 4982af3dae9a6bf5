package dto

import "github.com/shopspring/decimal"

// RecordPaymentRequest is bound from POST /v1/payments.
type RecordPaymentRequest struct {
	BillID string          `json:"bill_id" validate:"required,uuid"`
	Amount decimal.Decimal `json:"amount"  validate:"required"`
	Method string          `json:"method"  validate:"required,oneof=cash card upi wallet"`
	// IdempotencyKey deduplicates retried submissions of the same payment.
	IdempotencyKey *string `json:"idempotency_key" validate:"omitempty,max=80"`
	// CustomerEmail: optional — when present the receipt worker mails the PDF.
	CustomerEmail *string `json:"customer_email" validate:"omitempty,email"`
}

type PaymentResponse struct {
	ID        string          `json:"id"`
	BillID    string          `json:"bill_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Status    string          `json:"status"`
	CreatedAt string          `json:"created_at"`

	// Updated bill state after the payment was applied
	BillPaidAmount    decimal.Decimal `json:"bill_paid_amount"`
	BillTotalAmount   decimal.Decimal `json:"bill_total_amount"`
	BillPaymentStatus string          `json:"bill_payment_status"`
}

type PaymentListResponse struct {
	Data []PaymentResponse `json:"data"`
}
