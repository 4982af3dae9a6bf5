package worker

// receipt_worker.go
// Processes receipt jobs from QueueReceipts.
// Generates the PDF receipt for a recorded payment, stores its path on the
// payment row, and optionally enqueues an email job with the attachment.
// PDF generation is retried with exponential backoff before the job lands
// in the DLQ.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/infra"
	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ReceiptJobPayload is the job envelope sent to QueueReceipts.
type ReceiptJobPayload struct {
	PaymentID     string  `json:"payment_id"`
	SalonID       string  `json:"salon_id"`
	CustomerEmail *string `json:"customer_email,omitempty"`
}

// ReceiptWorker turns recorded payments into PDF receipts.
type ReceiptWorker struct {
	payments       repository.PaymentRepository
	bills          repository.BillRepository
	dispatcher     *Dispatcher
	rdb            *redis.Client
	pdfStoragePath string
}

func NewReceiptWorker(
	payments repository.PaymentRepository,
	bills repository.BillRepository,
	dispatcher *Dispatcher,
	rdb *redis.Client,
	pdfStoragePath string,
) *ReceiptWorker {
	return &ReceiptWorker{
		payments:       payments,
		bills:          bills,
		dispatcher:     dispatcher,
		rdb:            rdb,
		pdfStoragePath: pdfStoragePath,
	}
}

// Process handles a single receipt job:
//  1. Parse ReceiptJobPayload from the job envelope
//  2. Fetch the payment and its bill (with items)
//  3. Generate the PDF receipt with retry
//  4. Store the PDF path on the payment row
//  5. Optionally enqueue an email job with the attachment
func (w *ReceiptWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReceiptJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("receipt_worker: invalid payload")
		return
	}

	paymentID, err := uuid.Parse(payload.PaymentID)
	if err != nil {
		log.Error().Str("payment_id", payload.PaymentID).Msg("receipt_worker: invalid payment_id")
		return
	}
	salonID, err := uuid.Parse(payload.SalonID)
	if err != nil {
		log.Error().Str("salon_id", payload.SalonID).Msg("receipt_worker: invalid salon_id")
		return
	}

	payment, err := w.payments.FindByID(ctx, salonID, paymentID)
	if err != nil {
		log.Error().Err(err).Str("payment_id", payload.PaymentID).Msg("receipt_worker: payment not found")
		return
	}

	bill, err := w.bills.FindByID(ctx, salonID, payment.BillID)
	if err != nil {
		log.Error().Err(err).Str("bill_id", payment.BillID.String()).Msg("receipt_worker: bill not found")
		return
	}

	var pdfPath string
	pdfErr := withRetry(ctx, 3, func(attempt int) error {
		path, err := infra.GenerateReceiptPDF(bill, payment, w.pdfStoragePath)
		if err != nil {
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Str("payment_id", payload.PaymentID).
				Msg("receipt_worker: PDF attempt failed, retrying")
			return err
		}
		pdfPath = path
		return nil
	})
	if pdfErr != nil {
		log.Error().Err(pdfErr).Str("payment_id", payload.PaymentID).Msg("receipt_worker: PDF generation failed after all retries")
		SendToDLQ(ctx, w.rdb, QueueReceipts, "receipt", raw,
			fmt.Sprintf("pdf generation failed: %v", pdfErr), 3)
		return
	}

	if err := w.payments.SetReceiptPath(ctx, paymentID, pdfPath); err != nil {
		log.Warn().Err(err).Str("payment_id", payload.PaymentID).Msg("receipt_worker: failed to store receipt path")
	} else {
		log.Info().Str("pdf", pdfPath).Str("payment_id", payload.PaymentID).Msg("receipt_worker: receipt generated")
	}

	if payload.CustomerEmail != nil && *payload.CustomerEmail != "" {
		emailJob := EmailJobPayload{
			ToEmail: *payload.CustomerEmail,
			Subject: fmt.Sprintf("OneSalon — Receipt for bill #%d", bill.BillNumber),
			Body: fmt.Sprintf("Thank you for your payment of %s.\nBill total: %s, paid so far: %s.",
				payment.Amount.StringFixed(2), bill.TotalAmount.StringFixed(2), bill.PaidAmount.StringFixed(2)),
			PDFPath: pdfPath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", *payload.CustomerEmail).Msg("receipt_worker: failed to enqueue email")
		} else {
			log.Info().Str("email", *payload.CustomerEmail).Msg("receipt_worker: email job enqueued")
		}
	}
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
