package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/dto"
	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/model"
	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildPaymentSvc(strict bool) (service.PaymentService, *stubPaymentRepo, *stubBillRepo) {
	payments := newStubPaymentRepo()
	bills := newStubBillRepo()
	svc := service.NewPaymentService(payments, bills, nil, strict)
	return svc, payments, bills
}

func TestRecordPayment_PartialThenPaid(t *testing.T) {
	svc, _, bills := buildPaymentSvc(false)
	salonID := uuid.New()
	bill := seedBill(bills, salonID, "4500.00")

	resp, err := svc.RecordPayment(context.Background(), salonID, uuid.New(), dto.RecordPaymentRequest{
		BillID: bill.ID.String(),
		Amount: decimal.RequireFromString("1500.00"),
		Method: model.MethodCash,
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPartial, resp.BillPaymentStatus)
	assert.True(t, resp.BillPaidAmount.Equal(decimal.RequireFromString("1500.00")))

	resp, err = svc.RecordPayment(context.Background(), salonID, uuid.New(), dto.RecordPaymentRequest{
		BillID: bill.ID.String(),
		Amount: decimal.RequireFromString("3000.00"),
		Method: model.MethodUPI,
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPaid, resp.BillPaymentStatus)
	assert.True(t, resp.BillPaidAmount.Equal(decimal.RequireFromString("4500.00")))
}

func TestRecordPayment_ExactRemainderFlipsToPaid(t *testing.T) {
	svc, _, bills := buildPaymentSvc(false)
	salonID := uuid.New()
	bill := seedBill(bills, salonID, "1000.00")

	resp, err := svc.RecordPayment(context.Background(), salonID, uuid.New(), dto.RecordPaymentRequest{
		BillID: bill.ID.String(),
		Amount: decimal.RequireFromString("1000.00"),
		Method: model.MethodCard,
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPaid, resp.BillPaymentStatus)
}

func TestRecordPayment_OverpayLenientAccepted(t *testing.T) {
	svc, _, bills := buildPaymentSvc(false)
	salonID := uuid.New()
	bill := seedBill(bills, salonID, "100.00")

	resp, err := svc.RecordPayment(context.Background(), salonID, uuid.New(), dto.RecordPaymentRequest{
		BillID: bill.ID.String(),
		Amount: decimal.RequireFromString("150.00"),
		Method: model.MethodCash,
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPaid, resp.BillPaymentStatus)
	assert.True(t, resp.BillPaidAmount.Equal(decimal.RequireFromString("150.00")))
}

func TestRecordPayment_OverpayStrictRejected(t *testing.T) {
	svc, payments, bills := buildPaymentSvc(true)
	salonID := uuid.New()
	bill := seedBill(bills, salonID, "100.00")

	_, err := svc.RecordPayment(context.Background(), salonID, uuid.New(), dto.RecordPaymentRequest{
		BillID: bill.ID.String(),
		Amount: decimal.RequireFromString("150.00"),
		Method: model.MethodCash,
	})
	require.ErrorIs(t, err, service.ErrValidation)

	list, err := payments.ListByBill(context.Background(), salonID, bill.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRecordPayment_Validation(t *testing.T) {
	svc, _, bills := buildPaymentSvc(false)
	salonID := uuid.New()
	bill := seedBill(bills, salonID, "100.00")

	_, err := svc.RecordPayment(context.Background(), salonID, uuid.New(), dto.RecordPaymentRequest{
		BillID: bill.ID.String(),
		Amount: decimal.Zero,
		Method: model.MethodCash,
	})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = svc.RecordPayment(context.Background(), salonID, uuid.New(), dto.RecordPaymentRequest{
		BillID: uuid.NewString(),
		Amount: decimal.RequireFromString("50.00"),
		Method: model.MethodCash,
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestRecordPayment_IdempotentReplay(t *testing.T) {
	svc, payments, bills := buildPaymentSvc(false)
	salonID := uuid.New()
	bill := seedBill(bills, salonID, "1000.00")

	key := "pos-retry-7"
	req := dto.RecordPaymentRequest{
		BillID:         bill.ID.String(),
		Amount:         decimal.RequireFromString("400.00"),
		Method:         model.MethodCash,
		IdempotencyKey: &key,
	}

	first, err := svc.RecordPayment(context.Background(), salonID, uuid.New(), req)
	require.NoError(t, err)

	second, err := svc.RecordPayment(context.Background(), salonID, uuid.New(), req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// One payment row, one increment
	list, err := payments.ListByBill(context.Background(), salonID, bill.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	updated, err := bills.FindByID(context.Background(), salonID, bill.ID)
	require.NoError(t, err)
	assert.True(t, updated.PaidAmount.Equal(decimal.RequireFromString("400.00")))
}

// Fifty concurrent payments against one bill: nothing lost, nothing doubled.
func TestRecordPayment_ConcurrentIncrementsAllLand(t *testing.T) {
	svc, payments, bills := buildPaymentSvc(false)
	salonID := uuid.New()
	bill := seedBill(bills, salonID, "1000.00")

	const n = 50
	amount := decimal.RequireFromString("10.00")

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.RecordPayment(context.Background(), salonID, uuid.New(), dto.RecordPaymentRequest{
				BillID: bill.ID.String(),
				Amount: amount,
				Method: model.MethodCash,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	updated, err := bills.FindByID(context.Background(), salonID, bill.ID)
	require.NoError(t, err)
	assert.True(t, updated.PaidAmount.Equal(decimal.RequireFromString("500.00")), "paid: %s", updated.PaidAmount)
	assert.Equal(t, model.StatusPartial, updated.PaymentStatus)

	list, err := payments.ListByBill(context.Background(), salonID, bill.ID)
	require.NoError(t, err)
	assert.Len(t, list, n)
}

func TestListBillPayments_UnknownBill(t *testing.T) {
	svc, _, _ := buildPaymentSvc(false)
	_, err := svc.ListBillPayments(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}
