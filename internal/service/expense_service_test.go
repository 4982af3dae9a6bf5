package service_test

import (
	"context"
	"testing"

	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/dto"
	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/model"
	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenseCreateAndCancel(t *testing.T) {
	repo := newStubExpenseRepo()
	svc := service.NewExpenseService(repo)
	salonID := uuid.New()

	resp, err := svc.Create(context.Background(), salonID, uuid.New(), dto.CreateExpenseRequest{
		Category: "supplies",
		Amount:   decimal.RequireFromString("300.00"),
		Date:     "2026-08-15",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ExpenseActive, resp.Status)
	assert.Equal(t, "2026-08-15", resp.Date)

	id, _ := uuid.Parse(resp.ID)
	require.NoError(t, svc.Cancel(context.Background(), salonID, id))

	// Cancelling twice fails — the row is no longer active
	err = svc.Cancel(context.Background(), salonID, id)
	assert.ErrorIs(t, err, service.ErrNotFound)

	// The cancelled row still exists for audit
	got, err := repo.FindByID(context.Background(), salonID, id)
	require.NoError(t, err)
	assert.Equal(t, model.ExpenseCancelled, got.Status)
}

func TestExpenseCreate_Validation(t *testing.T) {
	svc := service.NewExpenseService(newStubExpenseRepo())
	salonID := uuid.New()

	_, err := svc.Create(context.Background(), salonID, uuid.New(), dto.CreateExpenseRequest{
		Category: "rent",
		Amount:   decimal.Zero,
		Date:     "2026-08-15",
	})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = svc.Create(context.Background(), salonID, uuid.New(), dto.CreateExpenseRequest{
		Category: "rent",
		Amount:   decimal.RequireFromString("100.00"),
		Date:     "15/08/2026",
	})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestExpenseList_DefaultsToActive(t *testing.T) {
	repo := newStubExpenseRepo()
	svc := service.NewExpenseService(repo)
	salonID := uuid.New()

	a, err := svc.Create(context.Background(), salonID, uuid.New(), dto.CreateExpenseRequest{
		Category: "rent", Amount: decimal.RequireFromString("100.00"), Date: "2026-08-01",
	})
	require.NoError(t, err)
	b, err := svc.Create(context.Background(), salonID, uuid.New(), dto.CreateExpenseRequest{
		Category: "salary", Amount: decimal.RequireFromString("200.00"), Date: "2026-08-02",
	})
	require.NoError(t, err)

	id, _ := uuid.Parse(b.ID)
	require.NoError(t, svc.Cancel(context.Background(), salonID, id))

	list, err := svc.List(context.Background(), salonID, dto.ExpenseFilter{})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	assert.Equal(t, a.ID, list.Data[0].ID)

	all, err := svc.List(context.Background(), salonID, dto.ExpenseFilter{Status: "all"})
	require.NoError(t, err)
	assert.Len(t, all.Data, 2)
}
