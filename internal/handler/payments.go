package handler

import (
	"net/http"

	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/apierror"
	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/dto"
	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/middleware"
	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentsHandler struct{ svc service.PaymentService }

func NewPaymentsHandler(svc service.PaymentService) *PaymentsHandler {
	return &PaymentsHandler{svc: svc}
}

// RecordPayment godoc
// @Summary      Record a payment against a bill
// @Description  Creates the payment and increments the bill's paid amount in one transaction. payment_status is derived from the post-increment value. Idempotent by idempotency_key.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RecordPaymentRequest true "Payment detail"
// @Success      201  {object} dto.PaymentResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/payments [post]
func (h *PaymentsHandler) RecordPayment(c *gin.Context) {
	var req dto.RecordPaymentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RecordPayment(c.Request.Context(), middleware.SalonID(c), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListBillPayments godoc
// @Summary      List payments for a bill
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Bill UUID"
// @Success      200 {object} dto.PaymentListResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/bills/{id}/payments [get]
func (h *PaymentsHandler) ListBillPayments(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid bill id"))
		return
	}
	resp, err := h.svc.ListBillPayments(c.Request.Context(), middleware.SalonID(c), billID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
