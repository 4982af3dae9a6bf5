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

type BillsHandler struct{ svc service.BillingService }

func NewBillsHandler(svc service.BillingService) *BillsHandler { return &BillsHandler{svc: svc} }

// CreateBill godoc
// @Summary      Create a bill
// @Description  Creates a bill with server-side price snapshots. Product lines consume stock in the same transaction; insufficient stock fails the whole bill.
// @Tags         bills
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateBillRequest true "Bill lines"
// @Success      201  {object} dto.BillResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/bills [post]
func (h *BillsHandler) CreateBill(c *gin.Context) {
	var req dto.CreateBillRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateBill(c.Request.Context(), middleware.SalonID(c), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetBill godoc
// @Summary      Fetch one bill
// @Tags         bills
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Bill UUID"
// @Success      200 {object} dto.BillResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/bills/{id} [get]
func (h *BillsHandler) GetBill(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid bill id"))
		return
	}
	resp, err := h.svc.GetBill(c.Request.Context(), middleware.SalonID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListBills godoc
// @Summary      List bills
// @Description  Paginated bill list filtered by customer, payment status and date range.
// @Tags         bills
// @Produce      json
// @Security     BearerAuth
// @Param        customer_id query string false "Customer UUID"
// @Param        status      query string false "unpaid | partial | paid | all"
// @Param        from        query string false "YYYY-MM-DD"
// @Param        to          query string false "YYYY-MM-DD (exclusive)"
// @Param        page        query int    false "Page (default 1)"
// @Param        limit       query int    false "Rows per page (default 50)"
// @Success      200 {object} dto.BillListResponse
// @Router       /v1/bills [get]
func (h *BillsHandler) ListBills(c *gin.Context) {
	var filter dto.BillFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if err := validate.Struct(filter); err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListBills(c.Request.Context(), middleware.SalonID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdatePaymentFields godoc
// @Summary      Override bill payment fields
// @Description  Administrative override of paid amount, method and status. Does not create payment records; prefer POST /v1/payments for reconciled collection.
// @Tags         bills
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                         true "Bill UUID"
// @Param        body body dto.UpdatePaymentFieldsRequest true "Override values"
// @Success      200  {object} dto.BillResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/bills/{id}/payment [patch]
func (h *BillsHandler) UpdatePaymentFields(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid bill id"))
		return
	}
	var req dto.UpdatePaymentFieldsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdatePaymentFields(c.Request.Context(), middleware.SalonID(c), middleware.UserID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
