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

type ExpensesHandler struct{ svc service.ExpenseService }

func NewExpensesHandler(svc service.ExpenseService) *ExpensesHandler {
	return &ExpensesHandler{svc: svc}
}

// CreateExpense godoc
// @Summary      Record an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateExpenseRequest true "Expense detail"
// @Success      201  {object} dto.ExpenseResponse
// @Router       /v1/expenses [post]
func (h *ExpensesHandler) CreateExpense(c *gin.Context) {
	var req dto.CreateExpenseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), middleware.SalonID(c), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListExpenses godoc
// @Summary      List expenses
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        category query string false "Expense category"
// @Param        status   query string false "active | cancelled | all (default active)"
// @Param        from     query string false "YYYY-MM-DD"
// @Param        to       query string false "YYYY-MM-DD (exclusive)"
// @Success      200 {object} dto.ExpenseListResponse
// @Router       /v1/expenses [get]
func (h *ExpensesHandler) ListExpenses(c *gin.Context) {
	var filter dto.ExpenseFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), middleware.SalonID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CancelExpense godoc
// @Summary      Cancel an expense
// @Description  Soft-cancel: the row stays for audit but drops out of rollups.
// @Tags         expenses
// @Security     BearerAuth
// @Param        id path string true "Expense UUID"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/expenses/{id} [delete]
func (h *ExpensesHandler) CancelExpense(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid expense id"))
		return
	}
	if err := h.svc.Cancel(c.Request.Context(), middleware.SalonID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
