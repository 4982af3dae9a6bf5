package handler

import (
	"net/http"

	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/apierror"
	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/dto"
	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/middleware"
	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Dashboard godoc
// @Summary      Financial rollup for a period
// @Description  Revenue, expenses, net profit, profit margin and payment method breakdown for the salon. Cached for 30 seconds.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        period query string false "daily | weekly | monthly | yearly (default daily)"
// @Success      200 {object} dto.DashboardResponse
// @Failure      422 {object} apierror.APIError
// @Router       /v1/dashboard [get]
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	var req dto.DashboardRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.New("period must be one of daily, weekly, monthly, yearly"))
		return
	}
	resp, err := h.svc.Dashboard(c.Request.Context(), middleware.SalonID(c), req.Period)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
