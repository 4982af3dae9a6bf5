package handler

import (
	"net/http"
	"strconv"

	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/apierror"
	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/dto"
	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/middleware"
	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/service"

	"github.com/gin-gonic/gin"
)

type StockHandler struct {
	svc               service.StockService
	defaultWindowDays int
}

func NewStockHandler(svc service.StockService, defaultWindowDays int) *StockHandler {
	return &StockHandler{svc: svc, defaultWindowDays: defaultWindowDays}
}

// ApplyMovement godoc
// @Summary      Apply a stock movement
// @Description  Records an append-only ledger entry and atomically adjusts the cached stock counter. Negative quantities that would drive stock below zero are rejected.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ApplyMovementRequest true "Movement detail"
// @Success      201  {object} dto.StockLevelsResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/stock/movements [post]
func (h *StockHandler) ApplyMovement(c *gin.Context) {
	var req dto.ApplyMovementRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ApplyMovement(c.Request.Context(), middleware.SalonID(c), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListMovements godoc
// @Summary      List stock movements
// @Description  Paginated ledger history, optionally filtered by product and movement type.
// @Tags         stock
// @Produce      json
// @Security     BearerAuth
// @Param        product_id query string false "Product UUID"
// @Param        type       query string false "purchase | sale | adjustment | return | expired"
// @Param        page       query int    false "Page (default 1)"
// @Param        limit      query int    false "Rows per page (default 100)"
// @Success      200 {object} dto.MovementListResponse
// @Router       /v1/stock/movements [get]
func (h *StockHandler) ListMovements(c *gin.Context) {
	var filter dto.MovementFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if err := validate.Struct(filter); err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListMovements(c.Request.Context(), middleware.SalonID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LowStock godoc
// @Summary      Low stock report
// @Description  Products whose available stock (current - reserved) is at or below reorder level.
// @Tags         stock
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.ProductStockView
// @Router       /v1/stock/low [get]
func (h *StockHandler) LowStock(c *gin.Context) {
	resp, err := h.svc.LowStock(c.Request.Context(), middleware.SalonID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExpiringSoon godoc
// @Summary      Expiring products report
// @Description  Products whose expiry date falls within the window. Products without expiry dates are excluded.
// @Tags         stock
// @Produce      json
// @Security     BearerAuth
// @Param        window_days query int false "Look-ahead window in days (default 30)"
// @Success      200 {array} dto.ProductStockView
// @Router       /v1/stock/expiring [get]
func (h *StockHandler) ExpiringSoon(c *gin.Context) {
	windowDays := h.defaultWindowDays
	if raw := c.Query("window_days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, apierror.New("window_days must be a positive integer"))
			return
		}
		windowDays = n
	}
	resp, err := h.svc.ExpiringSoon(c.Request.Context(), middleware.SalonID(c), windowDays)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Reconcile godoc
// @Summary      Reconcile stock counters against the ledger
// @Description  Replays the movement ledger per product and reports any drift from the cached counters. Report-only: nothing is corrected automatically.
// @Tags         stock
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.ReconcileResponse
// @Router       /v1/stock/reconcile [post]
func (h *StockHandler) Reconcile(c *gin.Context) {
	resp, err := h.svc.Reconcile(c.Request.Context(), middleware.SalonID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
