package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/diyath7/small-shop-system/internal/dto"
	"github.com/diyath7/small-shop-system/internal/middleware"
	"github.com/diyath7/small-shop-system/internal/service"
)

type StockHandler struct {
	svc service.StockService
}

func NewStockHandler(svc service.StockService) *StockHandler {
	return &StockHandler{svc: svc}
}

// WriteOff godoc
// @Summary Write off damaged or expired stock from a batch
// @Tags stock
// @Accept json
// @Produce json
// @Param request body dto.WriteOffRequest true "Write-off"
// @Success 201 {object} dto.WriteOffResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Security BearerAuth
// @Router /v1/stock/write-off [post]
func (h *StockHandler) WriteOff(c *gin.Context) {
	var req dto.WriteOffRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.WriteOff(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListWriteOffs godoc
// @Summary Write-off history, newest first
// @Tags stock
// @Produce json
// @Success 200 {array} dto.WriteOffResponse
// @Security BearerAuth
// @Router /v1/stock/write-offs [get]
func (h *StockHandler) ListWriteOffs(c *gin.Context) {
	resp, err := h.svc.ListWriteOffs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Summary godoc
// @Summary Per-product stock position across batches
// @Tags stock
// @Produce json
// @Success 200 {array} dto.StockSummaryRow
// @Security BearerAuth
// @Router /v1/stock/summary [get]
func (h *StockHandler) Summary(c *gin.Context) {
	resp, err := h.svc.StockSummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Expired godoc
// @Summary Batches past expiry that still hold stock
// @Tags stock
// @Produce json
// @Success 200 {array} dto.ExpiredBatchRow
// @Security BearerAuth
// @Router /v1/stock/expired [get]
func (h *StockHandler) Expired(c *gin.Context) {
	resp, err := h.svc.ExpiredBatches(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
