package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/diyath7/small-shop-system/internal/dto"
	"github.com/diyath7/small-shop-system/internal/service"
)

type InventoryHandler struct {
	svc service.InventoryService
}

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// FullView godoc
// @Summary Inventory levels for every product
// @Tags inventory
// @Produce json
// @Success 200 {array} dto.InventoryRow
// @Security BearerAuth
// @Router /v1/inventory [get]
func (h *InventoryHandler) FullView(c *gin.Context) {
	resp, err := h.svc.FullView(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LowStock godoc
// @Summary Products at or below their reorder level
// @Tags inventory
// @Produce json
// @Success 200 {array} dto.InventoryRow
// @Security BearerAuth
// @Router /v1/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *gin.Context) {
	resp, err := h.svc.LowStock(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Expiring godoc
// @Summary Products with stock expiring within a window
// @Tags inventory
// @Produce json
// @Param days query int false "Window in days (default 30)"
// @Success 200 {array} dto.ExpiringRow
// @Security BearerAuth
// @Router /v1/inventory/expiring [get]
func (h *InventoryHandler) Expiring(c *gin.Context) {
	var filter dto.ExpiringFilter
	if !bindQuery(c, &filter) {
		return
	}

	resp, err := h.svc.Expiring(c.Request.Context(), filter.Days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
