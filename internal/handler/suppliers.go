package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/diyath7/small-shop-system/internal/dto"
	"github.com/diyath7/small-shop-system/internal/service"
)

type SupplierHandler struct {
	svc service.SupplierService
}

func NewSupplierHandler(svc service.SupplierService) *SupplierHandler {
	return &SupplierHandler{svc: svc}
}

// Create godoc
// @Summary Create a supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Param request body dto.CreateSupplierRequest true "Supplier"
// @Success 201 {object} dto.SupplierResponse
// @Failure 400 {object} apierror.APIError
// @Security BearerAuth
// @Router /v1/suppliers [post]
func (h *SupplierHandler) Create(c *gin.Context) {
	var req dto.CreateSupplierRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Update godoc
// @Summary Update a supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Param id path int true "Supplier ID"
// @Param request body dto.UpdateSupplierRequest true "Supplier"
// @Success 200 {object} dto.SupplierResponse
// @Failure 404 {object} apierror.APIError
// @Security BearerAuth
// @Router /v1/suppliers/{id} [put]
func (h *SupplierHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req dto.UpdateSupplierRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary All suppliers
// @Tags suppliers
// @Produce json
// @Success 200 {array} dto.SupplierResponse
// @Security BearerAuth
// @Router /v1/suppliers [get]
func (h *SupplierHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary Delete a supplier, detaching its products and batches
// @Tags suppliers
// @Param id path int true "Supplier ID"
// @Success 204 "No Content"
// @Failure 404 {object} apierror.APIError
// @Security BearerAuth
// @Router /v1/suppliers/{id} [delete]
func (h *SupplierHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
