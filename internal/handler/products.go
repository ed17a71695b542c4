package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/diyath7/small-shop-system/internal/dto"
	"github.com/diyath7/small-shop-system/internal/service"
)

type ProductHandler struct {
	svc service.ProductService
}

func NewProductHandler(svc service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// Create godoc
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Param request body dto.CreateProductRequest true "Product"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} apierror.APIError
// @Security BearerAuth
// @Router /v1/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
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
// @Summary Update a product
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body dto.UpdateProductRequest true "Product"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} apierror.APIError
// @Security BearerAuth
// @Router /v1/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
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

// Get godoc
// @Summary Product by id
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} apierror.APIError
// @Security BearerAuth
// @Router /v1/products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary All products
// @Tags products
// @Produce json
// @Success 200 {array} dto.ProductResponse
// @Security BearerAuth
// @Router /v1/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
