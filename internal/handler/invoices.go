package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/diyath7/small-shop-system/internal/dto"
	"github.com/diyath7/small-shop-system/internal/service"
)

type InvoiceHandler struct {
	svc service.InvoiceService
}

func NewInvoiceHandler(svc service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{svc: svc}
}

// Create godoc
// @Summary Create an invoice
// @Description Deducts stock first-expired-first-out across batches and
// @Description persists the invoice atomically. When any item cannot be fully
// @Description satisfied the whole request is rejected and nothing is written.
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body dto.CreateInvoiceRequest true "Invoice"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} apierror.MultiError
// @Security BearerAuth
// @Router /v1/invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get godoc
// @Summary Invoice detail with line items
// @Tags invoices
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {object} dto.InvoiceDetailResponse
// @Failure 404 {object} apierror.APIError
// @Security BearerAuth
// @Router /v1/invoices/{id} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	resp, err := h.svc.GetInvoice(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary List invoices, optionally for a single day
// @Tags invoices
// @Produce json
// @Param date query string false "YYYY-MM-DD"
// @Success 200 {array} dto.InvoiceListItem
// @Security BearerAuth
// @Router /v1/invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	var filter dto.InvoiceFilter
	if !bindQuery(c, &filter) {
		return
	}

	resp, err := h.svc.ListInvoices(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListRange godoc
// @Summary List invoices within an inclusive date range
// @Tags invoices
// @Produce json
// @Param from query string true "YYYY-MM-DD"
// @Param to query string true "YYYY-MM-DD"
// @Success 200 {array} dto.InvoiceListItem
// @Security BearerAuth
// @Router /v1/invoices/range [get]
func (h *InvoiceHandler) ListRange(c *gin.Context) {
	var filter dto.InvoiceRangeFilter
	if !bindQuery(c, &filter) {
		return
	}

	resp, err := h.svc.ListInvoicesByRange(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
