package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/diyath7/small-shop-system/internal/dto"
	"github.com/diyath7/small-shop-system/internal/service"
)

type BatchHandler struct {
	svc service.BatchService
}

func NewBatchHandler(svc service.BatchService) *BatchHandler {
	return &BatchHandler{svc: svc}
}

// Create godoc
// @Summary Receive a purchase batch into stock
// @Tags batches
// @Accept json
// @Produce json
// @Param request body dto.CreateBatchRequest true "Batch"
// @Success 201 {object} dto.BatchResponse
// @Failure 400 {object} apierror.APIError
// @Security BearerAuth
// @Router /v1/batches [post]
func (h *BatchHandler) Create(c *gin.Context) {
	var req dto.CreateBatchRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.CreateBatch(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// NextSupplierInvoice godoc
// @Summary Suggest the next supplier invoice number
// @Description Advisory only; the number is not reserved until a batch is
// @Description created with it.
// @Tags batches
// @Produce json
// @Success 200 {object} dto.NextSupplierInvoiceResponse
// @Security BearerAuth
// @Router /v1/batches/next-supplier-invoice [get]
func (h *BatchHandler) NextSupplierInvoice(c *gin.Context) {
	no, err := h.svc.NextSupplierInvoiceNo(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NextSupplierInvoiceResponse{SupplierInvoiceNo: no})
}

// ListRecent godoc
// @Summary Most recently received batches
// @Tags batches
// @Produce json
// @Success 200 {array} dto.BatchResponse
// @Security BearerAuth
// @Router /v1/batches/recent [get]
func (h *BatchHandler) ListRecent(c *gin.Context) {
	resp, err := h.svc.ListRecent(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SupplierSummary godoc
// @Summary Amounts owed per supplier
// @Tags batches
// @Produce json
// @Param from query string false "YYYY-MM-DD"
// @Param to query string false "YYYY-MM-DD"
// @Param status query string false "unpaid | paid | all"
// @Success 200 {array} dto.SupplierSummaryRow
// @Security BearerAuth
// @Router /v1/batches/supplier-summary [get]
func (h *BatchHandler) SupplierSummary(c *gin.Context) {
	var filter dto.SupplierSummaryFilter
	if !bindQuery(c, &filter) {
		return
	}

	resp, err := h.svc.SupplierSummary(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UnpaidBySupplier godoc
// @Summary Unpaid batches for one supplier
// @Tags batches
// @Produce json
// @Param supplier_id query int true "Supplier ID"
// @Success 200 {array} dto.UnpaidBatchRow
// @Failure 400 {object} apierror.APIError
// @Security BearerAuth
// @Router /v1/batches/supplier-unpaid [get]
func (h *BatchHandler) UnpaidBySupplier(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Query("supplier_id"), 10, 64)

	resp, err := h.svc.UnpaidBySupplier(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MarkPaid godoc
// @Summary Mark batches as paid to the supplier
// @Tags batches
// @Accept json
// @Produce json
// @Param request body dto.MarkPaidRequest true "Batch IDs"
// @Success 200 {object} dto.MarkPaidResponse
// @Failure 400 {object} apierror.APIError
// @Security BearerAuth
// @Router /v1/batches/mark-paid [post]
func (h *BatchHandler) MarkPaid(c *gin.Context) {
	var req dto.MarkPaidRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.MarkPaid(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
