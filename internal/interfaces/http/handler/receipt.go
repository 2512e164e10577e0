package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	documentapp "github.com/pharmaflow/backend/internal/application/document"
	procurementapp "github.com/pharmaflow/backend/internal/application/procurement"
	"github.com/pharmaflow/backend/internal/interfaces/http/dto"
	"github.com/pharmaflow/backend/internal/interfaces/http/middleware"
)

// ReceiptHandler handles goods receipt API endpoints
type ReceiptHandler struct {
	BaseHandler
	receiptService *procurementapp.ReceiptService
	exportService  *documentapp.ExportService
}

// NewReceiptHandler creates a new ReceiptHandler.
// exportService may be nil when document export is disabled.
func NewReceiptHandler(
	receiptService *procurementapp.ReceiptService,
	exportService *documentapp.ExportService,
) *ReceiptHandler {
	return &ReceiptHandler{
		receiptService: receiptService,
		exportService:  exportService,
	}
}

// Create godoc
// @Summary      Issue a receipt
// @Description  Issue an accepted or rejected goods receipt for an inspected order. The receipt requires a non-zero quantity on its side of the report.
// @Tags         receipts
// @Accept       json
// @Produce      json
// @Param        request body procurementapp.CreateReceiptRequest true "Receipt creation request"
// @Success      201 {object} dto.Response{data=procurementapp.ReceiptResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /procurement/receipts [post]
func (h *ReceiptHandler) Create(c *gin.Context) {
	var req procurementapp.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	receipt, err := h.receiptService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, receipt)
}

// GetByID godoc
// @Summary      Get receipt by ID
// @Description  Retrieve a receipt by its ID
// @Tags         receipts
// @Produce      json
// @Param        id path string true "Receipt ID" format(uuid)
// @Success      200 {object} dto.Response{data=procurementapp.ReceiptResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /procurement/receipts/{id} [get]
func (h *ReceiptHandler) GetByID(c *gin.Context) {
	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID format")
		return
	}

	receipt, err := h.receiptService.GetByID(c.Request.Context(), receiptID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, receipt)
}

// GetByOrderID godoc
// @Summary      List receipts for an order
// @Description  Retrieve the receipts issued against a purchase order
// @Tags         receipts
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]procurementapp.ReceiptResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /procurement/purchase-orders/{id}/receipts [get]
func (h *ReceiptHandler) GetByOrderID(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	receipts, err := h.receiptService.GetByOrderID(c.Request.Context(), orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, receipts)
}

// List godoc
// @Summary      List receipts
// @Description  Retrieve a paginated list of receipts with optional filtering
// @Tags         receipts
// @Produce      json
// @Param        search query string false "Search term (receipt number, order number, supplier)"
// @Param        type query string false "Receipt type" Enums(accepted, rejected)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]procurementapp.ReceiptResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /procurement/receipts [get]
func (h *ReceiptHandler) List(c *gin.Context) {
	var filter procurementapp.ReceiptListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	receipts, total, err := h.receiptService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, receipts, total, filter.Page, filter.PageSize)
}

// ExportDocument godoc
// @Summary      Export receipt as PDF
// @Description  Render the goods receipt document and stream it as a PDF file
// @Tags         receipts
// @Produce      application/pdf
// @Param        id path string true "Receipt ID" format(uuid)
// @Success      200 {file} binary
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /procurement/receipts/{id}/document [get]
func (h *ReceiptHandler) ExportDocument(c *gin.Context) {
	if h.exportService == nil {
		h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeInternal, "Document export is not enabled")
		return
	}

	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID format")
		return
	}

	result, err := h.exportService.ExportReceipt(c.Request.Context(), receiptID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	c.Data(http.StatusOK, "application/pdf", result.PDFData)
}
