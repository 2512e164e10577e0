package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	procurementapp "github.com/pharmaflow/backend/internal/application/procurement"
	"github.com/pharmaflow/backend/internal/interfaces/http/middleware"
)

// InspectionReportHandler handles QC inspection report API endpoints
type InspectionReportHandler struct {
	BaseHandler
	inspectionService *procurementapp.InspectionService
}

// NewInspectionReportHandler creates a new InspectionReportHandler
func NewInspectionReportHandler(inspectionService *procurementapp.InspectionService) *InspectionReportHandler {
	return &InspectionReportHandler{
		inspectionService: inspectionService,
	}
}

// Create godoc
// @Summary      Submit an inspection report
// @Description  Submit the QC inspection for a pending order. Every order line must be covered; the complementary quantity is derived automatically.
// @Tags         inspection-reports
// @Accept       json
// @Produce      json
// @Param        request body procurementapp.CreateInspectionReportRequest true "Inspection report request"
// @Success      201 {object} dto.Response{data=procurementapp.InspectionReportResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /procurement/inspection-reports [post]
func (h *InspectionReportHandler) Create(c *gin.Context) {
	var req procurementapp.CreateInspectionReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	report, err := h.inspectionService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, report)
}

// GetByID godoc
// @Summary      Get inspection report by ID
// @Description  Retrieve an inspection report by its ID
// @Tags         inspection-reports
// @Produce      json
// @Param        id path string true "Report ID" format(uuid)
// @Success      200 {object} dto.Response{data=procurementapp.InspectionReportResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /procurement/inspection-reports/{id} [get]
func (h *InspectionReportHandler) GetByID(c *gin.Context) {
	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid report ID format")
		return
	}

	report, err := h.inspectionService.GetByID(c.Request.Context(), reportID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, report)
}

// GetByOrderID godoc
// @Summary      Get inspection report for an order
// @Description  Retrieve the inspection report submitted for a purchase order. Returns 404 while the order is pending inspection.
// @Tags         inspection-reports
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=procurementapp.InspectionReportResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /procurement/purchase-orders/{id}/inspection-report [get]
func (h *InspectionReportHandler) GetByOrderID(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	report, err := h.inspectionService.GetByOrderID(c.Request.Context(), orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, report)
}

// List godoc
// @Summary      List inspection reports
// @Description  Retrieve a paginated list of inspection reports with optional filtering
// @Tags         inspection-reports
// @Produce      json
// @Param        search query string false "Search term (report number, order number, supplier)"
// @Param        result query string false "Inspection result" Enums(accepted, rejected)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]procurementapp.InspectionReportResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /procurement/inspection-reports [get]
func (h *InspectionReportHandler) List(c *gin.Context) {
	var filter procurementapp.InspectionReportListFilter
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

	reports, total, err := h.inspectionService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, reports, total, filter.Page, filter.PageSize)
}
