package procurement

import (
	"github.com/pharmaflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for the inspection report aggregate
const (
	EventTypeInspectionReportCreated = "procurement.inspection_report.created"
)

// InspectionReportCreatedEvent is published when an inspection report is submitted
type InspectionReportCreatedEvent struct {
	shared.BaseDomainEvent
	ReportNumber  string           `json:"report_number"`
	OrderNumber   string           `json:"order_number"`
	Result        InspectionResult `json:"result"`
	AcceptedTotal decimal.Decimal  `json:"accepted_total"`
	RejectedTotal decimal.Decimal  `json:"rejected_total"`
}

// NewInspectionReportCreatedEvent creates a new InspectionReportCreatedEvent
func NewInspectionReportCreatedEvent(report *InspectionReport) *InspectionReportCreatedEvent {
	return &InspectionReportCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInspectionReportCreated, "InspectionReport", report.ID),
		ReportNumber:    report.ReportNumber,
		OrderNumber:     report.OrderNumber,
		Result:          report.Result,
		AcceptedTotal:   report.AcceptedTotal,
		RejectedTotal:   report.RejectedTotal,
	}
}
