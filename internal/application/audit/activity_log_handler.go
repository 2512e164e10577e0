package audit

import (
	"context"

	"github.com/pharmaflow/backend/internal/domain/procurement"
	"github.com/pharmaflow/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ActivityLogHandler records the procurement lifecycle as a structured
// audit trail. It listens to the order, inspection and receipt events and
// writes one log entry per event, enriched with the event payload.
type ActivityLogHandler struct {
	logger *zap.Logger
}

// NewActivityLogHandler creates a new handler writing to the given logger
func NewActivityLogHandler(logger *zap.Logger) *ActivityLogHandler {
	return &ActivityLogHandler{
		logger: logger.Named("audit"),
	}
}

// EventTypes returns the event types this handler is interested in
func (h *ActivityLogHandler) EventTypes() []string {
	return []string{
		procurement.EventTypePurchaseOrderCreated,
		procurement.EventTypePurchaseOrderInspected,
		procurement.EventTypeInspectionReportCreated,
		procurement.EventTypeReceiptCreated,
	}
}

// Handle writes an audit entry for the event
func (h *ActivityLogHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_id", event.EventID().String()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	}

	switch e := event.(type) {
	case *procurement.PurchaseOrderCreatedEvent:
		fields = append(fields,
			zap.String("order_number", e.OrderNumber),
			zap.String("channel", string(e.Channel)),
			zap.String("total_amount", e.TotalAmount.String()),
		)
	case *procurement.PurchaseOrderInspectedEvent:
		fields = append(fields,
			zap.String("order_number", e.OrderNumber),
			zap.String("status", string(e.Status)),
			zap.String("rejected_qty", e.RejectedQty.String()),
		)
	case *procurement.InspectionReportCreatedEvent:
		fields = append(fields,
			zap.String("report_number", e.ReportNumber),
			zap.String("result", string(e.Result)),
		)
	case *procurement.ReceiptCreatedEvent:
		fields = append(fields,
			zap.String("receipt_number", e.ReceiptNumber),
			zap.String("type", string(e.Type)),
			zap.String("amount", e.Amount.String()),
		)
	}

	h.logger.Info(event.EventType(), fields...)
	return nil
}

// Ensure ActivityLogHandler implements shared.EventHandler
var _ shared.EventHandler = (*ActivityLogHandler)(nil)
