package providers

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pharmaflow/backend/internal/domain/partner"
	"github.com/pharmaflow/backend/internal/domain/procurement"
	"github.com/pharmaflow/backend/internal/domain/shared"
	infra "github.com/pharmaflow/backend/internal/infrastructure/printing"
)

// ReceiptProvider implements DataProvider for RECEIPT documents. It
// loads the receipt together with the backing inspection report so the
// printed page can list the inspected lines of the receipt's side.
type ReceiptProvider struct {
	receiptRepo  procurement.ReceiptRepository
	reportRepo   procurement.InspectionReportRepository
	supplierRepo partner.SupplierRepository
	company      infra.CompanyInfo
}

// NewReceiptProvider creates a new ReceiptProvider.
func NewReceiptProvider(
	receiptRepo procurement.ReceiptRepository,
	reportRepo procurement.InspectionReportRepository,
	supplierRepo partner.SupplierRepository,
	company infra.CompanyInfo,
) *ReceiptProvider {
	return &ReceiptProvider{
		receiptRepo:  receiptRepo,
		reportRepo:   reportRepo,
		supplierRepo: supplierRepo,
		company:      company,
	}
}

// GetDocType returns the document type this provider handles.
func (p *ReceiptProvider) GetDocType() infra.DocType {
	return infra.DocTypeReceipt
}

// GetData retrieves receipt data for rendering.
func (p *ReceiptProvider) GetData(ctx context.Context, documentID uuid.UUID) (*infra.DocumentData, error) {
	receipt, err := p.receiptRepo.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load receipt: %w", err)
	}

	report, err := p.reportRepo.FindByID(ctx, receipt.ReportID)
	if err != nil {
		return nil, fmt.Errorf("failed to load inspection report: %w", err)
	}

	supplierInfo := loadSupplierInfo(ctx, p.supplierRepo, receipt.SupplierID, receipt.SupplierName)

	docData := infra.NewDocumentData(infra.DocTypeReceipt, receipt.ReceiptNumber)
	docData.Company = p.company
	docData.Meta.Status = string(receipt.Type)
	docData.Meta.StatusText = statusToText(string(receipt.Type))
	docData.Meta.CreatedAt = receipt.CreatedAt
	docData.Meta.UpdatedAt = receipt.UpdatedAt
	docData.Meta.Remarks = receipt.Remarks

	rejectedSide := receipt.Type == procurement.ReceiptTypeRejected

	items := make([]infra.ReceiptItemData, 0, len(report.Items))
	for _, reportItem := range report.Items {
		quantity := reportItem.AcceptedQty
		value := reportItem.AcceptedValue
		reason := ""
		if rejectedSide {
			quantity = reportItem.RejectedQty
			value = reportItem.RejectedValue
			reason = reportItem.RejectionReason
		}
		if !quantity.IsPositive() {
			continue
		}

		items = append(items, infra.ReceiptItemData{
			Index:             len(items) + 1,
			ProductName:       reportItem.ProductName,
			OrderedQty:        reportItem.OrderedQty,
			Quantity:          quantity,
			Rate:              reportItem.Rate,
			Value:             value,
			RejectionReason:   reason,
			QuantityFormatted: infra.FormatQuantityValue(quantity),
			RateFormatted:     infra.FormatMoneyValue(reportItem.Rate),
			ValueFormatted:    infra.FormatMoneyValue(value),
		})
	}

	docData.Document = infra.ReceiptData{
		ID:              receipt.ID,
		ReceiptNumber:   receipt.ReceiptNumber,
		Type:            string(receipt.Type),
		OrderNumber:     receipt.OrderNumber,
		ReportNumber:    receipt.ReportNumber,
		Supplier:        supplierInfo,
		Items:           items,
		TotalQuantity:   receipt.TotalQuantity,
		Amount:          receipt.Amount,
		Remarks:         receipt.Remarks,
		AmountFormatted: infra.FormatMoneyValue(receipt.Amount),
	}

	return docData, nil
}
