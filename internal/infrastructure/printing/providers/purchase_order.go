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
	"github.com/shopspring/decimal"
)

// PurchaseOrderProvider implements DataProvider for PURCHASE_ORDER documents.
// It loads the order and its supplier for use in export templates.
type PurchaseOrderProvider struct {
	orderRepo    procurement.PurchaseOrderRepository
	supplierRepo partner.SupplierRepository
	company      infra.CompanyInfo
}

// NewPurchaseOrderProvider creates a new PurchaseOrderProvider.
func NewPurchaseOrderProvider(
	orderRepo procurement.PurchaseOrderRepository,
	supplierRepo partner.SupplierRepository,
	company infra.CompanyInfo,
) *PurchaseOrderProvider {
	return &PurchaseOrderProvider{
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		company:      company,
	}
}

// GetDocType returns the document type this provider handles.
func (p *PurchaseOrderProvider) GetDocType() infra.DocType {
	return infra.DocTypePurchaseOrder
}

// GetData retrieves purchase order data for rendering.
func (p *PurchaseOrderProvider) GetData(ctx context.Context, documentID uuid.UUID) (*infra.DocumentData, error) {
	order, err := p.orderRepo.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load purchase order: %w", err)
	}

	supplierInfo := loadSupplierInfo(ctx, p.supplierRepo, order.SupplierID, order.SupplierName)

	docData := infra.NewDocumentData(infra.DocTypePurchaseOrder, order.OrderNumber)
	docData.Company = p.company
	docData.Meta.Status = string(order.Status)
	docData.Meta.StatusText = statusToText(string(order.Status))
	docData.Meta.CreatedAt = order.CreatedAt
	docData.Meta.UpdatedAt = order.UpdatedAt
	docData.Meta.Remarks = order.Remarks

	items := make([]infra.PurchaseOrderItemData, len(order.Items))
	totalQuantity := decimal.Zero
	for i, item := range order.Items {
		totalQuantity = totalQuantity.Add(item.Quantity)
		items[i] = infra.PurchaseOrderItemData{
			Index:             i + 1,
			ProductID:         item.ProductID,
			ProductName:       item.ProductName,
			Quantity:          item.Quantity,
			Rate:              item.Rate,
			Amount:            item.Amount,
			QuantityFormatted: infra.FormatQuantityValue(item.Quantity),
			RateFormatted:     infra.FormatMoneyValue(item.Rate),
			AmountFormatted:   infra.FormatMoneyValue(item.Amount),
		}
	}

	subtotal := order.Subtotal()
	orderData := infra.PurchaseOrderData{
		ID:                   order.ID,
		OrderNumber:          order.OrderNumber,
		Channel:              string(order.Channel),
		Supplier:             supplierInfo,
		Items:                items,
		Subtotal:             subtotal,
		TotalAmount:          order.TotalAmount,
		TotalQuantity:        totalQuantity,
		ItemCount:            len(order.Items),
		Status:               string(order.Status),
		InspectedAt:          order.InspectedAt,
		Remarks:              order.Remarks,
		SubtotalFormatted:    infra.FormatMoneyValue(subtotal),
		TotalAmountFormatted: infra.FormatMoneyValue(order.TotalAmount),
	}

	if order.Local != nil {
		orderData.Local = &infra.LocalTermsData{
			PaymentTerms: order.Local.PaymentTerms,
			Station:      order.Local.Station,
			TaxPercent:   order.Local.TaxPercent,
		}
	}
	if order.Import != nil {
		orderData.Import = &infra.ImportTermsData{
			PaymentTerms:   order.Import.PaymentTerms,
			Origin:         order.Import.Origin,
			PaymentType:    string(order.Import.PaymentType),
			DispatchedFrom: order.Import.DispatchedFrom,
			DispatchedIn:   order.Import.DispatchedIn,
			ValidityIndent: order.Import.ValidityIndent,
		}
	}

	docData.Document = orderData

	return docData, nil
}

// loadSupplierInfo fetches supplier details, falling back to the
// denormalized name when the supplier record is gone.
func loadSupplierInfo(ctx context.Context, repo partner.SupplierRepository, supplierID uuid.UUID, fallbackName string) infra.SupplierInfo {
	supplier, err := repo.FindByID(ctx, supplierID)
	if err != nil {
		return infra.SupplierInfo{ID: supplierID, Name: fallbackName}
	}
	return infra.SupplierInfo{
		ID:      supplier.ID,
		Name:    supplier.Name,
		Type:    string(supplier.Type),
		Contact: supplier.ContactPerson,
		Phone:   supplier.Phone,
		Email:   supplier.Email,
		Address: supplier.Address,
		Country: supplier.Country,
	}
}

// statusToText maps lifecycle status codes to display text
func statusToText(status string) string {
	switch status {
	case "pending":
		return "Pending Inspection"
	case "completed":
		return "Completed"
	case "partially_rejected":
		return "Partially Rejected"
	case "accepted":
		return "Accepted"
	case "rejected":
		return "Rejected"
	default:
		return status
	}
}
