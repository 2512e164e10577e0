package document

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	infra "github.com/pharmaflow/backend/internal/infrastructure/printing"
	"go.uber.org/zap"
)

// DataLoader resolves document data by type and id. Implemented by the
// provider registry.
type DataLoader interface {
	LoadData(ctx context.Context, docType infra.DocType, documentID uuid.UUID) (*infra.DocumentData, error)
	HasProvider(docType infra.DocType) bool
}

// Archiver stores a copy of exported documents in object storage
type Archiver interface {
	Archive(ctx context.Context, key string, data []byte, contentType string) error
}

// ExportResult carries a rendered PDF document
type ExportResult struct {
	FileName  string
	PDFData   []byte
	PageCount int
}

// ExportService renders business documents to PDF. Data providers load
// the aggregate, the template engine produces HTML and the renderer
// prints it. When an archiver is configured, each export is also stored
// under a dated key; archive failures do not fail the export.
type ExportService struct {
	loader    DataLoader
	templates *infra.TemplateStore
	engine    *infra.TemplateEngine
	renderer  infra.PDFRenderer
	archiver  Archiver
	logger    *zap.Logger
}

// NewExportService creates a new ExportService. archiver may be nil.
func NewExportService(
	loader DataLoader,
	templates *infra.TemplateStore,
	engine *infra.TemplateEngine,
	renderer infra.PDFRenderer,
	archiver Archiver,
	logger *zap.Logger,
) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		loader:    loader,
		templates: templates,
		engine:    engine,
		renderer:  renderer,
		archiver:  archiver,
		logger:    logger,
	}
}

// ExportPurchaseOrder renders a purchase order document
func (s *ExportService) ExportPurchaseOrder(ctx context.Context, orderID uuid.UUID) (*ExportResult, error) {
	return s.export(ctx, infra.DocTypePurchaseOrder, orderID)
}

// ExportReceipt renders a goods receipt document
func (s *ExportService) ExportReceipt(ctx context.Context, receiptID uuid.UUID) (*ExportResult, error) {
	return s.export(ctx, infra.DocTypeReceipt, receiptID)
}

func (s *ExportService) export(ctx context.Context, docType infra.DocType, documentID uuid.UUID) (*ExportResult, error) {
	data, err := s.loader.LoadData(ctx, docType, documentID)
	if err != nil {
		return nil, err
	}

	tmpl, content, err := s.templates.Resolve(docType)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve template: %w", err)
	}

	html, err := s.engine.RenderString(ctx, string(docType), content, data)
	if err != nil {
		return nil, err
	}

	result, err := s.renderer.Render(ctx, &infra.RenderRequest{
		HTML:        html,
		PaperSize:   tmpl.PaperSize,
		Orientation: tmpl.Orientation,
		Margins:     tmpl.Margins,
		Title:       data.Meta.DocNo,
	})
	if err != nil {
		return nil, err
	}

	fileName := data.Meta.DocNo + ".pdf"

	s.logger.Info("document exported",
		zap.String("doc_type", string(docType)),
		zap.String("doc_no", data.Meta.DocNo),
		zap.Int("pages", result.PageCount),
	)

	if s.archiver != nil {
		key := archiveKey(docType, fileName)
		if err := s.archiver.Archive(ctx, key, result.PDFData, "application/pdf"); err != nil {
			s.logger.Warn("failed to archive exported document",
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}

	return &ExportResult{
		FileName:  fileName,
		PDFData:   result.PDFData,
		PageCount: result.PageCount,
	}, nil
}

// archiveKey builds a dated object key, e.g.
// documents/purchase_order/2026/08/31/PO-20260831-0001.pdf
func archiveKey(docType infra.DocType, fileName string) string {
	kind := "purchase_order"
	if docType == infra.DocTypeReceipt {
		kind = "receipt"
	}
	return fmt.Sprintf("documents/%s/%s/%s", kind, time.Now().Format("2006/01/02"), fileName)
}
