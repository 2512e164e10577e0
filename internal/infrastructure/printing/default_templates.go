package printing

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed templates/*.html
var templateFS embed.FS

// DefaultTemplate represents a built-in document template configuration
type DefaultTemplate struct {
	DocType     DocType
	Name        string
	PaperSize   PaperSize
	Orientation Orientation
	Margins     Margins
	FilePath    string // Path within embed.FS
}

// GetDefaultTemplates returns all built-in template configurations
func GetDefaultTemplates() []DefaultTemplate {
	return []DefaultTemplate{
		{
			DocType:     DocTypePurchaseOrder,
			Name:        "Purchase Order A4",
			PaperSize:   PaperSizeA4,
			Orientation: OrientationPortrait,
			Margins:     DefaultMargins(),
			FilePath:    "templates/purchase_order_a4.html",
		},
		{
			DocType:     DocTypeReceipt,
			Name:        "Goods Receipt A4",
			PaperSize:   PaperSizeA4,
			Orientation: OrientationPortrait,
			Margins:     DefaultMargins(),
			FilePath:    "templates/receipt_a4.html",
		},
	}
}

// TemplateStore resolves document templates. Built-in templates are
// embedded; a template directory may override them per doc type with a
// file named <doctype>.html (lowercased).
type TemplateStore struct {
	overrideDir string
}

// NewTemplateStore creates a template store with an optional override dir
func NewTemplateStore(overrideDir string) *TemplateStore {
	return &TemplateStore{overrideDir: overrideDir}
}

// Resolve returns the template configuration and content for a doc type
func (s *TemplateStore) Resolve(docType DocType) (*DefaultTemplate, string, error) {
	var tmpl *DefaultTemplate
	for _, candidate := range GetDefaultTemplates() {
		if candidate.DocType == docType {
			c := candidate
			tmpl = &c
			break
		}
	}
	if tmpl == nil {
		return nil, "", fmt.Errorf("no template registered for doc type %s", docType)
	}

	if s.overrideDir != "" {
		overridePath := filepath.Join(s.overrideDir, overrideFileName(docType))
		if content, err := os.ReadFile(overridePath); err == nil {
			return tmpl, string(content), nil
		}
	}

	content, err := templateFS.ReadFile(tmpl.FilePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read embedded template %s: %w", tmpl.FilePath, err)
	}

	return tmpl, string(content), nil
}

func overrideFileName(docType DocType) string {
	switch docType {
	case DocTypePurchaseOrder:
		return "purchase_order.html"
	case DocTypeReceipt:
		return "receipt.html"
	default:
		return string(docType) + ".html"
	}
}
