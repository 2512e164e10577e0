package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/pharmaflow/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=200"`
	Description  string `json:"description"`
	Manufacturer string `json:"manufacturer" binding:"max=200"`
	HSCode       string `json:"hs_code" binding:"max=50"`
	Unit         string `json:"unit" binding:"max=20"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=200"`
	Description  *string `json:"description"`
	Manufacturer *string `json:"manufacturer" binding:"omitempty,max=200"`
	HSCode       *string `json:"hs_code" binding:"omitempty,max=50"`
	Unit         *string `json:"unit" binding:"omitempty,max=20"`
}

// ProductListFilter represents filtering options for product lists
type ProductListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Manufacturer string    `json:"manufacturer"`
	HSCode       string    `json:"hs_code"`
	Unit         string    `json:"unit"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToProductResponse converts a domain product to a response DTO
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Manufacturer: p.Manufacturer,
		HSCode:       p.HSCode,
		Unit:         p.Unit,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain products to response DTOs
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}
	return responses
}
