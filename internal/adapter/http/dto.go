package http

import (
	"time"

	"github.com/Abdurahmanit/GroupProject/product-service/internal/product/domain"
)

// ProductDTO is the external representation of a product. Conversion lives
// here, next to the transport, never in the domain model.
type ProductDTO struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Price           float64   `json:"price"`
	CategoryID      string    `json:"categoryId"`
	UserID          string    `json:"userId"`
	Stock           int       `json:"stock"`
	Status          string    `json:"status"`
	RejectionReason string    `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	ImageURLs       []string  `json:"imageUrls"`
}

func toProductDTO(p *domain.Product) ProductDTO {
	images := p.ImageURLs
	if images == nil {
		images = []string{}
	}
	return ProductDTO{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		CategoryID:      p.CategoryID,
		UserID:          p.OwnerID,
		Stock:           p.Stock,
		Status:          string(p.Status),
		RejectionReason: p.RejectionReason,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		ImageURLs:       images,
	}
}

func toProductDTOs(products []*domain.Product) []ProductDTO {
	dtos := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, toProductDTO(p))
	}
	return dtos
}
