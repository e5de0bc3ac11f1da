package mongodb

import (
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/product-service/internal/product/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type productDocument struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty"`
	OwnerID         string               `bson:"owner_id"`
	CategoryID      string               `bson:"category_id"`
	Name            string               `bson:"name"`
	Description     string               `bson:"description"`
	Price           float64              `bson:"price"`
	Stock           int                  `bson:"stock"`
	Status          domain.ProductStatus `bson:"status"`
	RejectionReason string               `bson:"rejection_reason,omitempty"`
	ImageURLs       []string             `bson:"image_urls,omitempty"`
	CreatedAt       time.Time            `bson:"created_at"`
	UpdatedAt       time.Time            `bson:"updated_at"`
}

type sellerDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	Email     string             `bson:"email"`
	ShopName  string             `bson:"shop_name,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
}

type orderDetailsDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	OrderID   string             `bson:"order_id"`
	ProductID string             `bson:"product_id"`
	Quantity  int                `bson:"quantity"`
	UnitPrice float64            `bson:"unit_price"`
	CreatedAt time.Time          `bson:"created_at"`
}

func toProductDocument(p *domain.Product) (*productDocument, error) {
	if p == nil {
		return nil, nil
	}

	var docID primitive.ObjectID
	if p.ID != "" {
		var err error
		docID, err = primitive.ObjectIDFromHex(p.ID)
		if err != nil {
			return nil, fmt.Errorf("toProductDocument: invalid ID %q: %w", p.ID, err)
		}
	}

	return &productDocument{
		ID:              docID,
		OwnerID:         p.OwnerID,
		CategoryID:      p.CategoryID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		Stock:           p.Stock,
		Status:          p.Status,
		RejectionReason: p.RejectionReason,
		ImageURLs:       p.ImageURLs,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}, nil
}

func toDomainProduct(d *productDocument) *domain.Product {
	if d == nil {
		return nil
	}
	images := d.ImageURLs
	if images == nil {
		images = []string{}
	}
	return &domain.Product{
		ID:              d.ID.Hex(),
		OwnerID:         d.OwnerID,
		CategoryID:      d.CategoryID,
		Name:            d.Name,
		Description:     d.Description,
		Price:           d.Price,
		Stock:           d.Stock,
		Status:          d.Status,
		RejectionReason: d.RejectionReason,
		ImageURLs:       images,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func toDomainProducts(docs []*productDocument) []*domain.Product {
	products := make([]*domain.Product, 0, len(docs))
	for _, doc := range docs {
		products = append(products, toDomainProduct(doc))
	}
	return products
}

func toDomainSeller(d *sellerDocument) *domain.Seller {
	if d == nil {
		return nil
	}
	return &domain.Seller{
		ID:        d.ID.Hex(),
		UserID:    d.UserID,
		Email:     d.Email,
		ShopName:  d.ShopName,
		CreatedAt: d.CreatedAt,
	}
}
