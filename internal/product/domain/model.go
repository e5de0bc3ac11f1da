package domain

import "time"

type ProductStatus string

const (
	StatusPending  ProductStatus = "PENDING"
	StatusApproved ProductStatus = "APPROVED"
	StatusRejected ProductStatus = "REJECTED"
	StatusEnabled  ProductStatus = "ENABLED"
	StatusDisabled ProductStatus = "DISABLED"
)

// PublicStatuses are the statuses visible to unauthenticated queries.
var PublicStatuses = []ProductStatus{StatusApproved, StatusEnabled}

type Product struct {
	ID              string
	OwnerID         string
	CategoryID      string
	Name            string
	Description     string
	Price           float64
	Stock           int
	Status          ProductStatus
	RejectionReason string
	ImageURLs       []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Seller holds the contact data needed to notify an owner about
// moderation outcomes. Account management lives in the user-service.
type Seller struct {
	ID        string
	UserID    string
	Email     string
	ShopName  string
	CreatedAt time.Time
}

// OrderDetails is a single order line referencing a product.
type OrderDetails struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	UnitPrice float64
	CreatedAt time.Time
}

// SalesReport aggregates the order lines of one product.
type SalesReport struct {
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	UnitsSold    int64   `json:"unitsSold"`
	TotalRevenue float64 `json:"totalRevenue"`
	OrderCount   int64   `json:"orderCount"`
}

// Filter narrows product listings. Zero values mean "no constraint".
type Filter struct {
	Query      string
	CategoryID string
	OwnerID    string
	Statuses   []ProductStatus
}

// AddImageURL appends a URL keeping insertion order and rejecting duplicates.
func (p *Product) AddImageURL(url string) {
	for _, existing := range p.ImageURLs {
		if existing == url {
			return
		}
	}
	p.ImageURLs = append(p.ImageURLs, url)
}

// IsPubliclyVisible reports whether the product may appear in
// unauthenticated listings.
func (p *Product) IsPubliclyVisible() bool {
	return p.Status == StatusApproved || p.Status == StatusEnabled
}
