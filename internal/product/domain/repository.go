package domain

import "context"

type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Product, error)
	FindByFilter(ctx context.Context, filter Filter) ([]*Product, error)
}

type SellerRepository interface {
	FindByUserID(ctx context.Context, userID string) (*Seller, error)
}

type CategoryRepository interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type OrderDetailsRepository interface {
	SalesByProductID(ctx context.Context, productID string) (units int64, revenue float64, orders int64, err error)
}
