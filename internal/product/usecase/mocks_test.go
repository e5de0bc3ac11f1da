package usecase

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/product-service/internal/product/domain"
	"github.com/stretchr/testify/mock"
)

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepo) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockProductRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*domain.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) FindByFilter(ctx context.Context, filter domain.Filter) ([]*domain.Product, error) {
	args := m.Called(ctx, filter)
	if products, ok := args.Get(0).([]*domain.Product); ok {
		return products, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockSellerRepo struct {
	mock.Mock
}

func (m *mockSellerRepo) FindByUserID(ctx context.Context, userID string) (*domain.Seller, error) {
	args := m.Called(ctx, userID)
	if s, ok := args.Get(0).(*domain.Seller); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockCategoryRepo struct {
	mock.Mock
}

func (m *mockCategoryRepo) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) SalesByProductID(ctx context.Context, productID string) (int64, float64, int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Get(1).(float64), args.Get(2).(int64), args.Error(3)
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	args := m.Called(ctx, fileName, data)
	return args.String(0), args.Error(1)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*domain.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCache) SetProduct(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockCache) DeleteProduct(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SendProductApprovedEmail(to, productName string) error {
	args := m.Called(to, productName)
	return args.Error(0)
}

func (m *mockNotifier) SendProductRejectedEmail(to, productName, reason string) error {
	args := m.Called(to, productName, reason)
	return args.Error(0)
}
