package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Abdurahmanit/GroupProject/product-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/product-service/internal/product/domain"
)

// Storage uploads image bytes to the external image host and returns a
// stable URL.
type Storage interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
}

// EventPublisher emits lifecycle events. Publishing is best-effort: a
// failed publish is logged, never returned to the caller.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// ProductCache fronts the public detail path. A nil product with a nil
// error means cache miss.
type ProductCache interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	SetProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

type ImageUpload struct {
	FileName string
	Data     []byte
}

type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	CategoryID  string
}

// ProductPatch applies only its non-nil fields.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
	CategoryID  *string
}

type ProductUsecase struct {
	repo       domain.ProductRepository
	categories domain.CategoryRepository
	orders     domain.OrderDetailsRepository
	storage    Storage
	cache      ProductCache
	publisher  EventPublisher
	logger     *logger.Logger
}

func NewProductUsecase(
	repo domain.ProductRepository,
	categories domain.CategoryRepository,
	orders domain.OrderDetailsRepository,
	storage Storage,
	cache ProductCache,
	publisher EventPublisher,
	log *logger.Logger,
) *ProductUsecase {
	return &ProductUsecase{
		repo:       repo,
		categories: categories,
		orders:     orders,
		storage:    storage,
		cache:      cache,
		publisher:  publisher,
		logger:     log,
	}
}

func (uc *ProductUsecase) Create(ctx context.Context, actor domain.Actor, input ProductInput, images []ImageUpload) (*domain.Product, error) {
	uc.logger.Info("ProductUsecase.Create: creating product",
		"owner_id", actor.UserID, "name", input.Name, "category_id", input.CategoryID)

	if err := uc.validateInput(ctx, input); err != nil {
		return nil, err
	}

	// Images go up before anything is persisted so that an upload failure
	// leaves no partial product record behind.
	urls, err := uc.uploadImages(ctx, images)
	if err != nil {
		uc.logger.Error("ProductUsecase.Create: image upload failed", "owner_id", actor.UserID, "error", err.Error())
		return nil, err
	}

	now := time.Now()
	product := &domain.Product{
		OwnerID:     actor.UserID,
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Status:      domain.StatusPending,
		ImageURLs:   []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, url := range urls {
		product.AddImageURL(url)
	}

	if err := uc.repo.Create(ctx, product); err != nil {
		uc.logger.Error("ProductUsecase.Create: failed to persist product", "owner_id", actor.UserID, "error", err.Error())
		return nil, err
	}

	uc.publish(ctx, "product.created", product)
	return product, nil
}

// Update replaces all content fields. When images are supplied the uploaded
// set becomes the product's image list; status and owner are untouched.
func (uc *ProductUsecase) Update(ctx context.Context, actor domain.Actor, id string, input ProductInput, images []ImageUpload) (*domain.Product, error) {
	uc.logger.Info("ProductUsecase.Update: updating product", "product_id", id, "actor_id", actor.UserID)

	product, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(product.OwnerID) {
		uc.logger.Warn("ProductUsecase.Update: forbidden",
			"product_id", id, "owner_id", product.OwnerID, "actor_id", actor.UserID)
		return nil, domain.ErrForbidden
	}
	if err := uc.validateInput(ctx, input); err != nil {
		return nil, err
	}

	if len(images) > 0 {
		urls, err := uc.uploadImages(ctx, images)
		if err != nil {
			uc.logger.Error("ProductUsecase.Update: image upload failed", "product_id", id, "error", err.Error())
			return nil, err
		}
		product.ImageURLs = []string{}
		for _, url := range urls {
			product.AddImageURL(url)
		}
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Stock = input.Stock
	product.CategoryID = input.CategoryID
	product.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, product); err != nil {
		uc.logger.Error("ProductUsecase.Update: failed to persist product", "product_id", id, "error", err.Error())
		return nil, err
	}

	uc.invalidate(ctx, id)
	uc.publish(ctx, "product.updated", product)
	return product, nil
}

// Patch applies only the fields present in the patch. The image list is
// never touched on this path.
func (uc *ProductUsecase) Patch(ctx context.Context, actor domain.Actor, id string, patch ProductPatch) (*domain.Product, error) {
	uc.logger.Info("ProductUsecase.Patch: patching product", "product_id", id, "actor_id", actor.UserID)

	product, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(product.OwnerID) {
		uc.logger.Warn("ProductUsecase.Patch: forbidden",
			"product_id", id, "owner_id", product.OwnerID, "actor_id", actor.UserID)
		return nil, domain.ErrForbidden
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, fmt.Errorf("%w: name must not be empty", domain.ErrInvalidProductData)
		}
		product.Name = *patch.Name
	}
	if patch.Description != nil {
		if strings.TrimSpace(*patch.Description) == "" {
			return nil, fmt.Errorf("%w: description must not be empty", domain.ErrInvalidProductData)
		}
		product.Description = *patch.Description
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			return nil, fmt.Errorf("%w: price must not be negative", domain.ErrInvalidProductData)
		}
		product.Price = *patch.Price
	}
	if patch.Stock != nil {
		if *patch.Stock < 0 {
			return nil, fmt.Errorf("%w: stock must not be negative", domain.ErrInvalidProductData)
		}
		product.Stock = *patch.Stock
	}
	if patch.CategoryID != nil {
		if err := uc.checkCategory(ctx, *patch.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *patch.CategoryID
	}
	product.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, product); err != nil {
		uc.logger.Error("ProductUsecase.Patch: failed to persist product", "product_id", id, "error", err.Error())
		return nil, err
	}

	uc.invalidate(ctx, id)
	uc.publish(ctx, "product.updated", product)
	return product, nil
}

func (uc *ProductUsecase) Delete(ctx context.Context, actor domain.Actor, id string) error {
	uc.logger.Info("ProductUsecase.Delete: deleting product", "product_id", id, "actor_id", actor.UserID)

	product, err := uc.load(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanManage(product.OwnerID) {
		uc.logger.Warn("ProductUsecase.Delete: forbidden",
			"product_id", id, "owner_id", product.OwnerID, "actor_id", actor.UserID)
		return domain.ErrForbidden
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		uc.logger.Error("ProductUsecase.Delete: failed to delete product", "product_id", id, "error", err.Error())
		return err
	}

	uc.invalidate(ctx, id)
	uc.publish(ctx, "product.deleted", product)
	return nil
}

func (uc *ProductUsecase) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return uc.load(ctx, id)
}

func (uc *ProductUsecase) GetAll(ctx context.Context) ([]*domain.Product, error) {
	return uc.find(ctx, domain.Filter{})
}

func (uc *ProductUsecase) GetByCategory(ctx context.Context, categoryID string) ([]*domain.Product, error) {
	return uc.find(ctx, domain.Filter{CategoryID: categoryID})
}

func (uc *ProductUsecase) GetByOwner(ctx context.Context, actor domain.Actor) ([]*domain.Product, error) {
	return uc.find(ctx, domain.Filter{OwnerID: actor.UserID})
}

func (uc *ProductUsecase) GetApprovedByOwner(ctx context.Context, actor domain.Actor) ([]*domain.Product, error) {
	return uc.find(ctx, domain.Filter{OwnerID: actor.UserID, Statuses: domain.PublicStatuses})
}

// GetPublic returns exactly the products visible to unauthenticated
// clients: APPROVED or ENABLED, never PENDING or REJECTED.
func (uc *ProductUsecase) GetPublic(ctx context.Context) ([]*domain.Product, error) {
	return uc.find(ctx, domain.Filter{Statuses: domain.PublicStatuses})
}

func (uc *ProductUsecase) GetAvailable(ctx context.Context) ([]*domain.Product, error) {
	return uc.find(ctx, domain.Filter{Statuses: []domain.ProductStatus{domain.StatusEnabled}})
}

func (uc *ProductUsecase) GetPending(ctx context.Context, actor domain.Actor) ([]*domain.Product, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return uc.find(ctx, domain.Filter{Statuses: []domain.ProductStatus{domain.StatusPending}})
}

// GetActiveByID serves the public detail view through the cache. A product
// outside the public status set is reported as not found.
func (uc *ProductUsecase) GetActiveByID(ctx context.Context, id string) (*domain.Product, error) {
	if cached, err := uc.cache.GetProduct(ctx, id); err != nil {
		uc.logger.Warn("ProductUsecase.GetActiveByID: cache read failed", "product_id", id, "error", err.Error())
	} else if cached != nil {
		if !cached.IsPubliclyVisible() {
			return nil, domain.ErrProductNotFound
		}
		return cached, nil
	}

	product, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.IsPubliclyVisible() {
		return nil, domain.ErrProductNotFound
	}

	if err := uc.cache.SetProduct(ctx, product); err != nil {
		uc.logger.Warn("ProductUsecase.GetActiveByID: cache write failed", "product_id", id, "error", err.Error())
	}
	return product, nil
}

// Search matches name and description case-insensitively. A blank query or
// a query without matches yields an empty slice, not an error.
func (uc *ProductUsecase) Search(ctx context.Context, query string) ([]*domain.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*domain.Product{}, nil
	}
	return uc.find(ctx, domain.Filter{Query: query, Statuses: domain.PublicStatuses})
}

func (uc *ProductUsecase) GetSales(ctx context.Context, id string) (*domain.SalesReport, error) {
	product, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	units, revenue, orders, err := uc.orders.SalesByProductID(ctx, id)
	if err != nil {
		uc.logger.Error("ProductUsecase.GetSales: failed to aggregate sales", "product_id", id, "error", err.Error())
		return nil, err
	}
	return &domain.SalesReport{
		ProductID:    product.ID,
		ProductName:  product.Name,
		UnitsSold:    units,
		TotalRevenue: revenue,
		OrderCount:   orders,
	}, nil
}

func (uc *ProductUsecase) load(ctx context.Context, id string) (*domain.Product, error) {
	product, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, domain.ErrProductNotFound
		}
		uc.logger.Error("ProductUsecase: failed to load product", "product_id", id, "error", err.Error())
		return nil, err
	}
	return product, nil
}

func (uc *ProductUsecase) find(ctx context.Context, filter domain.Filter) ([]*domain.Product, error) {
	products, err := uc.repo.FindByFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("ProductUsecase: failed to list products", "filter", fmt.Sprintf("%+v", filter), "error", err.Error())
		return nil, err
	}
	if products == nil {
		products = []*domain.Product{}
	}
	return products, nil
}

func (uc *ProductUsecase) validateInput(ctx context.Context, input ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", domain.ErrInvalidProductData)
	}
	if strings.TrimSpace(input.Description) == "" {
		return fmt.Errorf("%w: description must not be empty", domain.ErrInvalidProductData)
	}
	if input.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", domain.ErrInvalidProductData)
	}
	if input.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", domain.ErrInvalidProductData)
	}
	return uc.checkCategory(ctx, input.CategoryID)
}

func (uc *ProductUsecase) checkCategory(ctx context.Context, categoryID string) error {
	if strings.TrimSpace(categoryID) == "" {
		return fmt.Errorf("%w: category is required", domain.ErrInvalidProductData)
	}
	exists, err := uc.categories.Exists(ctx, categoryID)
	if err != nil {
		uc.logger.Error("ProductUsecase: category lookup failed", "category_id", categoryID, "error", err.Error())
		return err
	}
	if !exists {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func (uc *ProductUsecase) uploadImages(ctx context.Context, images []ImageUpload) ([]string, error) {
	urls := make([]string, 0, len(images))
	for _, img := range images {
		url, err := uc.storage.Upload(ctx, img.FileName, img.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrImageUpload, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (uc *ProductUsecase) invalidate(ctx context.Context, id string) {
	if err := uc.cache.DeleteProduct(ctx, id); err != nil {
		uc.logger.Warn("ProductUsecase: cache invalidation failed", "product_id", id, "error", err.Error())
	}
}

func (uc *ProductUsecase) publish(ctx context.Context, subject string, product *domain.Product) {
	event := productEvent{
		ProductID: product.ID,
		OwnerID:   product.OwnerID,
		Status:    string(product.Status),
	}
	if err := uc.publisher.Publish(ctx, subject, event); err != nil {
		uc.logger.Warn("ProductUsecase: event publish failed", "subject", subject, "product_id", product.ID, "error", err.Error())
	}
}

type productEvent struct {
	ProductID string `json:"product_id"`
	OwnerID   string `json:"owner_id"`
	Status    string `json:"status"`
}
