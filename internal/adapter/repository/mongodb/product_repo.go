package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/Abdurahmanit/GroupProject/product-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/product-service/internal/product/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewProductRepository(db *mongo.Database, log *logger.Logger) *ProductRepository {
	return &ProductRepository{
		collection: db.Collection("products"),
		logger:     log,
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	doc, err := toProductDocument(product)
	if err != nil {
		return err
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		r.logger.Error("ProductRepository.Create: insert failed", "owner_id", product.OwnerID, "error", err.Error())
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid.Hex()
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	doc, err := toProductDocument(product)
	if err != nil {
		return err
	}

	// The whole document is replaced under one filter, so concurrent
	// writers resolve to last write wins at the document level.
	update := bson.M{"$set": bson.M{
		"owner_id":         doc.OwnerID,
		"category_id":      doc.CategoryID,
		"name":             doc.Name,
		"description":      doc.Description,
		"price":            doc.Price,
		"stock":            doc.Stock,
		"status":           doc.Status,
		"rejection_reason": doc.RejectionReason,
		"image_urls":       doc.ImageURLs,
		"updated_at":       doc.UpdatedAt,
	}}
	result, err := r.collection.UpdateByID(ctx, doc.ID, update)
	if err != nil {
		r.logger.Error("ProductRepository.Update: update failed", "product_id", product.ID, "error", err.Error())
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProductNotFound
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		r.logger.Error("ProductRepository.Delete: delete failed", "product_id", id, "error", err.Error())
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	var doc productDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		r.logger.Error("ProductRepository.FindByID: query failed", "product_id", id, "error", err.Error())
		return nil, err
	}
	return toDomainProduct(&doc), nil
}

func (r *ProductRepository) FindByFilter(ctx context.Context, filter domain.Filter) ([]*domain.Product, error) {
	query := bson.M{}
	if filter.OwnerID != "" {
		query["owner_id"] = filter.OwnerID
	}
	if filter.CategoryID != "" {
		query["category_id"] = filter.CategoryID
	}
	if len(filter.Statuses) > 0 {
		query["status"] = bson.M{"$in": filter.Statuses}
	}
	if filter.Query != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Query), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"description": pattern},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		r.logger.Error("ProductRepository.FindByFilter: query failed", "filter", fmt.Sprintf("%+v", filter), "error", err.Error())
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []*productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("ProductRepository.FindByFilter: cursor decode failed", "error", err.Error())
		return nil, err
	}
	return toDomainProducts(docs), nil
}

// EnsureIndexes creates the indexes the query paths depend on. Safe to call
// on every startup.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "category_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	return err
}
