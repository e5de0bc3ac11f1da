package mongodb

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/product-service/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CategoryRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewCategoryRepository(db *mongo.Database, log *logger.Logger) *CategoryRepository {
	return &CategoryRepository{
		collection: db.Collection("categories"),
		logger:     log,
	}
}

func (r *CategoryRepository) Exists(ctx context.Context, id string) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": objID})
	if err != nil {
		r.logger.Error("CategoryRepository.Exists: query failed", "category_id", id, "error", err.Error())
		return false, err
	}
	return count > 0, nil
}
