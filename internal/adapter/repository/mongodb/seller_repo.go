package mongodb

import (
	"context"
	"errors"

	"github.com/Abdurahmanit/GroupProject/product-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/product-service/internal/product/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SellerRepository resolves owner ids to seller contact records kept in
// sync from the user-service.
type SellerRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewSellerRepository(db *mongo.Database, log *logger.Logger) *SellerRepository {
	return &SellerRepository{
		collection: db.Collection("sellers"),
		logger:     log,
	}
}

func (r *SellerRepository) FindByUserID(ctx context.Context, userID string) (*domain.Seller, error) {
	var doc sellerDocument
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSellerNotFound
		}
		r.logger.Error("SellerRepository.FindByUserID: query failed", "user_id", userID, "error", err.Error())
		return nil, err
	}
	return toDomainSeller(&doc), nil
}
