package mongodb

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/product-service/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// OrderDetailsRepository reads the order lines the order-service writes,
// only for the per-product sales aggregate.
type OrderDetailsRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewOrderDetailsRepository(db *mongo.Database, log *logger.Logger) *OrderDetailsRepository {
	return &OrderDetailsRepository{
		collection: db.Collection("order_details"),
		logger:     log,
	}
}

func (r *OrderDetailsRepository) SalesByProductID(ctx context.Context, productID string) (int64, float64, int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"product_id": productID}}},
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"units":   bson.M{"$sum": "$quantity"},
			"revenue": bson.M{"$sum": bson.M{"$multiply": bson.A{"$quantity", "$unit_price"}}},
			"orders":  bson.M{"$addToSet": "$order_id"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		r.logger.Error("OrderDetailsRepository.SalesByProductID: aggregate failed", "product_id", productID, "error", err.Error())
		return 0, 0, 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Units   int64    `bson:"units"`
		Revenue float64  `bson:"revenue"`
		Orders  []string `bson:"orders"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		r.logger.Error("OrderDetailsRepository.SalesByProductID: cursor decode failed", "product_id", productID, "error", err.Error())
		return 0, 0, 0, err
	}
	if len(results) == 0 {
		return 0, 0, 0, nil
	}
	return results[0].Units, results[0].Revenue, int64(len(results[0].Orders)), nil
}
