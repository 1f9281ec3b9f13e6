package repository

import (
	"context"
	"time"

	"fulfillment-service/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoReturnRepository struct {
	col *mongo.Collection
}

func NewMongoReturnRepository(db *mongo.Database) *MongoReturnRepository {
	return &MongoReturnRepository{col: db.Collection("returnrequests")}
}

func (m *MongoReturnRepository) EnsureIndexes(ctx context.Context) error {
	_, err := m.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "orderId", Value: 1}}},
	})
	return storageErr("return indexes", err)
}

func (m *MongoReturnRepository) Insert(ctx context.Context, r *model.ReturnRequest) error {
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now

	res, err := m.col.InsertOne(ctx, r)
	if err != nil {
		return storageErr("insert return", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		r.ID = id
	}
	return nil
}

func (m *MongoReturnRepository) FindByID(ctx context.Context, id string) (*model.ReturnRequest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var res model.ReturnRequest
	if err := m.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&res); err != nil {
		return nil, storageErr("find return", err)
	}
	return &res, nil
}

func (m *MongoReturnRepository) FindByUserID(ctx context.Context, userID string) ([]*model.ReturnRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return findAll[model.ReturnRequest](ctx, m.col, "find user returns", bson.M{"userId": userID}, opts)
}

func (m *MongoReturnRepository) FindAll(ctx context.Context, status model.ReturnStatus) ([]*model.ReturnRequest, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return findAll[model.ReturnRequest](ctx, m.col, "find returns", filter, opts)
}

// Update reemplaza el documento completo.
func (m *MongoReturnRepository) Update(ctx context.Context, r *model.ReturnRequest) error {
	r.UpdatedAt = time.Now().UTC()

	res, err := m.col.ReplaceOne(ctx, bson.M{"_id": r.ID}, r)
	if err != nil {
		return storageErr("update return", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
