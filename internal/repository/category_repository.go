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

type MongoCategoryRepository struct {
	col *mongo.Collection
}

func NewMongoCategoryRepository(db *mongo.Database) *MongoCategoryRepository {
	return &MongoCategoryRepository{col: db.Collection("categories")}
}

// EnsureIndexes crea el índice único sobre name.
func (m *MongoCategoryRepository) EnsureIndexes(ctx context.Context) error {
	_, err := m.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return storageErr("category indexes", err)
}

func (m *MongoCategoryRepository) Insert(ctx context.Context, c *model.Category) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	res, err := m.col.InsertOne(ctx, c)
	if err != nil {
		return storageErr("insert category", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = id
	}
	return nil
}

// FindActive devuelve las categorías activas ordenadas por nombre ascendente.
func (m *MongoCategoryRepository) FindActive(ctx context.Context) ([]*model.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return findAll[model.Category](ctx, m.col, "find active categories", bson.M{"isActive": true}, opts)
}

// FindByID trata un id mal formado igual que uno inexistente.
func (m *MongoCategoryRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var res model.Category
	if err := m.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&res); err != nil {
		return nil, storageErr("find category", err)
	}
	return &res, nil
}

func (m *MongoCategoryRepository) Deactivate(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	update := bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now().UTC()}}
	res, err := m.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return storageErr("deactivate category", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
