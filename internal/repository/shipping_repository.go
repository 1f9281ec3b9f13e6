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

type MongoShippingRepository struct {
	col *mongo.Collection
}

func NewMongoShippingRepository(db *mongo.Database) *MongoShippingRepository {
	return &MongoShippingRepository{col: db.Collection("shippinginfos")}
}

// EnsureIndexes crea el índice único sobre orderId: un envío por orden.
// Dos altas concurrentes para la misma orden se resuelven acá; la perdedora recibe ErrDuplicate.
func (m *MongoShippingRepository) EnsureIndexes(ctx context.Context) error {
	_, err := m.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "orderId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	return storageErr("shipping indexes", err)
}

func (m *MongoShippingRepository) Insert(ctx context.Context, r *model.ShippingRecord) error {
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	if r.TrackingHistory == nil {
		r.TrackingHistory = []model.TrackingEvent{}
	}

	res, err := m.col.InsertOne(ctx, r)
	if err != nil {
		return storageErr("insert shipping", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		r.ID = id
	}
	return nil
}

func (m *MongoShippingRepository) FindByOrderID(ctx context.Context, orderID string) (*model.ShippingRecord, error) {
	var res model.ShippingRecord
	if err := m.col.FindOne(ctx, bson.M{"orderId": orderID}).Decode(&res); err != nil {
		return nil, storageErr("find shipping", err)
	}
	return &res, nil
}

// FindAll lista envíos, opcionalmente filtrados por estado, más recientes primero.
func (m *MongoShippingRepository) FindAll(ctx context.Context, status model.ShippingStatus) ([]*model.ShippingRecord, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return findAll[model.ShippingRecord](ctx, m.col, "find shipping", filter, opts)
}

// ShippingUpdate indica qué partes del registro escribe Update.
type ShippingUpdate struct {
	// Details: carrier, trackingNumber, notes, shippingAddress, estimatedArrival.
	Details bool
	Status  bool
	Entry   *model.TrackingEvent
	// AutoDelivered: la fecha de entrega se fijó sola en esta llamada; sólo se
	// escribe si el documento todavía no tiene una (la primera entrega gana).
	AutoDelivered bool
	// ManualDelivered: la fecha vino en la edición y pisa la guardada.
	ManualDelivered bool
}

// Update escribe los cambios de r en una sola operación atómica y deja en r el
// documento tal como quedó guardado.
//
// Usa un pipeline de update: así el sellado condicional de actualDeliveryDate
// ($ifNull) va en la misma escritura que los demás campos. Los valores van en
// $literal para que un texto que empiece con "$" no se lea como campo.
func (m *MongoShippingRepository) Update(ctx context.Context, r *model.ShippingRecord, u ShippingUpdate) error {
	set := bson.D{{Key: "updatedAt", Value: literal(time.Now().UTC())}}

	if u.Details {
		set = append(set,
			bson.E{Key: "carrier", Value: literal(r.Carrier)},
			bson.E{Key: "trackingNumber", Value: literal(r.TrackingNumber)},
			bson.E{Key: "notes", Value: literal(r.Notes)},
			bson.E{Key: "shippingAddress", Value: literal(r.ShippingAddress)},
		)
		if r.EstimatedArrival != nil {
			set = append(set, bson.E{Key: "estimatedArrival", Value: literal(r.EstimatedArrival.UTC())})
		}
	}
	if u.Status {
		set = append(set, bson.E{Key: "status", Value: literal(r.Status)})
	}
	if u.Entry != nil {
		set = append(set, bson.E{Key: "trackingHistory", Value: bson.D{{Key: "$concatArrays", Value: bson.A{
			bson.D{{Key: "$ifNull", Value: bson.A{"$trackingHistory", bson.A{}}}},
			literal(bson.A{u.Entry}),
		}}}})
	}
	if r.ActualDeliveryDate != nil {
		delivered := r.ActualDeliveryDate.UTC()
		switch {
		case u.ManualDelivered:
			set = append(set, bson.E{Key: "actualDeliveryDate", Value: literal(delivered)})
		case u.AutoDelivered:
			set = append(set, bson.E{Key: "actualDeliveryDate", Value: bson.D{{Key: "$ifNull", Value: bson.A{
				"$actualDeliveryDate", literal(delivered),
			}}}})
		}
	}

	pipeline := mongo.Pipeline{{{Key: "$set", Value: set}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var saved model.ShippingRecord
	err := m.col.FindOneAndUpdate(ctx, bson.M{"orderId": r.OrderID}, pipeline, opts).Decode(&saved)
	if err != nil {
		return storageErr("update shipping", err)
	}
	*r = saved
	return nil
}

func literal(v any) bson.D {
	return bson.D{{Key: "$literal", Value: v}}
}
