package model

import (
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ShippingStatus string

const (
	ShippingPending        ShippingStatus = "pending"
	ShippingProcessing     ShippingStatus = "processing"
	ShippingShipped        ShippingStatus = "shipped"
	ShippingInTransit      ShippingStatus = "in_transit"
	ShippingOutForDelivery ShippingStatus = "out_for_delivery"
	ShippingDelivered      ShippingStatus = "delivered"
	ShippingFailed         ShippingStatus = "failed"
	ShippingReturned       ShippingStatus = "returned"
)

var shippingStatuses = []ShippingStatus{
	ShippingPending, ShippingProcessing, ShippingShipped, ShippingInTransit,
	ShippingOutForDelivery, ShippingDelivered, ShippingFailed, ShippingReturned,
}

// ShippingStatuses devuelve los estados válidos en orden de ciclo de vida.
func ShippingStatuses() []ShippingStatus {
	return slices.Clone(shippingStatuses)
}

func (s ShippingStatus) Valid() bool {
	return slices.Contains(shippingStatuses, s)
}

type ShippingAddress struct {
	Name    string `bson:"name,omitempty" json:"name,omitempty" validate:"max=100"`
	Phone   string `bson:"phone,omitempty" json:"phone,omitempty" validate:"max=30"`
	Street  string `bson:"street,omitempty" json:"street,omitempty" validate:"max=200"`
	City    string `bson:"city,omitempty" json:"city,omitempty" validate:"max=100"`
	State   string `bson:"state,omitempty" json:"state,omitempty" validate:"max=100"`
	ZipCode string `bson:"zipCode,omitempty" json:"zipCode,omitempty" validate:"max=20"`
	Country string `bson:"country,omitempty" json:"country,omitempty" validate:"max=100"`
}

// TrackingEvent es una entrada del historial de seguimiento.
type TrackingEvent struct {
	Status      string    `bson:"status" json:"status" validate:"max=50"`
	Location    string    `bson:"location,omitempty" json:"location,omitempty" validate:"max=200"`
	Timestamp   time.Time `bson:"timestamp" json:"timestamp"`
	Description string    `bson:"description,omitempty" json:"description,omitempty" validate:"max=500"`
}

// ShippingRecord es el envío asociado a una orden (uno por orden).
type ShippingRecord struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID            string             `bson:"orderId" json:"orderId" validate:"required"`
	Carrier            string             `bson:"carrier,omitempty" json:"carrier,omitempty" validate:"max=100"`
	TrackingNumber     string             `bson:"trackingNumber,omitempty" json:"trackingNumber,omitempty" validate:"max=100"`
	Status             ShippingStatus     `bson:"status" json:"status" validate:"required,max=50,oneof=pending processing shipped in_transit out_for_delivery delivered failed returned"`
	EstimatedArrival   *time.Time         `bson:"estimatedArrival,omitempty" json:"estimatedArrival,omitempty"`
	ActualDeliveryDate *time.Time         `bson:"actualDeliveryDate,omitempty" json:"actualDeliveryDate,omitempty"`
	ShippingAddress    ShippingAddress    `bson:"shippingAddress" json:"shippingAddress"`
	TrackingHistory    []TrackingEvent    `bson:"trackingHistory" json:"trackingHistory" validate:"dive"`
	Notes              string             `bson:"notes,omitempty" json:"notes,omitempty" validate:"max=1000"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewShippingRecord crea un envío en estado pending y sin historial.
func NewShippingRecord(orderID string, address ShippingAddress) *ShippingRecord {
	return &ShippingRecord{
		OrderID:         orderID,
		Status:          ShippingPending,
		ShippingAddress: address,
		TrackingHistory: []TrackingEvent{},
	}
}

// UpdateStatus cambia el estado y, si se pasa, agrega la entrada al historial.
// La primera vez que el estado pasa a delivered se fija ActualDeliveryDate;
// después ya no se toca automáticamente. Devuelve true si se fijó en esta llamada.
//
// No hay grafo de transiciones: cualquier estado válido se acepta desde cualquier otro.
func (r *ShippingRecord) UpdateStatus(status ShippingStatus, entry *TrackingEvent, now time.Time) bool {
	r.Status = status

	stamped := false
	if status == ShippingDelivered && r.ActualDeliveryDate == nil {
		delivered := now
		r.ActualDeliveryDate = &delivered
		stamped = true
	}

	if entry != nil {
		r.AddTrackingEvent(*entry, now)
	}
	return stamped
}

// AddTrackingEvent agrega el evento al final del historial. Timestamp vacío = now.
func (r *ShippingRecord) AddTrackingEvent(ev TrackingEvent, now time.Time) TrackingEvent {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = now
	}
	if ev.Status == "" {
		ev.Status = string(r.Status)
	}
	r.TrackingHistory = append(r.TrackingHistory, ev)
	return ev
}

// LastEvent devuelve el último evento del historial, si lo hay.
func (r *ShippingRecord) LastEvent() (TrackingEvent, bool) {
	if len(r.TrackingHistory) == 0 {
		return TrackingEvent{}, false
	}
	return r.TrackingHistory[len(r.TrackingHistory)-1], true
}
