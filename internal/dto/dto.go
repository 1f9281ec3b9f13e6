// dto.go
package dto

import "time"

// AddressDTO dirección de entrega tal como llega por la API o por Rabbit.
type AddressDTO struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type TrackingEventDTO struct {
	Status      string     `json:"status"`
	Location    string     `json:"location"`
	Timestamp   *time.Time `json:"timestamp"`
	Description string     `json:"description"`
}

type CreateShippingRequest struct {
	OrderID         string     `json:"orderId" binding:"required"`
	ShippingAddress AddressDTO `json:"shippingAddress"`
}

type UpdateShippingStatusRequest struct {
	Status string            `json:"status" binding:"required"`
	Event  *TrackingEventDTO `json:"event"`
}

// UpdateShippingRequest edición parcial; sólo se aplican los campos presentes.
type UpdateShippingRequest struct {
	Carrier            *string           `json:"carrier"`
	TrackingNumber     *string           `json:"trackingNumber"`
	EstimatedArrival   *time.Time        `json:"estimatedArrival"`
	ActualDeliveryDate *time.Time        `json:"actualDeliveryDate"`
	Notes              *string           `json:"notes"`
	ShippingAddress    *AddressDTO       `json:"shippingAddress"`
	Status             *string           `json:"status"`
	Event              *TrackingEventDTO `json:"event"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type ReturnItemDTO struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type CreateReturnRequest struct {
	OrderID     string          `json:"orderId" binding:"required"`
	Items       []ReturnItemDTO `json:"items" binding:"dive"`
	Reason      string          `json:"reason" binding:"required"`
	Description string          `json:"description"`
	Images      []string        `json:"images"`
}

type ProcessReturnRequest struct {
	Status       string   `json:"status" binding:"required"`
	RefundAmount *float64 `json:"refundAmount"`
	RefundMethod string   `json:"refundMethod"`
	AdminNotes   string   `json:"adminNotes"`
}

type ReturnShippingDTO struct {
	Carrier        string     `json:"carrier"`
	TrackingNumber string     `json:"trackingNumber"`
	ShippedAt      *time.Time `json:"shippedAt"`
	ReceivedAt     *time.Time `json:"receivedAt"`
}

// ShippingStatusEvent se publica en el exchange shipping_status_changed.
type ShippingStatusEvent struct {
	OrderID            string     `json:"orderId"`
	PreviousStatus     string     `json:"previousStatus"`
	Status             string     `json:"status"`
	Carrier            string     `json:"carrier,omitempty"`
	TrackingNumber     string     `json:"trackingNumber,omitempty"`
	ActualDeliveryDate *time.Time `json:"actualDeliveryDate,omitempty"`
	OccurredAt         time.Time  `json:"occurredAt"`
}
