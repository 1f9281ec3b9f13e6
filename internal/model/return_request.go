package model

import (
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReturnStatus string

const (
	ReturnPending    ReturnStatus = "pending"
	ReturnApproved   ReturnStatus = "approved"
	ReturnRejected   ReturnStatus = "rejected"
	ReturnProcessing ReturnStatus = "processing"
	ReturnCompleted  ReturnStatus = "completed"
	ReturnCancelled  ReturnStatus = "cancelled"
)

var returnStatuses = []ReturnStatus{
	ReturnPending, ReturnApproved, ReturnRejected, ReturnProcessing, ReturnCompleted, ReturnCancelled,
}

func ReturnStatuses() []ReturnStatus {
	return slices.Clone(returnStatuses)
}

func (s ReturnStatus) Valid() bool {
	return slices.Contains(returnStatuses, s)
}

type RefundMethod string

const (
	RefundOriginalPayment RefundMethod = "original_payment"
	RefundStoreCredit     RefundMethod = "store_credit"
	RefundBankTransfer    RefundMethod = "bank_transfer"
)

type ReturnItem struct {
	ProductID string `bson:"productId" json:"productId" validate:"required"`
	Quantity  int    `bson:"quantity" json:"quantity" validate:"min=1"`
}

// ReturnShipping es el envío de vuelta del cliente al almacén.
type ReturnShipping struct {
	Carrier        string     `bson:"carrier,omitempty" json:"carrier,omitempty" validate:"max=100"`
	TrackingNumber string     `bson:"trackingNumber,omitempty" json:"trackingNumber,omitempty" validate:"max=100"`
	ShippedAt      *time.Time `bson:"shippedAt,omitempty" json:"shippedAt,omitempty"`
	ReceivedAt     *time.Time `bson:"receivedAt,omitempty" json:"receivedAt,omitempty"`
}

type ReturnRequest struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID        string             `bson:"orderId" json:"orderId" validate:"required"`
	UserID         string             `bson:"userId" json:"userId" validate:"required"`
	Items          []ReturnItem       `bson:"items" json:"items" validate:"dive"`
	Reason         string             `bson:"reason" json:"reason" validate:"required,max=500"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty" validate:"max=2000"`
	Images         []string           `bson:"images,omitempty" json:"images,omitempty" validate:"max=10,dive,url"`
	Status         ReturnStatus       `bson:"status" json:"status" validate:"required,oneof=pending approved rejected processing completed cancelled"`
	RefundAmount   float64            `bson:"refundAmount" json:"refundAmount" validate:"gte=0"`
	RefundMethod   RefundMethod       `bson:"refundMethod,omitempty" json:"refundMethod,omitempty" validate:"omitempty,oneof=original_payment store_credit bank_transfer"`
	AdminNotes     string             `bson:"adminNotes,omitempty" json:"adminNotes,omitempty" validate:"max=1000"`
	ProcessedBy    string             `bson:"processedBy,omitempty" json:"processedBy,omitempty"`
	ProcessedAt    *time.Time         `bson:"processedAt,omitempty" json:"processedAt,omitempty"`
	ReturnShipping *ReturnShipping    `bson:"returnShipping,omitempty" json:"returnShipping,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func NewReturnRequest(orderID, userID, reason string) *ReturnRequest {
	return &ReturnRequest{
		OrderID: orderID,
		UserID:  userID,
		Reason:  reason,
		Status:  ReturnPending,
		Items:   []ReturnItem{},
	}
}

// Process registra la acción de un admin: cualquier estado válido, sin grafo de transiciones.
func (r *ReturnRequest) Process(status ReturnStatus, adminID, notes string, now time.Time) {
	r.Status = status
	r.ProcessedBy = adminID
	processed := now
	r.ProcessedAt = &processed
	if notes != "" {
		r.AdminNotes = notes
	}
}

// SetRefund fija los datos de reembolso; method vacío conserva el anterior.
func (r *ReturnRequest) SetRefund(amount float64, method RefundMethod) {
	r.RefundAmount = amount
	if method != "" {
		r.RefundMethod = method
	}
}
