package model

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShippingRecord_PendingAndEmptyHistory(t *testing.T) {
	r := NewShippingRecord("order-1", ShippingAddress{City: "Mendoza"})

	assert.Equal(t, ShippingPending, r.Status)
	assert.Empty(t, r.TrackingHistory)
	assert.Nil(t, r.ActualDeliveryDate)
	assert.NoError(t, Validate(r))
}

func TestUpdateStatus_DeliveredStampsOnce(t *testing.T) {
	r := NewShippingRecord("order-1", ShippingAddress{})
	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	later := first.Add(48 * time.Hour)

	stamped := r.UpdateStatus(ShippingDelivered, nil, first)
	require.True(t, stamped)
	require.NotNil(t, r.ActualDeliveryDate)
	assert.Equal(t, first, *r.ActualDeliveryDate)

	// Volver a delivered no cambia la fecha ya fijada.
	stamped = r.UpdateStatus(ShippingDelivered, nil, later)
	assert.False(t, stamped)
	assert.Equal(t, first, *r.ActualDeliveryDate)

	// Salir y volver a entrar tampoco.
	r.UpdateStatus(ShippingReturned, nil, later)
	r.UpdateStatus(ShippingDelivered, nil, later)
	assert.Equal(t, first, *r.ActualDeliveryDate)
}

func TestUpdateStatus_ManualDeliveryDateIsKept(t *testing.T) {
	manual := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	r := NewShippingRecord("order-1", ShippingAddress{})
	r.ActualDeliveryDate = &manual

	assert.False(t, r.UpdateStatus(ShippingDelivered, nil, time.Now()))
	assert.Equal(t, manual, *r.ActualDeliveryDate)
}

func TestUpdateStatus_NonDeliveredDoesNotStamp(t *testing.T) {
	r := NewShippingRecord("order-1", ShippingAddress{})
	for _, s := range ShippingStatuses() {
		if s == ShippingDelivered {
			continue
		}
		r.UpdateStatus(s, nil, time.Now())
		assert.Nil(t, r.ActualDeliveryDate, "status %s", s)
	}
}

func TestUpdateStatus_AnyTransitionAccepted(t *testing.T) {
	r := NewShippingRecord("order-1", ShippingAddress{})
	now := time.Now()

	r.UpdateStatus(ShippingDelivered, nil, now)
	r.UpdateStatus(ShippingPending, nil, now)

	assert.Equal(t, ShippingPending, r.Status)
	assert.NoError(t, Validate(r))
}

func TestUpdateStatus_TrackingHistoryKeepsInsertionOrder(t *testing.T) {
	r := NewShippingRecord("order-1", ShippingAddress{})
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	e1 := TrackingEvent{Status: "shipped", Location: "Mendoza", Description: "salió del depósito"}
	e2 := TrackingEvent{Status: "in_transit", Location: "Córdoba", Timestamp: now.Add(-time.Hour)}

	r.UpdateStatus(ShippingShipped, &e1, now)
	r.UpdateStatus(ShippingInTransit, &e2, now.Add(time.Hour))

	require.Len(t, r.TrackingHistory, 2)
	assert.Equal(t, "Mendoza", r.TrackingHistory[0].Location)
	assert.Equal(t, now, r.TrackingHistory[0].Timestamp, "timestamp vacío toma now")
	assert.Equal(t, "Córdoba", r.TrackingHistory[1].Location)
	assert.Equal(t, now.Add(-time.Hour), r.TrackingHistory[1].Timestamp, "timestamp explícito se respeta")

	last, ok := r.LastEvent()
	require.True(t, ok)
	assert.Equal(t, "in_transit", last.Status)
}

func TestAddTrackingEvent_DefaultsStatusToCurrent(t *testing.T) {
	r := NewShippingRecord("order-1", ShippingAddress{})
	r.UpdateStatus(ShippingOutForDelivery, &TrackingEvent{Location: "Mendoza"}, time.Now())

	require.Len(t, r.TrackingHistory, 1)
	assert.Equal(t, "out_for_delivery", r.TrackingHistory[0].Status)
}

func TestValidate_ShippingRecordViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *ShippingRecord)
		field  string
		rule   string
	}{
		{"carrier demasiado largo", func(r *ShippingRecord) { r.Carrier = strings.Repeat("x", 101) }, "carrier", "max"},
		{"tracking demasiado largo", func(r *ShippingRecord) { r.TrackingNumber = strings.Repeat("9", 101) }, "trackingNumber", "max"},
		{"orderId faltante", func(r *ShippingRecord) { r.OrderID = "" }, "orderId", "required"},
		{"estado fuera del enum", func(r *ShippingRecord) { r.Status = "lost" }, "status", "oneof"},
		{"evento con location larga", func(r *ShippingRecord) {
			r.TrackingHistory = append(r.TrackingHistory, TrackingEvent{Location: strings.Repeat("x", 201)})
		}, "trackingHistory[0].location", "max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewShippingRecord("order-1", ShippingAddress{})
			tt.mutate(r)

			err := Validate(r)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "esperaba ValidationError, got %v", err)
			require.NotEmpty(t, verr.Violations)
			assert.Equal(t, tt.field, verr.Violations[0].Field)
			assert.Equal(t, tt.rule, verr.Violations[0].Rule)
		})
	}
}

func TestValidate_CarrierAtLimitIsAccepted(t *testing.T) {
	r := NewShippingRecord("order-1", ShippingAddress{})
	r.Carrier = strings.Repeat("x", 100)
	assert.NoError(t, Validate(r))
}

func TestValidate_CollectsEveryViolation(t *testing.T) {
	r := &ShippingRecord{Carrier: strings.Repeat("x", 101), Status: "unknown"}

	err := Validate(r)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	fields := make([]string, 0, len(verr.Violations))
	for _, v := range verr.Violations {
		fields = append(fields, v.Field)
	}
	assert.ElementsMatch(t, []string{"orderId", "carrier", "status"}, fields)
	assert.Contains(t, verr.Error(), "carrier must be at most 100 characters")
}

func TestShippingStatus_Valid(t *testing.T) {
	assert.True(t, ShippingInTransit.Valid())
	assert.False(t, ShippingStatus("lost").Valid())
	assert.Len(t, ShippingStatuses(), 8)
}
