package service

import (
	"context"
	"testing"
	"time"

	"fulfillment-service/internal/dto"
	"fulfillment-service/internal/model"
	"fulfillment-service/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReturnService(now time.Time) (*ReturnService, *fakeReturnRepo) {
	repo := newFakeReturnRepo()
	svc := NewReturnService(repo, nil)
	svc.now = func() time.Time { return now }
	return svc, repo
}

func validReturn() dto.CreateReturnRequest {
	return dto.CreateReturnRequest{
		OrderID: "order-1",
		Reason:  "talle incorrecto",
		Items:   []dto.ReturnItemDTO{{ProductID: "p-1", Quantity: 1}},
		Images:  []string{"https://cdn.example.com/r/1.jpg"},
	}
}

func TestReturnService_Create(t *testing.T) {
	svc, _ := newTestReturnService(time.Now())

	r, err := svc.Create(context.Background(), "user-1", validReturn())
	require.NoError(t, err)
	assert.Equal(t, model.ReturnPending, r.Status)
	assert.Equal(t, "user-1", r.UserID)
	assert.Len(t, r.Items, 1)

	bad := validReturn()
	bad.Reason = ""
	_, err = svc.Create(context.Background(), "user-1", bad)
	var verr *model.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestReturnService_GetByID_Ownership(t *testing.T) {
	svc, _ := newTestReturnService(time.Now())
	ctx := context.Background()
	r, err := svc.Create(ctx, "user-1", validReturn())
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, r.ID.Hex(), "user-1", false)
	assert.NoError(t, err)

	_, err = svc.GetByID(ctx, r.ID.Hex(), "user-2", false)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.GetByID(ctx, r.ID.Hex(), "admin-1", true)
	assert.NoError(t, err)

	_, err = svc.GetByID(ctx, "missing", "user-1", false)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestReturnService_Process(t *testing.T) {
	now := time.Date(2026, 6, 1, 15, 0, 0, 0, time.UTC)
	svc, repo := newTestReturnService(now)
	ctx := context.Background()
	r, err := svc.Create(ctx, "user-1", validReturn())
	require.NoError(t, err)

	amount := 1500.0
	got, err := svc.Process(ctx, r.ID.Hex(), "admin-1", dto.ProcessReturnRequest{
		Status:       "approved",
		RefundAmount: &amount,
		RefundMethod: "store_credit",
		AdminNotes:   "ok",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ReturnApproved, got.Status)
	assert.Equal(t, "admin-1", got.ProcessedBy)
	require.NotNil(t, got.ProcessedAt)
	assert.Equal(t, now, *got.ProcessedAt)

	stored, _ := repo.FindByID(ctx, r.ID.Hex())
	assert.Equal(t, 1500.0, stored.RefundAmount)
	assert.Equal(t, model.RefundStoreCredit, stored.RefundMethod)

	_, err = svc.Process(ctx, r.ID.Hex(), "admin-1", dto.ProcessReturnRequest{Status: "shipped"})
	var verr *model.ValidationError
	assert.ErrorAs(t, err, &verr)

	stored, _ = repo.FindByID(ctx, r.ID.Hex())
	assert.Equal(t, model.ReturnApproved, stored.Status, "un estado inválido no se persiste")
}

func TestReturnService_UpdateReturnShipping(t *testing.T) {
	svc, repo := newTestReturnService(time.Now())
	ctx := context.Background()
	r, err := svc.Create(ctx, "user-1", validReturn())
	require.NoError(t, err)

	shipped := time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)
	_, err = svc.UpdateReturnShipping(ctx, r.ID.Hex(), "user-1", false, dto.ReturnShippingDTO{
		Carrier: "Correo Argentino", TrackingNumber: "CA1", ShippedAt: &shipped,
	})
	require.NoError(t, err)

	stored, _ := repo.FindByID(ctx, r.ID.Hex())
	require.NotNil(t, stored.ReturnShipping)
	assert.Equal(t, "CA1", stored.ReturnShipping.TrackingNumber)
	assert.Equal(t, shipped, *stored.ReturnShipping.ShippedAt)

	_, err = svc.UpdateReturnShipping(ctx, r.ID.Hex(), "user-2", false, dto.ReturnShippingDTO{})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestReturnService_List(t *testing.T) {
	svc, _ := newTestReturnService(time.Now())
	ctx := context.Background()
	_, err := svc.Create(ctx, "user-1", validReturn())
	require.NoError(t, err)
	_, err = svc.Create(ctx, "user-2", validReturn())
	require.NoError(t, err)

	mine, err := svc.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	pending, err := svc.List(ctx, "pending")
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	_, err = svc.List(ctx, "shipped")
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Violations[0].Message, "allowed: pending, approved, rejected, processing, completed, cancelled")
}
