package service

import (
	"context"
	"strings"
	"time"

	"fulfillment-service/internal/dto"
	"fulfillment-service/internal/logger"
	"fulfillment-service/internal/metrics"
	"fulfillment-service/internal/model"
)

type ReturnRepository interface {
	Insert(ctx context.Context, r *model.ReturnRequest) error
	FindByID(ctx context.Context, id string) (*model.ReturnRequest, error)
	FindByUserID(ctx context.Context, userID string) ([]*model.ReturnRequest, error)
	FindAll(ctx context.Context, status model.ReturnStatus) ([]*model.ReturnRequest, error)
	Update(ctx context.Context, r *model.ReturnRequest) error
}

type ReturnService struct {
	repo ReturnRepository
	log  *logger.Logger
	now  func() time.Time
}

func NewReturnService(r ReturnRepository, log *logger.Logger) *ReturnService {
	if log == nil {
		log = logger.Nop()
	}
	return &ReturnService{
		repo: r,
		log:  log.With("component", "returns"),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Create registra una solicitud de devolución del usuario en estado pending.
func (s *ReturnService) Create(ctx context.Context, userID string, req dto.CreateReturnRequest) (*model.ReturnRequest, error) {
	r := model.NewReturnRequest(strings.TrimSpace(req.OrderID), userID, strings.TrimSpace(req.Reason))
	r.Description = strings.TrimSpace(req.Description)
	r.Images = req.Images
	for _, it := range req.Items {
		r.Items = append(r.Items, model.ReturnItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	if err := model.Validate(r); err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, r); err != nil {
		return nil, err
	}

	s.log.Info().Str("returnId", r.ID.Hex()).Str("orderId", r.OrderID).Msg("devolución solicitada")
	return r, nil
}

// GetByID sólo deja ver la devolución a su dueño o a un admin.
func (s *ReturnService) GetByID(ctx context.Context, id, actorID string, isAdmin bool) (*model.ReturnRequest, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && r.UserID != actorID {
		return nil, ErrForbidden
	}
	return r, nil
}

func (s *ReturnService) ListByUser(ctx context.Context, userID string) ([]*model.ReturnRequest, error) {
	return s.repo.FindByUserID(ctx, userID)
}

func (s *ReturnService) List(ctx context.Context, status string) ([]*model.ReturnRequest, error) {
	st := model.ReturnStatus(status)
	if st != "" && !st.Valid() {
		return nil, invalidStatus("status", status, model.ReturnStatuses())
	}
	return s.repo.FindAll(ctx, st)
}

// Process aplica la decisión de un admin. Cualquier estado válido se acepta
// desde cualquier otro; queda registrado quién y cuándo.
func (s *ReturnService) Process(ctx context.Context, id, adminID string, req dto.ProcessReturnRequest) (*model.ReturnRequest, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	prev := r.Status
	r.Process(model.ReturnStatus(req.Status), adminID, strings.TrimSpace(req.AdminNotes), s.now())
	if req.RefundAmount != nil {
		r.SetRefund(*req.RefundAmount, model.RefundMethod(req.RefundMethod))
	} else if req.RefundMethod != "" {
		r.RefundMethod = model.RefundMethod(req.RefundMethod)
	}

	if err := model.Validate(r); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}

	metrics.ReturnsProcessed.WithLabelValues(string(r.Status)).Inc()
	s.log.Info().
		Str("returnId", id).
		Str("from", string(prev)).
		Str("to", string(r.Status)).
		Str("processedBy", adminID).
		Msg("devolución procesada")
	return r, nil
}

// UpdateReturnShipping guarda los datos del envío de vuelta.
func (s *ReturnService) UpdateReturnShipping(ctx context.Context, id, actorID string, isAdmin bool, req dto.ReturnShippingDTO) (*model.ReturnRequest, error) {
	r, err := s.GetByID(ctx, id, actorID, isAdmin)
	if err != nil {
		return nil, err
	}

	rs := &model.ReturnShipping{
		Carrier:        strings.TrimSpace(req.Carrier),
		TrackingNumber: strings.TrimSpace(req.TrackingNumber),
	}
	if req.ShippedAt != nil {
		t := req.ShippedAt.UTC()
		rs.ShippedAt = &t
	}
	if req.ReceivedAt != nil {
		t := req.ReceivedAt.UTC()
		rs.ReceivedAt = &t
	}
	r.ReturnShipping = rs

	if err := model.Validate(r); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}
