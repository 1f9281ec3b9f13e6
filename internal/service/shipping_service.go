package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fulfillment-service/internal/dto"
	"fulfillment-service/internal/logger"
	"fulfillment-service/internal/metrics"
	"fulfillment-service/internal/model"
	"fulfillment-service/internal/repository"
)

// Interfaz que debe implementar repository
type ShippingRepository interface {
	Insert(ctx context.Context, r *model.ShippingRecord) error
	FindByOrderID(ctx context.Context, orderID string) (*model.ShippingRecord, error)
	FindAll(ctx context.Context, status model.ShippingStatus) ([]*model.ShippingRecord, error)
	// Update escribe lo indicado en u en una sola operación y deja en r lo guardado.
	Update(ctx context.Context, r *model.ShippingRecord, u repository.ShippingUpdate) error
}

// EventPublisher avisa a otros servicios de los cambios de estado. Puede ser nil.
type EventPublisher interface {
	PublishShippingStatus(ctx context.Context, ev dto.ShippingStatusEvent) error
}

type ShippingService struct {
	repo      ShippingRepository
	publisher EventPublisher
	log       *logger.Logger
	now       func() time.Time
}

func NewShippingService(r ShippingRepository, p EventPublisher, log *logger.Logger) *ShippingService {
	if log == nil {
		log = logger.Nop()
	}
	return &ShippingService{
		repo:      r,
		publisher: p,
		log:       log.With("component", "shipping"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func addressFromDTO(in dto.AddressDTO) model.ShippingAddress {
	return model.ShippingAddress{
		Name:    strings.TrimSpace(in.Name),
		Phone:   strings.TrimSpace(in.Phone),
		Street:  strings.TrimSpace(in.Street),
		City:    strings.TrimSpace(in.City),
		State:   strings.TrimSpace(in.State),
		ZipCode: strings.TrimSpace(in.ZipCode),
		Country: strings.TrimSpace(in.Country),
	}
}

func eventFromDTO(in *dto.TrackingEventDTO) *model.TrackingEvent {
	if in == nil {
		return nil
	}
	ev := &model.TrackingEvent{
		Status:      strings.TrimSpace(in.Status),
		Location:    strings.TrimSpace(in.Location),
		Description: strings.TrimSpace(in.Description),
	}
	if in.Timestamp != nil {
		ev.Timestamp = in.Timestamp.UTC()
	}
	return ev
}

// Create da de alta el envío de una orden en estado pending.
// Si ya existe uno para la orden devuelve repository.ErrDuplicate (lo resuelve el índice único).
func (s *ShippingService) Create(ctx context.Context, orderID string, address dto.AddressDTO) (*model.ShippingRecord, error) {
	rec := model.NewShippingRecord(strings.TrimSpace(orderID), addressFromDTO(address))
	if err := model.Validate(rec); err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, rec); err != nil {
		return nil, err
	}

	s.log.Info().Str("orderId", rec.OrderID).Msg("envío creado")
	return rec, nil
}

func (s *ShippingService) GetByOrderID(ctx context.Context, orderID string) (*model.ShippingRecord, error) {
	return s.repo.FindByOrderID(ctx, orderID)
}

// List filtra por estado si se indica uno.
func (s *ShippingService) List(ctx context.Context, status string) ([]*model.ShippingRecord, error) {
	st := model.ShippingStatus(status)
	if st != "" && !st.Valid() {
		return nil, invalidStatus("status", status, model.ShippingStatuses())
	}
	return s.repo.FindAll(ctx, st)
}

// UpdateStatus cambia el estado del envío de la orden y agrega el evento al historial.
func (s *ShippingService) UpdateStatus(ctx context.Context, orderID, status string, event *dto.TrackingEventDTO) (*model.ShippingRecord, error) {
	rec, err := s.repo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	prev := rec.Status
	entry := eventFromDTO(event)
	stamped := rec.UpdateStatus(model.ShippingStatus(status), entry, s.now())
	if err := model.Validate(rec); err != nil {
		return nil, err
	}

	u := repository.ShippingUpdate{Status: true, AutoDelivered: stamped}
	if entry != nil {
		u.Entry = lastEvent(rec)
	}
	if err := s.repo.Update(ctx, rec, u); err != nil {
		return nil, err
	}
	s.statusChanged(ctx, rec, prev, stamped)
	return rec, nil
}

// Update aplica una edición parcial en una sola escritura. Si cambia el estado
// pasa por model.UpdateStatus, así la fecha de entrega se fija igual que en UpdateStatus.
// Una fecha de entrega enviada explícitamente reemplaza la guardada.
func (s *ShippingService) Update(ctx context.Context, orderID string, req dto.UpdateShippingRequest) (*model.ShippingRecord, error) {
	rec, err := s.repo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if req.Carrier != nil {
		rec.Carrier = strings.TrimSpace(*req.Carrier)
	}
	if req.TrackingNumber != nil {
		rec.TrackingNumber = strings.TrimSpace(*req.TrackingNumber)
	}
	if req.EstimatedArrival != nil {
		eta := req.EstimatedArrival.UTC()
		rec.EstimatedArrival = &eta
	}
	if req.ActualDeliveryDate != nil {
		delivered := req.ActualDeliveryDate.UTC()
		rec.ActualDeliveryDate = &delivered
	}
	if req.Notes != nil {
		rec.Notes = *req.Notes
	}
	if req.ShippingAddress != nil {
		rec.ShippingAddress = addressFromDTO(*req.ShippingAddress)
	}

	prev := rec.Status
	statusChanged := req.Status != nil && model.ShippingStatus(*req.Status) != prev
	touchesStatus := statusChanged || req.Event != nil
	stamped := false
	if touchesStatus {
		next := prev
		if req.Status != nil {
			next = model.ShippingStatus(*req.Status)
		}
		stamped = rec.UpdateStatus(next, eventFromDTO(req.Event), s.now())
	}

	if err := model.Validate(rec); err != nil {
		return nil, err
	}

	u := repository.ShippingUpdate{
		Details:         true,
		Status:          touchesStatus,
		AutoDelivered:   stamped,
		ManualDelivered: req.ActualDeliveryDate != nil,
	}
	if req.Event != nil {
		u.Entry = lastEvent(rec)
	}
	if err := s.repo.Update(ctx, rec, u); err != nil {
		return nil, err
	}
	if touchesStatus {
		s.statusChanged(ctx, rec, prev, stamped)
	}
	return rec, nil
}

func lastEvent(rec *model.ShippingRecord) *model.TrackingEvent {
	last, ok := rec.LastEvent()
	if !ok {
		return nil
	}
	return &last
}

// statusChanged cuenta la transición ya persistida, la registra y la publica.
func (s *ShippingService) statusChanged(ctx context.Context, rec *model.ShippingRecord, prev model.ShippingStatus, stamped bool) {
	metrics.ShippingTransitions.WithLabelValues(string(rec.Status)).Inc()
	s.log.Info().
		Str("orderId", rec.OrderID).
		Str("from", string(prev)).
		Str("to", string(rec.Status)).
		Bool("deliveryStamped", stamped).
		Msg("estado de envío actualizado")

	if s.publisher == nil {
		return
	}
	ev := dto.ShippingStatusEvent{
		OrderID:            rec.OrderID,
		PreviousStatus:     string(prev),
		Status:             string(rec.Status),
		Carrier:            rec.Carrier,
		TrackingNumber:     rec.TrackingNumber,
		ActualDeliveryDate: rec.ActualDeliveryDate,
		OccurredAt:         s.now(),
	}
	// El cambio ya está persistido; un fallo al publicar sólo se registra.
	if err := s.publisher.PublishShippingStatus(ctx, ev); err != nil {
		s.log.Error().Err(err).Str("orderId", rec.OrderID).Msg("no se pudo publicar el cambio de estado")
	}
}

// invalidStatus arma el error de un filtro de estado desconocido, con los valores aceptados.
func invalidStatus[S ~string](field, value string, allowed []S) *model.ValidationError {
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	return &model.ValidationError{Violations: []model.FieldViolation{{
		Field:   field,
		Rule:    "oneof",
		Message: fmt.Sprintf("%s has unknown value %q (allowed: %s)", field, value, strings.Join(names, ", ")),
	}}}
}
