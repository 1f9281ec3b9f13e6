package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"fulfillment-service/internal/dto"
	"fulfillment-service/internal/model"
	"fulfillment-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeShippingRepo imita el comportamiento del repositorio Mongo en memoria,
// incluido el índice único sobre orderId.
type fakeShippingRepo struct {
	mu      sync.Mutex
	byOrder map[string]*model.ShippingRecord
	err     error
	writes  int
	// stale, si está, es lo que devuelve FindByOrderID: simula una lectura
	// hecha antes de que otra request escribiera.
	stale map[string]*model.ShippingRecord
}

func newFakeShippingRepo() *fakeShippingRepo {
	return &fakeShippingRepo{byOrder: map[string]*model.ShippingRecord{}}
}

func (f *fakeShippingRepo) Insert(_ context.Context, r *model.ShippingRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byOrder[r.OrderID]; ok {
		return repository.ErrDuplicate
	}
	r.ID = primitive.NewObjectID()
	cp := clone(r)
	f.byOrder[r.OrderID] = cp
	f.writes++
	return nil
}

func (f *fakeShippingRepo) FindByOrderID(_ context.Context, orderID string) (*model.ShippingRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if r, ok := f.stale[orderID]; ok {
		return clone(r), nil
	}
	r, ok := f.byOrder[orderID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(r), nil
}

func (f *fakeShippingRepo) FindAll(_ context.Context, status model.ShippingStatus) ([]*model.ShippingRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*model.ShippingRecord{}
	for _, r := range f.byOrder {
		if status == "" || r.Status == status {
			out = append(out, clone(r))
		}
	}
	return out, nil
}

// snapshot guarda una copia del estado actual para que la devuelvan las lecturas siguientes.
func (f *fakeShippingRepo) snapshot(orderID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stale == nil {
		f.stale = map[string]*model.ShippingRecord{}
	}
	f.stale[orderID] = clone(f.byOrder[orderID])
}

// Update sigue la semántica del pipeline de Mongo: la fecha automática sólo
// se escribe si no había una, la manual siempre.
func (f *fakeShippingRepo) Update(_ context.Context, rec *model.ShippingRecord, u repository.ShippingUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	r, ok := f.byOrder[rec.OrderID]
	if !ok {
		return repository.ErrNotFound
	}
	if u.Details {
		r.Carrier = rec.Carrier
		r.TrackingNumber = rec.TrackingNumber
		r.Notes = rec.Notes
		r.ShippingAddress = rec.ShippingAddress
		if rec.EstimatedArrival != nil {
			eta := *rec.EstimatedArrival
			r.EstimatedArrival = &eta
		}
	}
	if u.Status {
		r.Status = rec.Status
	}
	if u.Entry != nil {
		r.TrackingHistory = append(r.TrackingHistory, *u.Entry)
	}
	if rec.ActualDeliveryDate != nil {
		d := *rec.ActualDeliveryDate
		switch {
		case u.ManualDelivered:
			r.ActualDeliveryDate = &d
		case u.AutoDelivered && r.ActualDeliveryDate == nil:
			r.ActualDeliveryDate = &d
		}
	}
	f.writes++
	*rec = *clone(r)
	return nil
}

func clone(r *model.ShippingRecord) *model.ShippingRecord {
	cp := *r
	cp.TrackingHistory = append([]model.TrackingEvent{}, r.TrackingHistory...)
	return &cp
}

type fakePublisher struct {
	events []dto.ShippingStatusEvent
	err    error
}

func (p *fakePublisher) PublishShippingStatus(_ context.Context, ev dto.ShippingStatusEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

type fakeCategoryRepo struct {
	items []*model.Category
	err   error
}

func (f *fakeCategoryRepo) Insert(_ context.Context, c *model.Category) error {
	if f.err != nil {
		return f.err
	}
	for _, it := range f.items {
		if it.Name == c.Name {
			return repository.ErrDuplicate
		}
	}
	c.ID = primitive.NewObjectID()
	f.items = append(f.items, c)
	return nil
}

func (f *fakeCategoryRepo) FindActive(_ context.Context) ([]*model.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []*model.Category{}
	for _, c := range f.items {
		if c.IsActive {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeCategoryRepo) FindByID(_ context.Context, id string) (*model.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, c := range f.items {
		if c.ID.Hex() == id {
			return c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCategoryRepo) Deactivate(_ context.Context, id string) error {
	c, err := f.FindByID(context.Background(), id)
	if err != nil {
		return err
	}
	c.IsActive = false
	return nil
}

type fakeReturnRepo struct {
	items map[string]*model.ReturnRequest
}

func newFakeReturnRepo() *fakeReturnRepo {
	return &fakeReturnRepo{items: map[string]*model.ReturnRequest{}}
}

func (f *fakeReturnRepo) Insert(_ context.Context, r *model.ReturnRequest) error {
	r.ID = primitive.NewObjectID()
	cp := *r
	f.items[r.ID.Hex()] = &cp
	return nil
}

func (f *fakeReturnRepo) FindByID(_ context.Context, id string) (*model.ReturnRequest, error) {
	r, ok := f.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReturnRepo) FindByUserID(_ context.Context, userID string) ([]*model.ReturnRequest, error) {
	out := []*model.ReturnRequest{}
	for _, r := range f.items {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReturnRepo) FindAll(_ context.Context, status model.ReturnStatus) ([]*model.ReturnRequest, error) {
	out := []*model.ReturnRequest{}
	for _, r := range f.items {
		if status == "" || r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReturnRepo) Update(_ context.Context, r *model.ReturnRequest) error {
	if _, ok := f.items[r.ID.Hex()]; !ok {
		return repository.ErrNotFound
	}
	cp := *r
	f.items[r.ID.Hex()] = &cp
	return nil
}

var errBoom = errors.New("boom")
