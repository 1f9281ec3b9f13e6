package service

import (
	"context"

	"fulfillment-service/internal/model"
)

type CategoryRepository interface {
	Insert(ctx context.Context, c *model.Category) error
	FindActive(ctx context.Context) ([]*model.Category, error)
	FindByID(ctx context.Context, id string) (*model.Category, error)
	Deactivate(ctx context.Context, id string) error
}

type CategoryService struct {
	repo CategoryRepository
}

func NewCategoryService(r CategoryRepository) *CategoryService {
	return &CategoryService{repo: r}
}

// ListActive devuelve sólo categorías activas, ordenadas por nombre.
func (s *CategoryService) ListActive(ctx context.Context) ([]*model.Category, error) {
	return s.repo.FindActive(ctx)
}

func (s *CategoryService) GetByID(ctx context.Context, id string) (*model.Category, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, name, description, image string) (*model.Category, error) {
	c := model.NewCategory(name, description, image)
	if err := model.Validate(c); err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) Deactivate(ctx context.Context, id string) error {
	return s.repo.Deactivate(ctx, id)
}
