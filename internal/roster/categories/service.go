package categories

import (
	"context"
	"fmt"

	"github.com/vestiaire-fc/vestiaire/internal/platform/httpx"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Category, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Category, error) {
	if id <= 0 {
		return Category{}, fmt.Errorf("%w: invalid category ID", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, c Category) (Category, error) {
	if err := validate(c); err != nil {
		return Category{}, err
	}
	return s.repo.Create(ctx, c)
}

func (s *Service) Update(ctx context.Context, id int64, c Category) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid category ID", httpx.ErrValidation)
	}
	if err := validate(c); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, c)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid category ID", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}
