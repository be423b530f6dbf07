package coaches

import (
	"context"
	"fmt"
	"strings"

	"github.com/vestiaire-fc/vestiaire/internal/platform/httpx"
	"github.com/vestiaire-fc/vestiaire/internal/roster/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Coach, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Coach, error) {
	if id <= 0 {
		return Coach{}, fmt.Errorf("%w: invalid coach ID", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, c Coach) (Coach, error) {
	if err := validate(c); err != nil {
		return Coach{}, err
	}
	return s.repo.Create(ctx, c)
}

func (s *Service) Update(ctx context.Context, id int64, c Coach) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid coach ID", httpx.ErrValidation)
	}
	if err := validate(c); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, c)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid coach ID", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}

func validate(c Coach) error {
	if strings.TrimSpace(c.FullName) == "" {
		return fmt.Errorf("%w: coach name is required", httpx.ErrValidation)
	}
	if strings.TrimSpace(c.Category) == "" {
		return fmt.Errorf("%w: coach category is required", httpx.ErrValidation)
	}
	return nil
}
