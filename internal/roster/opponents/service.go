package opponents

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

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Opponent, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Opponent, error) {
	if id <= 0 {
		return Opponent{}, fmt.Errorf("%w: invalid opponent ID", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, o Opponent) (Opponent, error) {
	if strings.TrimSpace(o.Name) == "" {
		return Opponent{}, fmt.Errorf("%w: opponent name is required", httpx.ErrValidation)
	}
	return s.repo.Create(ctx, o)
}

func (s *Service) Update(ctx context.Context, id int64, o Opponent) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid opponent ID", httpx.ErrValidation)
	}
	if strings.TrimSpace(o.Name) == "" {
		return fmt.Errorf("%w: opponent name is required", httpx.ErrValidation)
	}
	return s.repo.Update(ctx, id, o)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid opponent ID", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}
