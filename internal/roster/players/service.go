package players

import (
	"context"
	"fmt"

	"github.com/vestiaire-fc/vestiaire/internal/platform/httpx"
	"github.com/vestiaire-fc/vestiaire/internal/roster/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Player, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Player, error) {
	if id <= 0 {
		return Player{}, fmt.Errorf("%w: invalid player ID", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, p Player) (Player, error) {
	if err := s.validate(p); err != nil {
		return Player{}, err
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Update(ctx context.Context, id int64, p Player) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid player ID", httpx.ErrValidation)
	}
	if err := s.validate(p); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, p)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid player ID", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}
