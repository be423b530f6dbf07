package standings

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/vestiaire-fc/vestiaire/internal/platform/httpx"
)

// RepositoryPort defines data access for the standings service.
type RepositoryPort interface {
	ListChampionshipMatches(ctx context.Context, category string) ([]MatchResult, error)
	ListCategories(ctx context.Context) ([]string, error)
}

// Service computes and caches league tables.
type Service struct {
	repo     RepositoryPort
	cache    *Cache
	logger   *slog.Logger
	clubName string
	group    singleflight.Group
}

// NewService builds a Service instance. cache may be nil, in which case every
// read recomputes.
func NewService(repo RepositoryPort, cache *Cache, logger *slog.Logger, clubName string) *Service {
	return &Service{repo: repo, cache: cache, logger: logger, clubName: clubName}
}

// Table returns the ranked table for one category. Concurrent requests for
// the same category share a single rebuild.
func (s *Service) Table(ctx context.Context, category string) (Table, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return Table{}, fmt.Errorf("%w: category is required", httpx.ErrValidation)
	}

	loader := func(ctx context.Context) (interface{}, error) {
		matches, err := s.repo.ListChampionshipMatches(ctx, category)
		if err != nil {
			return nil, err
		}
		rows, skipped := Compute(s.clubName, matches)
		if skipped > 0 {
			s.logger.Debug("standings skipped matches",
				slog.String("category", category), slog.Int("skipped", skipped))
		}
		return Table{Category: category, Rows: rows, SkippedMatches: skipped}, nil
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return Table{}, err
		}
		return value.(Table), nil
	}

	key, err := s.cache.BuildKey(ctx, category)
	if err != nil {
		return Table{}, err
	}

	value, err, _ := s.group.Do(key, func() (interface{}, error) {
		var table Table
		if err := s.cache.FetchJSON(ctx, key, &table, loader); err != nil {
			return Table{}, err
		}
		return table, nil
	})
	if err != nil {
		return Table{}, err
	}
	return value.(Table), nil
}

// Invalidate retires every cached table. Called after a result is entered.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Invalidate(ctx)
}

// WarmUp precomputes and caches tables for every known category.
func (s *Service) WarmUp(ctx context.Context) error {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return err
	}
	for _, category := range categories {
		if _, err := s.Table(ctx, category); err != nil {
			return fmt.Errorf("standings: warm up %s: %w", category, err)
		}
	}
	return nil
}
