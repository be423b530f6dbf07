package standings

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads completed championship matches for standings.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListChampionshipMatches returns every championship match of one category,
// played or not. The engine decides what counts.
func (r *Repository) ListChampionshipMatches(ctx context.Context, category string) ([]MatchResult, error) {
	rows, err := r.pool.Query(ctx, `SELECT home_team, away_team, home_score, away_score FROM matches WHERE category = $1 AND kind = 'CHAMPIONSHIP' ORDER BY kickoff_at`, category)
	if err != nil {
		return nil, fmt.Errorf("standings: list matches: %w", err)
	}
	defer rows.Close()
	var matches []MatchResult
	for rows.Next() {
		var m MatchResult
		if err := rows.Scan(&m.HomeTeam, &m.AwayTeam, &m.HomeScore, &m.AwayScore); err != nil {
			return nil, fmt.Errorf("standings: scan match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// ListCategories returns the category names with at least one championship
// match, for cache warmup.
func (r *Repository) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT category FROM matches WHERE kind = 'CHAMPIONSHIP' ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("standings: list categories: %w", err)
	}
	defer rows.Close()
	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("standings: scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
