package matches

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vestiaire-fc/vestiaire/internal/platform/httpx"
)

// Repository provides PostgreSQL backed persistence for matches.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const matchColumns = `id, category, kind, opponent_id, home_team, away_team, home_score, away_score, location, kickoff_at, created_at, updated_at`

// ListFilter narrows match listings.
type ListFilter struct {
	Category string
	Kind     MatchKind
}

// List returns matches ordered by kickoff, optionally filtered.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE 1=1`
	args := []interface{}{}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Kind != "" {
		args = append(args, filter.Kind)
		query += fmt.Sprintf(" AND kind = $%d", len(args))
	}
	query += " ORDER BY kickoff_at"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("matches: list: %w", err)
	}
	defer rows.Close()
	var out []Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Get fetches a single match.
func (r *Repository) Get(ctx context.Context, id int64) (*Match, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1`, id)
	m, err := scanMatch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, fmt.Errorf("matches: get: %w", err)
	}
	return &m, nil
}

// Create inserts a match.
func (r *Repository) Create(ctx context.Context, m Match) (*Match, error) {
	err := r.pool.QueryRow(ctx, `INSERT INTO matches (category, kind, opponent_id, home_team, away_team, home_score, away_score, location, kickoff_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`,
		m.Category, m.Kind, m.OpponentID, m.HomeTeam, m.AwayTeam, m.HomeScore, m.AwayScore, m.Location, m.KickoffAt, m.CreatedAt, m.UpdatedAt).Scan(&m.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, fmt.Errorf("%w: unknown opponent", httpx.ErrValidation)
		}
		return nil, fmt.Errorf("matches: create: %w", err)
	}
	return &m, nil
}

// Update replaces the editable fields of a match.
func (r *Repository) Update(ctx context.Context, m Match) error {
	tag, err := r.pool.Exec(ctx, `UPDATE matches SET category = $1, kind = $2, opponent_id = $3, home_team = $4, away_team = $5, location = $6, kickoff_at = $7, updated_at = $8 WHERE id = $9`,
		m.Category, m.Kind, m.OpponentID, m.HomeTeam, m.AwayTeam, m.Location, m.KickoffAt, time.Now(), m.ID)
	if err != nil {
		return fmt.Errorf("matches: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// SetResult stores both scores of a played match.
func (r *Repository) SetResult(ctx context.Context, id int64, homeScore, awayScore int) error {
	tag, err := r.pool.Exec(ctx, `UPDATE matches SET home_score = $1, away_score = $2, updated_at = $3 WHERE id = $4`,
		homeScore, awayScore, time.Now(), id)
	if err != nil {
		return fmt.Errorf("matches: set result: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// Delete removes a match and its contributions.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("matches: begin delete: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM match_contributions WHERE match_id = $1`, id); err != nil {
		return fmt.Errorf("matches: delete contributions: %w", err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("matches: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return tx.Commit(ctx)
}

// AddContribution appends a scorer/assister line to a match.
func (r *Repository) AddContribution(ctx context.Context, c Contribution) (*Contribution, error) {
	err := r.pool.QueryRow(ctx, `INSERT INTO match_contributions (match_id, player_id, name, side, goals, assists)
VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		c.MatchID, c.PlayerID, c.Name, c.Side, c.Goals, c.Assists).Scan(&c.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, httpx.ErrNotFound
		}
		return nil, fmt.Errorf("matches: add contribution: %w", err)
	}
	return &c, nil
}

// ListContributions returns every contribution line of a match.
func (r *Repository) ListContributions(ctx context.Context, matchID int64) ([]Contribution, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, match_id, player_id, name, side, goals, assists FROM match_contributions WHERE match_id = $1 ORDER BY id`, matchID)
	if err != nil {
		return nil, fmt.Errorf("matches: list contributions: %w", err)
	}
	defer rows.Close()
	var out []Contribution
	for rows.Next() {
		var c Contribution
		if err := rows.Scan(&c.ID, &c.MatchID, &c.PlayerID, &c.Name, &c.Side, &c.Goals, &c.Assists); err != nil {
			return nil, fmt.Errorf("matches: scan contribution: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanMatch(row pgx.Row) (Match, error) {
	var m Match
	err := row.Scan(&m.ID, &m.Category, &m.Kind, &m.OpponentID, &m.HomeTeam, &m.AwayTeam, &m.HomeScore, &m.AwayScore, &m.Location, &m.KickoffAt, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}
