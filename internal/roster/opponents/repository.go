package opponents

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vestiaire-fc/vestiaire/internal/platform/httpx"
	"github.com/vestiaire-fc/vestiaire/internal/roster/shared"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Opponent, int, error)
	Get(ctx context.Context, id int64) (Opponent, error)
	Create(ctx context.Context, o Opponent) (Opponent, error)
	Update(ctx context.Context, id int64, o Opponent) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Opponent, int, error) {
	query := `SELECT id, name, city, stadium, contact FROM opponents WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM opponents WHERE 1=1`
	args := []interface{}{}

	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		clause := ` AND (name ILIKE $1 OR city ILIKE $1)`
		query += clause
		countQuery += clause
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("opponents: count: %w", err)
	}

	query += ` ORDER BY name ASC`
	if filters.Limit > 0 {
		args = append(args, filters.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
		args = append(args, filters.Offset())
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("opponents: list: %w", err)
	}
	defer rows.Close()

	var out []Opponent
	for rows.Next() {
		var o Opponent
		if err := rows.Scan(&o.ID, &o.Name, &o.City, &o.Stadium, &o.Contact); err != nil {
			return nil, 0, fmt.Errorf("opponents: scan: %w", err)
		}
		out = append(out, o)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Opponent, error) {
	var o Opponent
	err := r.pool.QueryRow(ctx, `SELECT id, name, city, stadium, contact FROM opponents WHERE id = $1`, id).
		Scan(&o.ID, &o.Name, &o.City, &o.Stadium, &o.Contact)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Opponent{}, httpx.ErrNotFound
		}
		return Opponent{}, fmt.Errorf("opponents: get: %w", err)
	}
	return o, nil
}

func (r *repository) Create(ctx context.Context, o Opponent) (Opponent, error) {
	err := r.pool.QueryRow(ctx, `INSERT INTO opponents (name, city, stadium, contact) VALUES ($1, $2, $3, $4) RETURNING id`,
		o.Name, o.City, o.Stadium, o.Contact).Scan(&o.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Opponent{}, httpx.ErrDuplicate
		}
		return Opponent{}, fmt.Errorf("opponents: create: %w", err)
	}
	return o, nil
}

func (r *repository) Update(ctx context.Context, id int64, o Opponent) error {
	tag, err := r.pool.Exec(ctx, `UPDATE opponents SET name = $1, city = $2, stadium = $3, contact = $4 WHERE id = $5`,
		o.Name, o.City, o.Stadium, o.Contact, id)
	if err != nil {
		return fmt.Errorf("opponents: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM opponents WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("%w: opponent is referenced by matches", httpx.ErrValidation)
		}
		return fmt.Errorf("opponents: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
