package coaches

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
	List(ctx context.Context, filters shared.ListFilters) ([]Coach, int, error)
	Get(ctx context.Context, id int64) (Coach, error)
	Create(ctx context.Context, c Coach) (Coach, error)
	Update(ctx context.Context, id int64, c Coach) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const coachColumns = `id, full_name, category, role, email, phone, active`

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Coach, int, error) {
	query := `SELECT ` + coachColumns + ` FROM coaches WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM coaches WHERE 1=1`
	args := []interface{}{}

	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		clause := ` AND full_name ILIKE $` + strconv.Itoa(len(args))
		query += clause
		countQuery += clause
	}
	if filters.Category != "" {
		args = append(args, filters.Category)
		clause := ` AND category = $` + strconv.Itoa(len(args))
		query += clause
		countQuery += clause
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("coaches: count: %w", err)
	}

	query += ` ORDER BY full_name ASC`
	if filters.Limit > 0 {
		args = append(args, filters.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
		args = append(args, filters.Offset())
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("coaches: list: %w", err)
	}
	defer rows.Close()

	var out []Coach
	for rows.Next() {
		var c Coach
		if err := rows.Scan(&c.ID, &c.FullName, &c.Category, &c.Role, &c.Email, &c.Phone, &c.Active); err != nil {
			return nil, 0, fmt.Errorf("coaches: scan: %w", err)
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Coach, error) {
	var c Coach
	err := r.pool.QueryRow(ctx, `SELECT `+coachColumns+` FROM coaches WHERE id = $1`, id).
		Scan(&c.ID, &c.FullName, &c.Category, &c.Role, &c.Email, &c.Phone, &c.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Coach{}, httpx.ErrNotFound
		}
		return Coach{}, fmt.Errorf("coaches: get: %w", err)
	}
	return c, nil
}

func (r *repository) Create(ctx context.Context, c Coach) (Coach, error) {
	err := r.pool.QueryRow(ctx, `INSERT INTO coaches (full_name, category, role, email, phone, active)
VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		c.FullName, c.Category, c.Role, c.Email, c.Phone, c.Active).Scan(&c.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Coach{}, httpx.ErrDuplicate
		}
		return Coach{}, fmt.Errorf("coaches: create: %w", err)
	}
	return c, nil
}

func (r *repository) Update(ctx context.Context, id int64, c Coach) error {
	tag, err := r.pool.Exec(ctx, `UPDATE coaches SET full_name = $1, category = $2, role = $3, email = $4, phone = $5, active = $6 WHERE id = $7`,
		c.FullName, c.Category, c.Role, c.Email, c.Phone, c.Active, id)
	if err != nil {
		return fmt.Errorf("coaches: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM coaches WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("%w: coach is referenced by salary records", httpx.ErrValidation)
		}
		return fmt.Errorf("coaches: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
