package players

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
	List(ctx context.Context, filters shared.ListFilters) ([]Player, int, error)
	Get(ctx context.Context, id int64) (Player, error)
	Create(ctx context.Context, p Player) (Player, error)
	Update(ctx context.Context, id int64, p Player) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const playerColumns = `id, full_name, category, position, license_number, birth_date, joined_at, active`

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Player, int, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM players WHERE 1=1`
	args := []interface{}{}

	appendCond := func(cond string, value interface{}) {
		args = append(args, value)
		clause := ` AND ` + fmt.Sprintf(cond, len(args))
		query += clause
		countQuery += clause
	}

	if filters.Search != "" {
		appendCond(`(full_name ILIKE $%d OR license_number ILIKE $%[1]d)`, "%"+filters.Search+"%")
	}
	if filters.Category != "" {
		appendCond(`category = $%d`, filters.Category)
	}
	if filters.Active != nil {
		appendCond(`active = $%d`, *filters.Active)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("players: count: %w", err)
	}

	query += ` ORDER BY ` + sortOrder(filters.SortBy, filters.SortDir)
	if filters.Limit > 0 {
		args = append(args, filters.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
		args = append(args, filters.Offset())
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("players: list: %w", err)
	}
	defer rows.Close()

	var out []Player
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.FullName, &p.Category, &p.Position, &p.LicenseNumber, &p.BirthDate, &p.JoinedAt, &p.Active); err != nil {
			return nil, 0, fmt.Errorf("players: scan: %w", err)
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Player, error) {
	var p Player
	err := r.pool.QueryRow(ctx, `SELECT `+playerColumns+` FROM players WHERE id = $1`, id).
		Scan(&p.ID, &p.FullName, &p.Category, &p.Position, &p.LicenseNumber, &p.BirthDate, &p.JoinedAt, &p.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Player{}, httpx.ErrNotFound
		}
		return Player{}, fmt.Errorf("players: get: %w", err)
	}
	return p, nil
}

func (r *repository) Create(ctx context.Context, p Player) (Player, error) {
	err := r.pool.QueryRow(ctx, `INSERT INTO players (full_name, category, position, license_number, birth_date, joined_at, active)
VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		p.FullName, p.Category, p.Position, p.LicenseNumber, p.BirthDate, p.JoinedAt, p.Active).Scan(&p.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Player{}, httpx.ErrDuplicate
		}
		return Player{}, fmt.Errorf("players: create: %w", err)
	}
	return p, nil
}

func (r *repository) Update(ctx context.Context, id int64, p Player) error {
	tag, err := r.pool.Exec(ctx, `UPDATE players SET full_name = $1, category = $2, position = $3, license_number = $4, birth_date = $5, joined_at = $6, active = $7 WHERE id = $8`,
		p.FullName, p.Category, p.Position, p.LicenseNumber, p.BirthDate, p.JoinedAt, p.Active, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return httpx.ErrDuplicate
		}
		return fmt.Errorf("players: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("%w: player is referenced by ledger records or matches", httpx.ErrValidation)
		}
		return fmt.Errorf("players: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func sortOrder(sortBy, sortDir string) string {
	dir := "ASC"
	if sortDir == shared.SortDesc {
		dir = "DESC"
	}
	switch sortBy {
	case "category":
		return "category " + dir + ", full_name ASC"
	case "joined_at":
		return "joined_at " + dir
	default:
		return "full_name " + dir
	}
}
