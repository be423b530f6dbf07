package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vestiaire-fc/vestiaire/internal/platform/httpx"
)

// Repository provides PostgreSQL backed persistence for ledger records.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const recordColumns = `id, owner_id, kind, description, total_amount, overdue, created_at, updated_at`

// ListRecords returns all records of one kind with their transactions.
func (r *Repository) ListRecords(ctx context.Context, kind Kind) ([]Record, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+recordColumns+` FROM ledger_records WHERE kind = $1 ORDER BY created_at`, kind)
	if err != nil {
		return nil, fmt.Errorf("ledger: list records: %w", err)
	}
	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	return r.attachTransactions(ctx, records)
}

// ListOwnerRecords returns one owner's records of one kind with transactions.
func (r *Repository) ListOwnerRecords(ctx context.Context, kind Kind, ownerID int64) ([]Record, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+recordColumns+` FROM ledger_records WHERE kind = $1 AND owner_id = $2 ORDER BY created_at`, kind, ownerID)
	if err != nil {
		return nil, fmt.Errorf("ledger: list owner records: %w", err)
	}
	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	return r.attachTransactions(ctx, records)
}

// GetRecord fetches a single record with transactions.
func (r *Repository) GetRecord(ctx context.Context, id uuid.UUID) (*Record, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+recordColumns+` FROM ledger_records WHERE id = $1`, id)
	var rec Record
	if err := row.Scan(&rec.ID, &rec.OwnerID, &rec.Kind, &rec.Description, &rec.TotalAmount, &rec.Overdue, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, fmt.Errorf("ledger: get record: %w", err)
	}
	records, err := r.attachTransactions(ctx, []Record{rec})
	if err != nil {
		return nil, err
	}
	return &records[0], nil
}

// CreateRecord inserts a record.
func (r *Repository) CreateRecord(ctx context.Context, rec Record) (*Record, error) {
	_, err := r.pool.Exec(ctx, `INSERT INTO ledger_records (id, owner_id, kind, description, total_amount, overdue, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID, rec.OwnerID, rec.Kind, rec.Description, rec.TotalAmount, rec.Overdue, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, httpx.ErrDuplicate
		}
		return nil, fmt.Errorf("ledger: create record: %w", err)
	}
	return &rec, nil
}

// UpdateRecord updates the editable fields of a record.
func (r *Repository) UpdateRecord(ctx context.Context, id uuid.UUID, description string, totalAmount float64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE ledger_records SET description = $1, total_amount = $2, updated_at = $3 WHERE id = $4`,
		description, totalAmount, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ledger: update record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// DeleteRecord removes a record and its transactions.
func (r *Repository) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ledger: begin delete: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM ledger_transactions WHERE record_id = $1`, id); err != nil {
		return fmt.Errorf("ledger: delete transactions: %w", err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM ledger_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ledger: delete record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return tx.Commit(ctx)
}

// AddTransaction appends a settlement to a record.
func (r *Repository) AddTransaction(ctx context.Context, tx Transaction) (*Transaction, error) {
	_, err := r.pool.Exec(ctx, `INSERT INTO ledger_transactions (id, record_id, amount, paid_at, method) VALUES ($1, $2, $3, $4, $5)`,
		tx.ID, tx.RecordID, tx.Amount, tx.PaidAt, tx.Method)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, httpx.ErrNotFound
		}
		return nil, fmt.Errorf("ledger: add transaction: %w", err)
	}
	return &tx, nil
}

// SetOverdue flips the manual overdue flag.
func (r *Repository) SetOverdue(ctx context.Context, id uuid.UUID, overdue bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE ledger_records SET overdue = $1, updated_at = $2 WHERE id = $3`, overdue, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ledger: set overdue: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// OwnerNames resolves display names for the owner family a kind belongs to.
func (r *Repository) OwnerNames(ctx context.Context, kind Kind) (map[int64]string, error) {
	table := "players"
	if kind == KindSalary {
		table = "coaches"
	}
	rows, err := r.pool.Query(ctx, `SELECT id, full_name FROM `+table)
	if err != nil {
		return nil, fmt.Errorf("ledger: owner names: %w", err)
	}
	defer rows.Close()
	names := make(map[int64]string)
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("ledger: scan owner name: %w", err)
		}
		names[id] = name
	}
	return names, rows.Err()
}

func scanRecords(rows pgx.Rows) ([]Record, error) {
	defer rows.Close()
	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.OwnerID, &rec.Kind, &rec.Description, &rec.TotalAmount, &rec.Overdue, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("ledger: scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *Repository) attachTransactions(ctx context.Context, records []Record) ([]Record, error) {
	if len(records) == 0 {
		return records, nil
	}
	ids := make([]uuid.UUID, 0, len(records))
	index := make(map[uuid.UUID]int, len(records))
	for i, rec := range records {
		ids = append(ids, rec.ID)
		index[rec.ID] = i
	}
	rows, err := r.pool.Query(ctx, `SELECT id, record_id, amount, paid_at, method FROM ledger_transactions WHERE record_id = ANY($1) ORDER BY paid_at, id`, ids)
	if err != nil {
		return nil, fmt.Errorf("ledger: list transactions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var tx Transaction
		if err := rows.Scan(&tx.ID, &tx.RecordID, &tx.Amount, &tx.PaidAt, &tx.Method); err != nil {
			return nil, fmt.Errorf("ledger: scan transaction: %w", err)
		}
		if i, ok := index[tx.RecordID]; ok {
			records[i].Transactions = append(records[i].Transactions, tx)
		}
	}
	return records, rows.Err()
}
