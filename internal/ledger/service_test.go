package ledger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/vestiaire-fc/vestiaire/internal/platform/httpx"
)

type memoryLedgerRepo struct {
	records map[uuid.UUID]*Record
	players map[int64]string
	coaches map[int64]string
}

func newMemoryLedgerRepo() *memoryLedgerRepo {
	return &memoryLedgerRepo{
		records: make(map[uuid.UUID]*Record),
		players: make(map[int64]string),
		coaches: make(map[int64]string),
	}
}

func (r *memoryLedgerRepo) ListRecords(ctx context.Context, kind Kind) ([]Record, error) {
	var out []Record
	for _, rec := range r.records {
		if rec.Kind == kind {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *memoryLedgerRepo) ListOwnerRecords(ctx context.Context, kind Kind, ownerID int64) ([]Record, error) {
	var out []Record
	for _, rec := range r.records {
		if rec.Kind == kind && rec.OwnerID == ownerID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *memoryLedgerRepo) GetRecord(ctx context.Context, id uuid.UUID) (*Record, error) {
	rec, ok := r.records[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copy := *rec
	return &copy, nil
}

func (r *memoryLedgerRepo) CreateRecord(ctx context.Context, rec Record) (*Record, error) {
	stored := rec
	r.records[rec.ID] = &stored
	return &rec, nil
}

func (r *memoryLedgerRepo) UpdateRecord(ctx context.Context, id uuid.UUID, description string, totalAmount float64) error {
	rec, ok := r.records[id]
	if !ok {
		return httpx.ErrNotFound
	}
	rec.Description = description
	rec.TotalAmount = totalAmount
	return nil
}

func (r *memoryLedgerRepo) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.records[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *memoryLedgerRepo) AddTransaction(ctx context.Context, tx Transaction) (*Transaction, error) {
	rec, ok := r.records[tx.RecordID]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	rec.Transactions = append(rec.Transactions, tx)
	return &tx, nil
}

func (r *memoryLedgerRepo) SetOverdue(ctx context.Context, id uuid.UUID, overdue bool) error {
	rec, ok := r.records[id]
	if !ok {
		return httpx.ErrNotFound
	}
	rec.Overdue = overdue
	return nil
}

func (r *memoryLedgerRepo) OwnerNames(ctx context.Context, kind Kind) (map[int64]string, error) {
	if kind == KindSalary {
		return r.coaches, nil
	}
	return r.players, nil
}

func newTestService(repo *memoryLedgerRepo) *Service {
	return NewService(repo, slog.Default(), "fr")
}

func TestCreateRecordRejectsSettledDuplicate(t *testing.T) {
	repo := newMemoryLedgerRepo()
	repo.players[1] = "Dupont"
	svc := newTestService(repo)
	ctx := context.Background()

	rec, err := svc.CreateRecord(ctx, CreateRecordInput{OwnerID: 1, Kind: KindPayment, Description: "Cotisation Mai 2024", TotalAmount: 100})
	require.NoError(t, err)
	_, err = svc.AddTransaction(ctx, AddTransactionInput{RecordID: rec.ID, Amount: 100, Method: "cash"})
	require.NoError(t, err)

	_, err = svc.CreateRecord(ctx, CreateRecordInput{OwnerID: 1, Kind: KindPayment, Description: "cotisation  MAI 2024", TotalAmount: 100})
	require.ErrorIs(t, err, httpx.ErrDuplicate)
}

func TestCreateRecordAllowsDuplicateWhileUnsettled(t *testing.T) {
	repo := newMemoryLedgerRepo()
	repo.players[1] = "Dupont"
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.CreateRecord(ctx, CreateRecordInput{OwnerID: 1, Kind: KindPayment, Description: "Cotisation Mai 2024", TotalAmount: 100})
	require.NoError(t, err)

	// The first due is still open, so re-billing the same key is allowed.
	_, err = svc.CreateRecord(ctx, CreateRecordInput{OwnerID: 1, Kind: KindPayment, Description: "Cotisation Mai 2024", TotalAmount: 100})
	require.NoError(t, err)
}

func TestCreateRecordValidation(t *testing.T) {
	svc := newTestService(newMemoryLedgerRepo())
	ctx := context.Background()

	_, err := svc.CreateRecord(ctx, CreateRecordInput{OwnerID: 0, Kind: KindPayment, Description: "x", TotalAmount: 1})
	require.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.CreateRecord(ctx, CreateRecordInput{OwnerID: 1, Kind: Kind("GIFT"), Description: "x", TotalAmount: 1})
	require.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.CreateRecord(ctx, CreateRecordInput{OwnerID: 1, Kind: KindPayment, Description: " ", TotalAmount: 1})
	require.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.CreateRecord(ctx, CreateRecordInput{OwnerID: 1, Kind: KindPayment, Description: "x", TotalAmount: -5})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestAddTransactionRejectsNonPositiveAmount(t *testing.T) {
	repo := newMemoryLedgerRepo()
	repo.players[1] = "Dupont"
	svc := newTestService(repo)
	ctx := context.Background()

	rec, err := svc.CreateRecord(ctx, CreateRecordInput{OwnerID: 1, Kind: KindPayment, Description: "Cotisation", TotalAmount: 100})
	require.NoError(t, err)

	_, err = svc.AddTransaction(ctx, AddTransactionInput{RecordID: rec.ID, Amount: 0})
	require.ErrorIs(t, err, httpx.ErrValidation)
	_, err = svc.AddTransaction(ctx, AddTransactionInput{RecordID: rec.ID, Amount: -10})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestListSummariesEndToEnd(t *testing.T) {
	repo := newMemoryLedgerRepo()
	repo.players[1] = "Dupont"
	repo.players[2] = "Ávila"
	svc := newTestService(repo)
	ctx := context.Background()

	paid, err := svc.CreateRecord(ctx, CreateRecordInput{OwnerID: 1, Kind: KindPayment, Description: "Cotisation Mai 2024", TotalAmount: 1500})
	require.NoError(t, err)
	_, err = svc.AddTransaction(ctx, AddTransactionInput{RecordID: paid.ID, Amount: 500, Method: "card"})
	require.NoError(t, err)
	_, err = svc.AddTransaction(ctx, AddTransactionInput{RecordID: paid.ID, Amount: 1000, Method: "cash"})
	require.NoError(t, err)

	partial, err := svc.CreateRecord(ctx, CreateRecordInput{OwnerID: 2, Kind: KindPayment, Description: "Cotisation Mai 2024", TotalAmount: 1500})
	require.NoError(t, err)
	_, err = svc.AddTransaction(ctx, AddTransactionInput{RecordID: partial.ID, Amount: 500, Method: "cash"})
	require.NoError(t, err)

	result, err := svc.ListSummaries(ctx, KindPayment)
	require.NoError(t, err)
	require.Len(t, result.Owners, 2)
	require.Empty(t, result.Skipped)

	// Collated order: Ávila before Dupont.
	require.Equal(t, "Ávila", result.Owners[0].OwnerName)
	require.Equal(t, StatusPartial, result.Owners[0].OverallStatus)
	require.Equal(t, 1000.0, result.Owners[0].TotalRemaining)

	require.Equal(t, "Dupont", result.Owners[1].OwnerName)
	require.Equal(t, StatusPaid, result.Owners[1].OverallStatus)
	require.Equal(t, 0.0, result.Owners[1].TotalRemaining)
}

func TestListSummariesReportsOrphans(t *testing.T) {
	repo := newMemoryLedgerRepo()
	repo.players[1] = "Dupont"
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.CreateRecord(ctx, CreateRecordInput{OwnerID: 1, Kind: KindPayment, Description: "Cotisation", TotalAmount: 100})
	require.NoError(t, err)
	orphan, err := svc.CreateRecord(ctx, CreateRecordInput{OwnerID: 9, Kind: KindPayment, Description: "Cotisation", TotalAmount: 100})
	require.NoError(t, err)

	result, err := svc.ListSummaries(ctx, KindPayment)
	require.NoError(t, err)
	require.Len(t, result.Owners, 1)
	require.Len(t, result.Skipped, 1)
	require.Equal(t, orphan.ID, result.Skipped[0].RecordID)
}

func TestOwnerStatement(t *testing.T) {
	repo := newMemoryLedgerRepo()
	repo.coaches[3] = "Martin"
	svc := newTestService(repo)
	ctx := context.Background()

	rec, err := svc.CreateRecord(ctx, CreateRecordInput{OwnerID: 3, Kind: KindSalary, Description: "Salaire Mai", TotalAmount: 900})
	require.NoError(t, err)
	_, err = svc.AddTransaction(ctx, AddTransactionInput{RecordID: rec.ID, Amount: 300, Method: "transfer"})
	require.NoError(t, err)

	stmt, err := svc.OwnerStatement(ctx, KindSalary, 3)
	require.NoError(t, err)
	require.Equal(t, "Martin", stmt.OwnerName)
	require.Equal(t, 600.0, stmt.TotalRemaining)

	_, err = svc.OwnerStatement(ctx, KindSalary, 42)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestStaleOverdueFlags(t *testing.T) {
	repo := newMemoryLedgerRepo()
	repo.players[1] = "Dupont"
	svc := newTestService(repo)
	ctx := context.Background()

	rec, err := svc.CreateRecord(ctx, CreateRecordInput{OwnerID: 1, Kind: KindPayment, Description: "Cotisation", TotalAmount: 100})
	require.NoError(t, err)
	require.NoError(t, svc.SetOverdue(ctx, rec.ID, true))
	_, err = svc.AddTransaction(ctx, AddTransactionInput{RecordID: rec.ID, Amount: 100, Method: "cash"})
	require.NoError(t, err)

	stale, err := svc.StaleOverdueFlags(ctx, KindPayment)
	require.NoError(t, err)
	require.Len(t, stale, 1)
	require.Equal(t, rec.ID, stale[0].ID)
}
