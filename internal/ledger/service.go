package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/vestiaire-fc/vestiaire/internal/platform/httpx"
)

// RepositoryPort defines data access methods for the ledger.
type RepositoryPort interface {
	ListRecords(ctx context.Context, kind Kind) ([]Record, error)
	ListOwnerRecords(ctx context.Context, kind Kind, ownerID int64) ([]Record, error)
	GetRecord(ctx context.Context, id uuid.UUID) (*Record, error)
	CreateRecord(ctx context.Context, rec Record) (*Record, error)
	UpdateRecord(ctx context.Context, id uuid.UUID, description string, totalAmount float64) error
	DeleteRecord(ctx context.Context, id uuid.UUID) error
	AddTransaction(ctx context.Context, tx Transaction) (*Transaction, error)
	SetOverdue(ctx context.Context, id uuid.UUID, overdue bool) error
	OwnerNames(ctx context.Context, kind Kind) (map[int64]string, error)
}

// Service handles ledger business logic.
type Service struct {
	repo   RepositoryPort
	logger *slog.Logger
	locale language.Tag
}

// NewService builds a Service instance. The locale drives owner-name
// collation in aggregated listings.
func NewService(repo RepositoryPort, logger *slog.Logger, locale string) *Service {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.French
	}
	return &Service{repo: repo, logger: logger, locale: tag}
}

// CreateRecordInput carries the fields for opening a new due.
type CreateRecordInput struct {
	OwnerID     int64
	Kind        Kind
	Description string
	TotalAmount float64
}

// CreateRecord opens a new due for an owner. A due whose description
// normalizes to the same key as an already settled record of the same owner
// is refused, so the same month cannot be billed twice.
func (s *Service) CreateRecord(ctx context.Context, input CreateRecordInput) (*Record, error) {
	if !input.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown ledger kind %q", httpx.ErrValidation, input.Kind)
	}
	if input.OwnerID <= 0 {
		return nil, fmt.Errorf("%w: owner is required", httpx.ErrValidation)
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", httpx.ErrValidation)
	}
	if input.TotalAmount < 0 {
		return nil, fmt.Errorf("%w: total amount must not be negative", httpx.ErrValidation)
	}

	existing, err := s.repo.ListOwnerRecords(ctx, input.Kind, input.OwnerID)
	if err != nil {
		return nil, err
	}
	if HasSettledDuplicate(existing, input.OwnerID, input.Description) {
		return nil, fmt.Errorf("%w: owner already settled %q", httpx.ErrDuplicate, input.Description)
	}

	now := time.Now()
	return s.repo.CreateRecord(ctx, Record{
		ID:          uuid.New(),
		OwnerID:     input.OwnerID,
		Kind:        input.Kind,
		Description: input.Description,
		TotalAmount: input.TotalAmount,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

// GetSummary returns one record with derived figures.
func (s *Service) GetSummary(ctx context.Context, id uuid.UUID) (*RecordSummary, error) {
	rec, err := s.repo.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	summary := Summarize(*rec)
	return &summary, nil
}

// UpdateRecord edits description and total of an existing due.
func (s *Service) UpdateRecord(ctx context.Context, id uuid.UUID, description string, totalAmount float64) error {
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("%w: description is required", httpx.ErrValidation)
	}
	if totalAmount < 0 {
		return fmt.Errorf("%w: total amount must not be negative", httpx.ErrValidation)
	}
	return s.repo.UpdateRecord(ctx, id, description, totalAmount)
}

// DeleteRecord removes a due and its settlement history.
func (s *Service) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteRecord(ctx, id)
}

// AddTransactionInput carries a settlement to append.
type AddTransactionInput struct {
	RecordID uuid.UUID
	Amount   float64
	PaidAt   time.Time
	Method   string
}

// AddTransaction appends a settlement to a record.
func (s *Service) AddTransaction(ctx context.Context, input AddTransactionInput) (*Transaction, error) {
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: transaction amount must be positive", httpx.ErrValidation)
	}
	if input.PaidAt.IsZero() {
		input.PaidAt = time.Now()
	}
	return s.repo.AddTransaction(ctx, Transaction{
		ID:       uuid.New(),
		RecordID: input.RecordID,
		Amount:   input.Amount,
		PaidAt:   input.PaidAt,
		Method:   input.Method,
	})
}

// SetOverdue flips the manual overdue flag. There is no time-based rule that
// sets this; it is an explicit treasurer action.
func (s *Service) SetOverdue(ctx context.Context, id uuid.UUID, overdue bool) error {
	return s.repo.SetOverdue(ctx, id, overdue)
}

// ListSummaries aggregates all records of a kind per owner. Records whose
// owner no longer exists are reported in the result's Skipped list and
// logged, not silently dropped.
func (s *Service) ListSummaries(ctx context.Context, kind Kind) (AggregateResult, error) {
	if !kind.Valid() {
		return AggregateResult{}, fmt.Errorf("%w: unknown ledger kind %q", httpx.ErrValidation, kind)
	}
	records, err := s.repo.ListRecords(ctx, kind)
	if err != nil {
		return AggregateResult{}, err
	}
	if err := Validate(records); err != nil {
		return AggregateResult{}, fmt.Errorf("%w: %s", httpx.ErrValidation, err)
	}
	names, err := s.repo.OwnerNames(ctx, kind)
	if err != nil {
		return AggregateResult{}, err
	}
	result := AggregateByOwner(records, names, s.locale)
	for _, skip := range result.Skipped {
		s.logger.Warn("ledger record skipped",
			slog.String("record_id", skip.RecordID.String()),
			slog.Int64("owner_id", skip.OwnerID),
			slog.String("reason", skip.Reason))
	}
	return result, nil
}

// OwnerStatement aggregates a single owner's records, for the statement
// export and detail pages.
func (s *Service) OwnerStatement(ctx context.Context, kind Kind, ownerID int64) (*OwnerSummary, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown ledger kind %q", httpx.ErrValidation, kind)
	}
	records, err := s.repo.ListOwnerRecords(ctx, kind, ownerID)
	if err != nil {
		return nil, err
	}
	names, err := s.repo.OwnerNames(ctx, kind)
	if err != nil {
		return nil, err
	}
	name, ok := names[ownerID]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	result := AggregateByOwner(records, names, s.locale)
	for _, owner := range result.Owners {
		if owner.OwnerID == ownerID {
			return &owner, nil
		}
	}
	// Owner exists but has no records yet: an empty, settled statement.
	return &OwnerSummary{OwnerID: ownerID, OwnerName: name, OverallStatus: StatusPaid}, nil
}

// StaleOverdueFlags lists records still flagged overdue although fully
// settled. The integrity job reports these for cleanup.
func (s *Service) StaleOverdueFlags(ctx context.Context, kind Kind) ([]RecordSummary, error) {
	records, err := s.repo.ListRecords(ctx, kind)
	if err != nil {
		return nil, err
	}
	var stale []RecordSummary
	for _, rec := range records {
		if rec.Overdue && Remaining(rec) <= 0 {
			stale = append(stale, Summarize(rec))
		}
	}
	return stale, nil
}
