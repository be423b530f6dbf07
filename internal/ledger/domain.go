package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind discriminates the two ledger record families.
type Kind string

const (
	// KindPayment is a due owed by a player (cotisation, equipment, ...).
	KindPayment Kind = "PAYMENT"
	// KindSalary is a due owed to a coach.
	KindSalary Kind = "SALARY"
)

// Valid reports whether the kind is one of the known families.
func (k Kind) Valid() bool {
	return k == KindPayment || k == KindSalary
}

// Status enumerates derived ledger statuses. Status is never stored as
// authoritative data; it is recomputed from transactions on every read. The
// only persisted piece is the manual Overdue flag on Record.
type Status string

const (
	StatusPaid    Status = "PAID"
	StatusPartial Status = "PARTIAL"
	StatusPending Status = "PENDING"
	StatusOverdue Status = "OVERDUE"
)

// Transaction is a single settlement against a record. Transactions are
// append-only; the application never edits or removes them.
type Transaction struct {
	ID       uuid.UUID `json:"id"`
	RecordID uuid.UUID `json:"record_id"`
	Amount   float64   `json:"amount"`
	PaidAt   time.Time `json:"paid_at"`
	Method   string    `json:"method"`
}

// Record is a due amount (payment or salary) with its settlement history.
type Record struct {
	ID           uuid.UUID     `json:"id"`
	OwnerID      int64         `json:"owner_id"`
	Kind         Kind          `json:"kind"`
	Description  string        `json:"description"`
	TotalAmount  float64       `json:"total_amount"`
	Overdue      bool          `json:"overdue"`
	Transactions []Transaction `json:"transactions"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// RecordSummary is a record with its derived financial figures.
type RecordSummary struct {
	Record
	AmountPaid      float64 `json:"amount_paid"`
	AmountRemaining float64 `json:"amount_remaining"`
	Status          Status  `json:"status"`
}

// OwnerSummary rolls a single owner's records up into aggregate figures.
type OwnerSummary struct {
	OwnerID        int64           `json:"owner_id"`
	OwnerName      string          `json:"owner_name"`
	TotalDue       float64         `json:"total_due"`
	TotalPaid      float64         `json:"total_paid"`
	TotalRemaining float64         `json:"total_remaining"`
	OverallStatus  Status          `json:"overall_status"`
	Records        []RecordSummary `json:"records"`
}

// SkippedRecord reports a record the aggregator could not place, so soft
// failures surface in logs and tests instead of vanishing.
type SkippedRecord struct {
	RecordID uuid.UUID `json:"record_id"`
	OwnerID  int64     `json:"owner_id"`
	Reason   string    `json:"reason"`
}

// ValidationError rejects malformed input before aggregation runs.
type ValidationError struct {
	RecordID uuid.UUID
	Field    string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("ledger: record %s: %s %s", e.RecordID, e.Field, e.Reason)
}
