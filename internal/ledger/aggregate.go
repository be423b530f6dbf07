package ledger

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Paid sums a record's transaction amounts. A record without transactions
// simply paid nothing yet.
func Paid(r Record) float64 {
	var total float64
	for _, tx := range r.Transactions {
		total += tx.Amount
	}
	return total
}

// Remaining returns the outstanding balance. The sign is kept when a record
// is overpaid; clamping to zero is a display concern left to callers.
func Remaining(r Record) float64 {
	return r.TotalAmount - Paid(r)
}

// DeriveStatus applies the three-way status rule. A settled record is PAID no
// matter what; the manual overdue flag only shows through while money is
// still owed. OVERDUE is never computed from dates anywhere in this package.
func DeriveStatus(total, paid float64, overdue bool) Status {
	switch {
	case total-paid <= 0:
		return StatusPaid
	case overdue:
		return StatusOverdue
	case paid == 0:
		return StatusPending
	default:
		return StatusPartial
	}
}

// Summarize derives the per-record financial figures.
func Summarize(r Record) RecordSummary {
	paid := Paid(r)
	return RecordSummary{
		Record:          r,
		AmountPaid:      paid,
		AmountRemaining: r.TotalAmount - paid,
		Status:          DeriveStatus(r.TotalAmount, paid, r.Overdue),
	}
}

// Validate rejects records the aggregator must not process. The surrounding
// storage never produces these, but the contract is explicit here.
func Validate(records []Record) error {
	for _, r := range records {
		if r.TotalAmount < 0 {
			return &ValidationError{RecordID: r.ID, Field: "total_amount", Reason: "must not be negative"}
		}
		if r.OwnerID <= 0 {
			return &ValidationError{RecordID: r.ID, Field: "owner_id", Reason: "is required"}
		}
		for _, tx := range r.Transactions {
			if tx.Amount <= 0 {
				return &ValidationError{RecordID: r.ID, Field: "transaction.amount", Reason: "must be positive"}
			}
		}
	}
	return nil
}

// AggregateResult is the output of AggregateByOwner.
type AggregateResult struct {
	Owners  []OwnerSummary  `json:"owners"`
	Skipped []SkippedRecord `json:"skipped,omitempty"`
}

// AggregateByOwner groups records by owner and rolls their figures up.
// Records whose owner is missing from ownerNames land in Skipped (the owner
// was deleted after the record was written). Owners are sorted by display
// name with a locale-aware, case-insensitive collation; diacritics take part
// in the comparison. The aggregate status uses the same three-way rule as
// individual records and is never OVERDUE, since that flag lives on single
// records only.
func AggregateByOwner(records []Record, ownerNames map[int64]string, loc language.Tag) AggregateResult {
	groups := make(map[int64]*OwnerSummary)
	var skipped []SkippedRecord

	for _, r := range records {
		name, ok := ownerNames[r.OwnerID]
		if !ok {
			skipped = append(skipped, SkippedRecord{
				RecordID: r.ID,
				OwnerID:  r.OwnerID,
				Reason:   "owner not found",
			})
			continue
		}
		group, ok := groups[r.OwnerID]
		if !ok {
			group = &OwnerSummary{OwnerID: r.OwnerID, OwnerName: name}
			groups[r.OwnerID] = group
		}
		summary := Summarize(r)
		group.Records = append(group.Records, summary)
		group.TotalDue += r.TotalAmount
		group.TotalPaid += summary.AmountPaid
	}

	owners := make([]OwnerSummary, 0, len(groups))
	for _, group := range groups {
		group.TotalRemaining = group.TotalDue - group.TotalPaid
		group.OverallStatus = DeriveStatus(group.TotalDue, group.TotalPaid, false)
		owners = append(owners, *group)
	}

	collator := collate.New(loc, collate.IgnoreCase)
	sort.Slice(owners, func(i, j int) bool {
		if cmp := collator.CompareString(owners[i].OwnerName, owners[j].OwnerName); cmp != 0 {
			return cmp < 0
		}
		return owners[i].OwnerID < owners[j].OwnerID
	})
	return AggregateResult{Owners: owners, Skipped: skipped}
}
