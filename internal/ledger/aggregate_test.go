package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func record(owner int64, total float64, amounts ...float64) Record {
	r := Record{ID: uuid.New(), OwnerID: owner, Kind: KindPayment, TotalAmount: total}
	for _, a := range amounts {
		r.Transactions = append(r.Transactions, Transaction{ID: uuid.New(), RecordID: r.ID, Amount: a})
	}
	return r
}

func TestSummarizeFullyPaid(t *testing.T) {
	s := Summarize(record(1, 1500, 500, 1000))
	require.Equal(t, 1500.0, s.AmountPaid)
	require.Equal(t, 0.0, s.AmountRemaining)
	require.Equal(t, StatusPaid, s.Status)
}

func TestSummarizePartial(t *testing.T) {
	s := Summarize(record(1, 1500, 500))
	require.Equal(t, 1000.0, s.AmountRemaining)
	require.Equal(t, StatusPartial, s.Status)
}

func TestSummarizePending(t *testing.T) {
	s := Summarize(record(1, 800))
	require.Equal(t, 0.0, s.AmountPaid)
	require.Equal(t, StatusPending, s.Status)
}

func TestSummarizeNoTransactionsFieldIsNotAnError(t *testing.T) {
	r := record(1, 300)
	r.Transactions = nil
	s := Summarize(r)
	require.Equal(t, 0.0, s.AmountPaid)
	require.Equal(t, 300.0, s.AmountRemaining)
}

func TestSummarizeOverpaidKeepsSign(t *testing.T) {
	s := Summarize(record(1, 100, 150))
	require.Equal(t, -50.0, s.AmountRemaining)
	require.Equal(t, StatusPaid, s.Status)
}

func TestPaidPlusRemainingEqualsTotal(t *testing.T) {
	cases := []Record{
		record(1, 1500, 500, 1000),
		record(1, 1500, 500),
		record(1, 99.99, 33.33, 33.33),
		record(1, 0),
		record(1, 100, 150),
	}
	for _, r := range cases {
		s := Summarize(r)
		require.Equal(t, r.TotalAmount, s.AmountPaid+s.AmountRemaining)
	}
}

func TestOverdueFlagPreservedWhileUnsettled(t *testing.T) {
	r := record(1, 500, 100)
	r.Overdue = true
	require.Equal(t, StatusOverdue, Summarize(r).Status)

	pending := record(1, 500)
	pending.Overdue = true
	require.Equal(t, StatusOverdue, Summarize(pending).Status)
}

func TestOverdueFlagIgnoredOnceSettled(t *testing.T) {
	r := record(1, 500, 500)
	r.Overdue = true
	require.Equal(t, StatusPaid, Summarize(r).Status)
}

func TestDeriveStatusZeroTotal(t *testing.T) {
	// remaining <= 0 wins over paid == 0 for a zero-amount due
	require.Equal(t, StatusPaid, DeriveStatus(0, 0, false))
}

func TestValidateRejectsNegativeTotal(t *testing.T) {
	r := record(1, -10)
	err := Validate([]Record{r})
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "total_amount", verr.Field)
}

func TestValidateRejectsMissingOwner(t *testing.T) {
	r := record(0, 10)
	err := Validate([]Record{r})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "owner_id", verr.Field)
}

func TestAggregateByOwnerTotals(t *testing.T) {
	owners := map[int64]string{1: "Dupont"}
	records := []Record{
		record(1, 1500, 500, 1000),
		record(1, 200),
		record(1, 300, 100),
	}
	res := AggregateByOwner(records, owners, language.French)
	require.Len(t, res.Owners, 1)
	o := res.Owners[0]
	require.Equal(t, 2000.0, o.TotalDue)
	require.Equal(t, 1600.0, o.TotalPaid)
	require.Equal(t, 400.0, o.TotalRemaining)
	require.Equal(t, StatusPartial, o.OverallStatus)
	require.Len(t, o.Records, 3)
}

func TestAggregateByOwnerOrderIndependent(t *testing.T) {
	owners := map[int64]string{1: "Dupont"}
	records := []Record{record(1, 100, 40), record(1, 50), record(1, 25, 25)}
	forward := AggregateByOwner(records, owners, language.French)
	reversed := AggregateByOwner([]Record{records[2], records[1], records[0]}, owners, language.French)
	require.Equal(t, forward.Owners[0].TotalDue, reversed.Owners[0].TotalDue)
	require.Equal(t, forward.Owners[0].TotalPaid, reversed.Owners[0].TotalPaid)
}

func TestAggregateSkipsUnknownOwner(t *testing.T) {
	owners := map[int64]string{1: "Dupont"}
	orphan := record(99, 100)
	res := AggregateByOwner([]Record{record(1, 50), orphan}, owners, language.French)
	require.Len(t, res.Owners, 1)
	require.Len(t, res.Skipped, 1)
	require.Equal(t, orphan.ID, res.Skipped[0].RecordID)
	require.Equal(t, "owner not found", res.Skipped[0].Reason)
}

func TestAggregateSortsByCollatedName(t *testing.T) {
	owners := map[int64]string{1: "Zidane", 2: "Éric", 3: "alvarez"}
	records := []Record{record(1, 10), record(2, 10), record(3, 10)}
	res := AggregateByOwner(records, owners, language.French)
	require.Equal(t, []string{"alvarez", "Éric", "Zidane"}, []string{
		res.Owners[0].OwnerName, res.Owners[1].OwnerName, res.Owners[2].OwnerName,
	})
}

func TestAggregateFullyPaidOwner(t *testing.T) {
	owners := map[int64]string{1: "Dupont"}
	res := AggregateByOwner([]Record{record(1, 100, 100), record(1, 50, 50)}, owners, language.French)
	require.Equal(t, StatusPaid, res.Owners[0].OverallStatus)
	require.Equal(t, 0.0, res.Owners[0].TotalRemaining)
}

func TestAggregateUntouchedOwnerIsPending(t *testing.T) {
	owners := map[int64]string{1: "Dupont"}
	res := AggregateByOwner([]Record{record(1, 100), record(1, 50)}, owners, language.French)
	require.Equal(t, StatusPending, res.Owners[0].OverallStatus)
}
