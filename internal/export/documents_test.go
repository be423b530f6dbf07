package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vestiaire-fc/vestiaire/internal/ledger"
	"github.com/vestiaire-fc/vestiaire/internal/standings"
)

func TestStatementHTML(t *testing.T) {
	stmt := &ledger.OwnerSummary{
		OwnerID:        3,
		OwnerName:      "Éric Dupont",
		TotalDue:       1500,
		TotalPaid:      500,
		TotalRemaining: 1000,
		OverallStatus:  ledger.StatusPartial,
		Records: []ledger.RecordSummary{
			{
				Record:          ledger.Record{Description: "Cotisation 2026", TotalAmount: 1500},
				AmountPaid:      500,
				AmountRemaining: 1000,
				Status:          ledger.StatusPartial,
			},
		},
	}

	html, err := StatementHTML("Vestiaire FC", ledger.KindPayment, stmt)
	require.NoError(t, err)
	require.Contains(t, html, "Relevé de paiements")
	require.Contains(t, html, "Éric Dupont")
	require.Contains(t, html, "Cotisation 2026")
	require.Contains(t, html, "1500.00")
	require.Contains(t, html, "PARTIAL")
}

func TestStatementHTMLSalaryTitle(t *testing.T) {
	html, err := StatementHTML("Vestiaire FC", ledger.KindSalary, &ledger.OwnerSummary{OwnerName: "Coach"})
	require.NoError(t, err)
	require.Contains(t, html, "Relevé de salaires")
}

func TestStandingsHTML(t *testing.T) {
	table := &standings.Table{
		Category: "U15",
		Rows: []standings.TeamStats{
			{Team: "Vestiaire FC", Played: 2, Wins: 1, Draws: 1, GoalsFor: 2, GoalsAgainst: 1, GoalDifference: 1, Points: 4},
			{Team: "AS Rivale", Played: 2, Losses: 1, Draws: 1, GoalsFor: 1, GoalsAgainst: 2, GoalDifference: -1, Points: 1},
		},
	}

	html, err := StandingsHTML("Vestiaire FC", table)
	require.NoError(t, err)
	require.Contains(t, html, "Classement U15")
	require.Contains(t, html, `class="club"`)
	require.Contains(t, html, "AS Rivale")

	// club row is ranked first
	clubIdx := strings.Index(html, "Vestiaire FC</td>")
	rivalIdx := strings.Index(html, "AS Rivale</td>")
	require.Less(t, clubIdx, rivalIdx)
}

func TestStatementHTMLEscapesUserContent(t *testing.T) {
	stmt := &ledger.OwnerSummary{OwnerName: "<script>alert(1)</script>"}
	html, err := StatementHTML("Vestiaire FC", ledger.KindPayment, stmt)
	require.NoError(t, err)
	require.NotContains(t, html, "<script>alert(1)</script>")
}
