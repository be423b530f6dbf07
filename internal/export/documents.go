package export

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/vestiaire-fc/vestiaire/internal/ledger"
	"github.com/vestiaire-fc/vestiaire/internal/standings"
)

var docFuncs = template.FuncMap{
	"euro": func(v float64) string {
		return fmt.Sprintf("%.2f €", v)
	},
	"date": func(t time.Time) string {
		return t.Format("02/01/2006")
	},
	"add": func(a, b int) int { return a + b },
}

var statementTmpl = template.Must(template.New("statement").Funcs(docFuncs).Parse(`<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<title>{{.ClubName}} — {{.Title}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; margin: 2cm; color: #1a1a2e; }
h1 { font-size: 18px; border-bottom: 2px solid #1a1a2e; padding-bottom: 6px; }
table { width: 100%; border-collapse: collapse; margin-top: 12px; }
th, td { text-align: left; padding: 6px 8px; border-bottom: 1px solid #ddd; font-size: 12px; }
th { background: #f0f0f5; }
td.amount, th.amount { text-align: right; }
.status-PAID { color: #1b7a3d; }
.status-PENDING { color: #8a6d00; }
.status-PARTIAL { color: #8a6d00; }
.status-OVERDUE { color: #b00020; font-weight: bold; }
.totals { margin-top: 16px; font-size: 13px; }
.generated { margin-top: 24px; font-size: 10px; color: #888; }
</style>
</head>
<body>
<h1>{{.ClubName}} — {{.Title}}</h1>
<p>{{.Statement.OwnerName}}</p>
<table>
<tr><th>Description</th><th class="amount">Total</th><th class="amount">Paid</th><th class="amount">Remaining</th><th>Status</th></tr>
{{range .Statement.Records}}
<tr>
<td>{{.Description}}</td>
<td class="amount">{{euro .TotalAmount}}</td>
<td class="amount">{{euro .AmountPaid}}</td>
<td class="amount">{{euro .AmountRemaining}}</td>
<td class="status-{{.Status}}">{{.Status}}</td>
</tr>
{{end}}
</table>
<p class="totals">
Total due: {{euro .Statement.TotalDue}} ·
Total paid: {{euro .Statement.TotalPaid}} ·
Remaining: {{euro .Statement.TotalRemaining}} ({{.Statement.OverallStatus}})
</p>
<p class="generated">Generated on {{date .GeneratedAt}}</p>
</body>
</html>`))

var standingsTmpl = template.Must(template.New("standings").Funcs(docFuncs).Parse(`<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<title>{{.ClubName}} — Classement {{.Table.Category}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; margin: 2cm; color: #1a1a2e; }
h1 { font-size: 18px; border-bottom: 2px solid #1a1a2e; padding-bottom: 6px; }
table { width: 100%; border-collapse: collapse; margin-top: 12px; }
th, td { padding: 6px 8px; border-bottom: 1px solid #ddd; font-size: 12px; text-align: center; }
th { background: #f0f0f5; }
td.team { text-align: left; }
tr.club { background: #eef6ee; font-weight: bold; }
.generated { margin-top: 24px; font-size: 10px; color: #888; }
</style>
</head>
<body>
<h1>{{.ClubName}} — Classement {{.Table.Category}}</h1>
<table>
<tr><th>#</th><th>Équipe</th><th>J</th><th>G</th><th>N</th><th>P</th><th>BP</th><th>BC</th><th>Diff</th><th>Pts</th></tr>
{{range $i, $row := .Table.Rows}}
<tr{{if eq $row.Team $.ClubName}} class="club"{{end}}>
<td>{{add $i 1}}</td>
<td class="team">{{$row.Team}}</td>
<td>{{$row.Played}}</td>
<td>{{$row.Wins}}</td>
<td>{{$row.Draws}}</td>
<td>{{$row.Losses}}</td>
<td>{{$row.GoalsFor}}</td>
<td>{{$row.GoalsAgainst}}</td>
<td>{{$row.GoalDifference}}</td>
<td>{{$row.Points}}</td>
</tr>
{{end}}
</table>
<p class="generated">Generated on {{date .GeneratedAt}}</p>
</body>
</html>`))

type statementData struct {
	ClubName    string
	Title       string
	Statement   *ledger.OwnerSummary
	GeneratedAt time.Time
}

type standingsData struct {
	ClubName    string
	Table       *standings.Table
	GeneratedAt time.Time
}

// StatementHTML renders the printable ledger statement for one owner.
func StatementHTML(clubName string, kind ledger.Kind, stmt *ledger.OwnerSummary) (string, error) {
	title := "Relevé de paiements"
	if kind == ledger.KindSalary {
		title = "Relevé de salaires"
	}
	var buf strings.Builder
	err := statementTmpl.Execute(&buf, statementData{
		ClubName:    clubName,
		Title:       title,
		Statement:   stmt,
		GeneratedAt: time.Now(),
	})
	if err != nil {
		return "", fmt.Errorf("export: render statement: %w", err)
	}
	return buf.String(), nil
}

// StandingsHTML renders the printable league table for one category.
func StandingsHTML(clubName string, table *standings.Table) (string, error) {
	var buf strings.Builder
	err := standingsTmpl.Execute(&buf, standingsData{
		ClubName:    clubName,
		Table:       table,
		GeneratedAt: time.Now(),
	})
	if err != nil {
		return "", fmt.Errorf("export: render standings: %w", err)
	}
	return buf.String(), nil
}
