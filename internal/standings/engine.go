package standings

import (
	"sort"
	"strings"
)

// Compute folds completed matches into a ranked table. The club always gets a
// row, even before its first match. Matches missing a score on either side
// count as not yet played; matches with a blank team name would corrupt the
// table and are skipped too. Both show up in the returned skipped count.
//
// Scoring is three points for a win, one for a draw. Goal difference is
// derived after the fold. Ranking: points, then goal difference, then goals
// for, then team name ascending so equal inputs always produce the same
// order.
func Compute(clubName string, matches []MatchResult) ([]TeamStats, int) {
	table := map[string]*TeamStats{
		clubName: {Team: clubName},
	}
	skipped := 0

	ensure := func(team string) *TeamStats {
		stats, ok := table[team]
		if !ok {
			stats = &TeamStats{Team: team}
			table[team] = stats
		}
		return stats
	}

	for _, m := range matches {
		if m.HomeScore == nil || m.AwayScore == nil {
			skipped++
			continue
		}
		if strings.TrimSpace(m.HomeTeam) == "" || strings.TrimSpace(m.AwayTeam) == "" {
			skipped++
			continue
		}

		home := ensure(m.HomeTeam)
		away := ensure(m.AwayTeam)
		hs, as := *m.HomeScore, *m.AwayScore

		home.Played++
		away.Played++
		home.GoalsFor += hs
		home.GoalsAgainst += as
		away.GoalsFor += as
		away.GoalsAgainst += hs

		switch {
		case hs > as:
			home.Wins++
			home.Points += 3
			away.Losses++
		case hs < as:
			away.Wins++
			away.Points += 3
			home.Losses++
		default:
			home.Draws++
			away.Draws++
			home.Points++
			away.Points++
		}
	}

	rows := make([]TeamStats, 0, len(table))
	for _, stats := range table {
		stats.GoalDifference = stats.GoalsFor - stats.GoalsAgainst
		rows = append(rows, *stats)
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.Team < b.Team
	})
	return rows, skipped
}
