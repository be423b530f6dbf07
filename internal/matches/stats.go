package matches

import "sort"

// StatLine is one contributor's tally within a team sheet.
type StatLine struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TeamSheet buckets scorers and assisters for one side of a match.
type TeamSheet struct {
	Team    string     `json:"team"`
	Scorers []StatLine `json:"scorers"`
	Assists []StatLine `json:"assists"`
}

// MatchStats is the per-match attribution, keyed by home and away sheets.
type MatchStats struct {
	Home TeamSheet `json:"home"`
	Away TeamSheet `json:"away"`
}

// AttributeStats buckets contributions into home and away team sheets. The
// club's side of the pitch comes from the match record itself: contributions
// marked CLUB land on whichever sheet carries clubName, OPPONENT ones on the
// other. Lines with zero goals and zero assists are dropped.
func AttributeStats(m Match, clubName string, contributions []Contribution) MatchStats {
	clubIsHome := m.HomeTeam == clubName

	home := sheetBuilder{team: m.HomeTeam}
	away := sheetBuilder{team: m.AwayTeam}

	for _, c := range contributions {
		clubSide := c.Side == SideClub
		target := &away
		if clubSide == clubIsHome {
			target = &home
		}
		target.add(c)
	}

	return MatchStats{Home: home.sheet(), Away: away.sheet()}
}

type sheetBuilder struct {
	team    string
	goals   map[string]int
	assists map[string]int
}

func (b *sheetBuilder) add(c Contribution) {
	if c.Goals > 0 {
		if b.goals == nil {
			b.goals = make(map[string]int)
		}
		b.goals[c.Name] += c.Goals
	}
	if c.Assists > 0 {
		if b.assists == nil {
			b.assists = make(map[string]int)
		}
		b.assists[c.Name] += c.Assists
	}
}

func (b *sheetBuilder) sheet() TeamSheet {
	return TeamSheet{
		Team:    b.team,
		Scorers: sortedLines(b.goals),
		Assists: sortedLines(b.assists),
	}
}

func sortedLines(tallies map[string]int) []StatLine {
	if len(tallies) == 0 {
		return nil
	}
	lines := make([]StatLine, 0, len(tallies))
	for name, count := range tallies {
		lines = append(lines, StatLine{Name: name, Count: count})
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Count != lines[j].Count {
			return lines[i].Count > lines[j].Count
		}
		return lines[i].Name < lines[j].Name
	})
	return lines
}

// AttributedGoals sums a sheet's scorer tallies, for cross-checking against
// the entered score.
func (s TeamSheet) AttributedGoals() int {
	var total int
	for _, line := range s.Scorers {
		total += line.Count
	}
	return total
}
