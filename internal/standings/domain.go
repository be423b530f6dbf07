package standings

// MatchResult is the slice of a match the standings engine needs. Scores are
// pointers: a match with either score absent has not been played yet.
type MatchResult struct {
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	HomeScore *int   `json:"home_score"`
	AwayScore *int   `json:"away_score"`
}

// TeamStats accumulates one team's line in the table. Teams are keyed by
// display name; see the opponents roster for the stable identifiers attached
// to them.
type TeamStats struct {
	Team           string `json:"team"`
	Played         int    `json:"played"`
	Wins           int    `json:"wins"`
	Draws          int    `json:"draws"`
	Losses         int    `json:"losses"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
	Points         int    `json:"points"`
}

// Table is a ranked league table for one category.
type Table struct {
	Category       string      `json:"category"`
	Rows           []TeamStats `json:"rows"`
	SkippedMatches int         `json:"skipped_matches,omitempty"`
}
