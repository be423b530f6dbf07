package matches

import (
	"time"
)

// MatchKind partitions fixtures; only championship matches feed standings.
type MatchKind string

const (
	KindChampionship MatchKind = "CHAMPIONSHIP"
	KindFriendly     MatchKind = "FRIENDLY"
	KindCup          MatchKind = "CUP"
)

// Valid reports whether the kind is known.
func (k MatchKind) Valid() bool {
	return k == KindChampionship || k == KindFriendly || k == KindCup
}

// Match is a fixture from the club's calendar. Scores are pointers; a match
// with either score absent has no result yet. HomeTeam and AwayTeam hold
// display names; OpponentID is the stable reference into the opponents
// roster, so renaming an opponent does not fracture history.
type Match struct {
	ID         int64     `json:"id"`
	Category   string    `json:"category"`
	Kind       MatchKind `json:"kind"`
	OpponentID *int64    `json:"opponent_id,omitempty"`
	HomeTeam   string    `json:"home_team"`
	AwayTeam   string    `json:"away_team"`
	HomeScore  *int      `json:"home_score"`
	AwayScore  *int      `json:"away_score"`
	Location   string    `json:"location"`
	KickoffAt  time.Time `json:"kickoff_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Played reports whether both scores have been entered.
func (m Match) Played() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}

// Side says which team a contributor played for.
type Side string

const (
	SideClub     Side = "CLUB"
	SideOpponent Side = "OPPONENT"
)

// Contribution records one person's goals and assists in a match. Club
// players are referenced by PlayerID; opponent contributors only carry a
// free-text name.
type Contribution struct {
	ID       int64  `json:"id"`
	MatchID  int64  `json:"match_id"`
	PlayerID *int64 `json:"player_id,omitempty"`
	Name     string `json:"name"`
	Side     Side   `json:"side"`
	Goals    int    `json:"goals"`
	Assists  int    `json:"assists"`
}
