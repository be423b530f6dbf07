package matches

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vestiaire-fc/vestiaire/internal/platform/httpx"
)

// RepositoryPort is the persistence contract the service relies on.
type RepositoryPort interface {
	List(ctx context.Context, filter ListFilter) ([]Match, error)
	Get(ctx context.Context, id int64) (*Match, error)
	Create(ctx context.Context, m Match) (*Match, error)
	Update(ctx context.Context, m Match) error
	SetResult(ctx context.Context, id int64, homeScore, awayScore int) error
	Delete(ctx context.Context, id int64) error
	AddContribution(ctx context.Context, c Contribution) (*Contribution, error)
	ListContributions(ctx context.Context, matchID int64) ([]Contribution, error)
}

// StandingsNotifier is told when championship results changed so cached
// tables can be rebuilt.
type StandingsNotifier interface {
	Invalidate(ctx context.Context) error
}

// WarmupEnqueuer schedules a background standings rebuild.
type WarmupEnqueuer interface {
	EnqueueStandingsWarmup(ctx context.Context) error
}

// Service implements match scheduling, results and contribution stats.
type Service struct {
	repo      RepositoryPort
	standings StandingsNotifier
	enqueuer  WarmupEnqueuer
	logger    *slog.Logger
	clubName  string
}

// NewService constructs a match service. standings and enqueuer may be nil.
func NewService(repo RepositoryPort, standings StandingsNotifier, enqueuer WarmupEnqueuer, logger *slog.Logger, clubName string) *Service {
	return &Service{repo: repo, standings: standings, enqueuer: enqueuer, logger: logger, clubName: clubName}
}

// CreateInput carries the fields of a new fixture.
type CreateInput struct {
	Category   string
	Kind       MatchKind
	OpponentID *int64
	HomeTeam   string
	AwayTeam   string
	Location   string
	KickoffAt  time.Time
}

func (in CreateInput) validate(clubName string) error {
	if strings.TrimSpace(in.Category) == "" {
		return fmt.Errorf("%w: category is required", httpx.ErrValidation)
	}
	if !in.Kind.Valid() {
		return fmt.Errorf("%w: unknown match kind %q", httpx.ErrValidation, in.Kind)
	}
	home := strings.TrimSpace(in.HomeTeam)
	away := strings.TrimSpace(in.AwayTeam)
	if home == "" || away == "" {
		return fmt.Errorf("%w: both team names are required", httpx.ErrValidation)
	}
	if home == away {
		return fmt.Errorf("%w: a team cannot play itself", httpx.ErrValidation)
	}
	if home != clubName && away != clubName {
		return fmt.Errorf("%w: %s must take part in the fixture", httpx.ErrValidation, clubName)
	}
	if in.KickoffAt.IsZero() {
		return fmt.Errorf("%w: kickoff time is required", httpx.ErrValidation)
	}
	return nil
}

// Create schedules a new match.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Match, error) {
	if err := in.validate(s.clubName); err != nil {
		return nil, err
	}
	now := time.Now()
	m := Match{
		Category:   strings.TrimSpace(in.Category),
		Kind:       in.Kind,
		OpponentID: in.OpponentID,
		HomeTeam:   strings.TrimSpace(in.HomeTeam),
		AwayTeam:   strings.TrimSpace(in.AwayTeam),
		Location:   strings.TrimSpace(in.Location),
		KickoffAt:  in.KickoffAt,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return s.repo.Create(ctx, m)
}

// List returns matches matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Match, error) {
	if filter.Kind != "" && !filter.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown match kind %q", httpx.ErrValidation, filter.Kind)
	}
	return s.repo.List(ctx, filter)
}

// Get fetches a single match.
func (s *Service) Get(ctx context.Context, id int64) (*Match, error) {
	return s.repo.Get(ctx, id)
}

// Update edits the schedule of an existing match. Scores are changed
// through EnterResult only.
func (s *Service) Update(ctx context.Context, id int64, in CreateInput) (*Match, error) {
	if err := in.validate(s.clubName); err != nil {
		return nil, err
	}
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	prevKind := m.Kind
	m.Category = strings.TrimSpace(in.Category)
	m.Kind = in.Kind
	m.OpponentID = in.OpponentID
	m.HomeTeam = strings.TrimSpace(in.HomeTeam)
	m.AwayTeam = strings.TrimSpace(in.AwayTeam)
	m.Location = strings.TrimSpace(in.Location)
	m.KickoffAt = in.KickoffAt
	if err := s.repo.Update(ctx, *m); err != nil {
		return nil, err
	}
	// Reclassifying away from championship must also drop the cached table.
	s.refreshStandings(ctx, prevKind, m.Kind)
	return m, nil
}

// EnterResult records the final score of a match. Championship results
// invalidate the cached standings and schedule a warmup rebuild.
func (s *Service) EnterResult(ctx context.Context, id int64, homeScore, awayScore int) (*Match, error) {
	if homeScore < 0 || awayScore < 0 {
		return nil, fmt.Errorf("%w: scores cannot be negative", httpx.ErrValidation)
	}
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetResult(ctx, id, homeScore, awayScore); err != nil {
		return nil, err
	}
	m.HomeScore = &homeScore
	m.AwayScore = &awayScore
	s.refreshStandings(ctx, m.Kind)
	return m, nil
}

// Delete removes a match and its contributions.
func (s *Service) Delete(ctx context.Context, id int64) error {
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.refreshStandings(ctx, m.Kind)
	return nil
}

// AddContribution records a scorer or assister on a played match.
func (s *Service) AddContribution(ctx context.Context, matchID int64, c Contribution) (*Contribution, error) {
	if strings.TrimSpace(c.Name) == "" {
		return nil, fmt.Errorf("%w: contributor name is required", httpx.ErrValidation)
	}
	if c.Side != SideClub && c.Side != SideOpponent {
		return nil, fmt.Errorf("%w: unknown side %q", httpx.ErrValidation, c.Side)
	}
	if c.Goals < 0 || c.Assists < 0 {
		return nil, fmt.Errorf("%w: goals and assists cannot be negative", httpx.ErrValidation)
	}
	if c.Goals == 0 && c.Assists == 0 {
		return nil, fmt.Errorf("%w: a contribution needs at least one goal or assist", httpx.ErrValidation)
	}
	m, err := s.repo.Get(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !m.Played() {
		return nil, fmt.Errorf("%w: result must be entered before adding contributions", httpx.ErrValidation)
	}
	c.MatchID = matchID
	c.Name = strings.TrimSpace(c.Name)
	return s.repo.AddContribution(ctx, c)
}

// Stats assembles the per-team scorer and assist sheets of a match.
func (s *Service) Stats(ctx context.Context, matchID int64) (*MatchStats, error) {
	m, err := s.repo.Get(ctx, matchID)
	if err != nil {
		return nil, err
	}
	contribs, err := s.repo.ListContributions(ctx, matchID)
	if err != nil {
		return nil, err
	}
	stats := AttributeStats(*m, s.clubName, contribs)
	return &stats, nil
}

func (s *Service) refreshStandings(ctx context.Context, kinds ...MatchKind) {
	championship := false
	for _, k := range kinds {
		if k == KindChampionship {
			championship = true
		}
	}
	if !championship {
		return
	}
	if s.standings != nil {
		if err := s.standings.Invalidate(ctx); err != nil {
			s.logger.Warn("standings invalidation failed", "error", err)
		}
	}
	if s.enqueuer != nil {
		if err := s.enqueuer.EnqueueStandingsWarmup(ctx); err != nil {
			s.logger.Warn("standings warmup enqueue failed", "error", err)
		}
	}
}
