package matches

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vestiaire-fc/vestiaire/internal/platform/httpx"
)

type memoryMatchRepo struct {
	nextID   int64
	matches  map[int64]Match
	contribs map[int64][]Contribution
}

func newMemoryMatchRepo() *memoryMatchRepo {
	return &memoryMatchRepo{nextID: 1, matches: map[int64]Match{}, contribs: map[int64][]Contribution{}}
}

func (r *memoryMatchRepo) List(_ context.Context, filter ListFilter) ([]Match, error) {
	var out []Match
	for _, m := range r.matches {
		if filter.Category != "" && m.Category != filter.Category {
			continue
		}
		if filter.Kind != "" && m.Kind != filter.Kind {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *memoryMatchRepo) Get(_ context.Context, id int64) (*Match, error) {
	m, ok := r.matches[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return &m, nil
}

func (r *memoryMatchRepo) Create(_ context.Context, m Match) (*Match, error) {
	m.ID = r.nextID
	r.nextID++
	r.matches[m.ID] = m
	return &m, nil
}

func (r *memoryMatchRepo) Update(_ context.Context, m Match) error {
	if _, ok := r.matches[m.ID]; !ok {
		return httpx.ErrNotFound
	}
	r.matches[m.ID] = m
	return nil
}

func (r *memoryMatchRepo) SetResult(_ context.Context, id int64, home, away int) error {
	m, ok := r.matches[id]
	if !ok {
		return httpx.ErrNotFound
	}
	m.HomeScore = &home
	m.AwayScore = &away
	r.matches[id] = m
	return nil
}

func (r *memoryMatchRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.matches[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(r.matches, id)
	delete(r.contribs, id)
	return nil
}

func (r *memoryMatchRepo) AddContribution(_ context.Context, c Contribution) (*Contribution, error) {
	c.ID = int64(len(r.contribs[c.MatchID]) + 1)
	r.contribs[c.MatchID] = append(r.contribs[c.MatchID], c)
	return &c, nil
}

func (r *memoryMatchRepo) ListContributions(_ context.Context, matchID int64) ([]Contribution, error) {
	return r.contribs[matchID], nil
}

type fakeNotifier struct {
	invalidations int
	warmups       int
}

func (f *fakeNotifier) Invalidate(context.Context) error { f.invalidations++; return nil }

func (f *fakeNotifier) EnqueueStandingsWarmup(context.Context) error { f.warmups++; return nil }

func newMatchService(repo RepositoryPort, notifier *fakeNotifier) *Service {
	return NewService(repo, notifier, notifier, slog.Default(), "Vestiaire FC")
}

func baseInput(kind MatchKind) CreateInput {
	return CreateInput{
		Category:  "U15",
		Kind:      kind,
		HomeTeam:  "Vestiaire FC",
		AwayTeam:  "AS Rivale",
		KickoffAt: time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC),
	}
}

func TestServiceCreateValidation(t *testing.T) {
	ctx := context.Background()
	svc := newMatchService(newMemoryMatchRepo(), &fakeNotifier{})

	_, err := svc.Create(ctx, CreateInput{})
	require.ErrorIs(t, err, httpx.ErrValidation)

	in := baseInput(KindChampionship)
	in.AwayTeam = in.HomeTeam
	_, err = svc.Create(ctx, in)
	require.ErrorIs(t, err, httpx.ErrValidation)

	in = baseInput(KindChampionship)
	in.HomeTeam = "FC Autre"
	_, err = svc.Create(ctx, in)
	require.ErrorIs(t, err, httpx.ErrValidation, "club must take part")

	in = baseInput(MatchKind("GALA"))
	_, err = svc.Create(ctx, in)
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestServiceEnterResultChampionshipRefreshesStandings(t *testing.T) {
	ctx := context.Background()
	notifier := &fakeNotifier{}
	svc := newMatchService(newMemoryMatchRepo(), notifier)

	m, err := svc.Create(ctx, baseInput(KindChampionship))
	require.NoError(t, err)

	updated, err := svc.EnterResult(ctx, m.ID, 2, 1)
	require.NoError(t, err)
	require.True(t, updated.Played())
	require.Equal(t, 2, *updated.HomeScore)
	require.Equal(t, 1, *updated.AwayScore)
	require.Equal(t, 1, notifier.invalidations)
	require.Equal(t, 1, notifier.warmups)
}

func TestServiceEnterResultFriendlyLeavesStandingsAlone(t *testing.T) {
	ctx := context.Background()
	notifier := &fakeNotifier{}
	svc := newMatchService(newMemoryMatchRepo(), notifier)

	m, err := svc.Create(ctx, baseInput(KindFriendly))
	require.NoError(t, err)

	_, err = svc.EnterResult(ctx, m.ID, 0, 3)
	require.NoError(t, err)
	require.Zero(t, notifier.invalidations)
	require.Zero(t, notifier.warmups)
}

func TestServiceEnterResultRejectsNegativeScores(t *testing.T) {
	ctx := context.Background()
	svc := newMatchService(newMemoryMatchRepo(), &fakeNotifier{})

	m, err := svc.Create(ctx, baseInput(KindChampionship))
	require.NoError(t, err)

	_, err = svc.EnterResult(ctx, m.ID, -1, 0)
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestServiceContributionsNeedResultFirst(t *testing.T) {
	ctx := context.Background()
	svc := newMatchService(newMemoryMatchRepo(), &fakeNotifier{})

	m, err := svc.Create(ctx, baseInput(KindChampionship))
	require.NoError(t, err)

	contrib := Contribution{Name: "Karim Aït", Side: SideClub, Goals: 1}
	_, err = svc.AddContribution(ctx, m.ID, contrib)
	require.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.EnterResult(ctx, m.ID, 1, 0)
	require.NoError(t, err)

	saved, err := svc.AddContribution(ctx, m.ID, contrib)
	require.NoError(t, err)
	require.Equal(t, m.ID, saved.MatchID)

	_, err = svc.AddContribution(ctx, m.ID, Contribution{Name: "Nul", Side: SideClub})
	require.ErrorIs(t, err, httpx.ErrValidation, "zero goals and assists")
}

func TestServiceStatsBucketsBySide(t *testing.T) {
	ctx := context.Background()
	svc := newMatchService(newMemoryMatchRepo(), &fakeNotifier{})

	m, err := svc.Create(ctx, baseInput(KindChampionship))
	require.NoError(t, err)
	_, err = svc.EnterResult(ctx, m.ID, 2, 1)
	require.NoError(t, err)

	_, err = svc.AddContribution(ctx, m.ID, Contribution{Name: "Karim Aït", Side: SideClub, Goals: 2})
	require.NoError(t, err)
	_, err = svc.AddContribution(ctx, m.ID, Contribution{Name: "Joueur Rival", Side: SideOpponent, Goals: 1})
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, m.ID)
	require.NoError(t, err)
	require.Equal(t, "Vestiaire FC", stats.Home.Team)
	require.Len(t, stats.Home.Scorers, 1)
	require.Equal(t, 2, stats.Home.Scorers[0].Count)
	require.Len(t, stats.Away.Scorers, 1)
}

func TestServiceUpdateReclassifiedChampionshipRefreshesStandings(t *testing.T) {
	ctx := context.Background()
	notifier := &fakeNotifier{}
	svc := newMatchService(newMemoryMatchRepo(), notifier)

	m, err := svc.Create(ctx, baseInput(KindChampionship))
	require.NoError(t, err)
	_, err = svc.EnterResult(ctx, m.ID, 2, 1)
	require.NoError(t, err)
	require.Equal(t, 1, notifier.invalidations)

	// Downgrading a played championship match to a friendly removes it
	// from the table, so the cache must be dropped again.
	updated, err := svc.Update(ctx, m.ID, baseInput(KindFriendly))
	require.NoError(t, err)
	require.Equal(t, KindFriendly, updated.Kind)
	require.Equal(t, 2, notifier.invalidations)
	require.Equal(t, 2, notifier.warmups)

	// Friendly to friendly edits leave the table alone.
	in := baseInput(KindFriendly)
	in.Location = "Stade Rival"
	_, err = svc.Update(ctx, m.ID, in)
	require.NoError(t, err)
	require.Equal(t, 2, notifier.invalidations)

	// Promoting it back to a championship fixture counts again.
	_, err = svc.Update(ctx, m.ID, baseInput(KindChampionship))
	require.NoError(t, err)
	require.Equal(t, 3, notifier.invalidations)
}

func TestServiceDeleteChampionshipRefreshesStandings(t *testing.T) {
	ctx := context.Background()
	notifier := &fakeNotifier{}
	svc := newMatchService(newMemoryMatchRepo(), notifier)

	m, err := svc.Create(ctx, baseInput(KindChampionship))
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, m.ID))
	require.Equal(t, 1, notifier.invalidations)

	err = svc.Delete(ctx, m.ID)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}
