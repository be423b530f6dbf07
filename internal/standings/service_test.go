package standings

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/vestiaire-fc/vestiaire/internal/platform/httpx"
)

type memoryStandingsRepo struct {
	matches map[string][]MatchResult
	calls   int
}

func (r *memoryStandingsRepo) ListChampionshipMatches(ctx context.Context, category string) ([]MatchResult, error) {
	r.calls++
	return r.matches[category], nil
}

func (r *memoryStandingsRepo) ListCategories(ctx context.Context) ([]string, error) {
	var out []string
	for c := range r.matches {
		out = append(out, c)
	}
	return out, nil
}

func newCachedService(t *testing.T, repo *memoryStandingsRepo) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewService(repo, NewCache(client, time.Minute), slog.Default(), "Vestiaire FC")
}

func TestTableEndToEnd(t *testing.T) {
	repo := &memoryStandingsRepo{matches: map[string][]MatchResult{
		"U15": {
			{HomeTeam: "Vestiaire FC", AwayTeam: "Opponent X", HomeScore: score(2), AwayScore: score(1)},
			{HomeTeam: "Vestiaire FC", AwayTeam: "Opponent Y", HomeScore: score(0), AwayScore: score(0)},
		},
	}}
	svc := newCachedService(t, repo)

	table, err := svc.Table(context.Background(), "U15")
	require.NoError(t, err)
	require.Equal(t, "U15", table.Category)
	require.Len(t, table.Rows, 3)

	club := table.Rows[0]
	require.Equal(t, "Vestiaire FC", club.Team)
	require.Equal(t, 2, club.Played)
	require.Equal(t, 1, club.Wins)
	require.Equal(t, 1, club.Draws)
	require.Equal(t, 0, club.Losses)
	require.Equal(t, 2, club.GoalsFor)
	require.Equal(t, 1, club.GoalsAgainst)
	require.Equal(t, 4, club.Points)

	require.Equal(t, "Opponent Y", table.Rows[1].Team)
	require.Equal(t, 1, table.Rows[1].Points)
	require.Equal(t, "Opponent X", table.Rows[2].Team)
	require.Equal(t, 0, table.Rows[2].Points)
}

func TestTableUsesCache(t *testing.T) {
	repo := &memoryStandingsRepo{matches: map[string][]MatchResult{"U15": {}}}
	svc := newCachedService(t, repo)
	ctx := context.Background()

	_, err := svc.Table(ctx, "U15")
	require.NoError(t, err)
	_, err = svc.Table(ctx, "U15")
	require.NoError(t, err)
	require.Equal(t, 1, repo.calls)
}

func TestInvalidateForcesRecompute(t *testing.T) {
	repo := &memoryStandingsRepo{matches: map[string][]MatchResult{"U15": {}}}
	svc := newCachedService(t, repo)
	ctx := context.Background()

	_, err := svc.Table(ctx, "U15")
	require.NoError(t, err)
	require.NoError(t, svc.Invalidate(ctx))
	_, err = svc.Table(ctx, "U15")
	require.NoError(t, err)
	require.Equal(t, 2, repo.calls)
}

func TestTableRejectsEmptyCategory(t *testing.T) {
	svc := NewService(&memoryStandingsRepo{}, nil, slog.Default(), "Vestiaire FC")
	_, err := svc.Table(context.Background(), "  ")
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestWarmUpCachesAllCategories(t *testing.T) {
	repo := &memoryStandingsRepo{matches: map[string][]MatchResult{"U15": {}, "U17": {}}}
	svc := newCachedService(t, repo)
	ctx := context.Background()

	require.NoError(t, svc.WarmUp(ctx))
	calls := repo.calls
	_, err := svc.Table(ctx, "U15")
	require.NoError(t, err)
	_, err = svc.Table(ctx, "U17")
	require.NoError(t, err)
	require.Equal(t, calls, repo.calls)
}
