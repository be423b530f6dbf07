package players

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vestiaire-fc/vestiaire/internal/platform/httpx"
	"github.com/vestiaire-fc/vestiaire/internal/roster/shared"
)

type memoryRepo struct {
	nextID  int64
	players map[int64]Player
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1, players: map[int64]Player{}}
}

func (r *memoryRepo) List(_ context.Context, filters shared.ListFilters) ([]Player, int, error) {
	var out []Player
	for _, p := range r.players {
		if filters.Category != "" && p.Category != filters.Category {
			continue
		}
		if filters.Search != "" && !strings.Contains(strings.ToLower(p.FullName), strings.ToLower(filters.Search)) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, len(out), nil
}

func (r *memoryRepo) Get(_ context.Context, id int64) (Player, error) {
	p, ok := r.players[id]
	if !ok {
		return Player{}, httpx.ErrNotFound
	}
	return p, nil
}

func (r *memoryRepo) Create(_ context.Context, p Player) (Player, error) {
	for _, existing := range r.players {
		if existing.LicenseNumber != "" && existing.LicenseNumber == p.LicenseNumber {
			return Player{}, httpx.ErrDuplicate
		}
	}
	p.ID = r.nextID
	r.nextID++
	r.players[p.ID] = p
	return p, nil
}

func (r *memoryRepo) Update(_ context.Context, id int64, p Player) error {
	if _, ok := r.players[id]; !ok {
		return httpx.ErrNotFound
	}
	p.ID = id
	r.players[id] = p
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.players[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(r.players, id)
	return nil
}

func TestServiceCreateValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryRepo())

	_, err := svc.Create(ctx, Player{Category: "U15"})
	require.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.Create(ctx, Player{FullName: "Karim Aït"})
	require.ErrorIs(t, err, httpx.ErrValidation)

	p, err := svc.Create(ctx, Player{FullName: "Karim Aït", Category: "U15", Active: true})
	require.NoError(t, err)
	require.NotZero(t, p.ID)
}

func TestServiceDuplicateLicense(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryRepo())

	_, err := svc.Create(ctx, Player{FullName: "Karim Aït", Category: "U15", LicenseNumber: "FFF-123"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, Player{FullName: "Autre Joueur", Category: "U15", LicenseNumber: "FFF-123"})
	require.ErrorIs(t, err, httpx.ErrDuplicate)
}

func TestServiceListFiltersByCategory(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryRepo())

	_, err := svc.Create(ctx, Player{FullName: "Karim Aït", Category: "U15"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, Player{FullName: "Lucas Bernard", Category: "U17"})
	require.NoError(t, err)

	out, total, err := svc.List(ctx, shared.ListFilters{Category: "U15"})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, "Karim Aït", out[0].FullName)
}

func TestServiceGetAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryRepo())

	_, err := svc.Get(ctx, 0)
	require.ErrorIs(t, err, httpx.ErrValidation)

	p, err := svc.Create(ctx, Player{FullName: "Karim Aït", Category: "U15"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, p.FullName, got.FullName)

	require.NoError(t, svc.Delete(ctx, p.ID))
	_, err = svc.Get(ctx, p.ID)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}
