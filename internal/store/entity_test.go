package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giaphaapp/giapha-server/internal/domain"
	"github.com/giaphaapp/giapha-server/internal/errors"
	"github.com/giaphaapp/giapha-server/internal/id"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newTestPerson(name string, tier domain.Tier) *domain.Person {
	p := &domain.Person{
		FullName:   name,
		Generation: 3,
		Living:     true,
		Tier:       tier,
	}
	p.ID = id.MustGenerate("per")
	p.InitTimestamps()
	return p
}

func TestEntity_CreateGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := newTestPerson("Nguyễn Văn Bình", domain.TierMembers)
	require.NoError(t, s.Persons.Create(ctx, p.ID, p))

	got, err := s.Persons.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.FullName, got.FullName)
	assert.Equal(t, domain.TierMembers, got.Tier)
}

func TestEntity_CreateDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := newTestPerson("Nguyễn Văn Bình", domain.TierMembers)
	require.NoError(t, s.Persons.Create(ctx, p.ID, p))

	err := s.Persons.Create(ctx, p.ID, p)
	assert.ErrorIs(t, err, errors.ErrAlreadyExists)
}

func TestEntity_GetMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Persons.Get(context.Background(), "per-missing")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestEntity_UpdateMaintainsIndexes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := &domain.User{Email: "binh@example.com", Role: domain.RoleMember, DisplayName: "Bình"}
	u.ID = id.MustGenerate("usr")
	u.InitTimestamps()
	require.NoError(t, s.Users.Create(ctx, u.ID, u))

	u.Email = "moved@example.com"
	require.NoError(t, s.Users.Update(ctx, u.ID, u))

	_, err := s.Users.GetByIndex(ctx, "email", "binh@example.com")
	assert.ErrorIs(t, err, errors.ErrNotFound, "stale index entry should be gone")

	got, err := s.Users.GetByIndex(ctx, "email", "MOVED@EXAMPLE.COM")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestEntity_DeleteIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := newTestPerson("Trần Hưng", domain.TierPublic)
	require.NoError(t, s.Persons.Create(ctx, p.ID, p))

	require.NoError(t, s.Persons.Delete(ctx, p.ID))
	require.NoError(t, s.Persons.Delete(ctx, p.ID))

	_, err := s.Persons.Get(ctx, p.ID)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestEntity_ListSkipsIndexEntries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"Lê Lợi", "Lê Lai", "Nguyễn Trãi"} {
		p := newTestPerson(name, domain.TierMembers)
		require.NoError(t, s.Persons.Create(ctx, p.ID, p))
	}

	persons, err := s.Persons.List(ctx)
	require.NoError(t, err)
	assert.Len(t, persons, 3)
}

func TestSearchPersonsByName_DiacriticInsensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	binh := newTestPerson("Nguyễn Văn Bình", domain.TierMembers)
	require.NoError(t, s.Persons.Create(ctx, binh.ID, binh))
	hoa := newTestPerson("Nguyễn Thị Hoa", domain.TierMembers)
	require.NoError(t, s.Persons.Create(ctx, hoa.ID, hoa))
	le := newTestPerson("Lê Lợi", domain.TierPublic)
	require.NoError(t, s.Persons.Create(ctx, le.ID, le))

	got, err := s.SearchPersonsByName(ctx, "nguyen")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = s.SearchPersonsByName(ctx, "Nguyễn Văn")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, binh.ID, got[0].ID)

	got, err = s.SearchPersonsByName(ctx, "pham")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchPersonsByName_SameFoldedName(t *testing.T) {
	// Two relatives whose names fold identically must both be indexed.
	s := newTestStore(t)
	ctx := context.Background()

	a := newTestPerson("Nguyễn Văn Bình", domain.TierMembers)
	require.NoError(t, s.Persons.Create(ctx, a.ID, a))
	b := newTestPerson("Nguyễn Văn Bính", domain.TierMembers)
	require.NoError(t, s.Persons.Create(ctx, b.ID, b))

	got, err := s.SearchPersonsByName(ctx, "nguyen van binh")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
