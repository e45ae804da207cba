package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giaphaapp/giapha-server/internal/domain"
)

func TestPersonService_CreatePerson_DefaultTier(t *testing.T) {
	env := setupServiceTest(t)
	ctx := context.Background()

	p, err := env.persons.CreatePerson(ctx, CreatePersonRequest{
		FullName:   "Nguyễn Văn An",
		Generation: 3,
		Living:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, env.engine.DefaultTier(), p.Tier)
}

func TestPersonService_CreatePerson_ExplicitTier(t *testing.T) {
	env := setupServiceTest(t)
	ctx := context.Background()

	p, err := env.persons.CreatePerson(ctx, CreatePersonRequest{
		FullName:   "Nguyễn Văn Tổ",
		Generation: 1,
		Living:     false,
		Tier:       intPtr(0),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TierPublic, p.Tier)

	_, err = env.persons.CreatePerson(ctx, CreatePersonRequest{
		FullName:   "Bad Tier",
		Generation: 1,
		Tier:       intPtr(5),
	})
	assert.Error(t, err)
}

func TestPersonService_CreatePerson_TightensLivingPublicWithContact(t *testing.T) {
	env := setupServiceTest(t)
	ctx := context.Background()

	p, err := env.persons.CreatePerson(ctx, CreatePersonRequest{
		FullName:   "Nguyễn Thị Hoa",
		Generation: 4,
		Living:     true,
		Contact:    domain.ContactBundle{Email: "hoa@example.com"},
		Tier:       intPtr(0),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TierMembers, p.Tier)

	// A deceased person with archival contact data stays public
	deceased, err := env.persons.CreatePerson(ctx, CreatePersonRequest{
		FullName:   "Nguyễn Văn Xưa",
		Generation: 1,
		Living:     false,
		Contact:    domain.ContactBundle{Address: "Làng Đông, Hà Nam"},
		Tier:       intPtr(0),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TierPublic, deceased.Tier)
}

func TestPersonService_CreatePerson_GenerationBounds(t *testing.T) {
	env := setupServiceTest(t)
	ctx := context.Background()

	_, err := env.persons.CreatePerson(ctx, CreatePersonRequest{
		FullName:   "Too Deep",
		Generation: 21,
	})
	assert.Error(t, err)

	_, err = env.persons.CreatePerson(ctx, CreatePersonRequest{
		FullName:   "No Generation",
		Generation: 0,
	})
	assert.Error(t, err)
}

func TestPersonService_UpdateContact_Tightens(t *testing.T) {
	env := setupServiceTest(t)
	ctx := context.Background()

	p := createTestPerson(t, env, CreatePersonRequest{
		FullName: "Nguyễn Văn Sống", Generation: 4, Living: true, Tier: intPtr(0),
	})

	updated, err := env.persons.UpdateContact(ctx, p.ID, domain.ContactBundle{
		Phone: "+84 91 222 3333",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TierMembers, updated.Tier)

	// Clearing contact never loosens the tier back
	cleared, err := env.persons.UpdateContact(ctx, p.ID, domain.ContactBundle{})
	require.NoError(t, err)
	assert.Equal(t, domain.TierMembers, cleared.Tier)
}

func TestPersonService_SetTier(t *testing.T) {
	env := setupServiceTest(t)
	ctx := context.Background()

	p := createTestPerson(t, env, CreatePersonRequest{
		FullName: "Nguyễn Văn Chỉnh", Generation: 3, Living: true,
	})

	updated, err := env.persons.SetTier(ctx, p.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.TierPrivate, updated.Tier)

	_, err = env.persons.SetTier(ctx, p.ID, 7)
	assert.Error(t, err)

	_, err = env.persons.SetTier(ctx, "per-missing", 1)
	assert.Error(t, err)
}

func TestPersonService_UpdatePerson(t *testing.T) {
	env := setupServiceTest(t)
	ctx := context.Background()

	p := createTestPerson(t, env, CreatePersonRequest{
		FullName: "Nguyễn Văn Cũ", Generation: 3, Living: true,
	})

	updated, err := env.persons.UpdatePerson(ctx, p.ID, UpdatePersonRequest{
		FullName:   "Nguyễn Văn Mới",
		Generation: 3,
		Living:     false,
		DeathDate:  "2025-12-01",
		Biography:  "Updated biography.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Nguyễn Văn Mới", updated.FullName)
	assert.False(t, updated.Living)

	// The name index follows the rename
	results, err := env.store.SearchPersonsByName(ctx, "nguyen van moi")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, p.ID, results[0].ID)
}

func TestFamilyService_CreateUnion_ValidatesPartners(t *testing.T) {
	env := setupServiceTest(t)
	ctx := context.Background()

	_, err := env.family.CreateUnion(ctx, CreateUnionRequest{
		PartnerIDs: []string{"per-missing"},
	})
	assert.Error(t, err)

	_, err = env.family.CreateUnion(ctx, CreateUnionRequest{})
	assert.Error(t, err)
}

func TestFamilyService_CreateLink_ValidatesRefs(t *testing.T) {
	env := setupServiceTest(t)
	ctx := context.Background()

	child := createTestPerson(t, env, CreatePersonRequest{
		FullName: "Child", Generation: 3, Living: true,
	})

	_, err := env.family.CreateLink(ctx, CreateLinkRequest{
		UnionID: "fam-missing",
		ChildID: child.ID,
	})
	assert.Error(t, err)
}

func TestFamilyService_CreateEvent_ValidatesPerson(t *testing.T) {
	env := setupServiceTest(t)
	ctx := context.Background()

	_, err := env.family.CreateEvent(ctx, CreateEventRequest{
		Title:    "Memorial",
		PersonID: "per-missing",
	})
	assert.Error(t, err)

	_, err = env.family.CreateEvent(ctx, CreateEventRequest{
		Title: "Reunion",
		Month: 13,
	})
	assert.Error(t, err)
}
