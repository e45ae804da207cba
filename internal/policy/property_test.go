package policy

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giaphaapp/giapha-server/internal/domain"
)

// Randomized invariant checks over generated corpora. The generator is
// seeded so failures reproduce.

func randomPerson(rng *rand.Rand, i int) *domain.Person {
	p := &domain.Person{
		FullName:   fmt.Sprintf("Person %d", i),
		Generation: 1 + rng.Intn(domain.MaxGeneration),
		Branch:     rng.Intn(5),
		Living:     rng.Intn(2) == 0,
		Tier:       domain.Tier(rng.Intn(3)),
	}
	p.ID = fmt.Sprintf("per-%04d", i)

	if rng.Intn(2) == 0 {
		p.Contact.Phone = fmt.Sprintf("09%08d", rng.Intn(100000000))
	}
	if rng.Intn(3) == 0 {
		p.Contact.Email = fmt.Sprintf("p%d@example.com", i)
	}
	if rng.Intn(4) == 0 {
		p.Contact.Address = fmt.Sprintf("%d Lane", i)
	}
	if rng.Intn(2) == 0 {
		p.Biography = "biography text"
	}
	if rng.Intn(2) == 0 {
		p.Notes = "notes text"
	}
	return p
}

func randomCorpus(rng *rand.Rand, n int) []*domain.Person {
	persons := make([]*domain.Person, n)
	for i := range n {
		persons[i] = randomPerson(rng, i)
	}
	return persons
}

func TestProperty_NoContactLeakToAnonymous(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	e := New(DefaultConfig())

	for _, p := range randomCorpus(rng, 500) {
		d := e.CheckAccess(Anonymous(), ClassifyPerson(p))
		out := FilterFields(d, PersonFields(p))

		for f := range ContactFields {
			_, present := out[f]
			assert.False(t, present, "contact field %s leaked for %s (tier=%d living=%v)",
				f, p.ID, p.Tier, p.Living)
		}
	}
}

func TestProperty_TierMonotonicity(t *testing.T) {
	// If a member is denied, anonymous must be denied too: anonymous is
	// never the more permissive actor.
	rng := rand.New(rand.NewSource(2))
	e := New(DefaultConfig())

	for _, p := range randomCorpus(rng, 500) {
		c := ClassifyPerson(p)
		memberDenied := !e.CheckAccess(Member("usr-m"), c).Allowed
		if memberDenied {
			assert.False(t, e.CheckAccess(Anonymous(), c).Allowed,
				"anonymous allowed where member denied for %s", p.ID)
		}
	}
}

func TestProperty_AdminSuperset(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	e := New(DefaultConfig())

	actors := []Actor{Anonymous(), Member("usr-m")}

	for _, p := range randomCorpus(rng, 500) {
		c := ClassifyPerson(p)
		adminDecision := e.CheckAccess(Admin("usr-a"), c)
		fields := PersonFields(p)

		for _, actor := range actors {
			d := e.CheckAccess(actor, c)
			if !d.Allowed {
				continue
			}

			require.True(t, adminDecision.Allowed,
				"%s allowed but admin denied for %s", actor.Kind, p.ID)
			for f := range fields {
				if d.Visible(f) {
					assert.True(t, adminDecision.Visible(f),
						"field %s visible to %s but not admin for %s", f, actor.Kind, p.ID)
				}
			}
		}
	}
}

func TestProperty_ProfileIsolation(t *testing.T) {
	e := New(DefaultConfig())

	for i := range 100 {
		u := &domain.User{
			Role:   []domain.Role{domain.RoleMember, domain.RoleAdmin}[i%2],
			Status: []domain.UserStatus{"", domain.UserStatusActive, domain.UserStatusPending}[i%3],
		}
		u.ID = fmt.Sprintf("usr-%03d", i)

		assert.False(t, e.CheckAccess(Anonymous(), ClassifyProfile(u)).Allowed,
			"profile %s visible to anonymous", u.ID)
	}
}

func TestProperty_SweepIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(4))

	sweep := func(persons []*domain.Person) int {
		changed := 0
		for _, p := range persons {
			if NeedsTightening(p) {
				p.Tier = domain.TierMembers
				changed++
			}
		}
		return changed
	}

	persons := randomCorpus(rng, 500)

	first := sweep(persons)
	second := sweep(persons)

	assert.Positive(t, first, "seed corpus should contain tightenable persons")
	assert.Zero(t, second, "second sweep must be a no-op")

	// Sweeping only tightens.
	for _, p := range persons {
		if p.Living && p.HasContactData() {
			assert.GreaterOrEqual(t, p.Tier, domain.TierMembers, "person %s left public", p.ID)
		}
	}
}

func TestProperty_EngineCorpusHasNoViolations(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	e := New(DefaultConfig())

	entries := make([]CorpusEntry, 0, 900)
	for i, p := range randomCorpus(rng, 500) {
		c := ClassifyPerson(p)
		entries = append(entries, CorpusEntry{ID: p.ID, Classified: c})

		// Events and media inheriting this person's classification.
		if i%2 == 0 {
			inherited := c
			inherited.Kind = KindEvent
			entries = append(entries, CorpusEntry{
				ID:         fmt.Sprintf("evt-%04d", i),
				Classified: inherited,
			})
		}
		if i%3 == 0 {
			inherited := c
			inherited.Kind = KindMedia
			entries = append(entries, CorpusEntry{
				ID:         fmt.Sprintf("med-%04d", i),
				Classified: inherited,
			})
		}
	}
	for i := range 50 {
		entries = append(entries, CorpusEntry{
			ID:         fmt.Sprintf("fam-%03d", i),
			Classified: Classified{Kind: KindFamilyUnion, Structural: true},
		})
		u := &domain.User{Role: domain.RoleMember}
		u.ID = fmt.Sprintf("usr-%03d", i)
		entries = append(entries, CorpusEntry{ID: u.ID, Classified: ClassifyProfile(u)})
	}

	actors := []Actor{Anonymous(), Member("usr-m"), Admin("usr-a")}
	violations := EvaluateCorpus(e, entries, actors)
	assert.Empty(t, violations)
}
