package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/giaphaapp/giapha-server/internal/domain"
)

// permissiveChecker allows every request without restriction. Used to prove
// the harness detects the leaks a broken engine would produce.
type permissiveChecker struct{}

func (permissiveChecker) CheckAccess(Actor, Classified) Decision { return AllowAll() }

func TestEvaluateCorpus_DetectsContactLeak(t *testing.T) {
	entries := []CorpusEntry{
		{ID: "per-1", Classified: Classified{Kind: KindPerson, Tier: domain.TierPublic, HasContact: true, Living: true}},
	}
	actors := []Actor{Anonymous()}

	violations := EvaluateCorpus(permissiveChecker{}, entries, actors)

	assert.Len(t, violations, len(ContactFields))
	for _, v := range violations {
		assert.Equal(t, ActorAnonymous, v.Actor)
		assert.Equal(t, "per-1", v.RecordID)
		assert.True(t, ContactFields.Has(v.Field))
	}
}

func TestEvaluateCorpus_DetectsTier2RowLeak(t *testing.T) {
	entries := []CorpusEntry{
		{ID: "per-2", Classified: Classified{Kind: KindPerson, Tier: domain.TierPrivate}},
	}

	violations := EvaluateCorpus(permissiveChecker{}, entries, []Actor{Member("usr-m")})

	assert.Len(t, violations, 1)
	assert.Equal(t, "tier-2 record visible to non-admin actor", violations[0].Reason)
	assert.Empty(t, violations[0].Field, "row-level violation carries no field")
}

func TestEvaluateCorpus_AdminAccessIsNotAViolation(t *testing.T) {
	entries := []CorpusEntry{
		{ID: "per-3", Classified: Classified{Kind: KindPerson, Tier: domain.TierPrivate, HasContact: true}},
	}

	violations := EvaluateCorpus(permissiveChecker{}, entries, []Actor{Admin("usr-a")})
	assert.Empty(t, violations)
}

func TestEvaluateCorpus_InheritingPublicRecordsAreClean(t *testing.T) {
	// Events and media inheriting a public, contact-free person must pass the
	// harness against the real engine; their unrestricted-looking decisions
	// still hide the contact bundle.
	entries := []CorpusEntry{
		{ID: "evt-1", Classified: Classified{Kind: KindEvent, Tier: domain.TierPublic, HasContact: false}},
		{ID: "med-1", Classified: Classified{Kind: KindMedia, Tier: domain.TierPublic, HasContact: false}},
	}
	actors := []Actor{Anonymous(), Member("usr-m"), Admin("usr-a")}

	violations := EvaluateCorpus(New(DefaultConfig()), entries, actors)
	assert.Empty(t, violations)
}

func TestEvaluateCorpus_StructuralAndProfileRowsExemptFromTierRule(t *testing.T) {
	entries := []CorpusEntry{
		{ID: "fam-1", Classified: Classified{Kind: KindFamilyUnion, Structural: true}},
		{ID: "usr-1", Classified: Classified{Kind: KindProfile}},
	}

	violations := EvaluateCorpus(New(DefaultConfig()), entries, []Actor{Member("usr-m")})
	assert.Empty(t, violations)
}
