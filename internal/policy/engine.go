package policy

import (
	"fmt"

	"github.com/giaphaapp/giapha-server/internal/domain"
)

// Config is the versioned policy configuration an Engine is built from.
// It is passed in explicitly so tests can exercise multiple policy versions
// deterministically; there is no ambient policy state.
type Config struct {
	// Version identifies the schema-defaults revision in effect.
	Version int
	// DefaultTier is assigned to new persons created without an explicit
	// tier. Operators must opt into TierPublic.
	DefaultTier domain.Tier
}

// DefaultConfig returns the current production policy configuration.
func DefaultConfig() Config {
	return Config{
		Version:     1,
		DefaultTier: domain.TierMembers,
	}
}

// validate reports a configuration error, if any.
func (c Config) validate() error {
	if c.Version < 1 {
		return fmt.Errorf("policy version must be >= 1, got %d", c.Version)
	}
	if !c.DefaultTier.Valid() {
		return fmt.Errorf("default tier %d out of range", c.DefaultTier)
	}
	return nil
}

// Engine evaluates access decisions for classified records.
// It is pure and stateless after construction; a single Engine may be shared
// by all request handlers without synchronization.
type Engine struct {
	cfg Config
}

// New constructs an Engine from the given configuration.
// An invalid configuration is a programmer error and panics; it must be
// caught at startup, never at request time.
func New(cfg Config) *Engine {
	if err := cfg.validate(); err != nil {
		panic(fmt.Sprintf("policy: invalid configuration: %v", err))
	}
	return &Engine{cfg: cfg}
}

// Version returns the policy version the engine was built with.
func (e *Engine) Version() int {
	return e.cfg.Version
}

// DefaultTier returns the tier assigned to new persons created without an
// explicit tier.
func (e *Engine) DefaultTier() domain.Tier {
	return e.cfg.DefaultTier
}

// Visible field sets per audience. Admin decisions carry no restriction.
var (
	// personPublicFields is what an anonymous reader may see of a public
	// person: identity and genealogical facts only. The contact bundle and
	// the member-reserved biography/notes are excluded unconditionally, even
	// though an allowed record is already known to have no contact data.
	personPublicFields = NewFieldSet(
		FieldID, FieldFullName, FieldGeneration, FieldBranch, FieldLiving,
		FieldBirthDate, FieldDeathDate, FieldCreatedAt, FieldUpdatedAt,
	)

	// personMemberFields adds the contact bundle, biography, notes and the
	// tier itself for authenticated members.
	personMemberFields = personPublicFields.
				Union(ContactFields).
				Union(NewFieldSet(FieldBiography, FieldNotes, FieldTier))

	// profileMemberFields is what one authenticated user may see of
	// another's account. Email and account state are admin-only.
	profileMemberFields = NewFieldSet(
		FieldID, FieldDisplayName, FieldRole, FieldPersonID, FieldCreatedAt,
	)
)

// CheckAccess decides whether actor may read the classified record, and which
// fields are visible. Rules are evaluated in precedence order; the first match
// wins and anything unmatched is denied.
func (e *Engine) CheckAccess(actor Actor, c Classified) Decision {
	// An unknown kind can only come from a caller bug. Deny rather than
	// guess; construction-time validation keeps this out of production.
	if !c.Kind.Known() {
		return Deny()
	}

	// 1. Admins see everything, including tier-2 and contact fields.
	if actor.IsAdmin() {
		return AllowAll()
	}

	// 2. Profiles never gain a public row.
	if c.Kind == KindProfile {
		if actor.Authenticated() {
			return Allow(profileMemberFields)
		}
		return Deny()
	}

	// 3. Structural records are binary on authentication. No public access:
	// the family-graph topology of living members must not be crawlable.
	if c.Structural {
		if actor.Authenticated() {
			return AllowAll()
		}
		return Deny()
	}

	// 4. Person-classified records, including events and media that inherit
	// a person's classification.
	switch actor.Kind {
	case ActorAnonymous:
		// Conjunctive safety net: a public tier alone is not enough, the
		// record must also carry no contact data. A misconfigured tier-0
		// record with a phone number stays hidden from the open web.
		if c.Tier == domain.TierPublic && !c.HasContact {
			if c.Kind == KindPerson {
				return Allow(personPublicFields)
			}
			// Inheriting events and media carry no contact columns of their
			// own, but the contact exclusion holds unconditionally.
			return AllowExcept(ContactFields)
		}
		return Deny()

	case ActorMember:
		if c.Tier < domain.TierPrivate {
			if c.Kind == KindPerson {
				return Allow(personMemberFields)
			}
			return AllowAll()
		}
		return Deny()
	}

	// 5. Fail closed.
	return Deny()
}

// NeedsTightening reports whether the reclassification sweep must rewrite the
// person's tier: a living person marked public who has gained contact data.
// The rule only ever tightens; nothing here loosens a tier.
func NeedsTightening(p *domain.Person) bool {
	return p.Tier == domain.TierPublic && p.Living && p.HasContactData()
}

// NeedsTightening is exposed on the engine as well so audit tooling works
// against the same construction-scoped configuration.
func (e *Engine) NeedsTightening(p *domain.Person) bool {
	return NeedsTightening(p)
}
