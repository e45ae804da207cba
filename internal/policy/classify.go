package policy

import (
	"context"

	"github.com/giaphaapp/giapha-server/internal/domain"
)

// RecordKind identifies the table kind a record belongs to.
type RecordKind string

const (
	KindPerson          RecordKind = "person"
	KindFamilyUnion     RecordKind = "family_union"
	KindParentChildLink RecordKind = "parent_child_link"
	KindEvent           RecordKind = "event"
	KindMedia           RecordKind = "media"
	KindProfile         RecordKind = "profile"
)

// Known reports whether k is one of the defined record kinds.
func (k RecordKind) Known() bool {
	switch k {
	case KindPerson, KindFamilyUnion, KindParentChildLink, KindEvent, KindMedia, KindProfile:
		return true
	}
	return false
}

// Classified carries the derived predicates the engine decides on.
// For structural records Tier and HasContact are meaningless and left zero.
type Classified struct {
	Kind RecordKind

	// Structural marks relationship records with no tier of their own:
	// family unions, parent-child links, and events/media that reference no
	// person. Their visibility is binary on authentication.
	Structural bool

	Tier       domain.Tier
	HasContact bool
	Living     bool
}

// PersonResolver looks up the person a record references so classification can
// inherit that person's tier and contact flag.
type PersonResolver interface {
	PersonByID(ctx context.Context, id string) (*domain.Person, error)
}

// ClassifyPerson derives the decision predicates for a person record.
func ClassifyPerson(p *domain.Person) Classified {
	return Classified{
		Kind:       KindPerson,
		Tier:       p.Tier,
		HasContact: p.HasContactData(),
		Living:     p.Living,
	}
}

// ClassifyUnion classifies a family union. Unions are always structural.
func ClassifyUnion(_ *domain.FamilyUnion) Classified {
	return Classified{Kind: KindFamilyUnion, Structural: true}
}

// ClassifyLink classifies a parent-child link. Links are always structural.
func ClassifyLink(_ *domain.ParentChildLink) Classified {
	return Classified{Kind: KindParentChildLink, Structural: true}
}

// ClassifyProfile classifies a user account record.
func ClassifyProfile(_ *domain.User) Classified {
	return Classified{Kind: KindProfile}
}

// ClassifyEvent classifies a calendar event. An event referencing a person
// inherits that person's tier and contact flag; an unreferenced event is
// structural. A reference that cannot be resolved classifies as a private
// person so the failure stays closed.
func ClassifyEvent(ctx context.Context, e *domain.Event, persons PersonResolver) Classified {
	return inherit(ctx, KindEvent, e.PersonID, persons)
}

// ClassifyMedia classifies a media asset, with the same inheritance rule as
// events.
func ClassifyMedia(ctx context.Context, m *domain.MediaAsset, persons PersonResolver) Classified {
	return inherit(ctx, KindMedia, m.PersonID, persons)
}

// inherit resolves the referenced person and copies its classification onto
// the containing record. Inheritance is applied before any filtering, so it
// propagates transitively through whatever record carries the reference.
func inherit(ctx context.Context, kind RecordKind, personID string, persons PersonResolver) Classified {
	if personID == "" {
		return Classified{Kind: kind, Structural: true}
	}

	p, err := persons.PersonByID(ctx, personID)
	if err != nil || p == nil {
		// Dangling or unreadable reference: treat as the most restrictive
		// person so the record never becomes more visible than its subject.
		return Classified{Kind: kind, Tier: domain.TierPrivate, HasContact: true}
	}

	c := ClassifyPerson(p)
	c.Kind = kind
	return c
}
