package policy

import "github.com/giaphaapp/giapha-server/internal/domain"

// AccessChecker is the decision surface the audit harness evaluates.
// *Engine satisfies it; tests substitute broken checkers to prove the harness
// actually detects leaks.
type AccessChecker interface {
	CheckAccess(actor Actor, c Classified) Decision
}

// CorpusEntry is one classified record in an audit corpus.
type CorpusEntry struct {
	ID         string
	Classified Classified
}

// Violation records a single policy leak found by EvaluateCorpus.
// Field is empty for row-level violations.
type Violation struct {
	Actor    ActorKind  `json:"actor"`
	RecordID string     `json:"record_id"`
	Kind     RecordKind `json:"kind"`
	Field    Field      `json:"field,omitempty"`
	Reason   string     `json:"reason"`
}

// EvaluateCorpus checks every (actor, record) pair against the global privacy
// invariants and returns all violations found:
//
//   - a contact field visible to an anonymous actor;
//   - a tier-2 person-classified record visible to a non-admin.
//
// An empty result means the checker holds the invariants over this corpus.
func EvaluateCorpus(checker AccessChecker, entries []CorpusEntry, actors []Actor) []Violation {
	var violations []Violation

	for _, entry := range entries {
		for _, actor := range actors {
			d := checker.CheckAccess(actor, entry.Classified)
			if !d.Allowed {
				continue
			}

			if actor.Kind == ActorAnonymous {
				for f := range ContactFields {
					if d.Visible(f) {
						violations = append(violations, Violation{
							Actor:    actor.Kind,
							RecordID: entry.ID,
							Kind:     entry.Classified.Kind,
							Field:    f,
							Reason:   "contact field visible to anonymous actor",
						})
					}
				}
			}

			if !actor.IsAdmin() && !entry.Classified.Structural &&
				entry.Classified.Kind != KindProfile &&
				entry.Classified.Tier == domain.TierPrivate {
				violations = append(violations, Violation{
					Actor:    actor.Kind,
					RecordID: entry.ID,
					Kind:     entry.Classified.Kind,
					Reason:   "tier-2 record visible to non-admin actor",
				})
			}
		}
	}

	return violations
}
