// Package policy implements the privacy-tiered access-control engine for
// genealogy records.
//
// The engine is a pure function of (actor, classified record): no internal
// state, safe to call concurrently from any number of request handlers. Denial
// is reported as a Decision value, never as an error.
package policy

import "github.com/giaphaapp/giapha-server/internal/domain"

// ActorKind discriminates the closed set of requesting actors.
type ActorKind int

const (
	// ActorAnonymous is an unauthenticated request.
	ActorAnonymous ActorKind = iota
	// ActorMember is an authenticated non-admin user.
	ActorMember
	// ActorAdmin is an authenticated administrator.
	ActorAdmin
)

// String returns the actor kind name for logs and audit reports.
func (k ActorKind) String() string {
	switch k {
	case ActorMember:
		return "member"
	case ActorAdmin:
		return "admin"
	default:
		return "anonymous"
	}
}

// Actor identifies the requester a decision is evaluated for.
// The zero value is Anonymous, so a missing actor fails closed.
type Actor struct {
	Kind   ActorKind
	UserID string
}

// Anonymous returns the unauthenticated actor.
func Anonymous() Actor {
	return Actor{Kind: ActorAnonymous}
}

// Member returns an authenticated member actor.
func Member(userID string) Actor {
	return Actor{Kind: ActorMember, UserID: userID}
}

// Admin returns an administrator actor.
func Admin(userID string) Actor {
	return Actor{Kind: ActorAdmin, UserID: userID}
}

// Authenticated reports whether the actor is logged in.
func (a Actor) Authenticated() bool {
	return a.Kind != ActorAnonymous
}

// IsAdmin reports whether the actor has administrative privileges.
func (a Actor) IsAdmin() bool {
	return a.Kind == ActorAdmin
}

// ActorForUser maps a stored user account to its actor value.
// A nil or inactive user resolves to Anonymous; unrecognized roles resolve to
// Member, never Admin.
func ActorForUser(u *domain.User) Actor {
	if u == nil || !u.IsActive() {
		return Anonymous()
	}
	if u.IsAdmin() {
		return Admin(u.ID)
	}
	return Member(u.ID)
}
