package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/giaphaapp/giapha-server/internal/domain"
	domainerrors "github.com/giaphaapp/giapha-server/internal/errors"
	"github.com/giaphaapp/giapha-server/internal/policy"
	"github.com/giaphaapp/giapha-server/internal/store"
)

// GenealogyService serves all record reads. Every response passes through the
// policy engine: denied records are reported as not found so their existence
// is not revealed, and allowed person records are projected down to the
// fields the actor may see.
type GenealogyService struct {
	store  *store.Store
	engine *policy.Engine
	logger *slog.Logger
}

// NewGenealogyService creates a new policy-filtered read service.
func NewGenealogyService(store *store.Store, engine *policy.Engine, logger *slog.Logger) *GenealogyService {
	return &GenealogyService{
		store:  store,
		engine: engine,
		logger: logger,
	}
}

// GetPerson returns the fields of a person visible to the actor.
func (s *GenealogyService) GetPerson(ctx context.Context, actor policy.Actor, personID string) (map[string]any, error) {
	person, err := s.store.PersonByID(ctx, personID)
	if err != nil {
		return nil, err
	}

	decision := s.engine.CheckAccess(actor, policy.ClassifyPerson(person))
	if !decision.Allowed {
		return nil, domainerrors.NotFound("person not found")
	}

	return policy.FilterFields(decision, policy.PersonFields(person)), nil
}

// ListPersons returns every person visible to the actor, each projected to
// the actor's field set.
func (s *GenealogyService) ListPersons(ctx context.Context, actor policy.Actor) ([]map[string]any, error) {
	persons, err := s.store.Persons.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}

	return s.projectPersons(actor, persons), nil
}

// SearchPersons returns visible persons whose folded name matches the query.
func (s *GenealogyService) SearchPersons(ctx context.Context, actor policy.Actor, query string) ([]map[string]any, error) {
	persons, err := s.store.SearchPersonsByName(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search persons: %w", err)
	}

	return s.projectPersons(actor, persons), nil
}

func (s *GenealogyService) projectPersons(actor policy.Actor, persons []*domain.Person) []map[string]any {
	results := make([]map[string]any, 0, len(persons))
	for _, p := range persons {
		decision := s.engine.CheckAccess(actor, policy.ClassifyPerson(p))
		if !decision.Allowed {
			continue
		}
		results = append(results, policy.FilterFields(decision, policy.PersonFields(p)))
	}
	return results
}

// GetUnion returns a family union. Structural records are all-or-nothing.
func (s *GenealogyService) GetUnion(ctx context.Context, actor policy.Actor, unionID string) (*domain.FamilyUnion, error) {
	union, err := s.store.Unions.Get(ctx, unionID)
	if err != nil {
		return nil, err
	}

	if !s.engine.CheckAccess(actor, policy.ClassifyUnion(union)).Allowed {
		return nil, domainerrors.NotFound("union not found")
	}

	return union, nil
}

// ListUnions returns every family union visible to the actor.
func (s *GenealogyService) ListUnions(ctx context.Context, actor policy.Actor) ([]*domain.FamilyUnion, error) {
	unions, err := s.store.Unions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list unions: %w", err)
	}

	visible := make([]*domain.FamilyUnion, 0, len(unions))
	for _, u := range unions {
		if s.engine.CheckAccess(actor, policy.ClassifyUnion(u)).Allowed {
			visible = append(visible, u)
		}
	}
	return visible, nil
}

// ListLinks returns every parent-child link visible to the actor.
func (s *GenealogyService) ListLinks(ctx context.Context, actor policy.Actor) ([]*domain.ParentChildLink, error) {
	links, err := s.store.Links.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}

	visible := make([]*domain.ParentChildLink, 0, len(links))
	for _, l := range links {
		if s.engine.CheckAccess(actor, policy.ClassifyLink(l)).Allowed {
			visible = append(visible, l)
		}
	}
	return visible, nil
}

// GetEvent returns an event if the actor may see it. Events attached to a
// person inherit that person's visibility.
func (s *GenealogyService) GetEvent(ctx context.Context, actor policy.Actor, eventID string) (*domain.Event, error) {
	event, err := s.store.Events.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if !s.engine.CheckAccess(actor, policy.ClassifyEvent(ctx, event, s.store)).Allowed {
		return nil, domainerrors.NotFound("event not found")
	}

	return event, nil
}

// ListEvents returns every event visible to the actor.
func (s *GenealogyService) ListEvents(ctx context.Context, actor policy.Actor) ([]*domain.Event, error) {
	events, err := s.store.Events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	visible := make([]*domain.Event, 0, len(events))
	for _, e := range events {
		if s.engine.CheckAccess(actor, policy.ClassifyEvent(ctx, e, s.store)).Allowed {
			visible = append(visible, e)
		}
	}
	return visible, nil
}

// GetMedia returns a media asset if the actor may see it.
func (s *GenealogyService) GetMedia(ctx context.Context, actor policy.Actor, mediaID string) (*domain.MediaAsset, error) {
	asset, err := s.store.Media.Get(ctx, mediaID)
	if err != nil {
		return nil, err
	}

	if !s.engine.CheckAccess(actor, policy.ClassifyMedia(ctx, asset, s.store)).Allowed {
		return nil, domainerrors.NotFound("media not found")
	}

	return asset, nil
}

// ListMedia returns every media asset visible to the actor.
func (s *GenealogyService) ListMedia(ctx context.Context, actor policy.Actor) ([]*domain.MediaAsset, error) {
	assets, err := s.store.Media.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}

	visible := make([]*domain.MediaAsset, 0, len(assets))
	for _, m := range assets {
		if s.engine.CheckAccess(actor, policy.ClassifyMedia(ctx, m, s.store)).Allowed {
			visible = append(visible, m)
		}
	}
	return visible, nil
}

// GetProfile returns the member-visible fields of a user profile. Profiles
// are never visible to anonymous readers.
func (s *GenealogyService) GetProfile(ctx context.Context, actor policy.Actor, userID string) (map[string]any, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	decision := s.engine.CheckAccess(actor, policy.ClassifyProfile(user))
	if !decision.Allowed {
		return nil, domainerrors.NotFound("profile not found")
	}

	return policy.FilterFields(decision, policy.ProfileFields(user)), nil
}

// ListProfiles returns the visible profiles of every user.
func (s *GenealogyService) ListProfiles(ctx context.Context, actor policy.Actor) ([]map[string]any, error) {
	users, err := s.store.Users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	results := make([]map[string]any, 0, len(users))
	for _, u := range users {
		decision := s.engine.CheckAccess(actor, policy.ClassifyProfile(u))
		if !decision.Allowed {
			continue
		}
		results = append(results, policy.FilterFields(decision, policy.ProfileFields(u)))
	}
	return results, nil
}
