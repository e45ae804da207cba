package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/giaphaapp/giapha-server/internal/policy"
	"github.com/giaphaapp/giapha-server/internal/store"
)

// AuditService runs the policy maintenance operations: the tier sweep and
// the full-corpus leak audit.
type AuditService struct {
	store  *store.Store
	engine *policy.Engine
	logger *slog.Logger
}

// NewAuditService creates a new audit service.
func NewAuditService(store *store.Store, engine *policy.Engine, logger *slog.Logger) *AuditService {
	return &AuditService{
		store:  store,
		engine: engine,
		logger: logger,
	}
}

// SweepResult reports the outcome of a tier sweep.
type SweepResult struct {
	PolicyVersion int `json:"policy_version"`
	Changed       int `json:"changed"`
}

// Sweep tightens the tier of every living public person that has contact
// data. The sweep is idempotent; a second run reports zero changes.
func (s *AuditService) Sweep(ctx context.Context) (*SweepResult, error) {
	changed, err := s.store.SweepPersonTiers(ctx)
	if err != nil {
		return nil, fmt.Errorf("sweep person tiers: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Tier sweep complete",
			"changed", changed,
			"policy_version", s.engine.Version(),
		)
	}

	return &SweepResult{
		PolicyVersion: s.engine.Version(),
		Changed:       changed,
	}, nil
}

// AuditReport is the result of evaluating the whole corpus against the
// policy for each actor kind.
type AuditReport struct {
	PolicyVersion int                `json:"policy_version"`
	Records       int                `json:"records"`
	Actors        int                `json:"actors"`
	Violations    []policy.Violation `json:"violations"`
}

// Audit classifies every stored record and checks the policy decision for an
// anonymous reader, a member, and an admin. A clean run returns an empty
// violation list.
func (s *AuditService) Audit(ctx context.Context) (*AuditReport, error) {
	entries, err := s.buildCorpus(ctx)
	if err != nil {
		return nil, err
	}

	actors := []policy.Actor{
		policy.Anonymous(),
		policy.Member("audit-member"),
		policy.Admin("audit-admin"),
	}

	violations := policy.EvaluateCorpus(s.engine, entries, actors)

	if s.logger != nil {
		s.logger.Info("Policy audit complete",
			"records", len(entries),
			"violations", len(violations),
			"policy_version", s.engine.Version(),
		)
	}

	return &AuditReport{
		PolicyVersion: s.engine.Version(),
		Records:       len(entries),
		Actors:        len(actors),
		Violations:    violations,
	}, nil
}

// buildCorpus classifies every stored record of every kind.
func (s *AuditService) buildCorpus(ctx context.Context) ([]policy.CorpusEntry, error) {
	var entries []policy.CorpusEntry

	persons, err := s.store.Persons.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	for _, p := range persons {
		entries = append(entries, policy.CorpusEntry{ID: p.ID, Classified: policy.ClassifyPerson(p)})
	}

	unions, err := s.store.Unions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list unions: %w", err)
	}
	for _, u := range unions {
		entries = append(entries, policy.CorpusEntry{ID: u.ID, Classified: policy.ClassifyUnion(u)})
	}

	links, err := s.store.Links.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	for _, l := range links {
		entries = append(entries, policy.CorpusEntry{ID: l.ID, Classified: policy.ClassifyLink(l)})
	}

	events, err := s.store.Events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	for _, e := range events {
		entries = append(entries, policy.CorpusEntry{ID: e.ID, Classified: policy.ClassifyEvent(ctx, e, s.store)})
	}

	assets, err := s.store.Media.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	for _, m := range assets {
		entries = append(entries, policy.CorpusEntry{ID: m.ID, Classified: policy.ClassifyMedia(ctx, m, s.store)})
	}

	users, err := s.store.Users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	for _, u := range users {
		entries = append(entries, policy.CorpusEntry{ID: u.ID, Classified: policy.ClassifyProfile(u)})
	}

	return entries, nil
}
