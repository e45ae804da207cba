package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/giaphaapp/giapha-server/internal/domain"
	domainerrors "github.com/giaphaapp/giapha-server/internal/errors"
	"github.com/giaphaapp/giapha-server/internal/id"
	"github.com/giaphaapp/giapha-server/internal/policy"
	"github.com/giaphaapp/giapha-server/internal/store"
)

// PersonService handles person record writes. Reads go through
// GenealogyService so they are always policy-filtered.
type PersonService struct {
	store  *store.Store
	engine *policy.Engine
	logger *slog.Logger
}

// NewPersonService creates a new person write service.
func NewPersonService(store *store.Store, engine *policy.Engine, logger *slog.Logger) *PersonService {
	return &PersonService{
		store:  store,
		engine: engine,
		logger: logger,
	}
}

// CreatePersonRequest contains the data for a new person record.
type CreatePersonRequest struct {
	FullName   string               `json:"full_name" validate:"required"`
	Generation int                  `json:"generation" validate:"required,gte=1,lte=20"`
	Branch     int                  `json:"branch,omitempty" validate:"gte=0"`
	Living     bool                 `json:"living"`
	BirthDate  string               `json:"birth_date,omitempty"`
	DeathDate  string               `json:"death_date,omitempty"`
	Biography  string               `json:"biography,omitempty"`
	Notes      string               `json:"notes,omitempty"`
	Contact    domain.ContactBundle `json:"contact"`
	// Tier is optional; when nil the configured default tier is assigned.
	Tier *int `json:"tier,omitempty"`
}

// CreatePerson creates a person record. When no tier is given the configured
// default applies, and a living person created with contact data is never
// left publicly readable.
func (s *PersonService) CreatePerson(ctx context.Context, req CreatePersonRequest) (*domain.Person, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	tier := s.engine.DefaultTier()
	if req.Tier != nil {
		tier = domain.Tier(*req.Tier)
		if !tier.Valid() {
			return nil, domainerrors.Validationf("tier must be between %d and %d", domain.TierPublic, domain.TierPrivate)
		}
	}

	personID, err := id.Generate("per")
	if err != nil {
		return nil, fmt.Errorf("generate person ID: %w", err)
	}

	person := &domain.Person{
		Record:     domain.Record{ID: personID},
		FullName:   req.FullName,
		Generation: req.Generation,
		Branch:     req.Branch,
		Living:     req.Living,
		BirthDate:  req.BirthDate,
		DeathDate:  req.DeathDate,
		Biography:  req.Biography,
		Notes:      req.Notes,
		Contact:    req.Contact,
		Tier:       tier,
	}
	person.InitTimestamps()

	if s.engine.NeedsTightening(person) {
		person.Tier = domain.TierMembers
	}

	if err := s.store.Persons.Create(ctx, personID, person); err != nil {
		return nil, fmt.Errorf("create person: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Person created",
			"person_id", personID,
			"generation", person.Generation,
			"tier", int(person.Tier),
		)
	}

	return person, nil
}

// UpdatePersonRequest contains updatable person details. Contact data and
// tier have dedicated operations and are not part of this request.
type UpdatePersonRequest struct {
	FullName   string `json:"full_name" validate:"required"`
	Generation int    `json:"generation" validate:"required,gte=1,lte=20"`
	Branch     int    `json:"branch,omitempty" validate:"gte=0"`
	Living     bool   `json:"living"`
	BirthDate  string `json:"birth_date,omitempty"`
	DeathDate  string `json:"death_date,omitempty"`
	Biography  string `json:"biography,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// UpdatePerson replaces the descriptive details of a person record.
func (s *PersonService) UpdatePerson(ctx context.Context, personID string, req UpdatePersonRequest) (*domain.Person, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	person, err := s.store.PersonByID(ctx, personID)
	if err != nil {
		return nil, err
	}

	person.FullName = req.FullName
	person.Generation = req.Generation
	person.Branch = req.Branch
	person.Living = req.Living
	person.BirthDate = req.BirthDate
	person.DeathDate = req.DeathDate
	person.Biography = req.Biography
	person.Notes = req.Notes
	person.Touch()

	if err := s.store.Persons.Update(ctx, personID, person); err != nil {
		return nil, fmt.Errorf("update person: %w", err)
	}

	return person, nil
}

// UpdateContact replaces a person's contact bundle. Adding contact data to a
// living public person tightens the tier in the same write.
func (s *PersonService) UpdateContact(ctx context.Context, personID string, contact domain.ContactBundle) (*domain.Person, error) {
	person, tightened, err := s.store.UpdatePersonContact(ctx, personID, contact)
	if err != nil {
		return nil, err
	}

	if tightened && s.logger != nil {
		s.logger.Info("Person tier tightened on contact write",
			"person_id", personID,
			"tier", int(person.Tier),
			"policy_version", s.engine.Version(),
		)
	}

	return person, nil
}

// SetTier sets a person's privacy tier explicitly.
func (s *PersonService) SetTier(ctx context.Context, personID string, tier int) (*domain.Person, error) {
	t := domain.Tier(tier)
	if !t.Valid() {
		return nil, domainerrors.Validationf("tier must be between %d and %d", domain.TierPublic, domain.TierPrivate)
	}

	person, err := s.store.UpdatePersonTier(ctx, personID, t)
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("Person tier set",
			"person_id", personID,
			"tier", tier,
			"policy_version", s.engine.Version(),
		)
	}

	return person, nil
}

// DeletePerson removes a person record. Events and media that still reference
// the person classify as private from then on.
func (s *PersonService) DeletePerson(ctx context.Context, personID string) error {
	if err := s.store.Persons.Delete(ctx, personID); err != nil {
		return fmt.Errorf("delete person: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Person deleted", "person_id", personID)
	}

	return nil
}
