package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/giaphaapp/giapha-server/internal/domain"
	"github.com/giaphaapp/giapha-server/internal/service"
)

func (s *Server) registerPersonRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listPersons",
		Method:      http.MethodGet,
		Path:        "/api/v1/persons",
		Summary:     "List persons",
		Description: "Returns the persons visible to the caller, projected to the fields the caller may see. Pass q to search by name; diacritics are ignored.",
		Tags:        []string{"Persons"},
	}, s.handleListPersons)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPerson",
		Method:      http.MethodGet,
		Path:        "/api/v1/persons/{id}",
		Summary:     "Get person",
		Tags:        []string{"Persons"},
	}, s.handleGetPerson)

	huma.Register(s.api, huma.Operation{
		OperationID: "createPerson",
		Method:      http.MethodPost,
		Path:        "/api/v1/persons",
		Summary:     "Create person",
		Description: "Creates a person record. Admin only.",
		Tags:        []string{"Persons"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreatePerson)

	huma.Register(s.api, huma.Operation{
		OperationID: "updatePerson",
		Method:      http.MethodPut,
		Path:        "/api/v1/persons/{id}",
		Summary:     "Update person details",
		Description: "Replaces the descriptive details of a person. Admin only.",
		Tags:        []string{"Persons"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdatePerson)

	huma.Register(s.api, huma.Operation{
		OperationID: "updatePersonContact",
		Method:      http.MethodPut,
		Path:        "/api/v1/persons/{id}/contact",
		Summary:     "Update person contact",
		Description: "Replaces a person's contact bundle. Adding contact data to a living public person tightens the tier in the same write. Admin only.",
		Tags:        []string{"Persons"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdatePersonContact)

	huma.Register(s.api, huma.Operation{
		OperationID: "setPersonTier",
		Method:      http.MethodPut,
		Path:        "/api/v1/persons/{id}/tier",
		Summary:     "Set person tier",
		Description: "Sets a person's privacy tier explicitly. Admin only.",
		Tags:        []string{"Persons"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSetPersonTier)

	huma.Register(s.api, huma.Operation{
		OperationID: "deletePerson",
		Method:      http.MethodDelete,
		Path:        "/api/v1/persons/{id}",
		Summary:     "Delete person",
		Description: "Removes a person record. Admin only.",
		Tags:        []string{"Persons"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeletePerson)
}

// === DTOs ===

// PersonOutput wraps a projected person record for Huma. The field set
// depends on the caller, so the body is a free-form object.
type PersonOutput struct {
	Body map[string]any
}

// PersonListOutput wraps a list of projected person records for Huma.
type PersonListOutput struct {
	Body struct {
		Persons []map[string]any `json:"persons" doc:"Visible person records"`
	}
}

// ListPersonsInput carries the optional name search query.
type ListPersonsInput struct {
	Query string `query:"q" doc:"Name search query, diacritic-insensitive"`
}

// GetPersonInput identifies a person by path.
type GetPersonInput struct {
	ID string `path:"id" doc:"Person ID"`
}

// ContactRequest is the contact bundle in write requests.
type ContactRequest struct {
	Phone           string `json:"phone,omitempty" validate:"omitempty,max=50" doc:"Phone number"`
	Email           string `json:"email,omitempty" validate:"omitempty,max=254" doc:"Email address"`
	MessagingHandle string `json:"messaging_handle,omitempty" validate:"omitempty,max=100" doc:"Messaging handle"`
	SocialURL       string `json:"social_url,omitempty" validate:"omitempty,max=500" doc:"Social profile URL"`
	Address         string `json:"address,omitempty" validate:"omitempty,max=500" doc:"Postal address"`
}

// CreatePersonRequest is the request body for creating a person.
type CreatePersonRequest struct {
	FullName   string         `json:"full_name" validate:"required,max=200" doc:"Full name"`
	Generation int            `json:"generation" validate:"required,gte=1,lte=20" doc:"Generation number, 1 is the founding ancestor"`
	Branch     int            `json:"branch,omitempty" validate:"gte=0" doc:"Branch number within the lineage"`
	Living     bool           `json:"living" doc:"Whether the person is living"`
	BirthDate  string         `json:"birth_date,omitempty" validate:"omitempty,max=50" doc:"Birth date, free-form"`
	DeathDate  string         `json:"death_date,omitempty" validate:"omitempty,max=50" doc:"Death date, free-form"`
	Biography  string         `json:"biography,omitempty" doc:"Biography text"`
	Notes      string         `json:"notes,omitempty" doc:"Internal notes"`
	Contact    ContactRequest `json:"contact,omitempty" doc:"Contact data"`
	Tier       *int           `json:"tier,omitempty" validate:"omitempty,gte=0,lte=2" doc:"Privacy tier; defaults to the configured tier when omitted"`
}

// CreatePersonInput wraps the create request for Huma.
type CreatePersonInput struct {
	Body CreatePersonRequest
}

// UpdatePersonRequest is the request body for updating person details.
type UpdatePersonRequest struct {
	FullName   string `json:"full_name" validate:"required,max=200" doc:"Full name"`
	Generation int    `json:"generation" validate:"required,gte=1,lte=20" doc:"Generation number"`
	Branch     int    `json:"branch,omitempty" validate:"gte=0" doc:"Branch number"`
	Living     bool   `json:"living" doc:"Whether the person is living"`
	BirthDate  string `json:"birth_date,omitempty" validate:"omitempty,max=50" doc:"Birth date"`
	DeathDate  string `json:"death_date,omitempty" validate:"omitempty,max=50" doc:"Death date"`
	Biography  string `json:"biography,omitempty" doc:"Biography text"`
	Notes      string `json:"notes,omitempty" doc:"Internal notes"`
}

// UpdatePersonInput wraps the update request for Huma.
type UpdatePersonInput struct {
	ID   string `path:"id" doc:"Person ID"`
	Body UpdatePersonRequest
}

// UpdateContactInput wraps the contact update request for Huma.
type UpdateContactInput struct {
	ID   string `path:"id" doc:"Person ID"`
	Body ContactRequest
}

// SetTierRequest is the request body for setting a tier.
type SetTierRequest struct {
	Tier int `json:"tier" validate:"gte=0,lte=2" doc:"Privacy tier: 0 public, 1 members, 2 private"`
}

// SetTierInput wraps the tier request for Huma.
type SetTierInput struct {
	ID   string `path:"id" doc:"Person ID"`
	Body SetTierRequest
}

// === Handlers ===

func (s *Server) handleListPersons(ctx context.Context, input *ListPersonsInput) (*PersonListOutput, error) {
	actor := GetActor(ctx)

	var persons []map[string]any
	var err error
	if input.Query != "" {
		persons, err = s.services.Genealogy.SearchPersons(ctx, actor, input.Query)
	} else {
		persons, err = s.services.Genealogy.ListPersons(ctx, actor)
	}
	if err != nil {
		return nil, err
	}

	out := &PersonListOutput{}
	out.Body.Persons = persons
	return out, nil
}

func (s *Server) handleGetPerson(ctx context.Context, input *GetPersonInput) (*PersonOutput, error) {
	fields, err := s.services.Genealogy.GetPerson(ctx, GetActor(ctx), input.ID)
	if err != nil {
		return nil, err
	}

	return &PersonOutput{Body: fields}, nil
}

func (s *Server) handleCreatePerson(ctx context.Context, input *CreatePersonInput) (*PersonOutput, error) {
	if _, err := RequireAdmin(ctx); err != nil {
		return nil, err
	}

	person, err := s.services.Persons.CreatePerson(ctx, service.CreatePersonRequest{
		FullName:   input.Body.FullName,
		Generation: input.Body.Generation,
		Branch:     input.Body.Branch,
		Living:     input.Body.Living,
		BirthDate:  input.Body.BirthDate,
		DeathDate:  input.Body.DeathDate,
		Biography:  input.Body.Biography,
		Notes:      input.Body.Notes,
		Contact:    mapContact(input.Body.Contact),
		Tier:       input.Body.Tier,
	})
	if err != nil {
		return nil, err
	}

	return s.adminPersonView(ctx, person.ID)
}

func (s *Server) handleUpdatePerson(ctx context.Context, input *UpdatePersonInput) (*PersonOutput, error) {
	if _, err := RequireAdmin(ctx); err != nil {
		return nil, err
	}

	person, err := s.services.Persons.UpdatePerson(ctx, input.ID, service.UpdatePersonRequest{
		FullName:   input.Body.FullName,
		Generation: input.Body.Generation,
		Branch:     input.Body.Branch,
		Living:     input.Body.Living,
		BirthDate:  input.Body.BirthDate,
		DeathDate:  input.Body.DeathDate,
		Biography:  input.Body.Biography,
		Notes:      input.Body.Notes,
	})
	if err != nil {
		return nil, err
	}

	return s.adminPersonView(ctx, person.ID)
}

func (s *Server) handleUpdatePersonContact(ctx context.Context, input *UpdateContactInput) (*PersonOutput, error) {
	if _, err := RequireAdmin(ctx); err != nil {
		return nil, err
	}

	person, err := s.services.Persons.UpdateContact(ctx, input.ID, mapContact(input.Body))
	if err != nil {
		return nil, err
	}

	return s.adminPersonView(ctx, person.ID)
}

func (s *Server) handleSetPersonTier(ctx context.Context, input *SetTierInput) (*PersonOutput, error) {
	if _, err := RequireAdmin(ctx); err != nil {
		return nil, err
	}

	person, err := s.services.Persons.SetTier(ctx, input.ID, input.Body.Tier)
	if err != nil {
		return nil, err
	}

	return s.adminPersonView(ctx, person.ID)
}

func (s *Server) handleDeletePerson(ctx context.Context, input *GetPersonInput) (*MessageOutput, error) {
	if _, err := RequireAdmin(ctx); err != nil {
		return nil, err
	}

	if err := s.services.Persons.DeletePerson(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Person deleted"}}, nil
}

// === Helpers ===

func mapContact(c ContactRequest) domain.ContactBundle {
	return domain.ContactBundle{
		Phone:           c.Phone,
		Email:           c.Email,
		MessagingHandle: c.MessagingHandle,
		SocialURL:       c.SocialURL,
		Address:         c.Address,
	}
}

// adminPersonView returns the write result through the same projection the
// caller would get from a read.
func (s *Server) adminPersonView(ctx context.Context, personID string) (*PersonOutput, error) {
	fields, err := s.services.Genealogy.GetPerson(ctx, GetActor(ctx), personID)
	if err != nil {
		return nil, err
	}
	return &PersonOutput{Body: fields}, nil
}
