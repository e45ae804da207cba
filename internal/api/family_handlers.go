package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/giaphaapp/giapha-server/internal/domain"
	"github.com/giaphaapp/giapha-server/internal/service"
)

func (s *Server) registerFamilyRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listUnions",
		Method:      http.MethodGet,
		Path:        "/api/v1/unions",
		Summary:     "List family unions",
		Description: "Returns the family unions visible to the caller. Structure requires authentication.",
		Tags:        []string{"Family"},
	}, s.handleListUnions)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUnion",
		Method:      http.MethodGet,
		Path:        "/api/v1/unions/{id}",
		Summary:     "Get family union",
		Tags:        []string{"Family"},
	}, s.handleGetUnion)

	huma.Register(s.api, huma.Operation{
		OperationID: "createUnion",
		Method:      http.MethodPost,
		Path:        "/api/v1/unions",
		Summary:     "Create family union",
		Description: "Creates a partner union. Admin only.",
		Tags:        []string{"Family"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateUnion)

	huma.Register(s.api, huma.Operation{
		OperationID: "listLinks",
		Method:      http.MethodGet,
		Path:        "/api/v1/links",
		Summary:     "List parent-child links",
		Tags:        []string{"Family"},
	}, s.handleListLinks)

	huma.Register(s.api, huma.Operation{
		OperationID: "createLink",
		Method:      http.MethodPost,
		Path:        "/api/v1/links",
		Summary:     "Create parent-child link",
		Description: "Binds a child to a family union. Admin only.",
		Tags:        []string{"Family"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateLink)

	huma.Register(s.api, huma.Operation{
		OperationID: "listEvents",
		Method:      http.MethodGet,
		Path:        "/api/v1/events",
		Summary:     "List events",
		Description: "Returns calendar events visible to the caller. Events attached to a person inherit that person's visibility.",
		Tags:        []string{"Events"},
	}, s.handleListEvents)

	huma.Register(s.api, huma.Operation{
		OperationID: "getEvent",
		Method:      http.MethodGet,
		Path:        "/api/v1/events/{id}",
		Summary:     "Get event",
		Tags:        []string{"Events"},
	}, s.handleGetEvent)

	huma.Register(s.api, huma.Operation{
		OperationID: "createEvent",
		Method:      http.MethodPost,
		Path:        "/api/v1/events",
		Summary:     "Create event",
		Description: "Creates a calendar event, optionally attached to a person. Admin only.",
		Tags:        []string{"Events"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateEvent)

	huma.Register(s.api, huma.Operation{
		OperationID: "listMedia",
		Method:      http.MethodGet,
		Path:        "/api/v1/media",
		Summary:     "List media assets",
		Tags:        []string{"Media"},
	}, s.handleListMedia)

	huma.Register(s.api, huma.Operation{
		OperationID: "getMedia",
		Method:      http.MethodGet,
		Path:        "/api/v1/media/{id}",
		Summary:     "Get media asset",
		Tags:        []string{"Media"},
	}, s.handleGetMedia)

	huma.Register(s.api, huma.Operation{
		OperationID: "createMedia",
		Method:      http.MethodPost,
		Path:        "/api/v1/media",
		Summary:     "Register media asset",
		Description: "Registers a media asset reference, optionally attached to a person. Admin only.",
		Tags:        []string{"Media"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateMedia)
}

// === DTOs ===

// UnionOutput wraps a family union for Huma.
type UnionOutput struct {
	Body *domain.FamilyUnion
}

// UnionListOutput wraps a list of family unions for Huma.
type UnionListOutput struct {
	Body struct {
		Unions []*domain.FamilyUnion `json:"unions" doc:"Visible family unions"`
	}
}

// CreateUnionRequest is the request body for creating a union.
type CreateUnionRequest struct {
	PartnerIDs []string `json:"partner_ids" validate:"required,min=1,dive,required" doc:"Person IDs of the partners"`
	StartDate  string   `json:"start_date,omitempty" validate:"omitempty,max=50" doc:"Union start date, free-form"`
	Note       string   `json:"note,omitempty" doc:"Free-form note"`
}

// CreateUnionInput wraps the union request for Huma.
type CreateUnionInput struct {
	Body CreateUnionRequest
}

// LinkListOutput wraps a list of parent-child links for Huma.
type LinkListOutput struct {
	Body struct {
		Links []*domain.ParentChildLink `json:"links" doc:"Visible parent-child links"`
	}
}

// LinkOutput wraps a parent-child link for Huma.
type LinkOutput struct {
	Body *domain.ParentChildLink
}

// CreateLinkRequest is the request body for creating a link.
type CreateLinkRequest struct {
	UnionID string `json:"union_id" validate:"required" doc:"Union the child belongs to"`
	ChildID string `json:"child_id" validate:"required" doc:"Person ID of the child"`
	Order   int    `json:"order,omitempty" validate:"gte=0" doc:"Child's position among siblings, 1-based"`
}

// CreateLinkInput wraps the link request for Huma.
type CreateLinkInput struct {
	Body CreateLinkRequest
}

// EventOutput wraps an event for Huma.
type EventOutput struct {
	Body *domain.Event
}

// EventListOutput wraps a list of events for Huma.
type EventListOutput struct {
	Body struct {
		Events []*domain.Event `json:"events" doc:"Visible events"`
	}
}

// CreateEventRequest is the request body for creating an event.
type CreateEventRequest struct {
	Title     string `json:"title" validate:"required,max=200" doc:"Event title"`
	PersonID  string `json:"person_id,omitempty" doc:"Person the event commemorates"`
	Date      string `json:"date,omitempty" validate:"omitempty,max=50" doc:"Observed date for single events"`
	Recurring bool   `json:"recurring" doc:"Whether the event recurs yearly"`
	Lunar     bool   `json:"lunar,omitempty" doc:"Whether month and day are in the lunar calendar"`
	Month     int    `json:"month,omitempty" validate:"gte=0,lte=12" doc:"Recurrence month"`
	Day       int    `json:"day,omitempty" validate:"gte=0,lte=31" doc:"Recurrence day"`
}

// CreateEventInput wraps the event request for Huma.
type CreateEventInput struct {
	Body CreateEventRequest
}

// MediaOutput wraps a media asset for Huma.
type MediaOutput struct {
	Body *domain.MediaAsset
}

// MediaListOutput wraps a list of media assets for Huma.
type MediaListOutput struct {
	Body struct {
		Media []*domain.MediaAsset `json:"media" doc:"Visible media assets"`
	}
}

// CreateMediaRequest is the request body for registering a media asset.
type CreateMediaRequest struct {
	PersonID    string `json:"person_id,omitempty" doc:"Person the asset belongs to"`
	Path        string `json:"path" validate:"required,max=500" doc:"Storage path of the asset"`
	ContentType string `json:"content_type,omitempty" validate:"omitempty,max=100" doc:"MIME type"`
	Caption     string `json:"caption,omitempty" validate:"omitempty,max=500" doc:"Caption text"`
}

// CreateMediaInput wraps the media request for Huma.
type CreateMediaInput struct {
	Body CreateMediaRequest
}

// IDInput identifies a record by path.
type IDInput struct {
	ID string `path:"id" doc:"Record ID"`
}

// === Handlers ===

func (s *Server) handleListUnions(ctx context.Context, _ *struct{}) (*UnionListOutput, error) {
	unions, err := s.services.Genealogy.ListUnions(ctx, GetActor(ctx))
	if err != nil {
		return nil, err
	}

	out := &UnionListOutput{}
	out.Body.Unions = unions
	return out, nil
}

func (s *Server) handleGetUnion(ctx context.Context, input *IDInput) (*UnionOutput, error) {
	union, err := s.services.Genealogy.GetUnion(ctx, GetActor(ctx), input.ID)
	if err != nil {
		return nil, err
	}

	return &UnionOutput{Body: union}, nil
}

func (s *Server) handleCreateUnion(ctx context.Context, input *CreateUnionInput) (*UnionOutput, error) {
	if _, err := RequireAdmin(ctx); err != nil {
		return nil, err
	}

	union, err := s.services.Family.CreateUnion(ctx, service.CreateUnionRequest{
		PartnerIDs: input.Body.PartnerIDs,
		StartDate:  input.Body.StartDate,
		Note:       input.Body.Note,
	})
	if err != nil {
		return nil, err
	}

	return &UnionOutput{Body: union}, nil
}

func (s *Server) handleListLinks(ctx context.Context, _ *struct{}) (*LinkListOutput, error) {
	links, err := s.services.Genealogy.ListLinks(ctx, GetActor(ctx))
	if err != nil {
		return nil, err
	}

	out := &LinkListOutput{}
	out.Body.Links = links
	return out, nil
}

func (s *Server) handleCreateLink(ctx context.Context, input *CreateLinkInput) (*LinkOutput, error) {
	if _, err := RequireAdmin(ctx); err != nil {
		return nil, err
	}

	link, err := s.services.Family.CreateLink(ctx, service.CreateLinkRequest{
		UnionID: input.Body.UnionID,
		ChildID: input.Body.ChildID,
		Order:   input.Body.Order,
	})
	if err != nil {
		return nil, err
	}

	return &LinkOutput{Body: link}, nil
}

func (s *Server) handleListEvents(ctx context.Context, _ *struct{}) (*EventListOutput, error) {
	events, err := s.services.Genealogy.ListEvents(ctx, GetActor(ctx))
	if err != nil {
		return nil, err
	}

	out := &EventListOutput{}
	out.Body.Events = events
	return out, nil
}

func (s *Server) handleGetEvent(ctx context.Context, input *IDInput) (*EventOutput, error) {
	event, err := s.services.Genealogy.GetEvent(ctx, GetActor(ctx), input.ID)
	if err != nil {
		return nil, err
	}

	return &EventOutput{Body: event}, nil
}

func (s *Server) handleCreateEvent(ctx context.Context, input *CreateEventInput) (*EventOutput, error) {
	if _, err := RequireAdmin(ctx); err != nil {
		return nil, err
	}

	event, err := s.services.Family.CreateEvent(ctx, service.CreateEventRequest{
		Title:     input.Body.Title,
		PersonID:  input.Body.PersonID,
		Date:      input.Body.Date,
		Recurring: input.Body.Recurring,
		Lunar:     input.Body.Lunar,
		Month:     input.Body.Month,
		Day:       input.Body.Day,
	})
	if err != nil {
		return nil, err
	}

	return &EventOutput{Body: event}, nil
}

func (s *Server) handleListMedia(ctx context.Context, _ *struct{}) (*MediaListOutput, error) {
	media, err := s.services.Genealogy.ListMedia(ctx, GetActor(ctx))
	if err != nil {
		return nil, err
	}

	out := &MediaListOutput{}
	out.Body.Media = media
	return out, nil
}

func (s *Server) handleGetMedia(ctx context.Context, input *IDInput) (*MediaOutput, error) {
	asset, err := s.services.Genealogy.GetMedia(ctx, GetActor(ctx), input.ID)
	if err != nil {
		return nil, err
	}

	return &MediaOutput{Body: asset}, nil
}

func (s *Server) handleCreateMedia(ctx context.Context, input *CreateMediaInput) (*MediaOutput, error) {
	if _, err := RequireAdmin(ctx); err != nil {
		return nil, err
	}

	asset, err := s.services.Family.CreateMedia(ctx, service.CreateMediaRequest{
		PersonID:    input.Body.PersonID,
		Path:        input.Body.Path,
		ContentType: input.Body.ContentType,
		Caption:     input.Body.Caption,
	})
	if err != nil {
		return nil, err
	}

	return &MediaOutput{Body: asset}, nil
}
