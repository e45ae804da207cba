package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/giaphaapp/giapha-server/internal/domain"
	domainerrors "github.com/giaphaapp/giapha-server/internal/errors"
	"github.com/giaphaapp/giapha-server/internal/id"
	"github.com/giaphaapp/giapha-server/internal/store"
)

// FamilyService handles writes to the structural and attached record kinds:
// family unions, parent-child links, events, and media assets.
type FamilyService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewFamilyService creates a new family structure write service.
func NewFamilyService(store *store.Store, logger *slog.Logger) *FamilyService {
	return &FamilyService{
		store:  store,
		logger: logger,
	}
}

// CreateUnionRequest contains the data for a new family union.
type CreateUnionRequest struct {
	PartnerIDs []string `json:"partner_ids" validate:"required,min=1,dive,required"`
	StartDate  string   `json:"start_date,omitempty"`
	Note       string   `json:"note,omitempty"`
}

// CreateUnion creates a family union after verifying every partner exists.
func (s *FamilyService) CreateUnion(ctx context.Context, req CreateUnionRequest) (*domain.FamilyUnion, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	for _, pid := range req.PartnerIDs {
		if _, err := s.store.PersonByID(ctx, pid); err != nil {
			return nil, domainerrors.Validationf("partner %s does not exist", pid)
		}
	}

	unionID, err := id.Generate("fam")
	if err != nil {
		return nil, fmt.Errorf("generate union ID: %w", err)
	}

	union := &domain.FamilyUnion{
		Record:     domain.Record{ID: unionID},
		PartnerIDs: req.PartnerIDs,
		StartDate:  req.StartDate,
		Note:       req.Note,
	}
	union.InitTimestamps()

	if err := s.store.Unions.Create(ctx, unionID, union); err != nil {
		return nil, fmt.Errorf("create union: %w", err)
	}

	return union, nil
}

// CreateLinkRequest contains the data for a new parent-child link.
type CreateLinkRequest struct {
	UnionID string `json:"union_id" validate:"required"`
	ChildID string `json:"child_id" validate:"required"`
	Order   int    `json:"order,omitempty" validate:"gte=0"`
}

// CreateLink binds a child to a family union.
func (s *FamilyService) CreateLink(ctx context.Context, req CreateLinkRequest) (*domain.ParentChildLink, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	if _, err := s.store.Unions.Get(ctx, req.UnionID); err != nil {
		return nil, domainerrors.Validationf("union %s does not exist", req.UnionID)
	}
	if _, err := s.store.PersonByID(ctx, req.ChildID); err != nil {
		return nil, domainerrors.Validationf("child %s does not exist", req.ChildID)
	}

	linkID, err := id.Generate("pcl")
	if err != nil {
		return nil, fmt.Errorf("generate link ID: %w", err)
	}

	link := &domain.ParentChildLink{
		Record:  domain.Record{ID: linkID},
		UnionID: req.UnionID,
		ChildID: req.ChildID,
		Order:   req.Order,
	}
	link.InitTimestamps()

	if err := s.store.Links.Create(ctx, linkID, link); err != nil {
		return nil, fmt.Errorf("create link: %w", err)
	}

	return link, nil
}

// CreateEventRequest contains the data for a new calendar event.
type CreateEventRequest struct {
	Title     string `json:"title" validate:"required"`
	PersonID  string `json:"person_id,omitempty"`
	Date      string `json:"date,omitempty"`
	Recurring bool   `json:"recurring"`
	Lunar     bool   `json:"lunar,omitempty"`
	Month     int    `json:"month,omitempty" validate:"gte=0,lte=12"`
	Day       int    `json:"day,omitempty" validate:"gte=0,lte=31"`
}

// CreateEvent creates a calendar event, optionally attached to a person.
// Attached events inherit the person's visibility.
func (s *FamilyService) CreateEvent(ctx context.Context, req CreateEventRequest) (*domain.Event, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	if req.PersonID != "" {
		if _, err := s.store.PersonByID(ctx, req.PersonID); err != nil {
			return nil, domainerrors.Validationf("person %s does not exist", req.PersonID)
		}
	}

	eventID, err := id.Generate("evt")
	if err != nil {
		return nil, fmt.Errorf("generate event ID: %w", err)
	}

	event := &domain.Event{
		Record:    domain.Record{ID: eventID},
		Title:     req.Title,
		PersonID:  req.PersonID,
		Date:      req.Date,
		Recurring: req.Recurring,
		Lunar:     req.Lunar,
		Month:     req.Month,
		Day:       req.Day,
	}
	event.InitTimestamps()

	if err := s.store.Events.Create(ctx, eventID, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	return event, nil
}

// CreateMediaRequest contains the data for a new media asset reference.
type CreateMediaRequest struct {
	PersonID    string `json:"person_id,omitempty"`
	Path        string `json:"path" validate:"required"`
	ContentType string `json:"content_type,omitempty"`
	Caption     string `json:"caption,omitempty"`
}

// CreateMedia registers a media asset, optionally attached to a person.
// Attached assets inherit the person's visibility.
func (s *FamilyService) CreateMedia(ctx context.Context, req CreateMediaRequest) (*domain.MediaAsset, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	if req.PersonID != "" {
		if _, err := s.store.PersonByID(ctx, req.PersonID); err != nil {
			return nil, domainerrors.Validationf("person %s does not exist", req.PersonID)
		}
	}

	mediaID, err := id.Generate("med")
	if err != nil {
		return nil, fmt.Errorf("generate media ID: %w", err)
	}

	asset := &domain.MediaAsset{
		Record:      domain.Record{ID: mediaID},
		PersonID:    req.PersonID,
		Path:        req.Path,
		ContentType: req.ContentType,
		Caption:     req.Caption,
	}
	asset.InitTimestamps()

	if err := s.store.Media.Create(ctx, mediaID, asset); err != nil {
		return nil, fmt.Errorf("create media: %w", err)
	}

	return asset, nil
}
