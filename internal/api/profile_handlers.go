package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerProfileRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listProfiles",
		Method:      http.MethodGet,
		Path:        "/api/v1/profiles",
		Summary:     "List member profiles",
		Description: "Returns member profiles visible to the caller. Profiles are never visible to unauthenticated callers.",
		Tags:        []string{"Profiles"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListProfiles)

	huma.Register(s.api, huma.Operation{
		OperationID: "getProfile",
		Method:      http.MethodGet,
		Path:        "/api/v1/profiles/{id}",
		Summary:     "Get member profile",
		Tags:        []string{"Profiles"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCurrentUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/me",
		Summary:     "Get own profile",
		Description: "Returns the profile of the authenticated caller.",
		Tags:        []string{"Profiles"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetCurrentUser)
}

// ProfileOutput wraps a projected member profile for Huma.
type ProfileOutput struct {
	Body map[string]any
}

// ProfileListOutput wraps a list of projected member profiles for Huma.
type ProfileListOutput struct {
	Body struct {
		Profiles []map[string]any `json:"profiles" doc:"Visible member profiles"`
	}
}

func (s *Server) handleListProfiles(ctx context.Context, _ *struct{}) (*ProfileListOutput, error) {
	profiles, err := s.services.Genealogy.ListProfiles(ctx, GetActor(ctx))
	if err != nil {
		return nil, err
	}

	out := &ProfileListOutput{}
	out.Body.Profiles = profiles
	return out, nil
}

func (s *Server) handleGetProfile(ctx context.Context, input *IDInput) (*ProfileOutput, error) {
	profile, err := s.services.Genealogy.GetProfile(ctx, GetActor(ctx), input.ID)
	if err != nil {
		return nil, err
	}

	return &ProfileOutput{Body: profile}, nil
}

func (s *Server) handleGetCurrentUser(ctx context.Context, _ *struct{}) (*ProfileOutput, error) {
	actor, err := RequireAuthenticated(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := s.services.Genealogy.GetProfile(ctx, actor, actor.UserID)
	if err != nil {
		return nil, err
	}

	return &ProfileOutput{Body: profile}, nil
}
