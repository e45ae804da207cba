package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/giaphaapp/giapha-server/internal/service"
)

func (s *Server) registerAdminRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "sweepTiers",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/sweep",
		Summary:     "Run tier sweep",
		Description: "Tightens the visibility tier of every living public person that carries contact data. Idempotent.",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSweepTiers)

	huma.Register(s.api, huma.Operation{
		OperationID: "auditPolicy",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/audit",
		Summary:     "Run policy audit",
		Description: "Evaluates every stored record against the access policy for each actor kind and reports violations.",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAuditPolicy)

	huma.Register(s.api, huma.Operation{
		OperationID: "approveUser",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/users/{id}/approve",
		Summary:     "Approve pending user",
		Description: "Activates a pending registration so the user can log in.",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleApproveUser)
}

// SweepOutput wraps a tier sweep result for Huma.
type SweepOutput struct {
	Body *service.SweepResult
}

// AuditOutput wraps a policy audit report for Huma.
type AuditOutput struct {
	Body *service.AuditReport
}

// ApproveUserOutput wraps the activated user for Huma.
type ApproveUserOutput struct {
	Body UserResponse
}

func (s *Server) handleSweepTiers(ctx context.Context, _ *struct{}) (*SweepOutput, error) {
	if _, err := RequireAdmin(ctx); err != nil {
		return nil, err
	}

	result, err := s.services.Audit.Sweep(ctx)
	if err != nil {
		return nil, err
	}

	return &SweepOutput{Body: result}, nil
}

func (s *Server) handleAuditPolicy(ctx context.Context, _ *struct{}) (*AuditOutput, error) {
	if _, err := RequireAdmin(ctx); err != nil {
		return nil, err
	}

	report, err := s.services.Audit.Audit(ctx)
	if err != nil {
		return nil, err
	}

	return &AuditOutput{Body: report}, nil
}

func (s *Server) handleApproveUser(ctx context.Context, input *IDInput) (*ApproveUserOutput, error) {
	if _, err := RequireAdmin(ctx); err != nil {
		return nil, err
	}

	user, err := s.services.Auth.ApproveUser(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &ApproveUserOutput{Body: mapUser(user)}, nil
}
