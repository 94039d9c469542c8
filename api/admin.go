package api

import (
	"context"

	"github.com/google/uuid"

	"github.com/erp/console/domain/identity"
	"github.com/erp/console/domain/shared"
	"github.com/erp/console/transport"
)

// AdminService covers the platform-operator surface. Every endpoint here
// requires a superuser token; the server rejects anything else.
type AdminService struct {
	t *transport.Client
}

// PlatformStats summarizes tenant activity across the whole platform
type PlatformStats struct {
	TotalCompanies  int `json:"total_companies"`
	ActiveCompanies int `json:"active_companies"`
	TotalUsers      int `json:"total_users"`
	SalesToday      int `json:"sales_today"`
	SignupsWeek     int `json:"signups_week"`
}

// DatabaseStats reports per-table row counts and storage usage
type DatabaseStats struct {
	SizeBytes int64            `json:"size_bytes"`
	Tables    []TableStat      `json:"tables"`
	RowCounts map[string]int64 `json:"row_counts"`
}

type TableStat struct {
	Name      string `json:"name"`
	Rows      int64  `json:"rows"`
	SizeBytes int64  `json:"size_bytes"`
}

// PlatformSettings is the operator-editable global configuration
type PlatformSettings struct {
	SignupsEnabled     bool   `json:"signups_enabled"`
	MaintenanceMode    bool   `json:"maintenance_mode"`
	DefaultPlan        string `json:"default_plan"`
	SupportEmail       string `json:"support_email"`
	TrialLengthDays    int    `json:"trial_length_days"`
	MaxBranchesPerPlan int    `json:"max_branches_per_plan"`
}

// Broadcast is the banner message shown to every tenant
type Broadcast struct {
	Message   string `json:"message"`
	Level     string `json:"level"`
	Active    bool   `json:"active"`
	UpdatedAt string `json:"updated_at"`
}

type BroadcastRequest struct {
	Message string `json:"message" validate:"required,max=500"`
	Level   string `json:"level" validate:"required,oneof=info warning critical"`
	Active  bool   `json:"active"`
}

// ImpersonationGrant carries the scoped token minted for acting as a tenant user
type ImpersonationGrant struct {
	AccessToken string            `json:"access_token"`
	User        *identity.User    `json:"user"`
	Company     *identity.Company `json:"company"`
}

func (s *AdminService) Stats(ctx context.Context) (*PlatformStats, error) {
	var stats PlatformStats
	if _, err := s.t.Get(ctx, "/admin/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *AdminService) DatabaseStats(ctx context.Context) (*DatabaseStats, error) {
	var stats DatabaseStats
	if _, err := s.t.Get(ctx, "/admin/database", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *AdminService) ListCompanies(ctx context.Context, opts shared.ListOptions) ([]identity.Company, *shared.Meta, error) {
	var companies []identity.Company
	meta, err := s.t.Get(ctx, "/admin/companies", &companies, transport.WithQuery(opts.Query()))
	if err != nil {
		return nil, nil, err
	}
	return companies, meta, nil
}

func (s *AdminService) SetCompanyActive(ctx context.Context, companyID uuid.UUID, active bool) error {
	body := map[string]bool{"is_active": active}
	_, err := s.t.Patch(ctx, "/admin/companies/"+companyID.String(), body, nil)
	return err
}

func (s *AdminService) Settings(ctx context.Context) (*PlatformSettings, error) {
	var settings PlatformSettings
	if _, err := s.t.Get(ctx, "/admin/settings", &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *AdminService) UpdateSettings(ctx context.Context, settings PlatformSettings) (*PlatformSettings, error) {
	var updated PlatformSettings
	if _, err := s.t.Put(ctx, "/admin/settings", settings, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *AdminService) GetBroadcast(ctx context.Context) (*Broadcast, error) {
	var b Broadcast
	if _, err := s.t.Get(ctx, "/admin/broadcast", &b, transport.WithSuppressError()); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *AdminService) SetBroadcast(ctx context.Context, req BroadcastRequest) (*Broadcast, error) {
	if err := checkPayload(req); err != nil {
		return nil, err
	}
	var b Broadcast
	if _, err := s.t.Put(ctx, "/admin/broadcast", req, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Impersonate mints a token scoped to the target user. The caller is
// responsible for swapping the session to the grant and for returning to
// the original token when the impersonation ends.
func (s *AdminService) Impersonate(ctx context.Context, userID uuid.UUID) (*ImpersonationGrant, error) {
	var grant ImpersonationGrant
	if _, err := s.t.Post(ctx, "/admin/impersonate/"+userID.String(), nil, &grant); err != nil {
		return nil, err
	}
	return &grant, nil
}
