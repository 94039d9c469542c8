package api

import (
	"context"

	"github.com/erp/console/domain/apps"
	"github.com/erp/console/transport"
)

// AppsService manages the platform app marketplace and per-company installs
type AppsService struct {
	t *transport.Client
}

type InstallRequest struct {
	Slug   string   `json:"slug" validate:"required"`
	Scopes []string `json:"scopes"`
}

type ConfigureRequest struct {
	Settings map[string]any `json:"settings" validate:"required"`
}

// WebhookTestResult reports the outcome of a test delivery to the app's endpoint
type WebhookTestResult struct {
	Delivered  bool   `json:"delivered"`
	StatusCode int    `json:"status_code"`
	Error      string `json:"error"`
	LatencyMS  int    `json:"latency_ms"`
}

// Catalog lists every app the marketplace offers
func (s *AppsService) Catalog(ctx context.Context) ([]apps.CatalogItem, error) {
	var items []apps.CatalogItem
	if _, err := s.t.Get(ctx, "/apps/catalog", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Installed lists the apps installed for the current company
func (s *AppsService) Installed(ctx context.Context) ([]apps.InstalledApp, error) {
	var installed []apps.InstalledApp
	if _, err := s.t.Get(ctx, "/apps/installed", &installed); err != nil {
		return nil, err
	}
	return installed, nil
}

func (s *AppsService) Install(ctx context.Context, req InstallRequest) (*apps.InstalledApp, error) {
	if err := checkPayload(req); err != nil {
		return nil, err
	}
	var installed apps.InstalledApp
	if _, err := s.t.Post(ctx, "/apps/install", req, &installed); err != nil {
		return nil, err
	}
	return &installed, nil
}

func (s *AppsService) Uninstall(ctx context.Context, slug string) error {
	return s.t.Delete(ctx, "/apps/installed/"+slug)
}

func (s *AppsService) Configure(ctx context.Context, slug string, req ConfigureRequest) (*apps.InstalledApp, error) {
	if err := checkPayload(req); err != nil {
		return nil, err
	}
	var installed apps.InstalledApp
	if _, err := s.t.Put(ctx, "/apps/installed/"+slug+"/settings", req, &installed); err != nil {
		return nil, err
	}
	return &installed, nil
}

func (s *AppsService) SetEnabled(ctx context.Context, slug string, enabled bool) error {
	body := map[string]bool{"enabled": enabled}
	_, err := s.t.Patch(ctx, "/apps/installed/"+slug, body, nil)
	return err
}

// TestWebhook asks the platform to deliver a ping event to the app's
// configured webhook endpoint and reports what came back.
func (s *AppsService) TestWebhook(ctx context.Context, slug string) (*WebhookTestResult, error) {
	var result WebhookTestResult
	if _, err := s.t.Post(ctx, "/apps/installed/"+slug+"/webhook-test", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
