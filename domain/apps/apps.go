// Package apps holds the client-side view of the marketplace: catalog
// entries and per-tenant install records.
package apps

import (
	"time"

	"github.com/google/uuid"
)

// CatalogItem is a marketplace listing
type CatalogItem struct {
	ID          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IconURL     string    `json:"icon_url"`
	Scopes      []string  `json:"scopes"`
	Price       string    `json:"price"` // display string, e.g. "free" or "$29/mo"
}

// InstalledApp is a per-tenant install record with granted scopes and settings
type InstalledApp struct {
	ID            uuid.UUID      `json:"id"`
	CompanyID     uuid.UUID      `json:"company_id"`
	Slug          string         `json:"slug"`
	Name          string         `json:"name"`
	Enabled       bool           `json:"enabled"`
	GrantedScopes []string       `json:"granted_scopes"`
	Settings      map[string]any `json:"settings,omitempty"`
	InstalledAt   time.Time      `json:"installed_at"`
}

// EnabledSlugs returns the slugs of the enabled installs, preserving order
func EnabledSlugs(installs []InstalledApp) []string {
	out := make([]string, 0, len(installs))
	for _, app := range installs {
		if app.Enabled {
			out = append(out, app.Slug)
		}
	}
	return out
}
