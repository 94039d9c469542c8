package identity

import (
	"github.com/google/uuid"
)

// PermissionMap maps a permission key to whether it is granted
type PermissionMap map[string]bool

// KeyAll is the reserved blanket-grant key. A role carrying it holds every
// company-scoped permission, but never KeyManageSaaS.
const KeyAll = "all"

// KeyManageSaaS is superuser-exclusive: it is never granted through a role,
// not even via KeyAll.
const KeyManageSaaS = "manage_saas"

// Company-scoped permission keys checked by the console
const (
	KeyViewDashboard    = "view_dashboard"
	KeyViewProducts     = "view_products"
	KeyManageProducts   = "manage_products"
	KeyViewInventory    = "view_inventory"
	KeyManageInventory  = "manage_inventory"
	KeyViewSales        = "view_sales"
	KeyManageSales      = "manage_sales"
	KeyViewPurchases    = "view_purchases"
	KeyManagePurchases  = "manage_purchases"
	KeyManageLogistics  = "manage_logistics"
	KeyPOSAccess        = "pos_access"
	KeyViewClients      = "view_clients"
	KeyManageClients    = "manage_clients"
	KeyViewReports      = "view_reports"
	KeyManageBilling    = "manage_billing"
	KeyManageUsers      = "manage_users"
	KeyManageCompany    = "manage_company"
	KeyManageApps       = "manage_apps"
	KeyManageStockTakes = "manage_stock_takes"
)

// Role is a company-scoped role with its permission map
type Role struct {
	ID          uuid.UUID     `json:"id"`
	CompanyID   uuid.UUID     `json:"company_id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Permissions PermissionMap `json:"permissions"`
	IsSystem    bool          `json:"is_system"`
}

// Grants reports whether the role's map grants the key, honouring the
// blanket KeyAll grant. It knows nothing about superusers or the
// manage_saas exclusivity rule; HasPermission layers those on top.
func (m PermissionMap) Grants(key string) bool {
	if m == nil {
		return false
	}
	if m[KeyAll] {
		return true
	}
	return m[key]
}
