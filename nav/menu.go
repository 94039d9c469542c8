package nav

import "github.com/erp/console/domain/identity"

// Well-known node IDs referenced by the filter and the app registry
const (
	GroupDashboard     = "dashboard"
	GroupOperations    = "operations"
	GroupAdmin         = "admin"
	GroupAppsPlatform  = "apps-platform"
	NodeInstalledApps  = "installed-apps"
	NodeAppMarketplace = "app-marketplace"
)

// superuserGroups are the only top-level groups a superuser sees
var superuserGroups = map[string]bool{
	GroupAdmin:        true,
	GroupAppsPlatform: true,
}

// DefaultMenu returns the full console menu tree before filtering
func DefaultMenu() []Node {
	return []Node{
		{
			ID:    GroupDashboard,
			Title: "Dashboard",
			Kind:  KindGroup,
			Children: []Node{
				{ID: "dashboard-default", Title: "Overview", Kind: KindItem, URL: "/dashboard/default", Icon: "home"},
				{ID: "reports", Title: "Reports", Kind: KindItem, URL: "/reports", Icon: "chart",
					RequiredPermissions: []string{identity.KeyViewReports}},
			},
		},
		{
			ID:    GroupOperations,
			Title: "Operations",
			Kind:  KindGroup,
			Children: []Node{
				{
					ID: "catalog", Title: "Catalog", Kind: KindCollapse, Icon: "box",
					Children: []Node{
						{ID: "products", Title: "Products", Kind: KindItem, URL: "/products",
							RequiredPermissions: []string{identity.KeyViewProducts, identity.KeyManageProducts}},
						{ID: "categories", Title: "Categories", Kind: KindItem, URL: "/categories",
							RequiredPermissions: []string{identity.KeyManageProducts}},
						{ID: "brands", Title: "Brands", Kind: KindItem, URL: "/brands",
							RequiredPermissions: []string{identity.KeyManageProducts}},
						{ID: "units", Title: "Units", Kind: KindItem, URL: "/units",
							RequiredPermissions: []string{identity.KeyManageProducts}},
					},
				},
				{
					ID: "inventory", Title: "Inventory", Kind: KindCollapse, Icon: "layers",
					Children: []Node{
						{ID: "stock", Title: "Stock", Kind: KindItem, URL: "/inventory",
							RequiredPermissions: []string{identity.KeyViewInventory, identity.KeyManageInventory}},
						{ID: "movements", Title: "Movements", Kind: KindItem, URL: "/inventory/movements",
							RequiredPermissions: []string{identity.KeyViewInventory, identity.KeyManageInventory}},
						{ID: "stock-takes", Title: "Stock Takes", Kind: KindItem, URL: "/inventory/stock-takes",
							RequiredPermissions: []string{identity.KeyManageStockTakes}},
					},
				},
				{
					ID: "sales", Title: "Sales", Kind: KindCollapse, Icon: "cart",
					Children: []Node{
						{ID: "sales-list", Title: "Sales", Kind: KindItem, URL: "/sales",
							RequiredPermissions: []string{identity.KeyViewSales, identity.KeyManageSales}},
						{ID: "pos", Title: "Point of Sale", Kind: KindItem, URL: "/pos",
							RequiredPermissions: []string{identity.KeyPOSAccess}},
						{ID: "returns", Title: "Returns", Kind: KindItem, URL: "/returns",
							RequiredPermissions: []string{identity.KeyManageSales}},
					},
				},
				{ID: "purchases", Title: "Purchasing", Kind: KindItem, URL: "/purchases", Icon: "truck",
					RequiredPermissions: []string{identity.KeyViewPurchases, identity.KeyManagePurchases}},
				{ID: "logistics", Title: "Logistics", Kind: KindItem, URL: "/logistics", Icon: "map",
					RequiredPermissions: []string{identity.KeyManageLogistics}},
				{ID: "clients", Title: "Clients", Kind: KindItem, URL: "/clients", Icon: "users",
					RequiredPermissions: []string{identity.KeyViewClients, identity.KeyManageClients}},
				{ID: "billing", Title: "Billing", Kind: KindItem, URL: "/billing", Icon: "credit-card",
					RequiredPermissions: []string{identity.KeyManageBilling}},
				{ID: "company", Title: "Company", Kind: KindItem, URL: "/company", Icon: "briefcase",
					RequiredPermissions: []string{identity.KeyManageCompany, identity.KeyManageUsers}},
			},
		},
		{
			ID:    GroupAppsPlatform,
			Title: "Apps",
			Kind:  KindGroup,
			Children: []Node{
				{ID: NodeAppMarketplace, Title: "Marketplace", Kind: KindItem, URL: "/apps/marketplace", Icon: "grid",
					RequiredPermissions: []string{identity.KeyManageApps}},
				{ID: NodeInstalledApps, Title: "Installed Apps", Kind: KindCollapse, Icon: "package",
					RequiredPermissions: []string{identity.KeyManageApps},
					KeepWhenEmpty:       true},
			},
		},
		{
			ID:    GroupAdmin,
			Title: "Platform Admin",
			Kind:  KindGroup,
			Children: []Node{
				{ID: "admin-stats", Title: "Statistics", Kind: KindItem, URL: "/admin/stats",
					RequiredPermissions: []string{identity.KeyManageSaaS}},
				{ID: "admin-companies", Title: "Companies", Kind: KindItem, URL: "/admin/companies",
					RequiredPermissions: []string{identity.KeyManageSaaS}},
				{ID: "admin-broadcast", Title: "Broadcast", Kind: KindItem, URL: "/admin/broadcast",
					RequiredPermissions: []string{identity.KeyManageSaaS}},
				{ID: "admin-database", Title: "Database", Kind: KindItem, URL: "/admin/database",
					RequiredPermissions: []string{identity.KeyManageSaaS}},
			},
		},
	}
}
