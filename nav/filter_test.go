package nav

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/console/domain/apps"
	"github.com/erp/console/domain/identity"
)

func createTestUser(isSuperuser bool, perms identity.PermissionMap) *identity.User {
	u := &identity.User{ID: uuid.New(), CompanyID: uuid.New(), IsSuperuser: isSuperuser}
	if perms != nil {
		u.Role = &identity.Role{ID: uuid.New(), Permissions: perms}
	}
	return u
}

func findNode(nodes []Node, id string) *Node {
	for i := range nodes {
		if nodes[i].ID == id {
			return &nodes[i]
		}
		if found := findNode(nodes[i].Children, id); found != nil {
			return found
		}
	}
	return nil
}

func TestFilterDropsAdminGroupForCompanyUsers(t *testing.T) {
	user := createTestUser(false, identity.PermissionMap{identity.KeyAll: true})
	visible := Filter(DefaultMenu(), user.IsSuperuser, UserPredicate(user))

	assert.Nil(t, findNode(visible, GroupAdmin))
	assert.NotNil(t, findNode(visible, "products"))
	assert.NotNil(t, findNode(visible, "pos"))
}

func TestFilterSuperuserAllowList(t *testing.T) {
	su := createTestUser(true, nil)
	visible := Filter(DefaultMenu(), su.IsSuperuser, UserPredicate(su))

	require.Len(t, visible, 2)
	assert.NotNil(t, findNode(visible, GroupAdmin))
	assert.NotNil(t, findNode(visible, GroupAppsPlatform))
	assert.Nil(t, findNode(visible, GroupOperations))
	assert.Nil(t, findNode(visible, GroupDashboard))
}

func TestFilterDropsNodesWithoutPermission(t *testing.T) {
	user := createTestUser(false, identity.PermissionMap{identity.KeyViewSales: true})
	visible := Filter(DefaultMenu(), user.IsSuperuser, UserPredicate(user))

	assert.NotNil(t, findNode(visible, "sales-list"))
	assert.Nil(t, findNode(visible, "pos"))
	assert.Nil(t, findNode(visible, "products"))
	// Catalog collapse lost all children, so the collapse itself is gone
	assert.Nil(t, findNode(visible, "catalog"))
}

func TestFilterRemovesEmptyParentWithoutOwnRequirement(t *testing.T) {
	tree := []Node{
		{
			ID: "g", Kind: KindGroup, Title: "Group",
			Children: []Node{
				{
					ID: "parent", Kind: KindCollapse, Title: "Parent", // no own requirement
					Children: []Node{
						{ID: "child", Kind: KindItem, URL: "/child",
							RequiredPermissions: []string{identity.KeyManageBilling}},
					},
				},
			},
		},
	}

	user := createTestUser(false, identity.PermissionMap{identity.KeyViewSales: true})
	visible := Filter(tree, false, UserPredicate(user))

	// Children emptiness removes the parent, and then the group above it
	assert.Empty(t, visible)
}

func TestFilterKeepsInstalledAppsPlaceholderEmpty(t *testing.T) {
	user := createTestUser(false, identity.PermissionMap{identity.KeyManageApps: true})
	visible := Filter(DefaultMenu(), user.IsSuperuser, UserPredicate(user))

	placeholder := findNode(visible, NodeInstalledApps)
	require.NotNil(t, placeholder)
	assert.Empty(t, placeholder.Children)
}

func TestFilterIdempotence(t *testing.T) {
	users := []*identity.User{
		createTestUser(false, identity.PermissionMap{identity.KeyViewSales: true, identity.KeyManageApps: true}),
		createTestUser(false, identity.PermissionMap{identity.KeyAll: true}),
		createTestUser(true, nil),
		nil,
	}

	for _, user := range users {
		isSuper := user != nil && user.IsSuperuser
		once := Filter(DefaultMenu(), isSuper, UserPredicate(user))
		twice := Filter(once, isSuper, UserPredicate(user))
		assert.Equal(t, once, twice)
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	tree := DefaultMenu()
	user := createTestUser(false, identity.PermissionMap{identity.KeyViewSales: true})
	_ = Filter(tree, false, UserPredicate(user))
	assert.Equal(t, DefaultMenu(), tree)
}

func TestAppendInstalledApps(t *testing.T) {
	user := createTestUser(false, identity.PermissionMap{identity.KeyManageApps: true})
	visible := Filter(DefaultMenu(), false, UserPredicate(user))

	installs := []apps.InstalledApp{
		{Slug: "ecommerce-sync", Name: "E-commerce Sync", Enabled: true},
		{Slug: "loyalty", Name: "Loyalty Program", Enabled: false}, // disabled: no leaf
		{Slug: "custom-thing", Name: "Custom Thing", Enabled: true},
	}

	withApps := AppendInstalledApps(visible, installs)

	placeholder := findNode(withApps, NodeInstalledApps)
	require.NotNil(t, placeholder)
	require.Len(t, placeholder.Children, 2)
	assert.Equal(t, "app-ecommerce-sync", placeholder.Children[0].ID)
	assert.Equal(t, "app-custom-thing", placeholder.Children[1].ID)
	assert.Equal(t, "/apps/custom-thing", placeholder.Children[1].URL)

	// The pre-append tree is untouched
	assert.Empty(t, findNode(visible, NodeInstalledApps).Children)
}
