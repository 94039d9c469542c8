package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func createTestUser(isSuperuser bool, perms PermissionMap) *User {
	u := &User{
		ID:          uuid.New(),
		Email:       "user@example.com",
		CompanyID:   uuid.New(),
		IsSuperuser: isSuperuser,
	}
	if perms != nil {
		u.Role = &Role{
			ID:          uuid.New(),
			CompanyID:   u.CompanyID,
			Name:        "Test Role",
			Permissions: perms,
		}
	}
	return u
}

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name        string
		user        *User
		key         string
		want        bool
	}{
		{
			name: "nil user",
			user: nil,
			key:  KeyViewProducts,
			want: false,
		},
		{
			name: "superuser passes any key",
			user: createTestUser(true, nil),
			key:  "some_future_permission",
			want: true,
		},
		{
			name: "superuser passes manage_saas",
			user: createTestUser(true, nil),
			key:  KeyManageSaaS,
			want: true,
		},
		{
			name: "non-superuser never passes manage_saas",
			user: createTestUser(false, PermissionMap{KeyManageSaaS: true}),
			key:  KeyManageSaaS,
			want: false,
		},
		{
			name: "blanket all grant does not reach manage_saas",
			user: createTestUser(false, PermissionMap{KeyAll: true}),
			key:  KeyManageSaaS,
			want: false,
		},
		{
			name: "blanket all grant covers company-scoped keys",
			user: createTestUser(false, PermissionMap{KeyAll: true}),
			key:  KeyViewProducts,
			want: true,
		},
		{
			name: "direct grant",
			user: createTestUser(false, PermissionMap{KeyManageInventory: true}),
			key:  KeyManageInventory,
			want: true,
		},
		{
			name: "explicit false grant",
			user: createTestUser(false, PermissionMap{KeyManageInventory: false}),
			key:  KeyManageInventory,
			want: false,
		},
		{
			name: "missing key defaults to false",
			user: createTestUser(false, PermissionMap{KeyViewSales: true}),
			key:  KeyManageSales,
			want: false,
		},
		{
			name: "user without role",
			user: createTestUser(false, nil),
			key:  KeyViewProducts,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasPermission(tt.user, tt.key))
		})
	}
}

func TestHasAnyPermission(t *testing.T) {
	user := createTestUser(false, PermissionMap{KeyViewSales: true})

	assert.True(t, HasAnyPermission(user, KeyManageSales, KeyViewSales))
	assert.False(t, HasAnyPermission(user, KeyManageSales, KeyManagePurchases))
	assert.False(t, HasAnyPermission(user))
	assert.False(t, HasAnyPermission(nil, KeyViewSales))
}

func TestPermissionMapGrants(t *testing.T) {
	var nilMap PermissionMap
	assert.False(t, nilMap.Grants(KeyViewSales))

	m := PermissionMap{KeyAll: true}
	assert.True(t, m.Grants("anything_company_scoped"))
}
