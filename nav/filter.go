package nav

import (
	"github.com/erp/console/domain/apps"
	"github.com/erp/console/domain/identity"
)

// Predicate decides whether the current user satisfies a permission key.
// identity.HasPermission curried over the session user is the usual value.
type Predicate func(key string) bool

// UserPredicate builds a Predicate from a user
func UserPredicate(user *identity.User) Predicate {
	return func(key string) bool {
		return identity.HasPermission(user, key)
	}
}

// Filter produces the visible subset of the menu tree for a user.
//
// Rules, applied depth-first:
//   - a superuser sees only the allow-listed top-level groups (platform
//     admin and the apps platform); everyone else loses the admin group
//   - a node declaring required permissions is dropped, subtree included,
//     when the user satisfies none of them
//   - a container left without children after filtering is dropped unless
//     it is marked KeepWhenEmpty; a permission-free parent therefore
//     disappears when all of its children were filtered away
//
// The input tree is never mutated; filtering an already-filtered tree
// with the same predicate returns an equal tree.
func Filter(tree []Node, isSuperuser bool, allows Predicate) []Node {
	out := make([]Node, 0, len(tree))
	for _, n := range tree {
		if isSuperuser && !superuserGroups[n.ID] {
			continue
		}
		if !isSuperuser && n.ID == GroupAdmin {
			continue
		}
		if kept, ok := filterNode(n, allows); ok {
			out = append(out, kept)
		}
	}
	return out
}

func filterNode(n Node, allows Predicate) (Node, bool) {
	if len(n.RequiredPermissions) > 0 && !anyAllowed(n.RequiredPermissions, allows) {
		return Node{}, false
	}

	kept := n.Clone()
	if len(n.Children) > 0 {
		kept.Children = make([]Node, 0, len(n.Children))
		for _, c := range n.Children {
			if child, ok := filterNode(c, allows); ok {
				kept.Children = append(kept.Children, child)
			}
		}
	}

	if kept.IsContainer() && len(kept.Children) == 0 && !kept.KeepWhenEmpty {
		return Node{}, false
	}
	return kept, true
}

func anyAllowed(keys []string, allows Predicate) bool {
	for _, k := range keys {
		if allows(k) {
			return true
		}
	}
	return false
}

// appNavRules maps an app slug to the nav leaves it unlocks. Only enabled
// installs contribute; unknown slugs fall back to a generated settings leaf.
var appNavRules = map[string][]Node{
	"ecommerce-sync": {
		{ID: "app-ecommerce-sync", Title: "E-commerce Sync", Kind: KindItem, URL: "/apps/ecommerce-sync"},
	},
	"accounting-export": {
		{ID: "app-accounting-export", Title: "Accounting Export", Kind: KindItem, URL: "/apps/accounting-export"},
	},
	"loyalty": {
		{ID: "app-loyalty", Title: "Loyalty Program", Kind: KindItem, URL: "/apps/loyalty"},
	},
}

// AppendInstalledApps grafts one leaf per enabled install under the
// installed-apps placeholder. It is the asynchronous second phase: the
// tree renders without these leaves until the install fetch completes.
// The input tree is not mutated.
func AppendInstalledApps(tree []Node, installs []apps.InstalledApp) []Node {
	leaves := make([]Node, 0, len(installs))
	for _, app := range installs {
		if !app.Enabled {
			continue
		}
		if nodes, ok := appNavRules[app.Slug]; ok {
			leaves = append(leaves, nodes...)
			continue
		}
		leaves = append(leaves, Node{
			ID:    "app-" + app.Slug,
			Title: app.Name,
			Kind:  KindItem,
			URL:   "/apps/" + app.Slug,
		})
	}

	out := make([]Node, 0, len(tree))
	for _, n := range tree {
		out = append(out, graftAppLeaves(n, leaves))
	}
	return out
}

func graftAppLeaves(n Node, leaves []Node) Node {
	kept := n.Clone()
	if kept.ID == NodeInstalledApps {
		kept.Children = append(kept.Children, leaves...)
		return kept
	}
	for i := range kept.Children {
		kept.Children[i] = graftAppLeaves(kept.Children[i], leaves)
	}
	return kept
}
