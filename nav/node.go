// Package nav declares the console menu tree and the permission-driven
// filter that produces the visible subset for a user.
package nav

// Kind tags the navigation node variants
type Kind string

const (
	KindGroup    Kind = "group"    // top-level section with a heading
	KindCollapse Kind = "collapse" // expandable branch
	KindItem     Kind = "item"     // routable leaf
)

// Node is one entry of the navigation tree. A node with required
// permissions is visible when the user holds any one of them.
type Node struct {
	ID                  string
	Title               string
	Kind                Kind
	URL                 string
	Icon                string
	RequiredPermissions []string
	Children            []Node

	// KeepWhenEmpty exempts a container from empty-group removal. The
	// installed-apps placeholder uses it: the node renders empty until
	// the async install fetch appends its leaves.
	KeepWhenEmpty bool
}

// IsContainer reports whether the node holds children rather than a route
func (n Node) IsContainer() bool {
	return n.Kind == KindGroup || n.Kind == KindCollapse
}

// Clone returns a deep copy of the node and its subtree
func (n Node) Clone() Node {
	out := n
	if n.RequiredPermissions != nil {
		out.RequiredPermissions = append([]string(nil), n.RequiredPermissions...)
	}
	if n.Children != nil {
		out.Children = make([]Node, 0, len(n.Children))
		for _, c := range n.Children {
			out.Children = append(out.Children, c.Clone())
		}
	}
	return out
}
