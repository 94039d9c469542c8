package identity

// HasPermission reports whether the user holds the given permission key.
//
// Evaluation order:
//  1. no authenticated user: false
//  2. superuser: true for every key
//  3. manage_saas: false for everyone else, regardless of role content
//     (a blanket "all" grant does not reach it)
//  4. role map lookup, honouring the "all" grant, defaulting to false
//
// The predicate is pure; it never consults the server.
func HasPermission(user *User, key string) bool {
	if user == nil {
		return false
	}
	if user.IsSuperuser {
		return true
	}
	if key == KeyManageSaaS {
		return false
	}
	if user.Role == nil {
		return false
	}
	return user.Role.Permissions.Grants(key)
}

// HasAnyPermission reports whether any of the keys individually passes
// HasPermission. An empty key list yields false.
func HasAnyPermission(user *User, keys ...string) bool {
	for _, key := range keys {
		if HasPermission(user, key) {
			return true
		}
	}
	return false
}
