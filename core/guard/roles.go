package guard

import "strings"

// Role values mirror the backend's prefix-grouped scheme: "admin:" names
// the whole admin group, "admin:owner" a concrete role within it.
const (
	RoleAdmin          = "admin:"
	RoleAdminOwner     = "admin:owner"
	RoleAdminPrincipal = "admin:principal"
	RoleTeacher        = "teacher:"
	RoleStudent        = "student:"
	RoleParent         = "parent:"
)

// HasAnyRole reports whether any held role satisfies one of the allowed
// roles. An empty allowed list means no restriction. A group role (trailing
// ":") is satisfied by any role in its group.
func HasAnyRole(held, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, want := range allowed {
		for _, have := range held {
			if have == want {
				return true
			}
			if strings.HasSuffix(want, ":") && strings.HasPrefix(have, want) {
				return true
			}
		}
	}
	return false
}
