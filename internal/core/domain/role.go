package domain

import "strings"

// Role is a member of the fixed visitor < analyst < admin hierarchy.
type Role string

const (
	RoleVisitor Role = "visitor"
	RoleAnalyst Role = "analyst"
	RoleAdmin   Role = "admin"
)

var roleRank = map[Role]int{
	RoleVisitor: 1,
	RoleAnalyst: 2,
	RoleAdmin:   3,
}

// Rank returns the ordinal of r, or 0 for an unknown role.
func (r Role) Rank() int {
	return roleRank[r]
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r.Rank() > 0
}

// AtLeast reports whether r is as privileged as min. Unknown roles never satisfy a check.
func (r Role) AtLeast(min Role) bool {
	return r.Valid() && min.Valid() && r.Rank() >= min.Rank()
}

// ParseRole normalises s into a Role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}
