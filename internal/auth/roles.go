package auth

import "strings"

// Role is the caller's privilege level, carried as a claim in the JWT.
type Role string

const (
	RoleUser       Role = "user"
	RoleCurator    Role = "curator"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// roleRanks totally orders the four roles. Anything not in the table
// ranks 0 and is denied everywhere.
var roleRanks = map[Role]int{
	RoleUser:       1,
	RoleCurator:    2,
	RoleAdmin:      3,
	RoleSuperAdmin: 4,
}

// Rank returns the role's position in the hierarchy, or 0 for an
// unrecognized role.
func Rank(r Role) int {
	return roleRanks[r]
}

// HasAccess reports whether caller is at least as privileged as required.
// An unknown caller role is treated as "no access", never as an error,
// so a malformed claim cannot abort the request pipeline.
func HasAccess(caller, required Role) bool {
	return Rank(caller) >= Rank(required)
}

// ParseRole normalizes a raw claim string (case, surrounding space) onto
// the role set. Strings that still match nothing rank 0 and fail every
// gate.
func ParseRole(s string) Role {
	return Role(strings.ToLower(strings.TrimSpace(s)))
}

// Valid reports whether r is one of the four defined roles.
func Valid(r Role) bool {
	_, ok := roleRanks[r]
	return ok
}
