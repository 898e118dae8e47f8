package models

// Role is one of the fixed account roles, in descending privilege.
type Role string

const (
	RoleLeader   Role = "leader"
	RoleCoLeader Role = "co_leader"
	RoleVisor    Role = "visor"
)

// Roles keyed by their constant name, as served by GET /roles.
var Roles = map[string]Role{
	"LEADER":    RoleLeader,
	"CO_LEADER": RoleCoLeader,
	"VISOR":     RoleVisor,
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleLeader, RoleCoLeader, RoleVisor:
		return true
	}
	return false
}
