package authz

const (
	RoleStudent    = 10
	RoleSupervisor = 20
	RoleAdmin      = 50
)

func IsStudent(roleID int) bool {
	return roleID == RoleStudent
}

func IsSupervisor(roleID int) bool {
	return roleID == RoleSupervisor
}

func IsAdmin(roleID int) bool {
	return roleID == RoleAdmin
}
