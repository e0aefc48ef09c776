package constants

const (
	RoleStudent = "student"
	RoleTutor   = "tutor"
)

func IsValidRole(role string) bool {
	return role == RoleStudent || role == RoleTutor
}
