package constants

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ErrAdminOnly is the 403 message of the admin gate.
const ErrAdminOnly = "Access denied. Admin only."

var (
	AllRoles  = []string{RoleUser, RoleAdmin}
	AdminOnly = []string{RoleAdmin}
)

func IsValidRole(r string) bool {
	for _, x := range AllRoles {
		if x == r {
			return true
		}
	}
	return false
}
