package user

type Role string

const (
	RoleFounder Role = "founder" // Organization founder - full access, final approver
	RoleManager Role = "manager" // Can review team attendance (first stage)
	RoleMember  Role = "member"  // Regular member
)

// User is the slice of the external user directory this subsystem reads.
// Referenced by identity only; owned by the user-management collaborator.
type User struct {
	ID    string
	Name  string
	Email string
}

// RoleInfo is the resolved authorization view of a user, looked up once per
// operation through the RoleResolver.
type RoleInfo struct {
	IsManagerOrFounder bool
	IsFounder          bool
	IsProjectManager   bool
}

// IsManager checks if role is manager or founder
func (r Role) IsManager() bool {
	return r == RoleManager || r == RoleFounder
}

// IsFounder checks if role is founder
func (r Role) IsFounder() bool {
	return r == RoleFounder
}
