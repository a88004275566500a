package entity

type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// User is the identity record returned by /auth/me. ProfileID is the
// role-scoped identifier (buyer, seller or admin profile).
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email,omitempty"`
	Role      Role   `json:"role"`
	ProfileID string `json:"profileId,omitempty"`
}
