package domain

type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// User is a static roster entry. The PIN is an operational lock, not a credential.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	PIN  string `json:"-"`
	Role Role   `json:"role"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
