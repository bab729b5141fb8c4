package models

// Role is the access role carried by an authenticated actor.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleEditor Role = "EDITOR"
	RoleViewer Role = "VIEWER"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	default:
		return false
	}
}

// Actor is the authenticated principal. It is immutable for the
// duration of a session and replaced wholesale on login/logout.
type Actor struct {
	ID          string `json:"id"`
	DisplayName string `json:"name"`
	Email       string `json:"email,omitempty"`
	Role        Role   `json:"role"`
}
