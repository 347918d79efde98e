package domain

// Role enumerates caller capabilities.
type Role string

const (
	RoleEndUser Role = "END_USER"
	RoleAdmin   Role = "ADMIN"
)

// Caller is the authenticated principal behind a request. It is passed
// explicitly into every operation; the core never reads ambient state.
type Caller struct {
	ID   string
	Name string
	Role Role
	Team *string
}

// IsAdmin reports whether the caller holds administrative capability.
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// DisplayName returns the caller's name, falling back to the ID.
func (c Caller) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}
