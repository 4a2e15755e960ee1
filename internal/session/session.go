package session

import "strings"

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleComercial Role = "comercial"
)

// Session holds the logged-in identity for one application run. It is
// created by the login handler and passed to the screens that need it;
// reads and writes happen only on the event-loop thread.
type Session struct {
	Username string
	Name     string
	Role     Role
}

func New(username, name, role string) *Session {
	return &Session{
		Username: username,
		Name:     strings.TrimSpace(name),
		Role:     Role(strings.ToLower(strings.TrimSpace(role))),
	}
}

func (s *Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// ShortName returns the first word of the display name, used by the
// welcome label.
func (s *Session) ShortName() string {
	parts := strings.Fields(s.Name)
	if len(parts) == 0 {
		return s.Username
	}
	return parts[0]
}
