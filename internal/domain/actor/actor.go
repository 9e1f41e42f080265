package actor

import "fmt"

type Role string

const (
	RoleReader    Role = "reader"
	RoleLibrarian Role = "librarian"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleReader, RoleLibrarian, RoleAdmin:
		return true
	}
	return false
}

// Actor is the already-authenticated caller of a circulation operation.
type Actor struct {
	ID   string
	Role Role
}

// IsStaff reports whether the actor may process loans and fines for others.
func (a Actor) IsStaff() bool { return a.Role == RoleLibrarian || a.Role == RoleAdmin }

func (a Actor) String() string { return fmt.Sprintf("%s(%s)", a.Role, a.ID) }
