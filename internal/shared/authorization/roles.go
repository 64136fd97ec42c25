package authorization

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleUser
}

// AuthContext is the caller's console session, passed explicitly into every
// access decision. The zero value is an anonymous caller.
type AuthContext struct {
	UserID          uint
	Username        string
	Role            UserRole
	IsAuthenticated bool
}

// Anonymous returns the context of a caller without a console session.
func Anonymous() AuthContext {
	return AuthContext{}
}

// IsAdmin reports whether the caller is a logged-in administrator.
func (a AuthContext) IsAdmin() bool {
	return a.IsAuthenticated && a.Role.IsAdmin()
}
