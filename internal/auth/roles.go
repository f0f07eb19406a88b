package auth

import "fmt"

// Role is one of the fixed authorization roles carried inside a token.
// The zero value is RoleUser.
type Role int

const (
	RoleUser Role = iota
	RoleAdmin
)

// roleNames is the total mapping from roles to their wire form. Role names
// travel inside token claims and are compared case-sensitively against
// policy rules, so both services must use this exact vocabulary.
var roleNames = map[Role]string{
	RoleUser:  "USER",
	RoleAdmin: "ADMIN",
}

// String returns the wire form of the role.
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// ParseRole converts a wire role name back into a Role. Comparison is
// case-sensitive; unknown names are rejected.
func ParseRole(name string) (Role, error) {
	for role, roleName := range roleNames {
		if roleName == name {
			return role, nil
		}
	}
	return RoleUser, fmt.Errorf("auth: unknown role %q", name)
}

// MarshalText serializes the role for JSON payloads and token claims.
func (r Role) MarshalText() ([]byte, error) {
	name, ok := roleNames[r]
	if !ok {
		return nil, fmt.Errorf("auth: cannot serialize role %d", int(r))
	}
	return []byte(name), nil
}

// UnmarshalText parses the wire form of a role.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// RoleNames converts a role set to its wire form for client display.
func RoleNames(roles []Role) []string {
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, role.String())
	}
	return names
}
