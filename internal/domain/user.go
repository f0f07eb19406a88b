package domain

import (
	"time"

	"github.com/RominaTrazziSpindox/CIAMS-project/internal/auth"
)

// User is an account in the auth service's store. It is the source of truth
// for roles at token issuance time only; trusting services never read it.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Roles        []auth.Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRole reports whether the account currently holds the given role.
func (u *User) HasRole(role auth.Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
