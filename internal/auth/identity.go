package auth

import "github.com/gofiber/fiber/v2"

const identityKey = "auth_identity"

// Identity is the request-scoped authenticated caller, derived from a
// validated token. It lives only for the duration of one request and is
// never persisted or shared.
type Identity struct {
	Subject string
	Roles   []Role
}

// HasRole reports whether the identity carries the given role.
func (id Identity) HasRole(role Role) bool {
	for _, r := range id.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IdentityFromContext retrieves the identity established for this request,
// if any.
func IdentityFromContext(c *fiber.Ctx) (Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return Identity{}, false
	}
	identity, ok := val.(Identity)
	return identity, ok
}
