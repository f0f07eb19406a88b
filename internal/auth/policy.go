package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Decision is the outcome of evaluating the policy for one request.
type Decision int

const (
	DecisionAllow Decision = iota
	DecisionUnauthenticated
	DecisionForbidden
)

type accessKind int

const (
	accessPublic accessKind = iota
	accessAuthenticated
	accessRole
)

// Access is the level a rule grants: open to anyone, any authenticated
// identity, or a specific role.
type Access struct {
	kind accessKind
	role Role
}

// Public allows anonymous access.
func Public() Access {
	return Access{kind: accessPublic}
}

// AnyAuthenticated requires an established identity, whatever its roles.
func AnyAuthenticated() Access {
	return Access{kind: accessAuthenticated}
}

// RequireRole requires an established identity carrying the given role.
func RequireRole(role Role) Access {
	return Access{kind: accessRole, role: role}
}

// Rule maps one (method, path pattern) pair to an access level. Method "*"
// matches any method. Patterns are matched exactly, except a trailing "/*"
// which matches the prefix and everything under it.
type Rule struct {
	Method  string
	Pattern string
	Access  Access
}

// Policy is a statically ordered rule table, evaluated top to bottom with
// first match winning. Requests matching no rule require an authenticated
// identity.
type Policy struct {
	rules []Rule
}

// NewPolicy builds a policy from an ordered rule list.
func NewPolicy(rules ...Rule) *Policy {
	return &Policy{rules: rules}
}

// Decide evaluates the table for a request. identity is nil when no identity
// was established. The same inputs always produce the same decision.
func (p *Policy) Decide(method, path string, identity *Identity) Decision {
	access := AnyAuthenticated()
	for _, rule := range p.rules {
		if rule.matches(method, path) {
			access = rule.Access
			break
		}
	}

	switch access.kind {
	case accessPublic:
		return DecisionAllow
	case accessAuthenticated:
		if identity == nil {
			return DecisionUnauthenticated
		}
		return DecisionAllow
	default:
		if identity == nil {
			return DecisionUnauthenticated
		}
		if !identity.HasRole(access.role) {
			return DecisionForbidden
		}
		return DecisionAllow
	}
}

// Enforce applies the policy after Authenticate has run, translating
// rejections into the two uniform error payloads.
func (p *Policy) Enforce() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var identity *Identity
		if id, ok := IdentityFromContext(c); ok {
			identity = &id
		}

		switch p.Decide(c.Method(), c.Path(), identity) {
		case DecisionUnauthenticated:
			return Unauthenticated(c)
		case DecisionForbidden:
			return Forbidden(c)
		default:
			return c.Next()
		}
	}
}

func (r Rule) matches(method, path string) bool {
	if r.Method != "*" && r.Method != method {
		return false
	}
	if prefix, ok := strings.CutSuffix(r.Pattern, "/*"); ok {
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}
	return path == r.Pattern
}
