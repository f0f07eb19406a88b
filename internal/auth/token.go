package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Validation failures. The middleware logs the specific class for operators
// but collapses all of them into "no identity" towards the caller, so the
// token format leaks nothing about which check failed.
var (
	ErrTokenMalformed        = errors.New("token is malformed")
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")
	ErrTokenExpired          = errors.New("token is expired")
	ErrTokenUnsupported      = errors.New("token signing method is unsupported")
)

// Claims is the identity payload carried by a token. Claims are immutable
// once issued: validity depends only on the signature and the expiry instant,
// never on a store lookup.
type Claims struct {
	Subject   string
	Roles     []Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// HasRole reports whether the claims carry the given role.
func (c Claims) HasRole(role Role) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// wireClaims is the JSON layout of the signed payload: registered sub/iat/exp
// plus a "roles" array of role names.
type wireClaims struct {
	Roles []Role `json:"roles"`
	jwt.RegisteredClaims
}

// Codec issues and validates signed identity tokens. It holds the shared key
// and the issuance TTL; it performs no I/O, so any service instance holding
// the same key can validate any issued token.
type Codec struct {
	key Key
	ttl time.Duration
	now func() time.Time
}

// NewCodec builds a codec around an already-loaded key. The TTL must be
// positive; a misconfigured lifetime aborts startup rather than silently
// issuing tokens with a substituted one.
func NewCodec(key Key, ttl time.Duration) (*Codec, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}
	return &Codec{key: key, ttl: ttl, now: time.Now}, nil
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for the subject carrying the given role snapshot.
// Roles are not re-read from any store on later requests; they are whatever
// the account held at issuance time.
func (c *Codec) Issue(subject string, roles []Role) (string, Claims, error) {
	now := c.now()
	claims := Claims{
		Subject:   subject,
		Roles:     append([]Role(nil), roles...),
		IssuedAt:  now,
		ExpiresAt: now.Add(c.ttl),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &wireClaims{
		Roles: claims.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject,
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	})

	signed, err := token.SignedString(c.key.material)
	if err != nil {
		return "", Claims{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims, nil
}

// Validate parses and verifies a token string. It fails with exactly one of
// ErrTokenMalformed, ErrTokenSignatureInvalid, ErrTokenExpired or
// ErrTokenUnsupported. A token is valid strictly while now < expiresAt.
func (c *Codec) Validate(tokenStr string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &wireClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrTokenUnsupported
		}
		return c.key.material, nil
	},
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Claims{}, classifyValidationError(err)
	}

	wire, ok := parsed.Claims.(*wireClaims)
	if !ok || !parsed.Valid {
		return Claims{}, ErrTokenMalformed
	}
	if wire.Subject == "" || wire.ExpiresAt == nil {
		return Claims{}, ErrTokenMalformed
	}

	claims := Claims{
		Subject:   wire.Subject,
		Roles:     wire.Roles,
		ExpiresAt: wire.ExpiresAt.Time,
	}
	if wire.IssuedAt != nil {
		claims.IssuedAt = wire.IssuedAt.Time
	}
	return claims, nil
}

func classifyValidationError(err error) error {
	switch {
	case errors.Is(err, ErrTokenUnsupported):
		return ErrTokenUnsupported
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrTokenSignatureInvalid
	default:
		return ErrTokenMalformed
	}
}
