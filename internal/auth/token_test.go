package auth

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

func testKey(t *testing.T, fill byte) Key {
	t.Helper()
	material := make([]byte, 32)
	for i := range material {
		material[i] = fill
	}
	key, err := LoadKey(base64.StdEncoding.EncodeToString(material))
	if err != nil {
		t.Fatalf("LoadKey() error: %v", err)
	}
	return key
}

func newCodec(t *testing.T, key Key, ttl time.Duration) *Codec {
	t.Helper()
	codec, err := NewCodec(key, ttl)
	if err != nil {
		t.Fatalf("NewCodec() error: %v", err)
	}
	return codec
}

func TestNewCodecRejectsNonPositiveTTL(t *testing.T) {
	key := testKey(t, 0x99)

	for _, ttl := range []time.Duration{0, -time.Minute} {
		if _, err := NewCodec(key, ttl); err == nil {
			t.Errorf("NewCodec(ttl=%s) expected error, got nil", ttl)
		}
	}
}

func TestIssueValidateRoundTrip(t *testing.T) {
	codec := newCodec(t, testKey(t, 0xA1), time.Hour)

	token, issued, err := codec.Issue("alice", []Role{RoleUser, RoleAdmin})
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	claims, err := codec.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if claims.Subject != "alice" {
		t.Errorf("Subject = %q, want %q", claims.Subject, "alice")
	}
	if !claims.HasRole(RoleUser) || !claims.HasRole(RoleAdmin) {
		t.Errorf("Roles = %v, want USER and ADMIN", claims.Roles)
	}
	if got, want := claims.ExpiresAt.Unix(), issued.ExpiresAt.Unix(); got != want {
		t.Errorf("ExpiresAt = %d, want %d", got, want)
	}
}

func TestValidateExpiryBoundary(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ttl := 15 * time.Minute

	codec := newCodec(t, testKey(t, 0xB2), ttl)
	codec.now = func() time.Time { return issuedAt }

	token, _, err := codec.Issue("bob", []Role{RoleUser})
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	tests := []struct {
		name string
		now  time.Time
		want error
	}{
		{name: "just issued", now: issuedAt},
		{name: "one second before expiry", now: issuedAt.Add(ttl - time.Second)},
		{name: "exactly at expiry", now: issuedAt.Add(ttl), want: ErrTokenExpired},
		{name: "after expiry", now: issuedAt.Add(ttl + time.Hour), want: ErrTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec.now = func() time.Time { return tt.now }
			_, err := codec.Validate(token)
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidateTamperedToken(t *testing.T) {
	codec := newCodec(t, testKey(t, 0xC3), time.Hour)

	token, _, err := codec.Issue("carol", []Role{RoleUser})
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	// Flip a character in the signature segment.
	i := strings.LastIndex(token, ".") + 1
	flipped := byte('A')
	if token[i] == 'A' {
		flipped = 'B'
	}
	tampered := token[:i] + string(flipped) + token[i+1:]

	if _, err := codec.Validate(tampered); !errors.Is(err, ErrTokenSignatureInvalid) {
		t.Errorf("Validate(tampered) error = %v, want %v", err, ErrTokenSignatureInvalid)
	}
}

func TestValidateWrongKey(t *testing.T) {
	issuer := newCodec(t, testKey(t, 0x11), time.Hour)
	verifier := newCodec(t, testKey(t, 0x22), time.Hour)

	token, _, err := issuer.Issue("dave", []Role{RoleUser})
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	if _, err := verifier.Validate(token); !errors.Is(err, ErrTokenSignatureInvalid) {
		t.Errorf("Validate() error = %v, want %v", err, ErrTokenSignatureInvalid)
	}
}

func TestValidateUnsupportedMethod(t *testing.T) {
	key := testKey(t, 0xD4)
	codec := newCodec(t, key, time.Hour)

	token := jwt.NewWithClaims(jwt.SigningMethodHS384, &wireClaims{
		Roles: []Role{RoleUser},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "eve",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString(key.material)
	if err != nil {
		t.Fatalf("SignedString() error: %v", err)
	}

	if _, err := codec.Validate(signed); !errors.Is(err, ErrTokenUnsupported) {
		t.Errorf("Validate() error = %v, want %v", err, ErrTokenUnsupported)
	}
}

func TestValidateMalformed(t *testing.T) {
	codec := newCodec(t, testKey(t, 0xE5), time.Hour)

	for _, tokenStr := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := codec.Validate(tokenStr); !errors.Is(err, ErrTokenMalformed) {
			t.Errorf("Validate(%q) error = %v, want %v", tokenStr, err, ErrTokenMalformed)
		}
	}
}

func TestValidateMissingSubject(t *testing.T) {
	key := testKey(t, 0xF6)
	codec := newCodec(t, key, time.Hour)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &wireClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString(key.material)
	if err != nil {
		t.Fatalf("SignedString() error: %v", err)
	}

	if _, err := codec.Validate(signed); !errors.Is(err, ErrTokenMalformed) {
		t.Errorf("Validate() error = %v, want %v", err, ErrTokenMalformed)
	}
}

func TestValidateMissingExpiry(t *testing.T) {
	key := testKey(t, 0x77)
	codec := newCodec(t, key, time.Hour)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &wireClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "frank"},
	})
	signed, err := token.SignedString(key.material)
	if err != nil {
		t.Fatalf("SignedString() error: %v", err)
	}

	if _, err := codec.Validate(signed); err == nil {
		t.Error("Validate() expected error for token without expiry, got nil")
	}
}
