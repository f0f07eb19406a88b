package auth

import (
	"encoding/base64"
	"fmt"
)

// minKeyBytes is the smallest secret HS256 accepts without weakening the MAC.
const minKeyBytes = 32

// Key holds the shared symmetric secret used to sign and verify tokens.
// It is loaded once at process start and never changes afterwards, so any
// number of request handlers may read it concurrently.
type Key struct {
	material []byte
}

// LoadKey decodes the base64-encoded shared secret. It fails when the value
// is missing, not valid base64, or decodes to fewer than 32 bytes.
func LoadKey(encodedSecret string) (Key, error) {
	if encodedSecret == "" {
		return Key{}, fmt.Errorf("auth: signing secret is not configured")
	}

	material, err := base64.StdEncoding.DecodeString(encodedSecret)
	if err != nil {
		return Key{}, fmt.Errorf("auth: signing secret is not valid base64: %w", err)
	}

	if len(material) < minKeyBytes {
		return Key{}, fmt.Errorf("auth: signing secret is %d bytes, need at least %d", len(material), minKeyBytes)
	}

	return Key{material: material}, nil
}

// String hides the key material from logs and format verbs.
func (k Key) String() string {
	return "auth.Key([redacted])"
}

// GoString hides the key material from %#v output.
func (k Key) GoString() string {
	return k.String()
}
