package auth

import (
	"encoding/base64"
	"fmt"
	"strings"
	"testing"
)

func TestLoadKey(t *testing.T) {
	valid := base64.StdEncoding.EncodeToString(make([]byte, 32))

	tests := []struct {
		name    string
		secret  string
		wantErr bool
	}{
		{name: "valid 32 byte secret", secret: valid},
		{name: "valid long secret", secret: base64.StdEncoding.EncodeToString(make([]byte, 64))},
		{name: "empty", secret: "", wantErr: true},
		{name: "not base64", secret: "not-valid-base64!!!", wantErr: true},
		{name: "too short", secret: base64.StdEncoding.EncodeToString(make([]byte, 16)), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadKey(tt.secret)
			if tt.wantErr && err == nil {
				t.Fatal("LoadKey() expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("LoadKey() unexpected error: %v", err)
			}
		})
	}
}

func TestKeyRedaction(t *testing.T) {
	secret := []byte("0123456789abcdef0123456789abcdef")
	key, err := LoadKey(base64.StdEncoding.EncodeToString(secret))
	if err != nil {
		t.Fatalf("LoadKey() error: %v", err)
	}

	for _, formatted := range []string{
		fmt.Sprintf("%s", key),
		fmt.Sprintf("%v", key),
		fmt.Sprintf("%#v", key),
	} {
		if strings.Contains(formatted, string(secret)) {
			t.Errorf("formatted key leaks material: %q", formatted)
		}
		if !strings.Contains(formatted, "redacted") {
			t.Errorf("formatted key = %q, want redaction marker", formatted)
		}
	}
}
