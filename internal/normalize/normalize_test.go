package normalize

import "testing"

func TestKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Milan HQ", want: "milan hq"},
		{in: "  Milan   HQ  ", want: "milan hq"},
		{in: "MILANO", want: "milano"},
		{in: "\tMilan\nHQ ", want: "milan hq"},
		{in: "", want: ""},
		{in: "   ", want: ""},
	}
	for _, tt := range tests {
		if got := Key(tt.in); got != tt.want {
			t.Errorf("Key(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "  Spare  Laptop ", want: "Spare Laptop"},
		{in: "Already clean", want: "Already clean"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		if got := Text(tt.in); got != tt.want {
			t.Errorf("Text(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTextPtr(t *testing.T) {
	if got := TextPtr(nil); got != nil {
		t.Errorf("TextPtr(nil) = %v, want nil", got)
	}

	empty := "   "
	if got := TextPtr(&empty); got != nil {
		t.Errorf("TextPtr(blank) = %v, want nil", got)
	}

	messy := "  a   description "
	got := TextPtr(&messy)
	if got == nil || *got != "a description" {
		t.Errorf("TextPtr() = %v, want %q", got, "a description")
	}
}
