package utils

import (
	"strings"
	"testing"
)

func TestNewBookingReference(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := NewBookingReference()
		if !strings.HasPrefix(code, "BK-") {
			t.Fatalf("expected BK- prefix, got %q", code)
		}
		if len(code) != len("BK-")+8 {
			t.Fatalf("unexpected length for %q", code)
		}
		if seen[code] {
			t.Fatalf("duplicate reference %q", code)
		}
		seen[code] = true
	}
}
