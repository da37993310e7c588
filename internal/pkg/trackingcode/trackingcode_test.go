package trackingcode

import (
	"strings"
	"testing"
)

func TestGenerate_Format(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code := Generate()
		if len(code) != Length {
			t.Fatalf("expected length %d, got %d (%q)", Length, len(code), code)
		}
		for _, r := range code {
			if !strings.ContainsRune(alphabet, r) {
				t.Fatalf("character %q outside alphabet in %q", r, code)
			}
		}
		if code != strings.ToUpper(code) {
			t.Fatalf("code must be upper-case: %q", code)
		}
	}
}

func TestGenerate_PairwiseDistinct(t *testing.T) {
	const n = 100_000
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		code := Generate()
		if _, dup := seen[code]; dup {
			t.Fatalf("collision after %d codes: %q", i, code)
		}
		seen[code] = struct{}{}
	}
}
