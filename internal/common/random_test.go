package common

import (
	"encoding/hex"
	"testing"
)

// ---------- MakeRandHexString ----------

func TestMakeRandHexString_LengthAndHex(t *testing.T) {
	const n = 16
	s, err := MakeRandHexString(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != n*2 {
		t.Fatalf("expected hex length %d, got %d", n*2, len(s))
	}
	if _, err := hex.DecodeString(s); err != nil {
		t.Fatalf("string is not valid hex: %v", err)
	}
}

func TestMakeRandHexString_ZeroSize(t *testing.T) {
	s, err := MakeRandHexString(0)
	if err != nil {
		t.Fatalf("unexpected error for size=0: %v", err)
	}
	if s != "" {
		t.Fatalf("expected empty string for size=0, got %q", s)
	}
}

// ---------- MakeRandDigitString ----------

func TestMakeRandDigitString_Format(t *testing.T) {
	for i := 0; i < 100; i++ {
		s, err := MakeRandDigitString(UserIDLength)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !IsDigitString(s, UserIDLength) {
			t.Fatalf("expected %d digits, got %q", UserIDLength, s)
		}
		if s[0] == '0' {
			t.Fatalf("expected non-zero leading digit, got %q", s)
		}
	}
}

func TestMakeRandDigitString_InvalidLength(t *testing.T) {
	if _, err := MakeRandDigitString(0); err == nil {
		t.Fatalf("expected error for n=0")
	}
	if _, err := MakeRandDigitString(-3); err == nil {
		t.Fatalf("expected error for negative n")
	}
}

// ---------- IsDigitString ----------

func TestIsDigitString(t *testing.T) {
	cases := []struct {
		s    string
		n    int
		want bool
	}{
		{"11111", 5, true},
		{"00000", 5, true},
		{"1111", 5, false},
		{"111111", 5, false},
		{"1111a", 5, false},
		{"１１１１１", 5, false}, // full-width digits are not ASCII
		{"", 0, true},
	}
	for _, c := range cases {
		if got := IsDigitString(c.s, c.n); got != c.want {
			t.Fatalf("IsDigitString(%q, %d) = %v, want %v", c.s, c.n, got, c.want)
		}
	}
}
