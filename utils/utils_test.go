package utils

import (
	"testing"
	"time"
)

func TestSnakeToCamel(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"primary", "primary"},
		{"primary_color", "primaryColor"},
		{"ultra_marine_dark", "ultraMarineDark"},
		{"already_Camel", "alreadyCamel"},
		{"alreadyCamel", "alreadyCamel"},
		{"_leading", "leading"},
		{"trailing_", "trailing"},
		{"double__underscore", "doubleUnderscore"},
		{"___", ""},
	}
	for _, c := range cases {
		if got := SnakeToCamel(c.in); got != c.want {
			t.Errorf("SnakeToCamel(%q): expected %q, got %q", c.in, c.want, got)
		}
	}
}

func TestCapitalizeFirst(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"a", "A"},
		{"primary", "Primary"},
		{"Primary", "Primary"},
		{"éclair", "Éclair"},
	}
	for _, c := range cases {
		if got := CapitalizeFirst(c.in); got != c.want {
			t.Errorf("CapitalizeFirst(%q): expected %q, got %q", c.in, c.want, got)
		}
	}
}

func TestFormatTime(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{12 * time.Millisecond, "12.00ms"},
		{999 * time.Millisecond, "999.00ms"},
		{time.Second, "1.00s"},
		{2500 * time.Millisecond, "2.50s"},
	}
	for _, c := range cases {
		if got := FormatTime(c.in); got != c.want {
			t.Errorf("FormatTime(%v): expected %q, got %q", c.in, c.want, got)
		}
	}
}

func TestMinMaxAbs(t *testing.T) {
	if got := Min(3, 7); got != 3 {
		t.Errorf("Expected Min(3, 7) to be 3, got %d", got)
	}
	if got := Min(2.5, -1.5); got != -1.5 {
		t.Errorf("Expected Min(2.5, -1.5) to be -1.5, got %v", got)
	}
	if got := Max(3, 7); got != 7 {
		t.Errorf("Expected Max(3, 7) to be 7, got %d", got)
	}
	if got := Abs(-4); got != 4 {
		t.Errorf("Expected Abs(-4) to be 4, got %d", got)
	}
	if got := Abs(4); got != 4 {
		t.Errorf("Expected Abs(4) to be 4, got %d", got)
	}
}
