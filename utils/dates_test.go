package utils

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-06-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if _, err := ParseDate("10/06/2024"); err == nil {
		t.Fatal("expected error for non ISO date")
	}
	if _, err := ParseDate(""); err == nil {
		t.Fatal("expected error for empty date")
	}
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2024, 6, 10, 23, 45, 12, 999, time.UTC)
	got := DateOnly(in)
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
		t.Fatalf("expected midnight, got %v", got)
	}
	if got.Location() != time.UTC {
		t.Fatalf("expected UTC, got %v", got.Location())
	}
}

func TestNightsBetween(t *testing.T) {
	cases := []struct {
		in, out string
		want    int
	}{
		{"2024-06-10", "2024-06-13", 3},
		{"2024-06-10", "2024-06-11", 1},
		{"2024-06-10", "2024-06-10", 0},
		{"2024-06-13", "2024-06-10", 0},
	}
	for _, tc := range cases {
		a, _ := ParseDate(tc.in)
		b, _ := ParseDate(tc.out)
		if got := NightsBetween(a, b); got != tc.want {
			t.Fatalf("NightsBetween(%s, %s) = %d, want %d", tc.in, tc.out, got, tc.want)
		}
	}
}
