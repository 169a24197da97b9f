package dates

import "testing"

func TestIsValidDate(t *testing.T) {
	valid := []string{"2024-01-01", "2026-12-31"}
	for _, s := range valid {
		if !IsValidDate(s) {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	invalid := []string{"", "2024-1-1", "2024-13-01", "2024-02-30", "today", "2024-01-01T10:00"}
	for _, s := range invalid {
		if IsValidDate(s) {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestParseDatetime(t *testing.T) {
	valid := []string{
		"2025-01-01T10:30:00Z",
		"2025-06-15T14:00:00+05:00",
		"2025-06-15T14:00",
		"2025-06-15T14:00:30",
	}
	for _, s := range valid {
		if _, err := ParseDatetime(s); err != nil {
			t.Errorf("ParseDatetime(%q) failed: %v", s, err)
		}
	}
	if _, err := ParseDatetime("2025-06-15"); err == nil {
		t.Error("expected error for bare date")
	}
}

func TestNormalizeDay(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2025-06-15", "2025-06-15"},
		{"2025-06-15T14:00:00Z", "2025-06-15"},
		{"2025-06-15T14:00", "2025-06-15"},
		{"next week", "next week"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeDay(tt.input); got != tt.want {
			t.Errorf("NormalizeDay(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
