package domain

import "testing"

func TestPriorityValid(t *testing.T) {
	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh} {
		if !p.Valid() {
			t.Errorf("Priority(%q).Valid() = false, want true", p)
		}
	}

	for _, p := range []Priority{"", "urgent", "Medium", "HIGH"} {
		if p.Valid() {
			t.Errorf("Priority(%q).Valid() = true, want false", p)
		}
	}
}

func TestValidDueDate(t *testing.T) {
	valid := []string{"", "2025-01-31", "2024-02-29", "1999-12-01"}
	for _, s := range valid {
		if !ValidDueDate(s) {
			t.Errorf("ValidDueDate(%q) = false, want true", s)
		}
	}

	invalid := []string{
		"2025-1-1",
		"2025/01/01",
		"01-01-2025",
		"2025-13-01",
		"2025-01-32",
		"not-a-date",
	}
	for _, s := range invalid {
		if ValidDueDate(s) {
			t.Errorf("ValidDueDate(%q) = true, want false", s)
		}
	}
}
