package validator

import (
	"testing"
	"time"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidSubdomain(t *testing.T) {
	valid := []string{"acme", "acme-corp", "a1b", "my-company-42"}
	invalid := []string{"ab", "-acme", "acme-", "Acme", "acme_corp", ""}
	for _, s := range valid {
		if !IsValidSubdomain(s) {
			t.Errorf("IsValidSubdomain(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidSubdomain(s) {
			t.Errorf("IsValidSubdomain(%q) = true, want false", s)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	valid := []string{"0", "9876543210"}
	invalid := []string{"", "98x76", "12 34", "+911234", "12.5"}
	for _, s := range valid {
		if !IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = true, want false", s)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	modes := []string{"tentative", "calculate", "save"}
	if !IsInSlice("calculate", modes) {
		t.Errorf("IsInSlice(%q) = false, want true", "calculate")
	}
	if IsInSlice("estimate", modes) {
		t.Errorf("IsInSlice(%q) = true, want false", "estimate")
	}
	if IsInSlice("save", nil) {
		t.Error("IsInSlice on nil slice = true, want false")
	}
}

func TestParseMonth(t *testing.T) {
	cases := []struct {
		input  string
		want   int
		wantOK bool
	}{
		{"1", 1, true},
		{"12", 12, true},
		{"JAN", 1, true},
		{"jan", 1, true},
		{"December", 12, true},
		{" jun ", 6, true},
		{"0", 0, false},
		{"13", 0, false},
		{"xyz", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseMonth(c.input)
		if got != c.want || ok != c.wantOK {
			t.Errorf("ParseMonth(%q) = (%d, %v), want (%d, %v)", c.input, got, ok, c.want, c.wantOK)
		}
	}
}

func TestMonthName(t *testing.T) {
	cases := []struct {
		month int
		want  string
	}{
		{1, "JAN"},
		{6, "JUN"},
		{12, "DEC"},
		{0, ""},
		{13, ""},
	}
	for _, c := range cases {
		if got := MonthName(c.month); got != c.want {
			t.Errorf("MonthName(%d) = %q, want %q", c.month, got, c.want)
		}
	}
}

func TestParseWeekday(t *testing.T) {
	cases := []struct {
		input  string
		want   time.Weekday
		wantOK bool
	}{
		{"monday", time.Monday, true},
		{"Sunday", time.Sunday, true},
		{" friday ", time.Friday, true},
		{"fri", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseWeekday(c.input)
		if ok != c.wantOK || (ok && got != c.want) {
			t.Errorf("ParseWeekday(%q) = (%v, %v), want (%v, %v)", c.input, got, ok, c.want, c.wantOK)
		}
	}
}

func TestIsValidTimeOfDay(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59"}
	invalid := []string{"24:00", "9:30:00", "nine", ""}
	for _, s := range valid {
		if !IsValidTimeOfDay(s) {
			t.Errorf("IsValidTimeOfDay(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidTimeOfDay(s) {
			t.Errorf("IsValidTimeOfDay(%q) = true, want false", s)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2025-06-15"); !ok {
		t.Error("IsValidDate(2025-06-15) = false, want true")
	}
	for _, s := range []string{"15-06-2025", "2025-13-01", ""} {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}
