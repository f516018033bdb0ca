package utils

import "testing"

func TestIsValidInput(t *testing.T) {
	testCases := []struct {
		input       string
		expected    bool
		description string
	}{
		{"hello", true, "Plain word"},
		{"user-name", true, "Separator allowed"},
		{"word2vec", true, "Digits mixed with letters"},
		{"", false, "Empty string"},
		{"12345", false, "Only numbers"},
		{"he!lo", false, "Special characters"},
		{"aaa", false, "Repetitive"},
		{"aa", true, "Two chars not repetitive"},
		{"wwww", false, "Repetitive long"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			if got := IsValidInput(tc.input); got != tc.expected {
				t.Errorf("IsValidInput(%q) = %v, want %v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestFormatWithCommas(t *testing.T) {
	testCases := []struct {
		n        int
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4200, "-4,200"},
	}

	for _, tc := range testCases {
		if got := FormatWithCommas(tc.n); got != tc.expected {
			t.Errorf("FormatWithCommas(%d) = %q, want %q", tc.n, got, tc.expected)
		}
	}
}
