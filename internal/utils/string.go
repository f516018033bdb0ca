package utils

import "strconv"

// FormatWithCommas renders n with thousands separators for CLI output.
func FormatWithCommas(n int) string {
	s := strconv.Itoa(n)
	start := 0
	if s[0] == '-' {
		start = 1
	}
	out := make([]byte, 0, len(s)+len(s)/3)
	for i := 0; i < len(s); i++ {
		if i > start && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	return string(out)
}
