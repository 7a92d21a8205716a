package util

import "strings"

// CleanText collapses runs of whitespace (including NBSP) into single spaces.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// TrimEdges strips the newline, NBSP and carriage-return padding the site
// wraps around description blocks, leaving the inner text untouched.
func TrimEdges(s string) string {
	return strings.Trim(s, "\n \r")
}
