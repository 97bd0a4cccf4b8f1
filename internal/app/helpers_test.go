package app

import "regexp"

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// stripANSI removes ANSI escape codes from a string for testing
func stripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}
