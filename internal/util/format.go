// Package util holds small presentation helpers shared by the CLI output.
package util

import (
	"fmt"
	"strings"
)

// FormatNumber groups an integer by thousands with non-breaking thin
// separators the way ru-RU renders counters: 1234567 -> "1 234 567".
func FormatNumber(n int) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var groups []string
	for len(s) > 3 {
		groups = append([]string{s[len(s)-3:]}, groups...)
		s = s[:len(s)-3]
	}
	groups = append([]string{s}, groups...)

	out := strings.Join(groups, " ")
	if neg {
		out = "-" + out
	}
	return out
}

// FormatMoneyUSD renders a dollar amount for table output.
func FormatMoneyUSD(n int) string {
	return "$" + FormatNumber(n)
}
