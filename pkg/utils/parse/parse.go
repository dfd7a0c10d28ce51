// ABOUTME: Utility functions for parsing settings from strings
// ABOUTME: Provides tolerant int and switch parsing with an ok result

package parse

import (
	"strconv"
	"strings"
)

// IntOrDefault parses s as a base-10 integer, returning def if parsing fails
func IntOrDefault(s string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return v
}

// Switch reads an on/off setting. It accepts true/1/enabled/on/yes and
// false/0/disabled/off/no in any case; ok is false for anything else.
func Switch(s string) (value bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "enabled", "on", "yes":
		return true, true
	case "false", "0", "disabled", "off", "no":
		return false, true
	}
	return false, false
}
