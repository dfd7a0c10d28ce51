// ABOUTME: Duration parsing utilities for settings written in different representations
// ABOUTME: Accepts Go duration strings, bare seconds, and MM:SS or HH:MM:SS clock forms

package duration

import (
	"strconv"
	"strings"
	"time"
)

// Parse converts s to a duration. A bare integer is a number of seconds.
func Parse(s string) (time.Duration, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if seconds, err := strconv.Atoi(s); err == nil {
		return time.Duration(seconds) * time.Second, true
	}

	if d, err := time.ParseDuration(s); err == nil {
		return d, true
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}

	total := 0
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, false
		}
		total = total*60 + n
	}
	return time.Duration(total) * time.Second, true
}
