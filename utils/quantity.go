package utils

import (
	"strconv"
	"strings"
)

// ParseQuantity reads a piece count typed by staff. Leading digits are used
// ("12abc" is 12), anything without them counts as 0 and negatives clamp to 0.
func ParseQuantity(raw string) int {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// out of range
		if s[0] == '-' {
			return 0
		}
		return int(^uint(0) >> 1)
	}
	return ClampQuantity(n)
}

// ClampQuantity keeps a piece count non-negative
func ClampQuantity(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
