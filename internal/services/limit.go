package services

import "strconv"

const (
	DefaultListLimit = 100
	MinListLimit     = 1
	MaxListLimit     = 1000
)

// ParseLimit turns the raw limit query value into a page size. Missing or
// non-numeric values give DefaultListLimit; numbers are clamped into
// [MinListLimit, MaxListLimit].
func ParseLimit(raw string) int {
	if raw == "" {
		return DefaultListLimit
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return DefaultListLimit
	}
	return ClampLimit(n)
}

// ClampLimit bounds n to [MinListLimit, MaxListLimit].
func ClampLimit(n int) int {
	if n < MinListLimit {
		return MinListLimit
	}
	if n > MaxListLimit {
		return MaxListLimit
	}
	return n
}
