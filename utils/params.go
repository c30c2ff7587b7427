package utils

import "strconv"

// Lenient query parsers: a malformed value falls back to the default
// instead of failing the request.

func ParseFloat(s string, fallback float64) float64 {
	if s == "" {
		return fallback
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return val
}

func ParseInt(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	val, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return val
}

func ParseBool(s string) bool {
	if s == "" {
		return false
	}
	val, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}
	return val
}
