package utils

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold returns the case-folded form of s, used for every case-insensitive comparison.
// A new Caser is built per call since Casers are not safe for concurrent use.
func Fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// EqualFold reports whether a and b are equal ignoring case and surrounding spaces.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}

// ContainsFold reports whether needle occurs in any of the haystacks, ignoring case.
// An empty needle matches everything.
func ContainsFold(needle string, haystacks ...string) bool {
	n := Fold(needle)
	if n == "" {
		return true
	}

	for _, h := range haystacks {
		if strings.Contains(Fold(h), n) {
			return true
		}
	}
	return false
}

// Deref returns the pointed string or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// OptionalString returns nil for blank values so they are omitted when persisted.
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
