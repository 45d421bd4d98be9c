// Package skills provides skill token normalization and case-insensitive skill sets.
package skills

import "strings"

// Normalize returns the comparison form of a skill: trimmed and lower-cased.
func Normalize(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}

// ParseList turns comma-separated user input into an ordered list of normalized skills.
// Empty tokens are dropped and repeats collapse onto their first occurrence.
func ParseList(input string) []string {
	if strings.TrimSpace(input) == "" {
		return []string{}
	}
	return Dedupe(strings.Split(input, ","))
}

// Dedupe normalizes each token and removes empties and duplicates, keeping first-seen order.
func Dedupe(tokens []string) []string {
	result := make([]string, 0, len(tokens))
	seen := make(map[string]bool, len(tokens))

	for _, token := range tokens {
		normalized := Normalize(token)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		result = append(result, normalized)
	}

	return result
}

// Set is a case-insensitive set of skills.
type Set map[string]struct{}

// NewSet builds a Set from display-cased skills.
func NewSet(skills []string) Set {
	set := make(Set, len(skills))
	for _, skill := range skills {
		if normalized := Normalize(skill); normalized != "" {
			set[normalized] = struct{}{}
		}
	}
	return set
}

// Has reports whether the set contains skill, ignoring case and surrounding whitespace.
func (s Set) Has(skill string) bool {
	_, ok := s[Normalize(skill)]
	return ok
}

// Len returns the number of distinct skills.
func (s Set) Len() int {
	return len(s)
}

// Overlaps reports whether any of the given skills is in the set.
func (s Set) Overlaps(skills []string) bool {
	for _, skill := range skills {
		if s.Has(skill) {
			return true
		}
	}
	return false
}
