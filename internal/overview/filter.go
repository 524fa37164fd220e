// Package overview narrows and orders cocktail listings.
package overview

import (
	"strings"

	"golang.org/x/exp/slices"
	"philcali.me/barmanager/internal/api"
)

// Matches reports whether text occurs in the cocktail's name or in any of
// its tags, ignoring case. Blank text matches everything.
func Matches(cocktail api.Cocktail, text string) bool {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(cocktail.Name), needle) {
		return true
	}
	for _, tag := range cocktail.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// Sort orders cocktails by name, ignoring case, in place.
func Sort(cocktails []api.Cocktail) {
	slices.SortStableFunc(cocktails, func(a, b api.Cocktail) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
}

// Filter returns the matching cocktails sorted by name. The input is not
// modified.
func Filter(cocktails []api.Cocktail, text string) []api.Cocktail {
	matched := make([]api.Cocktail, 0, len(cocktails))
	for _, cocktail := range cocktails {
		if Matches(cocktail, text) {
			matched = append(matched, cocktail)
		}
	}
	Sort(matched)
	return matched
}
