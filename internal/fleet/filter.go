package fleet

import "strings"

// ExcludeDomains drops every site whose URL contains any of the given
// substrings. Staging and development hosts are filtered this way before
// fleet-wide operations. Order is preserved and the input is not mutated.
func ExcludeDomains(sites []Site, substrings []string) []Site {
	if len(substrings) == 0 {
		return sites
	}
	kept := make([]Site, 0, len(sites))
	for _, s := range sites {
		if !containsAny(s.URL, substrings) {
			kept = append(kept, s)
		}
	}
	return kept
}

func containsAny(url string, substrings []string) bool {
	for _, sub := range substrings {
		if sub != "" && strings.Contains(url, sub) {
			return true
		}
	}
	return false
}
