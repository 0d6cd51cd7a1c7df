package scraper

import "strings"

// ContainsExcludedTerm returns true if any exclusion term appears
// (case-insensitive) in the combined title + location text.
//
// Called before detection; a match discards the candidate for this run but
// never touches the store, so lifting a term later lets the posting through
// as new.
func ContainsExcludedTerm(title, location string, terms []string) bool {
	if len(terms) == 0 {
		return false
	}
	combined := strings.ToLower(title + " " + location)
	for _, term := range terms {
		if term == "" {
			continue
		}
		if strings.Contains(combined, strings.ToLower(term)) {
			return true
		}
	}
	return false
}
