package services

import "strings"

// defaultPlaceType is searched when the user has no interests or the first one is not mapped.
const defaultPlaceType = "restaurant"

// interestPlaceTypes maps onboarding interest tags to external place types.
var interestPlaceTypes = map[string]string{
	"coffee":     "cafe",
	"cafe":       "cafe",
	"bar":        "bar",
	"nightlife":  "bar",
	"activity":   "amusement_center",
	"restaurant": "restaurant",
	"food":       "restaurant",
}

// placeTypeForInterest returns the external place type for an interest tag.
func placeTypeForInterest(tag string) string {
	if t, ok := interestPlaceTypes[strings.ToLower(strings.TrimSpace(tag))]; ok {
		return t
	}
	return defaultPlaceType
}

// normalizeInterests lower-cases and trims tags, dropping blanks and repeats but keeping order.
func normalizeInterests(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
