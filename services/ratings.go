package services

import (
	"strings"

	"github.com/weblab-class/MovieGenie/models"
	"github.com/weblab-class/MovieGenie/services/catalog"
)

// ratingScale is the ordered US content-rating scale, mildest first. A label
// outside this scale cannot be compared against a maximum and the title
// carrying it is dropped by the rating filter.
var ratingScale = []string{"G", "PG", "PG-13", "R", "NC-17"}

// RatingIndex returns the position of a label on the rating scale, or -1 for
// labels that cannot be ranked.
func RatingIndex(label string) int {
	for i, r := range ratingScale {
		if r == label {
			return i
		}
	}
	return -1
}

type certKey struct {
	country string
	label   string
}

// certEquivalents maps national certificates to their closest US equivalent.
// Keys include the issuing country: several schemes reuse the same label
// string ("12", "18", "U", "G") with different meanings, so keying by label
// alone would let one scheme silently overwrite another.
var certEquivalents = map[certKey]string{
	// United Kingdom (BBFC)
	{"GB", "U"}:   "PG",
	{"GB", "PG"}:  "PG",
	{"GB", "12"}:  "PG-13",
	{"GB", "12A"}: "PG-13",
	{"GB", "15"}:  "R",
	{"GB", "18"}:  "NC-17",
	{"GB", "R18"}: "NC-17",

	// Australia (ACB)
	{"AU", "G"}:     "PG",
	{"AU", "PG"}:    "PG",
	{"AU", "M"}:     "PG-13",
	{"AU", "MA15+"}: "R",
	{"AU", "R18+"}:  "NC-17",
	{"AU", "X18+"}:  "NC-17",

	// Canada
	{"CA", "G"}:   "PG",
	{"CA", "PG"}:  "PG",
	{"CA", "14A"}: "PG-13",
	{"CA", "18A"}: "R",
	{"CA", "R"}:   "R",
	{"CA", "A"}:   "NC-17",

	// Germany (FSK)
	{"DE", "0"}:  "PG",
	{"DE", "6"}:  "PG",
	{"DE", "12"}: "PG-13",
	{"DE", "16"}: "R",
	{"DE", "18"}: "NC-17",

	// France (CNC)
	{"FR", "U"}:  "PG",
	{"FR", "10"}: "PG",
	{"FR", "12"}: "PG-13",
	{"FR", "16"}: "R",
	{"FR", "18"}: "NC-17",

	// Japan (Eirin)
	{"JP", "G"}:    "PG",
	{"JP", "PG12"}: "PG-13",
	{"JP", "R15+"}: "R",
	{"JP", "R18+"}: "NC-17",
}

// isUnrated reports whether a certification label carries no information.
func isUnrated(label string) bool {
	return label == "" ||
		strings.EqualFold(label, "NR") ||
		strings.EqualFold(label, "Not Rated") ||
		strings.EqualFold(label, "Unrated")
}

// EstimateRating derives a single US-equivalent rating from a title's non-US
// certification entries. Blank and "not rated" labels are skipped, labels
// with no table entry are dropped silently, and the most frequent mapped
// rating wins. Ties break toward the first maximum in collection order.
// Returns "" when nothing maps; the caller decides the fallback.
func EstimateRating(record *catalog.CertificationRecord) string {
	if record == nil {
		return ""
	}

	counts := make(map[string]int)
	var collected []string

	for _, country := range record.Results {
		if country.CountryCode == "US" {
			continue
		}
		for _, rd := range country.ReleaseDates {
			label := strings.TrimSpace(rd.Certification)
			if isUnrated(label) {
				continue
			}
			mapped, ok := certEquivalents[certKey{country.CountryCode, label}]
			if !ok {
				continue
			}
			collected = append(collected, mapped)
			counts[mapped]++
		}
	}

	best := ""
	bestCount := 0
	for _, mapped := range collected {
		if counts[mapped] > bestCount {
			best = mapped
			bestCount = counts[mapped]
		}
	}
	return best
}

// matureGenres are catalog genre ids treated as adult-leaning by the rating
// fallback: horror, thriller, war.
var matureGenres = map[int]struct{}{
	27:    {},
	53:    {},
	10752: {},
}

// FallbackRating guesses a rating from the title's own metadata when no
// certification anywhere could be mapped. Best effort, not a certification
// authority: adult titles rank NC-17, mature genres R, widely liked popular
// titles PG-13, everything else PG.
func FallbackRating(m models.Movie) string {
	if m.Adult {
		return "NC-17"
	}
	for _, g := range m.GenreIDs {
		if _, ok := matureGenres[g]; ok {
			return "R"
		}
	}
	if m.VoteAverage >= 7.5 && m.Popularity > 50 {
		return "PG-13"
	}
	return "PG"
}
