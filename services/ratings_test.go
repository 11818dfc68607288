package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weblab-class/MovieGenie/models"
	"github.com/weblab-class/MovieGenie/services/catalog"
)

func certRecord(countries ...catalog.CountryRelease) *catalog.CertificationRecord {
	return &catalog.CertificationRecord{Results: countries}
}

func country(code string, labels ...string) catalog.CountryRelease {
	releases := make([]catalog.ReleaseDate, 0, len(labels))
	for _, l := range labels {
		releases = append(releases, catalog.ReleaseDate{Certification: l})
	}
	return catalog.CountryRelease{CountryCode: code, ReleaseDates: releases}
}

func TestEstimateRatingPicksMostFrequent(t *testing.T) {
	// "15" maps to R twice, "12A" to PG-13 once; R wins by frequency.
	record := certRecord(country("GB", "15", "12A", "15"))
	assert.Equal(t, "R", EstimateRating(record))
}

func TestEstimateRatingTieBreaksTowardFirstSeen(t *testing.T) {
	record := certRecord(country("GB", "12A"), country("DE", "16"))
	assert.Equal(t, "PG-13", EstimateRating(record))
}

func TestEstimateRatingIgnoresUSEntries(t *testing.T) {
	record := certRecord(country("US", "R"), country("GB", "U"))
	assert.Equal(t, "PG", EstimateRating(record))
}

func TestEstimateRatingSkipsBlankAndUnratedLabels(t *testing.T) {
	record := certRecord(country("GB", "", "NR", "Not Rated", "18"))
	assert.Equal(t, "NC-17", EstimateRating(record))
}

func TestEstimateRatingDropsUnmappedLabelsSilently(t *testing.T) {
	// "Banned" has no table entry anywhere; "12" is only meaningful for
	// schemes that define it, so an Italian "12" maps to nothing.
	record := certRecord(country("GB", "Banned"), country("IT", "12"))
	assert.Equal(t, "", EstimateRating(record))
}

func TestEstimateRatingEmptyRecord(t *testing.T) {
	assert.Equal(t, "", EstimateRating(certRecord()))
	assert.Equal(t, "", EstimateRating(nil))
}

func TestFallbackRating(t *testing.T) {
	tests := []struct {
		name  string
		movie models.Movie
		want  string
	}{
		{"adult flag", models.Movie{Adult: true}, "NC-17"},
		{"horror genre", models.Movie{GenreIDs: []int{27}}, "R"},
		{"war genre", models.Movie{GenreIDs: []int{10752}}, "R"},
		{"popular and well rated", models.Movie{VoteAverage: 8.1, Popularity: 80}, "PG-13"},
		{"well rated but obscure", models.Movie{VoteAverage: 8.1, Popularity: 10}, "PG"},
		{"default", models.Movie{}, "PG"},
		{"adult outranks genre", models.Movie{Adult: true, GenreIDs: []int{27}}, "NC-17"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FallbackRating(tt.movie))
		})
	}
}

func TestRatingIndexOrdersScale(t *testing.T) {
	assert.Less(t, RatingIndex("G"), RatingIndex("PG"))
	assert.Less(t, RatingIndex("PG"), RatingIndex("PG-13"))
	assert.Less(t, RatingIndex("PG-13"), RatingIndex("R"))
	assert.Less(t, RatingIndex("R"), RatingIndex("NC-17"))
	assert.Equal(t, -1, RatingIndex("Approved"))
	assert.Equal(t, -1, RatingIndex(""))
}
