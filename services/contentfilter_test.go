package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weblab-class/MovieGenie/models"
	"github.com/weblab-class/MovieGenie/services/catalog"
)

func TestSafeSearchExcludesBlocklistedOverview(t *testing.T) {
	flagged := models.Movie{ID: 1, Title: "Basic Instinct", Overview: "An erotic thriller about a detective."}
	clean := models.Movie{ID: 2, Title: "Paddington", Overview: "A bear moves to London."}

	filtered := FilterContent(context.Background(), &fakeCatalog{}, []models.Movie{flagged, clean}, true, "")
	assert.Equal(t, []int{2}, movieIDs(filtered))

	unfiltered := FilterContent(context.Background(), &fakeCatalog{}, []models.Movie{flagged, clean}, false, "")
	assert.Equal(t, []int{1, 2}, movieIDs(unfiltered))
}

func TestSafeSearchMatchesTitleText(t *testing.T) {
	flagged := models.Movie{ID: 3, Title: "XXX Return of Xander Cage", Overview: "Stunts."}
	filtered := FilterContent(context.Background(), &fakeCatalog{}, []models.Movie{flagged}, true, "")
	assert.Empty(t, filtered)
}

func TestMaxRatingKeepsOnlyRatingsWithinLimit(t *testing.T) {
	// Direct US certifications across the whole scale.
	ratingsByID := map[int]string{
		1: "G",
		2: "PG",
		3: "PG-13",
		4: "R",
		5: "NC-17",
	}
	api := &fakeCatalog{
		certs: func(_ context.Context, titleID int) (*catalog.CertificationRecord, error) {
			return certRecord(country("US", ratingsByID[titleID])), nil
		},
	}

	titles := []models.Movie{movie(1), movie(2), movie(3), movie(4), movie(5)}
	filtered := FilterContent(context.Background(), api, titles, false, "PG-13")
	assert.Equal(t, []int{1, 2, 3}, movieIDs(filtered))
}

func TestMaxRatingDropsUnrankableCertification(t *testing.T) {
	api := &fakeCatalog{
		certs: func(_ context.Context, _ int) (*catalog.CertificationRecord, error) {
			// Present but outside the scale, so the title cannot be proven
			// within the limit.
			return certRecord(country("US", "Approved")), nil
		},
	}

	filtered := FilterContent(context.Background(), api, []models.Movie{movie(1)}, false, "NC-17")
	assert.Empty(t, filtered)
}

func TestMaxRatingDropsTitleWhenCertFetchFails(t *testing.T) {
	api := &fakeCatalog{
		certs: func(_ context.Context, titleID int) (*catalog.CertificationRecord, error) {
			if titleID == 2 {
				return nil, &catalog.UpstreamError{StatusCode: 500}
			}
			return certRecord(country("US", "PG")), nil
		},
	}

	titles := []models.Movie{movie(1), movie(2), movie(3)}
	filtered := FilterContent(context.Background(), api, titles, false, "R")
	assert.Equal(t, []int{1, 3}, movieIDs(filtered))
}

func TestMaxRatingFallsBackToEstimator(t *testing.T) {
	api := &fakeCatalog{
		certs: func(_ context.Context, _ int) (*catalog.CertificationRecord, error) {
			// No US entry; the UK "18" estimates to NC-17.
			return certRecord(country("GB", "18")), nil
		},
	}

	filtered := FilterContent(context.Background(), api, []models.Movie{movie(1)}, false, "R")
	assert.Empty(t, filtered, "estimated NC-17 exceeds the R limit")

	kept := FilterContent(context.Background(), api, []models.Movie{movie(1)}, false, "NC-17")
	assert.Equal(t, []int{1}, movieIDs(kept))
}

func TestMaxRatingUsesMetadataFallbackWhenNothingMaps(t *testing.T) {
	api := &fakeCatalog{
		certs: func(_ context.Context, _ int) (*catalog.CertificationRecord, error) {
			return certRecord(), nil
		},
	}

	thriller := movie(1)
	thriller.GenreIDs = []int{53}
	family := movie(2)

	filtered := FilterContent(context.Background(), api, []models.Movie{thriller, family}, false, "PG-13")
	assert.Equal(t, []int{2}, movieIDs(filtered), "thriller falls back to R and is dropped, default falls back to PG")
}

func TestMaxRatingUnratedUSEntryFallsThrough(t *testing.T) {
	api := &fakeCatalog{
		certs: func(_ context.Context, _ int) (*catalog.CertificationRecord, error) {
			return certRecord(country("US", "NR"), country("GB", "PG")), nil
		},
	}

	filtered := FilterContent(context.Background(), api, []models.Movie{movie(1)}, false, "PG")
	assert.Equal(t, []int{1}, movieIDs(filtered))
}

func TestMaxRatingPreservesInputOrder(t *testing.T) {
	api := &fakeCatalog{
		certs: func(_ context.Context, _ int) (*catalog.CertificationRecord, error) {
			return certRecord(country("US", "G")), nil
		},
	}

	titles := []models.Movie{movie(9), movie(4), movie(7), movie(1)}
	filtered := FilterContent(context.Background(), api, titles, false, "PG-13")
	require.Equal(t, []int{9, 4, 7, 1}, movieIDs(filtered))
}

func TestUnknownMaxRatingDisablesFilter(t *testing.T) {
	filtered := FilterContent(context.Background(), &fakeCatalog{}, []models.Movie{movie(1)}, false, "TV-MA")
	assert.Equal(t, []int{1}, movieIDs(filtered))
}
