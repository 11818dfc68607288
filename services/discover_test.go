package services

import (
	"context"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weblab-class/MovieGenie/models"
	"github.com/weblab-class/MovieGenie/services/catalog"
)

func TestBuildCatalogParamsDefaults(t *testing.T) {
	params := BuildCatalogParams(models.FilterRequest{})

	assert.Equal(t, "en-US", params.Get("language"))
	assert.Equal(t, "30", params.Get("with_runtime.gte"))
	// Nothing else: empty fields are omitted, never sent as empty strings.
	assert.Len(t, params, 2)
}

func TestBuildCatalogParamsFullMapping(t *testing.T) {
	req := models.FilterRequest{
		PrimaryLanguage: "fr",
		DisplayLanguage: "en-GB",
		Genre:           "878",
		StartDate:       "1990-01-01",
		EndDate:         "1999-12-31",
		MinRatingScore:  "8",
		WatchProvider:   "8",
		RuntimeBand:     "90-120",
		SortOrder:       "popularity.desc",
	}
	params := BuildCatalogParams(req)

	assert.Equal(t, "fr", params.Get("with_original_language"))
	assert.Equal(t, "en-GB", params.Get("language"))
	assert.Equal(t, "878", params.Get("with_genres"))
	assert.Equal(t, "1990-01-01", params.Get("primary_release_date.gte"))
	assert.Equal(t, "1999-12-31", params.Get("primary_release_date.lte"))
	assert.Equal(t, "8", params.Get("vote_average.gte"))
	assert.Equal(t, "8", params.Get("with_watch_providers"))
	assert.Equal(t, "US", params.Get("watch_region"))
	assert.Equal(t, "90", params.Get("with_runtime.gte"))
	assert.Equal(t, "120", params.Get("with_runtime.lte"))
	assert.Equal(t, "popularity.desc", params.Get("sort_by"))
}

func TestBuildCatalogParamsNeverForwardsLocalOnlyFilters(t *testing.T) {
	req := models.FilterRequest{
		MaxContentRating: "PG-13",
		SafeSearch:       true,
		WatchListOnly:    true,
	}
	params := BuildCatalogParams(req)

	for key := range params {
		assert.NotContains(t, []string{"max_content_rating", "certification.lte", "safe_search", "watch_list_only"}, key)
	}
}

func TestBuildCatalogParamsOpenEndedRuntimeBand(t *testing.T) {
	params := BuildCatalogParams(models.FilterRequest{RuntimeBand: "120+"})
	assert.Equal(t, "120", params.Get("with_runtime.gte"))
	assert.False(t, params.Has("with_runtime.lte"))
}

func TestDiscoverEndToEnd(t *testing.T) {
	// Two pages of 20 distinct titles; one title carries a blocklisted
	// overview and must disappear under safe search.
	page := func(n, totalPages int) *catalog.Page {
		p := &catalog.Page{Page: n, TotalPages: totalPages, TotalResults: 40}
		for i := 0; i < 20; i++ {
			m := movie(n*100 + i)
			m.Overview = "A space adventure."
			if n == 2 && i == 5 {
				m.Overview = "An erotic thriller in space."
			}
			p.Results = append(p.Results, m)
		}
		return p
	}
	api := &fakeCatalog{
		discover: func(_ context.Context, params url.Values, n int) (*catalog.Page, error) {
			assert.Equal(t, "878", params.Get("with_genres"))
			assert.Equal(t, "8", params.Get("vote_average.gte"))
			return page(n, 2), nil
		},
	}

	svc := NewDiscoveryService(api)
	result, err := svc.Discover(context.Background(), models.FilterRequest{
		Genre:          "878",
		MinRatingScore: "8",
		SafeSearch:     true,
	})
	require.NoError(t, err)

	assert.Equal(t, 39, result.TotalResults, "40 aggregated titles minus the blocklisted one")
	assert.Equal(t, 2, result.TotalPages)
	assert.Len(t, result.Results, 39)
}

func TestDiscoverEmptyResultIsNotAnError(t *testing.T) {
	api := &fakeCatalog{
		discover: func(_ context.Context, _ url.Values, _ int) (*catalog.Page, error) {
			return &catalog.Page{Page: 1}, nil
		},
	}

	result, err := NewDiscoveryService(api).Discover(context.Background(), models.FilterRequest{})
	require.NoError(t, err)
	assert.NotNil(t, result.Results)
	assert.Empty(t, result.Results)
	assert.Equal(t, 0, result.TotalResults)
	assert.Equal(t, 0, result.TotalPages)
}

func TestDiscoverPropagatesFirstPageFailure(t *testing.T) {
	api := &fakeCatalog{
		discover: func(_ context.Context, _ url.Values, _ int) (*catalog.Page, error) {
			return nil, &catalog.UpstreamError{StatusCode: 503, Message: "maintenance"}
		},
	}

	_, err := NewDiscoveryService(api).Discover(context.Background(), models.FilterRequest{})
	require.Error(t, err)
	var upstream *catalog.UpstreamError
	assert.ErrorAs(t, err, &upstream)
	assert.Equal(t, 503, upstream.StatusCode)
}

func TestDiscoverRecomputesTotalsFromPostFilterCount(t *testing.T) {
	api := &fakeCatalog{
		discover: func(_ context.Context, _ url.Values, n int) (*catalog.Page, error) {
			p := &catalog.Page{Page: n, TotalPages: 1, TotalResults: 98765}
			for i := 0; i < 21; i++ {
				p.Results = append(p.Results, movie(i))
			}
			return p, nil
		},
	}

	result, err := NewDiscoveryService(api).Discover(context.Background(), models.FilterRequest{})
	require.NoError(t, err)
	assert.Equal(t, 21, result.TotalResults, "upstream totals are ignored")
	assert.Equal(t, 2, result.TotalPages, "21 titles at a page size of 20")
}

func TestFilterWatchListAppliesDateRangeLocally(t *testing.T) {
	nineties := movie(1)
	nineties.ReleaseDate = "1994-06-10"
	eighties := movie(2)
	eighties.ReleaseDate = "1985-03-01"
	undated := movie(3)

	svc := NewDiscoveryService(&fakeCatalog{})
	result := svc.FilterWatchList(context.Background(), models.FilterRequest{
		StartDate: "1990-01-01",
		EndDate:   "1999-12-31",
	}, []models.Movie{nineties, eighties, undated})

	assert.Equal(t, []int{1}, movieIDs(result.Results))
	assert.Equal(t, 1, result.TotalResults)
}

func TestFilterWatchListRunsContentChain(t *testing.T) {
	flagged := movie(1)
	flagged.Overview = "hardcore action with nudity"
	clean := movie(2)
	clean.Overview = "a quiet drama"

	svc := NewDiscoveryService(&fakeCatalog{})
	result := svc.FilterWatchList(context.Background(), models.FilterRequest{SafeSearch: true},
		[]models.Movie{flagged, clean})

	assert.Equal(t, []int{2}, movieIDs(result.Results))
}

func TestParseRuntimeBand(t *testing.T) {
	tests := []struct {
		band string
		gte  string
		lte  string
	}{
		{"", "30", ""},
		{"120+", "120", ""},
		{"90-120", "90", "120"},
		{"garbage", "30", ""},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("band=%q", tt.band), func(t *testing.T) {
			gte, lte := parseRuntimeBand(tt.band)
			assert.Equal(t, tt.gte, gte)
			assert.Equal(t, tt.lte, lte)
		})
	}
}
