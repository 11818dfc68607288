package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/weblab-class/MovieGenie/models"
)

// resultsPerPage is the page size reported back to the client. The totals in
// a DiscoverResponse are recomputed from the post-filter count and do not
// reflect the upstream catalog's totals.
const resultsPerPage = 20

// defaultMinRuntime filters out shorts when the user picked no runtime band.
const defaultMinRuntime = "30"

// defaultDisplayLanguage is applied when the user picked no display language.
const defaultDisplayLanguage = "en-US"

// watchRegion scopes provider availability lookups.
const watchRegion = "US"

// DiscoverResponse is the JSON-serializable result of one discovery request.
type DiscoverResponse struct {
	Results      []models.Movie `json:"results"`
	TotalResults int            `json:"total_results"`
	TotalPages   int            `json:"total_pages"`
}

// DiscoveryService orchestrates the discovery pipeline: parameter mapping,
// multi-page aggregation, then content filtering. It holds no per-request
// state.
type DiscoveryService struct {
	catalog Catalog
}

func NewDiscoveryService(api Catalog) *DiscoveryService {
	return &DiscoveryService{catalog: api}
}

// Discover runs one filter request against the catalog and returns the
// filtered titles with post-filter paging metadata. An empty result list is a
// valid outcome, not an error.
func (s *DiscoveryService) Discover(ctx context.Context, req models.FilterRequest) (*DiscoverResponse, error) {
	params := BuildCatalogParams(req)

	titles, err := AggregateDiscover(ctx, s.catalog, params)
	if err != nil {
		return nil, fmt.Errorf("discovery aggregation failed: %w", err)
	}

	titles = FilterContent(ctx, s.catalog, titles, bool(req.SafeSearch), req.MaxContentRating)

	return respond(titles), nil
}

// FilterWatchList runs the local half of the pipeline over an already-saved
// candidate list: release-date range first, then the content filter chain.
// The set is small and local, so there is no pagination fan-out.
func (s *DiscoveryService) FilterWatchList(ctx context.Context, req models.FilterRequest, candidates []models.Movie) *DiscoverResponse {
	titles := filterByDateRange(candidates, req.StartDate, req.EndDate)
	titles = FilterContent(ctx, s.catalog, titles, bool(req.SafeSearch), req.MaxContentRating)
	return respond(titles)
}

func respond(titles []models.Movie) *DiscoverResponse {
	if titles == nil {
		titles = []models.Movie{}
	}
	total := len(titles)
	pages := total / resultsPerPage
	if total%resultsPerPage != 0 {
		pages++
	}
	return &DiscoverResponse{
		Results:      titles,
		TotalResults: total,
		TotalPages:   pages,
	}
}

// BuildCatalogParams maps a filter request onto the catalog's discovery
// parameters. Empty fields are omitted, never forwarded as empty strings.
// MaxContentRating and WatchListOnly are handled locally and never reach the
// catalog. Defaults: a 30-minute runtime floor when no band is given, and
// English display language when none is given.
func BuildCatalogParams(req models.FilterRequest) url.Values {
	params := url.Values{}

	if req.DisplayLanguage != "" {
		params.Set("language", req.DisplayLanguage)
	} else {
		params.Set("language", defaultDisplayLanguage)
	}
	if req.PrimaryLanguage != "" {
		params.Set("with_original_language", req.PrimaryLanguage)
	}
	if req.Genre != "" {
		params.Set("with_genres", req.Genre)
	}
	if req.StartDate != "" {
		params.Set("primary_release_date.gte", req.StartDate)
	}
	if req.EndDate != "" {
		params.Set("primary_release_date.lte", req.EndDate)
	}
	if req.MinRatingScore != "" {
		params.Set("vote_average.gte", req.MinRatingScore)
	}
	if req.WatchProvider != "" {
		params.Set("with_watch_providers", req.WatchProvider)
		params.Set("watch_region", watchRegion)
	}
	if req.SortOrder != "" {
		params.Set("sort_by", req.SortOrder)
	}

	minRuntime, maxRuntime := parseRuntimeBand(req.RuntimeBand)
	params.Set("with_runtime.gte", minRuntime)
	if maxRuntime != "" {
		params.Set("with_runtime.lte", maxRuntime)
	}

	return params
}

// parseRuntimeBand splits a runtime band into its bounds. "120+" is an
// open-ended lower bound, "90-120" a closed pair. Anything unparseable falls
// back to the default floor.
func parseRuntimeBand(band string) (gte, lte string) {
	band = strings.TrimSpace(band)
	switch {
	case band == "":
		return defaultMinRuntime, ""
	case strings.HasSuffix(band, "+"):
		return strings.TrimSuffix(band, "+"), ""
	case strings.Contains(band, "-"):
		parts := strings.SplitN(band, "-", 2)
		return parts[0], parts[1]
	default:
		return defaultMinRuntime, ""
	}
}

// filterByDateRange keeps titles whose release date falls inside the
// inclusive range. Open bounds pass everything on that side; ISO date strings
// compare correctly as plain strings. Titles without a release date survive
// only when the range is fully open.
func filterByDateRange(titles []models.Movie, startDate, endDate string) []models.Movie {
	if startDate == "" && endDate == "" {
		return titles
	}
	kept := []models.Movie{}
	for _, m := range titles {
		if m.ReleaseDate == "" {
			continue
		}
		if startDate != "" && m.ReleaseDate < startDate {
			continue
		}
		if endDate != "" && m.ReleaseDate > endDate {
			continue
		}
		kept = append(kept, m)
	}
	return kept
}
