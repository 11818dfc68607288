package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/weblab-class/MovieGenie/models"
	"github.com/weblab-class/MovieGenie/services/catalog"
)

// maxDiscoverPages caps the fan-out per request (about 100 titles), bounding
// upstream load and latency no matter how large the matching set is.
const maxDiscoverPages = 5

// Catalog is the slice of the catalog client the discovery pipeline depends
// on. Satisfied by *catalog.Client.
type Catalog interface {
	DiscoverPage(ctx context.Context, params url.Values, page int) (*catalog.Page, error)
	Certifications(ctx context.Context, titleID int) (*catalog.CertificationRecord, error)
}

// AggregateDiscover produces a bounded, deduplicated candidate set for one
// discovery query. Page 1 is fetched first to learn the total page count;
// pages 2..N are fetched concurrently. A failed secondary page contributes
// zero titles rather than aborting the aggregation, and no page is retried.
// Output order is page order, then within-page order, with later duplicate
// ids dropped.
func AggregateDiscover(ctx context.Context, api Catalog, params url.Values) ([]models.Movie, error) {
	first, err := api.DiscoverPage(ctx, params, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch first discover page: %w", err)
	}

	pagesToFetch := first.TotalPages
	if pagesToFetch > maxDiscoverPages {
		pagesToFetch = maxDiscoverPages
	}
	if pagesToFetch < 1 {
		pagesToFetch = 1
	}

	// Page 1 is already in hand; slots are indexed by page number so the
	// merge re-imposes page order regardless of fetch completion order.
	pages := make([][]models.Movie, pagesToFetch)
	pages[0] = first.Results

	if pagesToFetch > 1 {
		var g errgroup.Group
		for page := 2; page <= pagesToFetch; page++ {
			page := page
			g.Go(func() error {
				result, err := api.DiscoverPage(ctx, params, page)
				if err != nil {
					slog.Warn("Discover page fetch failed, skipping", "page", page, "error", err)
					return nil
				}
				pages[page-1] = result.Results
				return nil
			})
		}
		// Goroutines never return errors; partial results are the contract.
		_ = g.Wait()
	}

	return dedupeMovies(pages), nil
}

// dedupeMovies folds fetched pages in page order into a single slice with
// unique title ids, first occurrence winning.
func dedupeMovies(pages [][]models.Movie) []models.Movie {
	merged := []models.Movie{}
	seen := make(map[int]struct{})
	for _, page := range pages {
		for _, m := range page {
			if _, ok := seen[m.ID]; ok {
				continue
			}
			seen[m.ID] = struct{}{}
			merged = append(merged, m)
		}
	}
	return merged
}
