package services

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/weblab-class/MovieGenie/models"
	"github.com/weblab-class/MovieGenie/services/catalog"
)

// certFetchLimit bounds concurrent per-title certification fetches so a large
// candidate set cannot flood the upstream service.
const certFetchLimit = 8

// safeSearchBlocklist holds explicit-content indicators matched as plain
// case-insensitive substrings against title and overview text. No stemming or
// word-boundary logic.
var safeSearchBlocklist = []string{
	"erotic",
	"erotica",
	"porn",
	"xxx",
	"nude",
	"nudity",
	"softcore",
	"hardcore",
	"stripper",
	"strip club",
	"sexploitation",
	"sex scene",
	"explicit",
}

// FilterContent narrows an aggregated candidate set per the user's content
// constraints. Safe search runs first because it is cheap and local; the
// rating filter runs second because it costs one catalog call per surviving
// title. maxRating is ignored when empty.
func FilterContent(ctx context.Context, api Catalog, titles []models.Movie, safeSearch bool, maxRating string) []models.Movie {
	if safeSearch {
		titles = applySafeSearch(titles)
	}
	if maxRating != "" {
		titles = applyMaxRating(ctx, api, titles, maxRating)
	}
	return titles
}

func applySafeSearch(titles []models.Movie) []models.Movie {
	kept := []models.Movie{}
	for _, m := range titles {
		if containsBlockedKeyword(m.Title) || containsBlockedKeyword(m.Overview) {
			continue
		}
		kept = append(kept, m)
	}
	return kept
}

func containsBlockedKeyword(text string) bool {
	text = strings.ToLower(text)
	for _, keyword := range safeSearchBlocklist {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// applyMaxRating keeps titles whose resolved rating sits at or below
// maxRating on the scale. Titles whose rating cannot be resolved to a scale
// position are dropped: they cannot be proven within the limit. An
// unrecognized maxRating disables the filter rather than dropping everything.
func applyMaxRating(ctx context.Context, api Catalog, titles []models.Movie, maxRating string) []models.Movie {
	limit := RatingIndex(maxRating)
	if limit < 0 {
		slog.Warn("Unknown max content rating, skipping rating filter", "max_rating", maxRating)
		return titles
	}

	keep := make([]bool, len(titles))
	var g errgroup.Group
	g.SetLimit(certFetchLimit)
	for i, m := range titles {
		i, m := i, m
		g.Go(func() error {
			rating := resolveRating(ctx, api, m)
			if idx := RatingIndex(rating); idx >= 0 && idx <= limit {
				keep[i] = true
			}
			return nil
		})
	}
	// Worker errors are already handled per title; a failed lookup just
	// leaves keep[i] false.
	_ = g.Wait()

	kept := []models.Movie{}
	for i, m := range titles {
		if keep[i] {
			kept = append(kept, m)
		}
	}
	return kept
}

// resolveRating derives one rating label for a title: the direct US
// certification when present, the cross-country estimate next, the metadata
// fallback last. A failed certification fetch returns "" and the title is
// treated as unclassifiable.
func resolveRating(ctx context.Context, api Catalog, m models.Movie) string {
	record, err := api.Certifications(ctx, m.ID)
	if err != nil {
		slog.Warn("Certification fetch failed, dropping title from rating filter",
			"title_id", m.ID, "error", err)
		return ""
	}

	if us := usCertification(record); us != "" {
		return us
	}
	if estimated := EstimateRating(record); estimated != "" {
		return estimated
	}
	return FallbackRating(m)
}

// usCertification returns the first usable US certification in the record.
func usCertification(record *catalog.CertificationRecord) string {
	for _, country := range record.Results {
		if country.CountryCode != "US" {
			continue
		}
		for _, rd := range country.ReleaseDates {
			label := strings.TrimSpace(rd.Certification)
			if !isUnrated(label) {
				return label
			}
		}
	}
	return ""
}
