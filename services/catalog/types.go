package catalog

import (
	"fmt"

	"github.com/weblab-class/MovieGenie/models"
)

// Page is one response from the discovery endpoint: an ordered slice of
// titles plus the upstream's pagination totals for the whole query.
type Page struct {
	Page         int            `json:"page"`
	Results      []models.Movie `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

// ReleaseDate is one certification entry within a country.
type ReleaseDate struct {
	Certification string `json:"certification"`
	ReleaseDate   string `json:"release_date"`
	Type          int    `json:"type"`
}

// CountryRelease groups a country's certification entries.
type CountryRelease struct {
	CountryCode  string        `json:"iso_3166_1"`
	ReleaseDates []ReleaseDate `json:"release_dates"`
}

// CertificationRecord holds per-country certification data for one title.
// A record with no Results is valid: the catalog knows nothing about the
// title's certifications.
type CertificationRecord struct {
	ID      int              `json:"id"`
	Results []CountryRelease `json:"results"`
}

// UpstreamError reports a non-success response from the catalog service. The
// upstream status message is kept for logging only and must not be surfaced
// verbatim to clients.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("catalog returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("catalog returned status %d: %s", e.StatusCode, e.Message)
}
