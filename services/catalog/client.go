package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/weblab-class/MovieGenie/httpclient"
)

const defaultBaseURL = "https://api.themoviedb.org/3"

// Client issues discovery and per-title detail queries against the TMDB API.
// It knows how to build requests and parse response pages, nothing about
// filtering semantics. The API key is injected at construction; client code
// never reads it from the environment.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// New creates a catalog client. baseURL and httpClient fall back to the TMDB
// production URL and the shared default client when empty.
func New(apiKey, baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = httpclient.DefaultClient
	}
	return &Client{apiKey: apiKey, baseURL: baseURL, http: httpClient}
}

// DiscoverPage fetches one page of the discovery endpoint for the given query
// parameters. params is not mutated.
func (c *Client) DiscoverPage(ctx context.Context, params url.Values, page int) (*Page, error) {
	query := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			query.Set(k, v)
		}
	}
	query.Set("api_key", c.apiKey)
	query.Set("page", fmt.Sprintf("%d", page))

	reqURL := httpclient.BuildQueryURL(c.baseURL+"/discover/movie", query)
	resp, err := httpclient.Get(ctx, reqURL, c.http)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.upstreamError(resp)
	}

	var result Page
	if err := httpclient.DecodeJSON(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Certifications fetches per-country release and certification data for one
// title. A 404 means the catalog has no certification data for the title and
// yields an empty record, not an error.
func (c *Client) Certifications(ctx context.Context, titleID int) (*CertificationRecord, error) {
	query := url.Values{}
	query.Set("api_key", c.apiKey)

	reqURL := httpclient.BuildQueryURL(fmt.Sprintf("%s/movie/%d/release_dates", c.baseURL, titleID), query)
	resp, err := httpclient.Get(ctx, reqURL, c.http)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return &CertificationRecord{ID: titleID}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, c.upstreamError(resp)
	}

	var record CertificationRecord
	if err := httpclient.DecodeJSON(resp, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// upstreamError drains the response for TMDB's status_message and wraps the
// status code. The body is always closed.
func (c *Client) upstreamError(resp *http.Response) error {
	var body struct {
		StatusMessage string `json:"status_message"`
	}
	// Best effort; a malformed error body still produces a usable error.
	_ = httpclient.DecodeJSON(resp, &body)
	return &UpstreamError{StatusCode: resp.StatusCode, Message: body.StatusMessage}
}
