package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Flag is a boolean that also accepts the string forms the filter page sends
// ("Yes"/"No", "true"/"false"). Absent means false.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "yes", "true", "on", "1":
			*f = true
		default:
			*f = false
		}
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	*f = Flag(b)
	return nil
}

// FilterRequest is the validated filter selection for one discovery request.
// Every field is optional; the zero value means "no constraint". Era is the
// raw decade label from the client and must be resolved into StartDate/EndDate
// before the request reaches the discovery service.
type FilterRequest struct {
	PrimaryLanguage  string `json:"primary_language"`
	DisplayLanguage  string `json:"display_language"`
	Genre            string `json:"genre"`
	Era              string `json:"era"`
	MinRatingScore   string `json:"min_rating_score"`
	MaxContentRating string `json:"max_content_rating"`
	WatchProvider    string `json:"watch_provider"`
	RuntimeBand      string `json:"runtime_band"`
	SortOrder        string `json:"sort_order"`
	SafeSearch       Flag   `json:"safe_search"`
	WatchListOnly    Flag   `json:"watch_list_only"`

	// Inclusive release-date range resolved from Era by the request layer.
	StartDate string `json:"-"`
	EndDate   string `json:"-"`
}
