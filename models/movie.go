package models

import "time"

// Movie is the canonical title record, in the shape the catalog returns it and
// the client consumes it. The discovery core never persists movies; watch-list
// entries reuse this shape with an added timestamp.
type Movie struct {
	ID               int     `json:"id" bson:"id"`
	Title            string  `json:"title" bson:"title"`
	PosterPath       *string `json:"poster_path" bson:"poster_path,omitempty"`
	OriginalLanguage string  `json:"original_language,omitempty" bson:"original_language,omitempty"`
	VoteAverage      float64 `json:"vote_average" bson:"vote_average"`
	Popularity       float64 `json:"popularity,omitempty" bson:"popularity,omitempty"`
	GenreIDs         []int   `json:"genre_ids,omitempty" bson:"genre_ids,omitempty"`
	ReleaseDate      string  `json:"release_date" bson:"release_date"`
	Overview         string  `json:"overview" bson:"overview"`
	Runtime          int     `json:"runtime,omitempty" bson:"runtime,omitempty"`
	Adult            bool    `json:"adult,omitempty" bson:"adult,omitempty"`
}

// WatchListEntry is a saved movie plus the time it was added.
type WatchListEntry struct {
	Movie     `bson:",inline"`
	DateAdded time.Time `json:"date_added" bson:"date_added"`
}
