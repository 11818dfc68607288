package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/weblab-class/MovieGenie/middleware"
	"github.com/weblab-class/MovieGenie/models"
	"github.com/weblab-class/MovieGenie/services"
)

// WatchList serves the per-user saved-movies endpoints. Every route returns
// the full current list so the client can re-render without a second fetch.
type WatchList struct{}

// List returns the user's saved movies.
func (h *WatchList) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	movies, err := services.GetWatchList(r.Context(), user.ID)
	if err != nil {
		slog.Error("Failed to fetch watch list", "user_id", user.ID.Hex(), "error", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch watch list")
		return
	}
	writeJSON(w, http.StatusOK, movies)
}

// Add saves a movie; duplicate adds are no-ops.
func (h *WatchList) Add(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	var movie models.Movie
	if err := json.NewDecoder(r.Body).Decode(&movie); err != nil || movie.ID == 0 || movie.Title == "" {
		writeError(w, http.StatusBadRequest, "a movie with id and title is required")
		return
	}

	movies, err := services.AddToWatchList(r.Context(), user.ID, movie)
	if err != nil {
		slog.Error("Failed to add to watch list", "user_id", user.ID.Hex(), "movie_id", movie.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update watch list")
		return
	}
	writeJSON(w, http.StatusOK, movies)
}

// Remove deletes a movie from the list.
func (h *WatchList) Remove(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	movieID, err := strconv.Atoi(chi.URLParam(r, "movieID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid movie id")
		return
	}

	movies, err := services.RemoveFromWatchList(r.Context(), user.ID, movieID)
	if err != nil {
		slog.Error("Failed to remove from watch list", "user_id", user.ID.Hex(), "movie_id", movieID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update watch list")
		return
	}
	writeJSON(w, http.StatusOK, movies)
}
