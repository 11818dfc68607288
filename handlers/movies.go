package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"

	"github.com/weblab-class/MovieGenie/middleware"
	"github.com/weblab-class/MovieGenie/models"
	"github.com/weblab-class/MovieGenie/services"
	"github.com/weblab-class/MovieGenie/services/catalog"
)

// Movies serves the discovery endpoint.
type Movies struct {
	Discovery *services.DiscoveryService
}

var eraPattern = regexp.MustCompile(`^(\d{4})s$`)

// resolveEra translates a decade label like "1990s" into the inclusive
// release-date range the discovery core expects. Unknown labels leave the
// range open.
func resolveEra(era string) (startDate, endDate string) {
	m := eraPattern.FindStringSubmatch(era)
	if m == nil {
		return "", ""
	}
	year, err := strconv.Atoi(m[1])
	if err != nil || year%10 != 0 {
		return "", ""
	}
	return fmt.Sprintf("%d-01-01", year), fmt.Sprintf("%d-12-31", year+9)
}

// Search runs one filter request through the discovery pipeline. When the
// watch-list-only flag is set, the user's saved titles are filtered locally
// instead of querying the catalog.
func (h *Movies) Search(w http.ResponseWriter, r *http.Request) {
	var req models.FilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter request")
		return
	}
	req.StartDate, req.EndDate = resolveEra(req.Era)

	if req.WatchListOnly {
		user := middleware.UserFrom(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "not logged in")
			return
		}
		candidates, err := services.GetWatchList(r.Context(), user.ID)
		if err != nil {
			slog.Error("Failed to load watch list for filtering", "user_id", user.ID.Hex(), "error", err)
			writeError(w, http.StatusInternalServerError, "failed to fetch movies")
			return
		}
		writeJSON(w, http.StatusOK, h.Discovery.FilterWatchList(r.Context(), req, candidates))
		return
	}

	result, err := h.Discovery.Discover(r.Context(), req)
	if err != nil {
		var upstream *catalog.UpstreamError
		if errors.As(err, &upstream) {
			slog.Error("Catalog request failed", "status", upstream.StatusCode, "message", upstream.Message)
		} else {
			slog.Error("Discovery failed", "error", err)
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch movies")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
