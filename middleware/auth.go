package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/weblab-class/MovieGenie/models"
	"github.com/weblab-class/MovieGenie/services"
)

type contextKey string

const userKey contextKey = "user"

// UserFrom returns the authenticated user stored by RequireAuth, or nil.
func UserFrom(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

func unauthorized(w http.ResponseWriter, reason string) {
	slog.Debug("Rejecting unauthenticated request", "reason", reason)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "not logged in"})
}

// RequireAuth rejects requests without a valid session. The discovery core
// performs no identity checks of its own; this is the authentication
// boundary in front of it.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := services.GetSession(r)
		if err != nil {
			unauthorized(w, "no session")
			return
		}

		userID, ok := session.Values["user_id"].(string)
		if !ok || userID == "" {
			unauthorized(w, "no user in session")
			return
		}

		user, err := services.GetUserByID(r.Context(), userID)
		if err != nil {
			unauthorized(w, "user not found")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	})
}
