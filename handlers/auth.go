package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/weblab-class/MovieGenie/config"
	"github.com/weblab-class/MovieGenie/models"
	"github.com/weblab-class/MovieGenie/services"
)

// Auth serves the login/logout/whoami endpoints.
type Auth struct {
	Cfg *config.Config
}

type googleLoginRequest struct {
	Token string `json:"token"`
}

type localLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// GoogleLogin exchanges a Google ID token for a session.
func (h *Auth) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req googleLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		writeError(w, http.StatusBadRequest, "token is required")
		return
	}

	user, err := services.LoginWithGoogle(r.Context(), h.Cfg, req.Token)
	if err != nil {
		slog.Warn("Google login failed", "error", err)
		writeError(w, http.StatusUnauthorized, "login failed")
		return
	}

	h.establishSession(w, r, user)
}

// LocalLogin authenticates the seeded admin account with a password.
func (h *Auth) LocalLogin(w http.ResponseWriter, r *http.Request) {
	var req localLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := services.AuthenticateUser(r.Context(), req.Username, req.Password)
	if err != nil {
		slog.Warn("Local login failed", "username", req.Username, "error", err)
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	h.establishSession(w, r, user)
}

func (h *Auth) establishSession(w http.ResponseWriter, r *http.Request, user *models.User) {
	session, err := services.GetSession(r)
	if err != nil {
		// A stale or tampered cookie still yields a usable new session.
		slog.Debug("Replacing undecodable session", "error", err)
	}

	session.Values["user_id"] = user.ID.Hex()
	if err := services.SaveSession(w, r, session); err != nil {
		slog.Error("Failed to save session", "error", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Logout clears the session.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	session, err := services.GetSession(r)
	if err == nil {
		session.Options.MaxAge = -1
		if err := services.SaveSession(w, r, session); err != nil {
			slog.Error("Failed to clear session", "error", err)
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{})
}

// WhoAmI returns the logged-in user, or an empty object when there is no
// session, mirroring what the client expects at startup.
func (h *Auth) WhoAmI(w http.ResponseWriter, r *http.Request) {
	session, err := services.GetSession(r)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]string{})
		return
	}

	userID, ok := session.Values["user_id"].(string)
	if !ok || userID == "" {
		writeJSON(w, http.StatusOK, map[string]string{})
		return
	}

	user, err := services.GetUserByID(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]string{})
		return
	}
	writeJSON(w, http.StatusOK, user)
}
