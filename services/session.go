package services

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/weblab-class/MovieGenie/config"
)

const sessionName = "moviegenie-session"

var store *sessions.CookieStore

// InitSessionStore configures the cookie session store. Cookies are Secure in
// production only so local development over plain HTTP keeps working.
func InitSessionStore(cfg *config.Config) {
	store = sessions.NewCookieStore([]byte(cfg.SessionSecret))

	secure := cfg.Environment == "production"
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func GetSession(r *http.Request) (*sessions.Session, error) {
	return store.Get(r, sessionName)
}

func SaveSession(w http.ResponseWriter, r *http.Request, session *sessions.Session) error {
	return session.Save(r, w)
}
