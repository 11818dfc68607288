package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/weblab-class/MovieGenie/config"
	"github.com/weblab-class/MovieGenie/database"
	"github.com/weblab-class/MovieGenie/handlers"
	"github.com/weblab-class/MovieGenie/logger"
	"github.com/weblab-class/MovieGenie/middleware"
	"github.com/weblab-class/MovieGenie/services"
	"github.com/weblab-class/MovieGenie/services/catalog"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Environment, cfg.Debug)

	// The catalog credential is checked once at startup; there is no
	// per-request recovery from a missing key.
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if err := database.Connect(ctx, cfg); err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close(ctx)

	if err := database.SeedAdminUser(ctx, cfg); err != nil {
		slog.Error("Failed to seed admin user", "error", err)
		os.Exit(1)
	}

	services.InitSessionStore(cfg)

	discovery := services.NewDiscoveryService(catalog.New(cfg.TMDBAPIKey, "", nil))
	authH := &handlers.Auth{Cfg: cfg}
	moviesH := &handlers.Movies{Discovery: discovery}
	watchListH := &handlers.WatchList{}

	r := chi.NewRouter()
	r.Use(middleware.Logging)

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", authH.GoogleLogin)
		r.Post("/login/local", authH.LocalLogin)
		r.Post("/logout", authH.Logout)
		r.Get("/whoami", authH.WhoAmI)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/movies/search", moviesH.Search)
			r.Get("/watchlist", watchListH.List)
			r.Post("/watchlist/add", watchListH.Add)
			r.Delete("/watchlist/remove/{movieID}", watchListH.Remove)
		})
	})

	// Serve the compiled client; unknown paths fall back to index.html so the
	// client-side router can handle them.
	r.NotFound(spaHandler(cfg.ClientDistPath))

	addr := ":" + cfg.ServerPort
	server := &http.Server{Addr: addr, Handler: r}

	go func() {
		slog.Info("Server starting", "addr", addr, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}

// spaHandler serves static files from the client build directory, falling
// back to index.html for client-routed paths.
func spaHandler(distPath string) http.HandlerFunc {
	fileServer := http.FileServer(http.Dir(distPath))
	return func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(distPath, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(distPath, "index.html"))
	}
}
