package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"shivansh.dev/internal/config"
	"shivansh.dev/internal/middleware"
	"shivansh.dev/internal/services"
	"shivansh.dev/internal/thumbnail"
)

// SetupRoutes configures all routes and returns the router
func SetupRoutes(cfg *config.Config, ps *services.ProjectService, sessions *services.SessionStore, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.WithRequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))

	// Initialize handlers
	projectHandler := NewProjectHandler(ps)
	sessionHandler := NewSessionHandler(ps, sessions)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Catalog
		r.Get("/projects", projectHandler.ListProjects)
		r.Get("/projects/{slug}", projectHandler.GetProject)
		r.Get("/categories", projectHandler.ListCategories)

		// Section copy
		r.Get("/site", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, cfg.Site)
		})

		// Visitor UI state
		r.Route("/session", func(r chi.Router) {
			r.Get("/", sessionHandler.GetSession)
			r.Post("/category", sessionHandler.ToggleCategory)
			r.Post("/carousel/{action}", sessionHandler.Carousel)
			r.Post("/prefs/{pref}", sessionHandler.TogglePref)
			r.Get("/autoplay", sessionHandler.Autoplay)
		})

		// Deploy-time fallback; thumbnails are never generated on request
		r.HandleFunc("/generate-thumbnails", GenerateThumbnails)

		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	// Static bundle, falling back to index.html for client routes
	r.Get("/*", staticHandler(cfg.Data.StaticDir))

	return r
}

// GenerateThumbnails handles /api/generate-thumbnails with fixed instructions
func GenerateThumbnails(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, thumbnail.FallbackInstructions())
}

// staticHandler serves files from dir. Unknown paths get index.html so
// client routes like /projects/<slug> load the app, except under /media/
// where a missing asset must stay a 404.
func staticHandler(dir string) http.HandlerFunc {
	fileServer := http.FileServer(http.Dir(dir))
	return func(w http.ResponseWriter, r *http.Request) {
		clean := path.Clean("/" + r.URL.Path)
		full := filepath.Join(dir, filepath.FromSlash(clean))
		if info, err := os.Stat(full); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}
		if strings.HasPrefix(clean, "/media/") || path.Ext(clean) != "" {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(dir, "index.html"))
	}
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Warn("Error encoding JSON", zap.Error(err))
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
