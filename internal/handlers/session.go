package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"shivansh.dev/internal/models"
	"shivansh.dev/internal/services"
)

// SessionCookie names the cookie holding the visitor's session id
const SessionCookie = "portfolio_session"

// SessionHandler handles per-visitor showcase state
type SessionHandler struct {
	projectService *services.ProjectService
	sessions       *services.SessionStore
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(ps *services.ProjectService, st *services.SessionStore) *SessionHandler {
	return &SessionHandler{
		projectService: ps,
		sessions:       st,
	}
}

// session resolves the visitor's session from the cookie, issuing a new
// one when the cookie is missing or has expired.
func (h *SessionHandler) session(w http.ResponseWriter, r *http.Request) *services.Session {
	var id string
	if c, err := r.Cookie(SessionCookie); err == nil {
		id = c.Value
	}

	s, created := h.sessions.GetOrCreate(id)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    s.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return s
}

// GetSession handles GET /api/session
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	respondJSON(w, http.StatusOK, s.View(h.projectService))
}

// ToggleCategory handles POST /api/session/category
func (h *SessionHandler) ToggleCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s := h.session(w, r)
	s.ToggleCategory(h.projectService, req.Category)
	respondJSON(w, http.StatusOK, s.View(h.projectService))
}

// Carousel handles POST /api/session/carousel/{action}
func (h *SessionHandler) Carousel(w http.ResponseWriter, r *http.Request) {
	action := chi.URLParam(r, "action")

	var apply func(c *services.Carousel) error
	switch action {
	case "next":
		apply = func(c *services.Carousel) error { c.Next(); return nil }
	case "prev":
		apply = func(c *services.Carousel) error { c.Prev(); return nil }
	case "pause":
		apply = func(c *services.Carousel) error { c.Pause(); return nil }
	case "resume":
		apply = func(c *services.Carousel) error { c.Resume(); return nil }
	case "hover":
		on := parseBoolParam(r, "on", true)
		apply = func(c *services.Carousel) error { c.SetHover(on); return nil }
	case "modal":
		open := parseBoolParam(r, "open", true)
		apply = func(c *services.Carousel) error { c.SetModalOpen(open); return nil }
	case "goto":
		index := parseIntParam(r, "index", -1)
		apply = func(c *services.Carousel) error {
			if !c.GoTo(index) {
				return fmt.Errorf("index out of range: %d", index)
			}
			return nil
		}
	case "swipe":
		var req struct {
			StartX float64 `json:"start_x"`
			EndX   float64 `json:"end_x"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		apply = func(c *services.Carousel) error { c.Swipe(req.StartX, req.EndX); return nil }
	default:
		respondError(w, http.StatusBadRequest, "invalid action: "+action)
		return
	}

	s := h.session(w, r)
	var err error
	s.Update(func(c *services.Carousel, _ *models.Preferences) {
		err = apply(c)
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, s.View(h.projectService))
}

// TogglePref handles POST /api/session/prefs/{pref}
func (h *SessionHandler) TogglePref(w http.ResponseWriter, r *http.Request) {
	var toggle func(p *models.Preferences)
	switch pref := chi.URLParam(r, "pref"); pref {
	case "reduced-motion":
		toggle = (*models.Preferences).ToggleReducedMotion
	case "theme":
		toggle = (*models.Preferences).ToggleTheme
	default:
		respondError(w, http.StatusNotFound, "unknown preference: "+pref)
		return
	}

	s := h.session(w, r)
	s.Update(func(_ *services.Carousel, p *models.Preferences) { toggle(p) })
	respondJSON(w, http.StatusOK, s.View(h.projectService))
}

// Autoplay handles GET /api/session/autoplay as a server-sent event stream.
// Each autoplay step emits an "index" event. All streams of a session share
// its ticker, so extra tabs never speed up the carousel.
func (h *SessionHandler) Autoplay(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	s := h.session(w, r)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	updates, unsubscribe := s.Subscribe()
	defer unsubscribe()

	writeEvent(w, "index", s.View(h.projectService).Carousel.Index)
	flusher.Flush()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case index := <-updates:
			writeEvent(w, "index", index)
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, event string, data int) {
	fmt.Fprintf(w, "event: %s\ndata: %d\n\n", event, data)
}

// parseIntParam parses an integer query parameter with a default value
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}

// parseBoolParam parses a boolean query parameter with a default value
func parseBoolParam(r *http.Request, name string, defaultVal bool) bool {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}
