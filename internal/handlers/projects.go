package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"shivansh.dev/internal/services"
)

// ProjectHandler handles project-related endpoints
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(ps *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: ps}
}

// ListProjects handles GET /api/projects, optionally narrowed by ?category=
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects := h.projectService.ByCategory(r.URL.Query().Get("category"))
	respondJSON(w, http.StatusOK, projects)
}

// GetProject handles GET /api/projects/{slug}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	project, err := h.projectService.GetBySlug(slug)
	if err != nil {
		respondError(w, http.StatusNotFound, "Project not found")
		return
	}

	respondJSON(w, http.StatusOK, project)
}

// ListCategories handles GET /api/categories
func (h *ProjectHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories := h.projectService.Categories()
	if categories == nil {
		categories = []string{}
	}
	respondJSON(w, http.StatusOK, categories)
}
