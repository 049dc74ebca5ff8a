package services

import (
	"errors"
	"fmt"
	"slices"

	"shivansh.dev/internal/models"
)

// ErrProjectNotFound is returned when no project has the requested slug
var ErrProjectNotFound = errors.New("project not found")

// ProjectService answers read-only queries over the catalog.
//
// It keeps its own copy of the catalog, with derived video posters filled
// in. Returned projects still share their Technologies, Media and Links
// slices with that copy, so callers must treat them as read-only.
type ProjectService struct {
	projects   []models.Project
	categories []string
	bySlug     map[string]int
}

// NewProjectService indexes the catalog by slug and category
func NewProjectService(list *models.ProjectList) *ProjectService {
	s := &ProjectService{
		projects: make([]models.Project, 0, len(list.Projects)),
		bySlug:   make(map[string]int, len(list.Projects)),
	}

	seen := make(map[string]bool)
	for i, p := range list.Projects {
		s.projects = append(s.projects, p.WithDefaultPosters())
		s.bySlug[p.Slug()] = i
		if !seen[p.Category] {
			seen[p.Category] = true
			s.categories = append(s.categories, p.Category)
		}
	}
	return s
}

// GetAll returns all projects
func (s *ProjectService) GetAll() []models.Project {
	return slices.Clone(s.projects)
}

// GetBySlug returns a specific project by its slug
func (s *ProjectService) GetBySlug(slug string) (*models.Project, error) {
	i, ok := s.bySlug[slug]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, slug)
	}
	p := s.projects[i]
	return &p, nil
}

// Categories lists distinct categories in order of first appearance
func (s *ProjectService) Categories() []string {
	return slices.Clone(s.categories)
}

// ByCategory returns the projects in category, or all projects for ""
func (s *ProjectService) ByCategory(category string) []models.Project {
	f := CategoryFilter{}
	if category != "" {
		f.Toggle(category)
	}
	return f.Apply(s.GetAll())
}
