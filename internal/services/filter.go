package services

import "shivansh.dev/internal/models"

// CategoryFilter selects at most one category at a time
type CategoryFilter struct {
	Active string `json:"active,omitempty"`
}

// Toggle activates category, or clears the filter when it is already active
func (f *CategoryFilter) Toggle(category string) {
	if f.Active == category {
		f.Active = ""
		return
	}
	f.Active = category
}

// Clear shows all projects again
func (f *CategoryFilter) Clear() {
	f.Active = ""
}

// IsActive reports whether a category is selected
func (f CategoryFilter) IsActive() bool {
	return f.Active != ""
}

// Apply returns the visible projects. No match gives an empty slice.
func (f CategoryFilter) Apply(projects []models.Project) []models.Project {
	if !f.IsActive() {
		return projects
	}
	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if p.Category == f.Active {
			out = append(out, p)
		}
	}
	return out
}
