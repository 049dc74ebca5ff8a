package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectSlug(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Seas of Yore", "seas-of-yore"},
		{"  AR   Museum Guide ", "-ar-museum-guide-"},
		{"C++ Ray Tracer!", "c-ray-tracer"},
		{"snake_case-Name", "snake_case-name"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Project{Title: tt.title}.Slug())
		})
	}
}

func TestMediaPosterOrDefault(t *testing.T) {
	video := Media{Type: MediaVideo, Src: "/media/demo.mp4"}
	assert.Equal(t, "/media/thumbnail-demo.jpg", video.PosterOrDefault())

	video.Poster = "/media/custom.png"
	assert.Equal(t, "/media/custom.png", video.PosterOrDefault())

	image := Media{Type: MediaImage, Src: "/media/shot.png"}
	assert.Empty(t, image.PosterOrDefault())
}

func TestMediaTypeValid(t *testing.T) {
	assert.True(t, MediaImage.Valid())
	assert.True(t, MediaVideo.Valid())
	assert.False(t, MediaType("audio").Valid())
	assert.False(t, MediaType("").Valid())
}

func TestProjectListValidate(t *testing.T) {
	list := &ProjectList{Projects: []Project{
		{Title: "One", Media: []Media{{Type: MediaImage, Src: "a.png"}}},
		{Title: "Two"},
	}}
	require.NoError(t, list.Validate())

	list.Projects = append(list.Projects, Project{Title: "one"})
	assert.ErrorContains(t, list.Validate(), "share slug")

	bad := &ProjectList{Projects: []Project{
		{Title: "Bad", Media: []Media{{Type: "gif", Src: "x.gif"}}},
	}}
	assert.ErrorContains(t, bad.Validate(), "unknown type")
}

func TestPreferencesToggles(t *testing.T) {
	p := DefaultPreferences()
	assert.Equal(t, ThemeDark, p.Theme)
	assert.False(t, p.ReducedMotion)

	p.ToggleTheme()
	assert.Equal(t, ThemeLight, p.Theme)
	p.ToggleTheme()
	assert.Equal(t, ThemeDark, p.Theme)

	p.ToggleReducedMotion()
	assert.True(t, p.ReducedMotion)
}
