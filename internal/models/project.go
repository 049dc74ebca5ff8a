package models

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

// MediaType identifies which renderer a media item uses
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// ThumbnailPrefix is prepended to a video's base name to form its poster file
const ThumbnailPrefix = "thumbnail-"

// Valid reports whether t is one of the two known media types
func (t MediaType) Valid() bool {
	switch t {
	case MediaImage, MediaVideo:
		return true
	}
	return false
}

// Media is an image or video attached to a project
type Media struct {
	Type   MediaType `json:"type"`
	Src    string    `json:"src"`
	Poster string    `json:"poster,omitempty"`
}

// PosterOrDefault returns the explicit poster, or for videos the path the
// thumbnail batch writes next to the source file.
func (m Media) PosterOrDefault() string {
	if m.Poster != "" || m.Type != MediaVideo {
		return m.Poster
	}
	dir, file := path.Split(m.Src)
	base := strings.TrimSuffix(file, path.Ext(file))
	return dir + ThumbnailPrefix + base + ".jpg"
}

// WithDefaultPosters returns a copy of p whose videos carry their derived
// poster path when the catalog gives none.
func (p Project) WithDefaultPosters() Project {
	if p.Media == nil {
		return p
	}
	media := make([]Media, len(p.Media))
	for i, m := range p.Media {
		m.Poster = m.PosterOrDefault()
		media[i] = m
	}
	p.Media = media
	return p
}

// Link is a labelled external URL
type Link struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// Project represents a portfolio project
type Project struct {
	Category     string   `json:"category"`
	Title        string   `json:"title"`
	Technologies []string `json:"technologies"`
	Duration     string   `json:"duration"`
	Description  string   `json:"description"`
	Media        []Media  `json:"media"`
	Links        []Link   `json:"links"`
}

var (
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugInvalid = regexp.MustCompile(`[^\w-]+`)
)

// Slug derives the URL identifier used for project detail pages
func (p Project) Slug() string {
	s := strings.ToLower(p.Title)
	s = slugSpaces.ReplaceAllString(s, "-")
	return slugInvalid.ReplaceAllString(s, "")
}

// Validate checks the invariants the renderer relies on
func (p Project) Validate() error {
	if p.Title == "" {
		return fmt.Errorf("project has no title")
	}
	for i, m := range p.Media {
		if !m.Type.Valid() {
			return fmt.Errorf("project %q media %d: unknown type %q", p.Title, i, m.Type)
		}
		if m.Src == "" {
			return fmt.Errorf("project %q media %d: empty src", p.Title, i)
		}
	}
	return nil
}

// ProjectList wraps the array of projects
type ProjectList struct {
	Projects []Project `json:"projects"`
}

// Validate checks every project and rejects duplicate slugs
func (l *ProjectList) Validate() error {
	seen := make(map[string]string, len(l.Projects))
	for _, p := range l.Projects {
		if err := p.Validate(); err != nil {
			return err
		}
		slug := p.Slug()
		if prev, dup := seen[slug]; dup {
			return fmt.Errorf("projects %q and %q share slug %q", prev, p.Title, slug)
		}
		seen[slug] = p.Title
	}
	return nil
}
