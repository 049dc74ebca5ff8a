package thumbnail

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"shivansh.dev/internal/models"
)

// VideoExtensions is the allow-list of files the batch treats as videos
var VideoExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".webm"}

// IsVideo reports whether name has an allow-listed extension
func IsVideo(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, v := range VideoExtensions {
		if ext == v {
			return true
		}
	}
	return false
}

// OutputName derives the thumbnail file name for a video file name
func OutputName(video string) string {
	base := filepath.Base(video)
	return models.ThumbnailPrefix + strings.TrimSuffix(base, filepath.Ext(base)) + ".jpg"
}

// ListVideos returns the video file names directly inside dir, sorted by name.
// Names matching any exclude glob are left out.
func ListVideos(dir string, exclude []string) ([]string, error) {
	for _, pattern := range exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read media directory: %w", err)
	}

	var videos []string
	for _, entry := range entries {
		if entry.IsDir() || !IsVideo(entry.Name()) {
			continue
		}
		if excluded(entry.Name(), exclude) {
			continue
		}
		videos = append(videos, entry.Name())
	}
	return videos, nil
}

func excluded(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
