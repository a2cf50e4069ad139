// Package projects holds the static portfolio project list.
package projects

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptySlug     = errors.New("projects: empty slug")
	ErrDuplicateSlug = errors.New("projects: duplicate slug")
)

// Project is one portfolio entry. At most one of the media URLs is shown;
// video takes precedence.
type Project struct {
	Slug     string   `yaml:"slug"`
	Title    string   `yaml:"title"`
	ImageURL string   `yaml:"image_url,omitempty"`
	VideoURL string   `yaml:"video_url,omitempty"`
	Summary  string   `yaml:"summary,omitempty"` // markdown
	Tags     []string `yaml:"tags,omitempty"`
}

// MediaKind says how a project is presented in the carousel.
type MediaKind int

const (
	MediaNone MediaKind = iota
	MediaImage
	MediaVideo
)

func (k MediaKind) String() string {
	switch k {
	case MediaImage:
		return "image"
	case MediaVideo:
		return "video"
	}
	return "none"
}

// Media returns the kind and URL the carousel should render.
func (p Project) Media() (MediaKind, string) {
	switch {
	case p.VideoURL != "":
		return MediaVideo, p.VideoURL
	case p.ImageURL != "":
		return MediaImage, p.ImageURL
	}
	return MediaNone, ""
}

// Route returns the detail page path.
func (p Project) Route() string { return Route(p.Slug) }

// Route returns the detail page path for slug.
func Route(slug string) string { return "/projects/" + slug }

// SlugFromRoute extracts the slug from a detail path.
func SlugFromRoute(path string) (string, bool) {
	slug, ok := strings.CutPrefix(path, "/projects/")
	if !ok || slug == "" || strings.Contains(slug, "/") {
		return "", false
	}
	return slug, true
}

// List is an ordered project list.
type List []Project

// Validate rejects empty and duplicate slugs.
func (l List) Validate() error {
	seen := make(map[string]bool, len(l))
	for i, p := range l {
		if strings.TrimSpace(p.Slug) == "" {
			return fmt.Errorf("entry %d: %w", i, ErrEmptySlug)
		}
		if seen[p.Slug] {
			return fmt.Errorf("%q: %w", p.Slug, ErrDuplicateSlug)
		}
		seen[p.Slug] = true
	}
	return nil
}

// Find returns the project with the given slug.
func (l List) Find(slug string) (Project, bool) {
	for _, p := range l {
		if p.Slug == slug {
			return p, true
		}
	}
	return Project{}, false
}
