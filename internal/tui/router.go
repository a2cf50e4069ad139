package tui

import (
	"strings"

	"github.com/mverhelle/folio/internal/projects"
)

type Page int

const (
	PageHome Page = iota
	PageAbout
	PagePlay
	PageProject
	PageContact
	PageNotFound
)

func (p Page) String() string {
	switch p {
	case PageHome:
		return "home"
	case PageAbout:
		return "about"
	case PagePlay:
		return "play"
	case PageProject:
		return "project"
	case PageContact:
		return "contact"
	}
	return "not-found"
}

// Route is a resolved path. Project routes carry the slug; whether it names
// an existing project is decided when the page renders.
type Route struct {
	Path string
	Page Page
	Slug string
}

// ParseRoute resolves path against the site's routes. Unknown paths map to
// PageNotFound.
func ParseRoute(path string) Route {
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}

	switch path {
	case "/":
		return Route{Path: path, Page: PageHome}
	case "/about":
		return Route{Path: path, Page: PageAbout}
	case "/play":
		return Route{Path: path, Page: PagePlay}
	case "/contact":
		return Route{Path: path, Page: PageContact}
	}
	if slug, ok := projects.SlugFromRoute(path); ok {
		return Route{Path: path, Page: PageProject, Slug: slug}
	}
	return Route{Path: path, Page: PageNotFound}
}
