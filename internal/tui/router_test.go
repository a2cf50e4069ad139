package tui

import "testing"

func TestParseRoute(t *testing.T) {
	tests := []struct {
		path string
		page Page
		slug string
	}{
		{"/", PageHome, ""},
		{"", PageHome, ""},
		{"///", PageHome, ""},
		{"/about", PageAbout, ""},
		{"about", PageAbout, ""},
		{"/about/", PageAbout, ""},
		{"/play", PagePlay, ""},
		{"/projects/cool-app", PageProject, "cool-app"},
		{"/projects/", PageNotFound, ""},
		{"/projects/a/b", PageNotFound, ""},
		{"/contact", PageContact, ""},
		{"/contacts", PageNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			r := ParseRoute(tt.path)
			if r.Page != tt.page || r.Slug != tt.slug {
				t.Errorf("ParseRoute(%q) = %v %q, want %v %q", tt.path, r.Page, r.Slug, tt.page, tt.slug)
			}
		})
	}
}
