// Package seo builds page metadata, sitemaps, robots.txt and JSON-LD
// structured data.
package seo

import (
	"strings"
	"time"
)

// Site identifies the public website.
type Site struct {
	Name        string
	BaseURL     string
	Description string
	Logo        string
	Twitter     string
	Locale      string
}

// URL makes an absolute URL for a site path. Absolute URLs pass through.
func (s Site) URL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if path == "" {
		path = "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(s.BaseURL, "/") + path
}

// Metadata is the per-page head data.
type Metadata struct {
	Title       string
	Description string
	Canonical   string
	Image       string
	Type        string // og:type
	Robots      string
	Published   time.Time
	Modified    time.Time
	Keywords    []string
}

// Page builds metadata for a path. The title gets the site name appended.
func (s Site) Page(title, description, path, image string) Metadata {
	full := s.Name
	if title != "" && title != s.Name {
		full = title + " | " + s.Name
	}
	if description == "" {
		description = s.Description
	}
	if image == "" {
		image = s.Logo
	}
	return Metadata{
		Title:       full,
		Description: description,
		Canonical:   s.URL(path),
		Image:       s.URL(image),
		Type:        "website",
		Robots:      "index, follow",
	}
}

// NoIndex marks pages that should stay out of search results.
func (m Metadata) NoIndex() Metadata {
	m.Robots = "noindex, nofollow"
	return m
}
