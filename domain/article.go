package domain

import "time"

// Content sections.
const (
	SectionArticles = "articles"
	SectionPages    = "pages"
)

// Article is a rendered markdown document: a blog post or a static page.
type Article struct {
	Section     string    `json:"section"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Updated     time.Time `json:"updated,omitzero"`
	Tags        []string  `json:"tags,omitempty"`
	Image       string    `json:"image,omitempty"`
	Author      string    `json:"author,omitempty"`
	Draft       bool      `json:"-"`
	HTML        string    `json:"-"` // sanitised body
	Text        string    `json:"-"` // body without markup, for search
}

// Path returns the page route of the document.
func (a Article) Path() string {
	if a.Section == SectionPages {
		return "/" + a.Slug
	}
	return "/blog/" + a.Slug
}

// LastModified is the update date when set, else the publish date.
func (a Article) LastModified() time.Time {
	if !a.Updated.IsZero() {
		return a.Updated
	}
	return a.Date
}
