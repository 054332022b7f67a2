package seo

import (
	"encoding/xml"
	"time"

	"fincalc/domain"
)

const (
	sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"
	imageNS   = "http://www.google.com/schemas/sitemap-image/1.1"
)

type URLSet struct {
	XMLName xml.Name   `xml:"urlset"`
	XMLNS   string     `xml:"xmlns,attr"`
	Image   string     `xml:"xmlns:image,attr,omitempty"`
	URLs    []URLEntry `xml:"url"`
}

type URLEntry struct {
	Loc        string       `xml:"loc"`
	LastMod    string       `xml:"lastmod,omitempty"`
	ChangeFreq string       `xml:"changefreq,omitempty"`
	Priority   string       `xml:"priority,omitempty"`
	Images     []ImageEntry `xml:"image:image,omitempty"`
}

type ImageEntry struct {
	Loc   string `xml:"image:loc"`
	Title string `xml:"image:title,omitempty"`
}

// Sources is everything the sitemaps list.
type Sources struct {
	Calculators []domain.CalculatorInfo
	Articles    []domain.Article
	Pages       []domain.Article
	// Updated stamps routes that have no date of their own.
	Updated time.Time
}

func lastMod(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}

// Sitemap lists the home page, index pages, calculators, static pages and
// articles.
func (s Site) Sitemap(src Sources) URLSet {
	stamp := lastMod(src.Updated)
	set := URLSet{XMLNS: sitemapNS}

	add := func(path, mod, freq, priority string) {
		set.URLs = append(set.URLs, URLEntry{
			Loc:        s.URL(path),
			LastMod:    mod,
			ChangeFreq: freq,
			Priority:   priority,
		})
	}

	add("/", stamp, "weekly", "1.0")
	add("/calculators", stamp, "weekly", "0.9")
	for _, c := range src.Calculators {
		add(c.Path(), stamp, "monthly", "0.8")
	}
	newest := stamp
	if len(src.Articles) > 0 {
		newest = lastMod(src.Articles[0].LastModified())
	}
	add("/blog", newest, "weekly", "0.7")
	for _, a := range src.Articles {
		add(a.Path(), lastMod(a.LastModified()), "monthly", "0.6")
	}
	for _, p := range src.Pages {
		add(p.Path(), lastMod(p.LastModified()), "yearly", "0.3")
	}
	return set
}

// ImageSitemap lists the images shown on calculator and article pages.
func (s Site) ImageSitemap(src Sources) URLSet {
	set := URLSet{XMLNS: sitemapNS, Image: imageNS}
	for _, c := range src.Calculators {
		if c.Image == "" {
			continue
		}
		set.URLs = append(set.URLs, URLEntry{
			Loc:    s.URL(c.Path()),
			Images: []ImageEntry{{Loc: s.URL(c.Image), Title: c.Title}},
		})
	}
	for _, a := range src.Articles {
		if a.Image == "" {
			continue
		}
		set.URLs = append(set.URLs, URLEntry{
			Loc:    s.URL(a.Path()),
			Images: []ImageEntry{{Loc: s.URL(a.Image), Title: a.Title}},
		})
	}
	return set
}

// Encode renders a URL set as an XML document.
func Encode(set URLSet) ([]byte, error) {
	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}

// Robots returns robots.txt pointing crawlers at both sitemaps.
func (s Site) Robots() string {
	return "User-agent: *\n" +
		"Allow: /\n" +
		"Disallow: /api/\n" +
		"Disallow: /account\n" +
		"\n" +
		"Sitemap: " + s.URL("/sitemap.xml") + "\n" +
		"Sitemap: " + s.URL("/image-sitemap.xml") + "\n"
}
