package seo

import (
	"encoding/json"
	"time"

	"fincalc/domain"
)

const schemaContext = "https://schema.org"

// Thing is a schema.org node. Keys are emitted in sorted order.
type Thing map[string]any

// Crumb is one step of a breadcrumb trail.
type Crumb struct {
	Name string
	Path string
}

// WebSite describes the site with a sitelinks search box.
func (s Site) WebSite() Thing {
	return Thing{
		"@context":    schemaContext,
		"@type":       "WebSite",
		"name":        s.Name,
		"url":         s.URL("/"),
		"description": s.Description,
		"potentialAction": Thing{
			"@type":       "SearchAction",
			"target":      s.URL("/search") + "?q={search_term_string}",
			"query-input": "required name=search_term_string",
		},
	}
}

func (s Site) organization() Thing {
	org := Thing{
		"@type": "Organization",
		"name":  s.Name,
		"url":   s.URL("/"),
	}
	if s.Logo != "" {
		org["logo"] = Thing{"@type": "ImageObject", "url": s.URL(s.Logo)}
	}
	return org
}

// WebApplication describes a calculator page as a free finance application.
func (s Site) WebApplication(info domain.CalculatorInfo) Thing {
	app := Thing{
		"@context":            schemaContext,
		"@type":               "WebApplication",
		"name":                info.Title,
		"description":         info.Description,
		"url":                 s.URL(info.Path()),
		"applicationCategory": "FinanceApplication",
		"operatingSystem":     "Any",
		"browserRequirements": "Requires JavaScript for instant results; works without it.",
		"isAccessibleForFree": true,
		"offers": Thing{
			"@type":         "Offer",
			"price":         "0",
			"priceCurrency": "USD",
		},
		"provider": s.organization(),
	}
	if info.Image != "" {
		app["image"] = s.URL(info.Image)
	}
	if len(info.Keywords) > 0 {
		app["keywords"] = info.Keywords
	}
	return app
}

// Breadcrumbs lists the trail from the home page to the current page.
func (s Site) Breadcrumbs(crumbs ...Crumb) Thing {
	items := make([]Thing, 0, len(crumbs))
	for i, c := range crumbs {
		items = append(items, Thing{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     c.Name,
			"item":     s.URL(c.Path),
		})
	}
	return Thing{
		"@context":        schemaContext,
		"@type":           "BreadcrumbList",
		"itemListElement": items,
	}
}

// BlogPosting describes an article.
func (s Site) BlogPosting(a domain.Article) Thing {
	post := Thing{
		"@context":         schemaContext,
		"@type":            "BlogPosting",
		"headline":         a.Title,
		"description":      a.Description,
		"url":              s.URL(a.Path()),
		"mainEntityOfPage": s.URL(a.Path()),
		"datePublished":    a.Date.Format(time.RFC3339),
		"dateModified":     a.LastModified().Format(time.RFC3339),
		"publisher":        s.organization(),
	}
	if a.Author != "" {
		post["author"] = Thing{"@type": "Person", "name": a.Author}
	} else {
		post["author"] = s.organization()
	}
	if a.Image != "" {
		post["image"] = s.URL(a.Image)
	}
	if len(a.Tags) > 0 {
		post["keywords"] = a.Tags
	}
	return post
}

// Marshal encodes nodes for a script block; several nodes become an array.
// json.Marshal escapes <, > and &, so the output is safe inside <script>.
func Marshal(things ...Thing) ([]byte, error) {
	if len(things) == 1 {
		return json.Marshal(things[0])
	}
	return json.Marshal(things)
}
