package seo

import (
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fincalc/domain"
)

var testSite = Site{
	Name:        "FinCalc",
	BaseURL:     "https://fincalc.example/",
	Description: "Calculators",
	Logo:        "/static/img/logo.svg",
}

func testSources() Sources {
	return Sources{
		Calculators: []domain.CalculatorInfo{
			{Slug: "apr", Title: "APR Calculator", Image: "/static/img/loans.svg"},
			{Slug: "percentage", Title: "Percentage Calculator"},
		},
		Articles: []domain.Article{
			{Section: domain.SectionArticles, Slug: "new", Title: "New", Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Image: "/static/img/debt.svg"},
			{Section: domain.SectionArticles, Slug: "old", Title: "Old", Date: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), Updated: time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)},
		},
		Pages: []domain.Article{
			{Section: domain.SectionPages, Slug: "about", Title: "About"},
		},
		Updated: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSiteURL(t *testing.T) {
	assert.Equal(t, "https://fincalc.example/", testSite.URL(""))
	assert.Equal(t, "https://fincalc.example/blog", testSite.URL("blog"))
	assert.Equal(t, "https://cdn.example/x.png", testSite.URL("https://cdn.example/x.png"))
}

func TestPageMetadata(t *testing.T) {
	meta := testSite.Page("APR Calculator", "", "/calculators/apr", "")

	assert.Equal(t, "APR Calculator | FinCalc", meta.Title)
	assert.Equal(t, "Calculators", meta.Description)
	assert.Equal(t, "https://fincalc.example/calculators/apr", meta.Canonical)
	assert.Equal(t, "https://fincalc.example/static/img/logo.svg", meta.Image)
	assert.Equal(t, "noindex, nofollow", meta.NoIndex().Robots)
	assert.Equal(t, "FinCalc", testSite.Page("", "", "/", "").Title)
}

func TestSitemap(t *testing.T) {
	set := testSite.Sitemap(testSources())

	var locs []string
	for _, u := range set.URLs {
		locs = append(locs, strings.TrimPrefix(u.Loc, "https://fincalc.example"))
	}
	want := []string{"/", "/calculators", "/calculators/apr", "/calculators/percentage", "/blog", "/blog/new", "/blog/old", "/about"}
	if diff := cmp.Diff(want, locs); diff != "" {
		t.Errorf("sitemap locations mismatch (-want +got):\n%s", diff)
	}

	byLoc := map[string]URLEntry{}
	for _, u := range set.URLs {
		byLoc[u.Loc] = u
	}
	assert.Equal(t, "2024-06-01", byLoc["https://fincalc.example/calculators/apr"].LastMod)
	assert.Equal(t, "2024-05-01", byLoc["https://fincalc.example/blog"].LastMod)
	assert.Equal(t, "2024-02-02", byLoc["https://fincalc.example/blog/old"].LastMod)
	assert.Empty(t, byLoc["https://fincalc.example/about"].LastMod)

	out, err := Encode(set)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), xml.Header))
	assert.Contains(t, string(out), `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	assert.Contains(t, string(out), "<loc>https://fincalc.example/calculators/apr</loc>")
}

func TestImageSitemap(t *testing.T) {
	set := testSite.ImageSitemap(testSources())
	require.Len(t, set.URLs, 2)

	out, err := Encode(set)
	require.NoError(t, err)
	doc := string(out)
	assert.Contains(t, doc, `xmlns:image="http://www.google.com/schemas/sitemap-image/1.1"`)
	assert.Contains(t, doc, "<image:loc>https://fincalc.example/static/img/loans.svg</image:loc>")
	assert.Contains(t, doc, "<image:title>APR Calculator</image:title>")
	assert.NotContains(t, doc, "percentage")
}

func TestRobots(t *testing.T) {
	robots := testSite.Robots()
	assert.Contains(t, robots, "Sitemap: https://fincalc.example/sitemap.xml\n")
	assert.Contains(t, robots, "Disallow: /api/\n")
}

func TestJSONLD(t *testing.T) {
	src := testSources()

	data, err := Marshal(testSite.WebApplication(src.Calculators[0]), testSite.Breadcrumbs(
		Crumb{"Home", "/"}, Crumb{"Calculators", "/calculators"}, Crumb{"APR Calculator", "/calculators/apr"},
	))
	require.NoError(t, err)

	var nodes []map[string]any
	require.NoError(t, json.Unmarshal(data, &nodes))
	require.Len(t, nodes, 2)
	assert.Equal(t, "WebApplication", nodes[0]["@type"])
	assert.Equal(t, "FinanceApplication", nodes[0]["applicationCategory"])
	assert.Equal(t, "BreadcrumbList", nodes[1]["@type"])
	items := nodes[1]["itemListElement"].([]any)
	require.Len(t, items, 3)
	assert.Equal(t, 3.0, items[2].(map[string]any)["position"])

	data, err = Marshal(testSite.BlogPosting(src.Articles[1]))
	require.NoError(t, err)
	var post map[string]any
	require.NoError(t, json.Unmarshal(data, &post))
	assert.Equal(t, "2023-01-01T00:00:00Z", post["datePublished"])
	assert.Equal(t, "2024-02-02T00:00:00Z", post["dateModified"])

	data, err = Marshal(testSite.WebSite())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"target":"https://fincalc.example/search?q={search_term_string}"`)
}

func TestMarshal_EscapesScript(t *testing.T) {
	data, err := Marshal(Thing{"name": "</script><script>"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "</script>")
}
