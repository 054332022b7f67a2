package http

import (
	"net/http"

	"fincalc/seo"
)

func (s *Server) sitemapSources() seo.Sources {
	return seo.Sources{
		Calculators: s.calculators.Catalog().Infos(),
		Articles:    s.content.Articles(),
		Pages:       s.content.Pages(),
		Updated:     s.started,
	}
}

func (s *Server) writeSitemap(w http.ResponseWriter, r *http.Request, set seo.URLSet) {
	out, err := seo.Encode(set)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(out)
}

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	s.writeSitemap(w, r, s.site.Sitemap(s.sitemapSources()))
}

func (s *Server) handleImageSitemap(w http.ResponseWriter, r *http.Request) {
	s.writeSitemap(w, r, s.site.ImageSitemap(s.sitemapSources()))
}

func (s *Server) handleRobots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(s.site.Robots()))
}
