// Package content loads the site's markdown articles and static pages.
package content

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"fincalc/domain"
)

//go:embed files
var files embed.FS

// Embedded returns the content compiled into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(files, "files")
	if err != nil {
		panic(err)
	}
	return sub
}

// Library holds the rendered documents. It is safe for concurrent use and
// can be reloaded while serving.
type Library struct {
	source fs.FS
	dir    string

	mu       sync.RWMutex
	articles []domain.Article
	pages    map[string]domain.Article
}

// NewLibrary loads every document from source.
func NewLibrary(source fs.FS) (*Library, error) {
	l := &Library{source: source}
	if err := l.Reload(); err != nil {
		return nil, err
	}
	return l, nil
}

// Open loads content from dir, or the embedded content when dir is empty.
func Open(dir string) (*Library, error) {
	if dir == "" {
		return NewLibrary(Embedded())
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content dir %s is not a directory", dir)
	}
	l, err := NewLibrary(os.DirFS(dir))
	if err != nil {
		return nil, err
	}
	l.dir = dir
	return l, nil
}

// Reload re-reads every document. On error the previous content is kept.
func (l *Library) Reload() error {
	articles, err := l.load(domain.SectionArticles)
	if err != nil {
		return err
	}
	pageList, err := l.load(domain.SectionPages)
	if err != nil {
		return err
	}

	published := articles[:0]
	for _, a := range articles {
		if !a.Draft {
			published = append(published, a)
		}
	}
	slices.SortStableFunc(published, func(a, b domain.Article) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return strings.Compare(a.Slug, b.Slug)
	})

	pages := make(map[string]domain.Article, len(pageList))
	for _, p := range pageList {
		if !p.Draft {
			pages[p.Slug] = p
		}
	}

	l.mu.Lock()
	l.articles = published
	l.pages = pages
	l.mu.Unlock()
	return nil
}

func (l *Library) load(section string) ([]domain.Article, error) {
	matches, err := doublestar.Glob(l.source, section+"/**/*.md")
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", section, err)
	}
	slices.Sort(matches)

	docs := make([]domain.Article, 0, len(matches))
	seen := make(map[string]string, len(matches))
	for _, name := range matches {
		data, err := fs.ReadFile(l.source, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		doc, err := parseDocument(section, strings.TrimSuffix(path.Base(name), ".md"), data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if prev, ok := seen[doc.Slug]; ok {
			return nil, fmt.Errorf("%s: slug %q already used by %s", name, doc.Slug, prev)
		}
		seen[doc.Slug] = name
		docs = append(docs, doc)
	}
	return docs, nil
}

// Articles returns the published articles, newest first.
func (l *Library) Articles() []domain.Article {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.articles)
}

func (l *Library) Article(slug string) (domain.Article, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, a := range l.articles {
		if a.Slug == slug {
			return a, nil
		}
	}
	return domain.Article{}, domain.ErrNotFound
}

func (l *Library) Page(slug string) (domain.Article, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.pages[slug]
	if !ok {
		return domain.Article{}, domain.ErrNotFound
	}
	return p, nil
}

// Pages returns the static pages ordered by slug.
func (l *Library) Pages() []domain.Article {
	l.mu.RLock()
	defer l.mu.RUnlock()
	pages := make([]domain.Article, 0, len(l.pages))
	for _, p := range l.pages {
		pages = append(pages, p)
	}
	slices.SortFunc(pages, func(a, b domain.Article) int { return strings.Compare(a.Slug, b.Slug) })
	return pages
}
