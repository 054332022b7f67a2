package content

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"strings"
	"sync"
	"time"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"

	"fincalc/domain"
)

type frontmatter struct {
	Title       string    `yaml:"title"`
	Slug        string    `yaml:"slug"`
	Description string    `yaml:"description"`
	Date        time.Time `yaml:"date"`
	Updated     time.Time `yaml:"updated"`
	Tags        []string  `yaml:"tags"`
	Image       string    `yaml:"image"`
	Author      string    `yaml:"author"`
	Draft       bool      `yaml:"draft"`
}

var (
	bodyPolicyOnce sync.Once
	bodyPolicy     *bluemonday.Policy
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

func bodySanitizer() *bluemonday.Policy {
	bodyPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
		policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "table")
		policy.RequireNoFollowOnLinks(false)
		bodyPolicy = policy
	})
	return bodyPolicy
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AddSpaceWhenStrippingTag(true)
		textPolicy = policy
	})
	return textPolicy
}

// splitFrontmatter separates a leading "---" YAML block from the body.
func splitFrontmatter(data []byte) (meta, body []byte, err error) {
	if !bytes.HasPrefix(data, []byte("---\n")) && !bytes.HasPrefix(data, []byte("---\r\n")) {
		return nil, data, nil
	}
	rest := data[3:]
	parts := bytes.SplitN(rest, []byte("\n---"), 2)
	if len(parts) == 1 {
		return nil, nil, errors.New("frontmatter started but no closing delimiter found")
	}
	body = parts[1]
	if i := bytes.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	} else {
		body = nil
	}
	return parts[0], body, nil
}

func parseDocument(section, fileSlug string, data []byte) (domain.Article, error) {
	meta, body, err := splitFrontmatter(data)
	if err != nil {
		return domain.Article{}, err
	}

	var fm frontmatter
	if len(meta) > 0 {
		if err := yaml.Unmarshal(meta, &fm); err != nil {
			return domain.Article{}, fmt.Errorf("failed to parse frontmatter: %w", err)
		}
	}
	if fm.Title == "" {
		return domain.Article{}, errors.New("frontmatter title is required")
	}
	if section == domain.SectionArticles && fm.Date.IsZero() {
		return domain.Article{}, errors.New("frontmatter date is required for articles")
	}

	slug := fileSlug
	if fm.Slug != "" {
		slug = fm.Slug
	}

	rendered := Render(body)
	return domain.Article{
		Section:     section,
		Slug:        slug,
		Title:       fm.Title,
		Description: fm.Description,
		Date:        fm.Date,
		Updated:     fm.Updated,
		Tags:        fm.Tags,
		Image:       fm.Image,
		Author:      fm.Author,
		Draft:       fm.Draft,
		HTML:        rendered,
		Text:        PlainText(rendered),
	}, nil
}

// Render converts markdown to sanitised HTML.
func Render(md []byte) string {
	// Parsers keep state and cannot be reused between documents.
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	out := markdown.ToHTML(md, p, renderer)
	return strings.TrimSpace(bodySanitizer().Sanitize(string(out)))
}

// PlainText strips markup and collapses whitespace.
func PlainText(htmlText string) string {
	stripped := html.UnescapeString(textSanitizer().Sanitize(htmlText))
	return strings.Join(strings.Fields(stripped), " ")
}
