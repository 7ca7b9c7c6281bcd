// Package render turns posts and articles into HTML using embedded
// templates and assets.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/goliatone/go-blogfront/internal/posts"
	"github.com/goliatone/go-blogfront/internal/toc"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

const (
	// StyleAsset is the embedded stylesheet.
	StyleAsset = "style.css"
	// ScriptAsset is the embedded table of contents script.
	ScriptAsset = "toc.js"
)

// Assets exposes the embedded static files rooted at their names.
func Assets() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Options configures a Renderer.
type Options struct {
	Links    *Links
	SiteName string
}

// Renderer writes listing fragments and full pages.
type Renderer struct {
	tmpl     *template.Template
	links    *Links
	siteName string
}

type searchData struct {
	Action string
	Query  string
}

// New parses the embedded templates.
func New(opts Options) (*Renderer, error) {
	if opts.Links == nil {
		return nil, fmt.Errorf("render: links are required")
	}
	tmpl, err := template.New("blogfront").Funcs(template.FuncMap{
		"noResults": func() string { return NoResults },
		"noHeaders": func() string { return toc.Placeholder },
		"searchData": func(action, query string) searchData {
			return searchData{Action: action, Query: query}
		},
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("render: parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, links: opts.Links, siteName: opts.SiteName}, nil
}

// Links returns the link builder used for cards and buttons.
func (r *Renderer) Links() *Links {
	return r.links
}

// WithLinks returns a renderer sharing r's templates that links through
// links.
func (r *Renderer) WithLinks(links *Links) *Renderer {
	if links == nil {
		return r
	}
	clone := *r
	clone.links = links
	return &clone
}

// SiteName returns the configured site name.
func (r *Renderer) SiteName() string {
	return r.siteName
}

// Chrome returns the shared page data for a page headed by heading.
func (r *Renderer) Chrome(heading string) Chrome {
	chrome := Chrome{
		Title:     PageTitle(heading, r.siteName),
		SiteName:  r.siteName,
		HomeURL:   r.links.Home(),
		StyleURL:  r.links.Asset(StyleAsset),
		ScriptURL: r.links.Asset(ScriptAsset),
	}
	if r.links.Mode() == ModeDynamic {
		chrome.SearchURL = r.links.Home()
	}
	return chrome
}

// Posts writes one card per record, or the NoResults placeholder.
func (r *Renderer) Posts(w io.Writer, records []posts.Record) error {
	return r.tmpl.ExecuteTemplate(w, "cards", CardsFor(records, r.links))
}

// Categories writes the ALL button and one button per category.
func (r *Renderer) Categories(w io.Writer, categories []string, active string) error {
	return r.tmpl.ExecuteTemplate(w, "categories", CategoryButtonsFor(categories, active, r.links))
}

// SearchBox writes the search form prefilled with query.
func (r *Renderer) SearchBox(w io.Writer, query string) error {
	return r.tmpl.ExecuteTemplate(w, "search", searchData{Action: r.links.Home(), Query: query})
}

// Listing writes a full listing page.
func (r *Renderer) Listing(w io.Writer, view ListingView) error {
	return r.tmpl.ExecuteTemplate(w, "listing", view)
}

// Article writes a full article page.
func (r *Renderer) Article(w io.Writer, view ArticleView) error {
	return r.tmpl.ExecuteTemplate(w, "article", view)
}
