package site

import (
	"html/template"
	"net/http"

	"github.com/goliatone/go-blogfront/internal/article"
	"github.com/goliatone/go-blogfront/internal/posts"
	"github.com/goliatone/go-blogfront/internal/render"
	"github.com/goliatone/go-blogfront/internal/toc"
)

// Page is the per-request rendering context.
type Page struct {
	SiteName string
	Renderer *render.Renderer
	Filter   Filter
}

// NewPage builds the context for one page.
func NewPage(renderer *render.Renderer, filter Filter) Page {
	return Page{SiteName: renderer.SiteName(), Renderer: renderer, Filter: filter}
}

// Links returns the page's link builder.
func (p Page) Links() *render.Links {
	return p.Renderer.Links()
}

// Mode returns the page's link mode.
func (p Page) Mode() render.Mode {
	return p.Links().Mode()
}

// Listing is the outcome of a listing request.
type Listing struct {
	Records    []posts.Record
	Categories []string
	// Err is set when the post collection could not be loaded.
	Err error
}

// BuildListing derives the listing view. records are the loaded records
// before filtering.
func BuildListing(page Page, listing Listing) render.ListingView {
	view := render.ListingView{
		Chrome:     page.Renderer.Chrome(listingHeading(page.Filter)),
		Query:      page.Filter.Query(),
		Categories: render.CategoryButtonsFor(listing.Categories, page.Filter.ActiveCategory(), page.Links()),
	}
	if listing.Err != nil {
		view.Message = render.NoData
		return view
	}
	view.Cards = render.CardsFor(Apply(page.Filter, listing.Records), page.Links())
	return view
}

// Apply filters records by f.
func Apply(f Filter, records []posts.Record) []posts.Record {
	switch f.Kind {
	case FilterCategory:
		return posts.FilterByCategory(records, f.Value)
	case FilterSearch:
		return posts.Search(records, f.Value)
	}
	return records
}

func listingHeading(f Filter) string {
	switch f.Kind {
	case FilterCategory:
		return "#" + f.Value
	case FilterSearch:
		return "Search: " + f.Value
	}
	return ""
}

// BuildArticle derives the article view and HTTP status from a load result.
func BuildArticle(page Page, loaded article.Article, err error) (render.ArticleView, int) {
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case article.IsNotFound(err) || isBadInput(err):
			status = http.StatusNotFound
		case article.IsUnavailable(err) || isExternal(err):
			status = http.StatusBadGateway
		}
		return render.ArticleView{
			Chrome:  page.Renderer.Chrome(""),
			Failure: render.ArticleFailure,
		}, status
	}
	labels := posts.Record{Categories: loaded.Categories, Tags: loaded.Tags}.Labels()
	// Pages open at the top, where the first heading is the one in view.
	tracker := toc.NewTracker(loaded.TOC.Entries)
	if len(loaded.TOC.Entries) > 0 {
		tracker.Observe(toc.Event{ID: loaded.TOC.Entries[0].ID, Intersecting: true})
	}
	return render.ArticleView{
		Chrome:  page.Renderer.Chrome(loaded.Title),
		Heading: loaded.Title,
		Date:    loaded.Date,
		Labels:  labels,
		Body:    template.HTML(loaded.HTML),
		TOC:     render.TOCLinksFor(tracker.Links()),
	}, http.StatusOK
}
