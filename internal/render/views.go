package render

import (
	"html/template"
	"slices"
	"strings"

	"github.com/goliatone/go-blogfront/internal/posts"
	"github.com/goliatone/go-blogfront/internal/toc"
)

const (
	// NoResults replaces the card list when nothing matches.
	NoResults = "No results found"
	// UnknownDate is shown on cards without a date.
	UnknownDate = "Unknown Date"
	// NoData replaces the card list when the manifest could not be loaded.
	NoData = "No data found"
	// ArticleFailure replaces the article body when loading fails.
	ArticleFailure = "Failed to load article"
	// AllCategories labels the unfiltered listing button.
	AllCategories = "ALL"
)

// Card is one post in a listing.
type Card struct {
	Title   string
	Date    string
	Labels  []string
	Excerpt string
	URL     string
}

// CategoryButton is one entry of the category bar.
type CategoryButton struct {
	Label  string
	URL    string
	Active bool
}

// Chrome is the data shared by every page.
type Chrome struct {
	Title     string
	SiteName  string
	HomeURL   string
	StyleURL  string
	ScriptURL string
	// SearchURL is the target of the search form. Empty hides the form.
	SearchURL string
}

// ListingView is the data of the listing page.
type ListingView struct {
	Chrome
	Cards      []Card
	Categories []CategoryButton
	Query      string
	// Message replaces the cards when set, for example NoData.
	Message string
}

// TOCLink is one table of contents entry.
type TOCLink struct {
	ID     string
	Text   string
	Class  string
	Active bool
}

// ArticleView is the data of the article page.
type ArticleView struct {
	Chrome
	Heading string
	Date    string
	Labels  []string
	Body    template.HTML
	TOC     []TOCLink
	// Failure replaces the article when set.
	Failure string
}

// CardsFor converts records to cards linking through links.
func CardsFor(records []posts.Record, links *Links) []Card {
	cards := make([]Card, 0, len(records))
	for _, record := range records {
		cards = append(cards, Card{
			Title:   record.Title,
			Date:    displayDate(record.Date),
			Labels:  record.Labels(),
			Excerpt: record.Excerpt,
			URL:     links.Article(record.File),
		})
	}
	return cards
}

// CategoryButtonsFor returns the ALL button followed by one button per
// category. The button matching active is marked. ALL is marked when active
// is empty or names no category.
func CategoryButtonsFor(categories []string, active string, links *Links) []CategoryButton {
	if !slices.Contains(categories, active) {
		active = ""
	}
	buttons := make([]CategoryButton, 0, len(categories)+1)
	buttons = append(buttons, CategoryButton{Label: AllCategories, URL: links.Home(), Active: active == ""})
	for _, category := range categories {
		buttons = append(buttons, CategoryButton{
			Label:  category,
			URL:    links.Category(category),
			Active: active != "" && category == active,
		})
	}
	return buttons
}

// TOCLinksFor converts tracked table of contents links for the template.
func TOCLinksFor(links []toc.Link) []TOCLink {
	out := make([]TOCLink, 0, len(links))
	for _, link := range links {
		out = append(out, TOCLink{ID: link.ID, Text: link.Text, Class: link.Class(), Active: link.Active})
	}
	return out
}

// PageTitle joins a page heading with the site name.
func PageTitle(heading, siteName string) string {
	heading = strings.TrimSpace(heading)
	siteName = strings.TrimSpace(siteName)
	switch {
	case heading == "":
		return siteName
	case siteName == "":
		return heading
	}
	return heading + " | " + siteName
}

func displayDate(date string) string {
	if strings.TrimSpace(date) == "" {
		return UnknownDate
	}
	return date
}
