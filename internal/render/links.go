package render

import (
	"fmt"
	"path"
	"strings"

	"github.com/goliatone/go-slug"
	"github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-blogfront/internal/identity"
)

// Mode selects the link layout.
type Mode string

const (
	// ModeDynamic links to server routes: /article?post=<file>.
	ModeDynamic Mode = "dynamic"
	// ModeStatic links to generated directories: /articles/<slug>/.
	ModeStatic Mode = "static"
)

const (
	routeHome     = "home"
	routeArticle  = "article"
	routeCategory = "category"
	routeAsset    = "asset"
)

// Links builds page URLs for one mode through a go-urlkit route group.
type Links struct {
	mode  Mode
	group *urlkit.Group
	slugs SlugTable
}

// NewLinks registers the route group for mode under baseURL. An empty
// baseURL yields root relative links.
func NewLinks(baseURL string, mode Mode) (*Links, error) {
	if mode == "" {
		mode = ModeDynamic
	}
	paths := map[string]string{
		routeHome:  "/",
		routeAsset: "/static/:name",
	}
	switch mode {
	case ModeDynamic:
		paths[routeArticle] = "/article"
		paths[routeCategory] = "/"
	case ModeStatic:
		paths[routeArticle] = "/articles/:slug"
		paths[routeCategory] = "/categories/:slug"
	default:
		return nil, fmt.Errorf("render: unknown link mode %q", mode)
	}

	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{{
			Name:    string(mode),
			BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
			Paths:   paths,
		}},
	})
	group, err := lookupGroup(manager, string(mode))
	if err != nil {
		return nil, err
	}
	return &Links{mode: mode, group: group}, nil
}

// Mode returns the link layout.
func (l *Links) Mode() Mode {
	return l.mode
}

// WithSlugs returns a copy of l whose static links resolve directory names
// through table.
func (l *Links) WithSlugs(table SlugTable) *Links {
	clone := *l
	clone.slugs = table
	return &clone
}

// Home links to the unfiltered listing.
func (l *Links) Home() string {
	return l.build(routeHome, nil, nil)
}

// Article links to the page of the post stored in file.
func (l *Links) Article(file string) string {
	if l.mode == ModeStatic {
		return dirURL(l.build(routeArticle, map[string]any{"slug": l.slugs.Article(file)}, nil))
	}
	return l.build(routeArticle, nil, map[string]string{"post": file})
}

// Category links to the listing filtered by category.
func (l *Links) Category(category string) string {
	if l.mode == ModeStatic {
		return dirURL(l.build(routeCategory, map[string]any{"slug": l.slugs.Category(category)}, nil))
	}
	return l.build(routeCategory, nil, map[string]string{"category": category})
}

// Asset links to an embedded static file.
func (l *Links) Asset(name string) string {
	return l.build(routeAsset, map[string]any{"name": name}, nil)
}

func (l *Links) build(route string, params map[string]any, query map[string]string) string {
	builder, err := safeBuilder(l.group, route)
	if err != nil {
		return "#"
	}
	for key, val := range params {
		builder.WithParam(key, val)
	}
	for key, val := range query {
		builder.WithQuery(key, val)
	}
	url, err := builder.Build()
	if err != nil {
		return "#"
	}
	return url
}

func dirURL(url string) string {
	if url == "#" || strings.HasSuffix(url, "/") {
		return url
	}
	return url + "/"
}

// ArticleSlug derives the output directory name for a post file. The path
// without its extension is normalised with go-slug. Names normalising to
// nothing fall back to a short hash of the file.
func ArticleSlug(file string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(file), "./")
	trimmed = strings.TrimSuffix(trimmed, path.Ext(trimmed))
	return slugOr(strings.ReplaceAll(trimmed, "/", "-"), file)
}

// CategorySlug derives the output directory name for a category.
func CategorySlug(category string) string {
	return slugOr(category, "category:"+category)
}

// SlugTable maps post files and categories to output directory names.
// Missing entries fall back to ArticleSlug and CategorySlug.
type SlugTable struct {
	Articles   map[string]string
	Categories map[string]string
}

// NewSlugTable assigns a unique directory name to every file and category,
// in order. A name already taken gets the short id of its key appended.
func NewSlugTable(files, categories []string) SlugTable {
	table := SlugTable{
		Articles:   make(map[string]string, len(files)),
		Categories: make(map[string]string, len(categories)),
	}
	used := make(map[string]struct{}, len(files))
	for _, file := range files {
		table.Articles[file] = uniqueSlug(used, ArticleSlug(file), file)
	}
	used = make(map[string]struct{}, len(categories))
	for _, category := range categories {
		table.Categories[category] = uniqueSlug(used, CategorySlug(category), "category:"+category)
	}
	return table
}

// Article returns the directory name of file.
func (t SlugTable) Article(file string) string {
	if slug, ok := t.Articles[file]; ok {
		return slug
	}
	return ArticleSlug(file)
}

// Category returns the directory name of category.
func (t SlugTable) Category(category string) string {
	if slug, ok := t.Categories[category]; ok {
		return slug
	}
	return CategorySlug(category)
}

func uniqueSlug(used map[string]struct{}, slug, key string) string {
	if _, taken := used[slug]; taken {
		slug = slug + "-" + identity.ShortID(key)
	}
	used[slug] = struct{}{}
	return slug
}

func slugOr(value, fallbackKey string) string {
	if normalized, err := slug.Normalize(value); err == nil && normalized != "" {
		return normalized
	}
	return identity.ShortID(fallbackKey)
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("render: urlkit group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			builder, err = nil, fmt.Errorf("render: urlkit builder panic: %v", rec)
		}
	}()
	return group.Builder(route), nil
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			group, err = nil, fmt.Errorf("render: route group %q not found", name)
		}
	}()
	return manager.Group(name), nil
}
