package generator

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	goerrors "github.com/goliatone/go-errors"
	"github.com/mmcdole/gofeed"

	"github.com/goliatone/go-blogfront/internal/article"
	"github.com/goliatone/go-blogfront/internal/identity"
	"github.com/goliatone/go-blogfront/internal/markdown"
	"github.com/goliatone/go-blogfront/internal/posts"
	"github.com/goliatone/go-blogfront/internal/render"
	"github.com/goliatone/go-blogfront/pkg/interfaces"
)

type memorySource struct {
	manifest []string
	files    map[string]string
	// missing documents are listed but only fail for the article loader
	articleMissing map[string]bool
}

func (m memorySource) Manifest(context.Context) ([]string, error) {
	return m.manifest, nil
}

func (m memorySource) Document(_ context.Context, file string) ([]byte, error) {
	doc, ok := m.files[file]
	if !ok {
		return nil, goerrors.New(file+" not found", goerrors.CategoryNotFound)
	}
	return []byte(doc), nil
}

type articleSource struct {
	memorySource
}

func (a articleSource) Document(ctx context.Context, file string) ([]byte, error) {
	if a.articleMissing[file] {
		return nil, goerrors.New(file+" vanished", goerrors.CategoryNotFound)
	}
	return a.memorySource.Document(ctx, file)
}

func sampleSource() memorySource {
	return memorySource{
		manifest: []string{"hello.md", "drafts/hello.md", "deep-dive.md"},
		files: map[string]string{
			"hello.md":        "---\ntitle: Hello & Welcome\ndate: 2024-03-01\ncategories: [go]\n---\nFirst words <!--more--> and more\n\n## Part One\n",
			"drafts/hello.md": "---\ntitle: Draft Hello\ndate: 2024-02-01\ncategories: [go, notes]\n---\nDraft body\n",
			"deep-dive.md":    "---\ntitle: Deep Dive\ndate: 2024-01-01\ncategories: [notes]\n---\nDeep body\n",
		},
	}
}

func newTestService(t *testing.T, src memorySource, cfg Config) *Service {
	t.Helper()
	links, err := render.NewLinks(cfg.BaseURL, render.ModeStatic)
	if err != nil {
		t.Fatalf("NewLinks: %v", err)
	}
	renderer, err := render.New(render.Options{Links: links, SiteName: cfg.SiteName})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	repo := posts.NewRepository(src, posts.Options{})
	articles := article.NewService(articleSource{src}, markdown.NewGoldmarkParser(interfaces.ParseOptions{}), nil)
	svc := NewService(cfg, Dependencies{Posts: repo, Articles: articles, Renderer: renderer})
	svc.now = func() time.Time { return time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func fullConfig(dir string) Config {
	return Config{
		OutputDir:       dir,
		BaseURL:         "https://blog.example.com",
		SiteName:        "Field Notes",
		Language:        "en",
		CleanBuild:      true,
		CopyAssets:      true,
		GenerateFeed:    true,
		GenerateSitemap: true,
		GenerateRobots:  true,
		Workers:         2,
	}
}

func readFile(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("read %s: %v", rel, err)
	}
	return string(data)
}

func TestBuildWritesSite(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "stale.html")
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatalf("seed stale file: %v", err)
	}

	svc := newTestService(t, sampleSource(), fullConfig(dir))
	result, err := svc.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if result.ArticlesBuilt != 3 || result.CategoriesBuilt != 2 || result.PagesBuilt != 6 {
		t.Fatalf("unexpected counts %+v", result)
	}
	if result.AssetsBuilt != 2 {
		t.Fatalf("expected 2 assets, got %d", result.AssetsBuilt)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatalf("expected clean build to remove stale files, got %v", err)
	}

	for _, rel := range []string{
		"index.html",
		"categories/go/index.html",
		"categories/notes/index.html",
		"articles/hello/index.html",
		"articles/deep-dive/index.html",
		"static/style.css",
		"static/toc.js",
		"feed.xml",
		"sitemap.xml",
		"robots.txt",
	} {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel))); err != nil {
			t.Fatalf("expected %s: %v", rel, err)
		}
	}

	index := readFile(t, dir, "index.html")
	if !strings.Contains(index, "https://blog.example.com/articles/hello/") {
		t.Fatalf("expected absolute article links, got %s", index)
	}
	if strings.Contains(index, `id="search-input"`) {
		t.Fatalf("expected static listing without search form")
	}

	category := readFile(t, dir, "categories/notes/index.html")
	if strings.Contains(category, "Hello &amp; Welcome") || !strings.Contains(category, "Deep Dive") {
		t.Fatalf("expected notes listing only, got %s", category)
	}

	articlePage := readFile(t, dir, "articles/hello/index.html")
	if !strings.Contains(articlePage, "<title>Hello &amp; Welcome | Field Notes</title>") {
		t.Fatalf("expected article title, got %s", articlePage)
	}
	if !strings.Contains(articlePage, `id="header-0"`) {
		t.Fatalf("expected heading ids, got %s", articlePage)
	}

	robots := readFile(t, dir, "robots.txt")
	if !strings.Contains(robots, "Sitemap: https://blog.example.com/sitemap.xml") {
		t.Fatalf("unexpected robots.txt %q", robots)
	}
	sitemap := readFile(t, dir, "sitemap.xml")
	if !strings.Contains(sitemap, "<loc>https://blog.example.com/categories/go/</loc>") {
		t.Fatalf("expected category in sitemap, got %s", sitemap)
	}
}

func TestBuildFeedParses(t *testing.T) {
	dir := t.TempDir()
	svc := newTestService(t, sampleSource(), fullConfig(dir))
	result, err := svc.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	feed, err := gofeed.NewParser().ParseString(readFile(t, dir, "feed.xml"))
	if err != nil {
		t.Fatalf("parse feed: %v", err)
	}
	if feed.Title != "Field Notes" {
		t.Fatalf("expected feed title, got %q", feed.Title)
	}
	titles := make([]string, 0, len(feed.Items))
	for _, item := range feed.Items {
		titles = append(titles, item.Title)
	}
	if diff := cmp.Diff([]string{"Hello & Welcome", "Draft Hello", "Deep Dive"}, titles); diff != "" {
		t.Fatalf("feed items mismatch (-want +got):\n%s", diff)
	}
	if result.FeedItems != 3 {
		t.Fatalf("expected 3 feed items, got %d", result.FeedItems)
	}
	if feed.Items[0].Description != "First words" {
		t.Fatalf("expected excerpt description, got %q", feed.Items[0].Description)
	}
	if feed.Items[0].PublishedParsed == nil || feed.Items[0].PublishedParsed.Year() != 2024 {
		t.Fatalf("expected publish date, got %v", feed.Items[0].PublishedParsed)
	}
}

func TestBuildGivesCollidingSlugsUniqueDirectories(t *testing.T) {
	src := memorySource{
		manifest: []string{"a b.md", "a-b.md"},
		files: map[string]string{
			"a b.md": "---\ntitle: First\ndate: 2024-02-01\ncategories: [Go]\n---\nFirst body\n",
			"a-b.md": "---\ntitle: Second\ndate: 2024-01-01\ncategories: [go]\n---\nSecond body\n",
		},
	}
	dir := t.TempDir()
	if _, err := newTestService(t, src, fullConfig(dir)).Build(context.Background()); err != nil {
		t.Fatalf("Build: %v", err)
	}

	base := "https://blog.example.com"
	secondArticle := "/articles/a-b-" + identity.ShortID("a-b.md") + "/"
	lowerCategory := "/categories/go-" + identity.ShortID("category:go") + "/"

	index := readFile(t, dir, "index.html")
	for _, want := range []string{
		`<a href="` + base + `/articles/a-b/">First</a>`,
		`<a href="` + base + secondArticle + `">Second</a>`,
		`href="` + base + `/categories/go/">Go</a>`,
		`href="` + base + lowerCategory + `">go</a>`,
	} {
		if !strings.Contains(index, want) {
			t.Fatalf("expected %q in index, got %s", want, index)
		}
	}

	if got := readFile(t, dir, "articles/a-b/index.html"); !strings.Contains(got, "First body") {
		t.Fatalf("expected first article under a-b, got %s", got)
	}
	if got := readFile(t, dir, strings.Trim(secondArticle, "/")+"/index.html"); !strings.Contains(got, "Second body") {
		t.Fatalf("expected second article under suffixed dir, got %s", got)
	}

	upper := readFile(t, dir, "categories/go/index.html")
	if !strings.Contains(upper, ">First</a>") || strings.Contains(upper, ">Second</a>") {
		t.Fatalf("expected only First on the Go page, got %s", upper)
	}
	lower := readFile(t, dir, strings.Trim(lowerCategory, "/")+"/index.html")
	if !strings.Contains(lower, ">Second</a>") || strings.Contains(lower, ">First</a>") {
		t.Fatalf("expected only Second on the go page, got %s", lower)
	}
}

func TestBuildReportsFailedArticles(t *testing.T) {
	src := sampleSource()
	src.articleMissing = map[string]bool{"deep-dive.md": true}
	dir := t.TempDir()

	result, err := newTestService(t, src, fullConfig(dir)).Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if result.ArticlesBuilt != 2 || result.ArticlesFailed != 1 || len(result.Errors) != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
	if _, err := os.Stat(filepath.Join(dir, "articles", "deep-dive", "index.html")); !os.IsNotExist(err) {
		t.Fatalf("expected no page for failed article, got %v", err)
	}
	if strings.Contains(readFile(t, dir, "feed.xml"), "Deep Dive") {
		t.Fatal("expected failed article to be left out of the feed")
	}
}

func TestBuildRequiresStaticRenderer(t *testing.T) {
	links, err := render.NewLinks("", render.ModeDynamic)
	if err != nil {
		t.Fatalf("NewLinks: %v", err)
	}
	renderer, err := render.New(render.Options{Links: links})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	svc := NewService(Config{OutputDir: t.TempDir()}, Dependencies{Renderer: renderer})
	if _, err := svc.Build(context.Background()); err != errRendererRequired {
		t.Fatalf("expected errRendererRequired, got %v", err)
	}
}

func TestBuildSitemapKeepsBuildOrderAndHints(t *testing.T) {
	fallback := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	got := buildSitemap("https://blog.example.com", []RenderedPage{
		{Route: "/"},
		{Route: "/categories/go/", LastModified: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Route: "/articles/hello/", LastModified: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Route: "/articles/hello/"},
	}, fallback)

	home := strings.Index(got, "<loc>https://blog.example.com/</loc><lastmod>2024-06-01</lastmod><changefreq>daily</changefreq>")
	category := strings.Index(got, "<loc>https://blog.example.com/categories/go/</loc><lastmod>2024-03-01</lastmod><changefreq>weekly</changefreq>")
	article := strings.Index(got, "<loc>https://blog.example.com/articles/hello/</loc><lastmod>2024-03-01</lastmod><changefreq>monthly</changefreq><priority>0.8</priority>")
	if home < 0 || category < 0 || article < 0 {
		t.Fatalf("missing sitemap entries in %s", got)
	}
	if !(home < category && category < article) {
		t.Fatalf("expected build order, got %s", got)
	}
	if strings.Count(got, "<url>") != 3 {
		t.Fatalf("expected duplicate routes to collapse, got %s", got)
	}
}

func TestBuildRobotsWithoutSitemap(t *testing.T) {
	got := buildRobots("", false)
	if got != "User-agent: *\nAllow: /\n" {
		t.Fatalf("unexpected robots %q", got)
	}
}

func TestDirWriterCleanRefusesRoot(t *testing.T) {
	if err := newDirWriter("/").Clean(context.Background()); err == nil {
		t.Fatal("expected refusal to clean the filesystem root")
	}
}
