// Package generator renders the blog to a directory of static files: the
// listing, one page per category and article, an RSS feed, a sitemap,
// robots.txt and the embedded assets.
package generator

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"path"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-blogfront/internal/logging"
	"github.com/goliatone/go-blogfront/internal/posts"
	"github.com/goliatone/go-blogfront/internal/render"
	"github.com/goliatone/go-blogfront/internal/site"
	"github.com/goliatone/go-blogfront/pkg/interfaces"
)

var errRendererRequired = errors.New("generator: static renderer is required")

// Config captures generator behaviour toggles.
type Config struct {
	OutputDir       string
	BaseURL         string
	SiteName        string
	Description     string
	Language        string
	CleanBuild      bool
	CopyAssets      bool
	GenerateFeed    bool
	GenerateSitemap bool
	GenerateRobots  bool
	FeedLimit       int
	Workers         int
}

// Dependencies lists the collaborators of a build.
type Dependencies struct {
	Posts    site.Repository
	Articles site.ArticleLoader
	// Renderer must use render.ModeStatic links.
	Renderer *render.Renderer
	Logger   interfaces.Logger
}

// RenderedPage records one written page.
type RenderedPage struct {
	Route        string
	Output       string
	LastModified time.Time
}

// BuildResult reports aggregated build metadata.
type BuildResult struct {
	PagesBuilt      int
	CategoriesBuilt int
	ArticlesBuilt   int
	ArticlesFailed  int
	AssetsBuilt     int
	FeedItems       int
	Duration        time.Duration
	Rendered        []RenderedPage
	Errors          []error
}

// Service builds the static site.
type Service struct {
	cfg    Config
	deps   Dependencies
	writer artifactWriter
	logger interfaces.Logger
	now    func() time.Time
}

// NewService wires a generator writing to cfg.OutputDir.
func NewService(cfg Config, deps Dependencies) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{
		cfg:    cfg,
		deps:   deps,
		writer: newDirWriter(cfg.OutputDir),
		logger: logger,
		now:    time.Now,
	}
}

// Build loads the posts and writes every artifact. Articles that fail to
// load are counted and reported in BuildResult.Errors without stopping the
// build. A post collection that cannot be loaded fails the build.
func (s *Service) Build(ctx context.Context) (*BuildResult, error) {
	if s.deps.Renderer == nil || s.deps.Renderer.Links().Mode() != render.ModeStatic {
		return nil, errRendererRequired
	}
	start := s.now()
	logger := s.logger.WithContext(ctx)

	if err := s.deps.Posts.EnsureLoaded(ctx); err != nil {
		return nil, err
	}
	listing := site.Listing{Records: s.deps.Posts.All(), Categories: s.deps.Posts.Categories()}

	if s.cfg.CleanBuild {
		if err := s.writer.Clean(ctx); err != nil {
			return nil, err
		}
	}
	if err := s.writer.EnsureDir(ctx, "."); err != nil {
		return nil, err
	}

	// Cards, buttons and output directories all resolve through one table.
	slugs := render.NewSlugTable(files(listing.Records), listing.Categories)
	renderer := s.deps.Renderer.WithLinks(s.deps.Renderer.Links().WithSlugs(slugs))

	result := &BuildResult{}
	dirCache := map[string]struct{}{}
	generatedAt := start.UTC()

	index, err := s.writeListing(ctx, renderer, dirCache, "/", site.Filter{}, listing, newest(listing.Records))
	if err != nil {
		return nil, err
	}
	result.Rendered = append(result.Rendered, index)

	for _, category := range listing.Categories {
		route := "/categories/" + slugs.Category(category) + "/"
		page, err := s.writeListing(ctx, renderer, dirCache, route, site.Category(category), listing,
			newest(posts.FilterByCategory(listing.Records, category)))
		if err != nil {
			return nil, err
		}
		result.Rendered = append(result.Rendered, page)
		result.CategoriesBuilt++
	}

	articlePages, links, articleErrs, err := s.writeArticles(ctx, renderer, dirCache, articleJobs(listing.Records, slugs))
	if err != nil {
		return nil, err
	}
	result.Rendered = append(result.Rendered, articlePages...)
	result.ArticlesBuilt = len(articlePages)
	result.ArticlesFailed = len(articleErrs)
	result.Errors = append(result.Errors, articleErrs...)
	result.PagesBuilt = len(result.Rendered)

	if s.cfg.CopyAssets {
		copied, err := s.copyAssets(ctx, dirCache)
		if err != nil {
			return nil, err
		}
		result.AssetsBuilt = copied
	}

	if s.cfg.GenerateFeed {
		doc := buildFeedDocument(s.cfg, listing.Records, links, s.cfg.FeedLimit)
		if err := s.writeText(ctx, "feed.xml", buildRSSFeed(doc, generatedAt)); err != nil {
			return nil, err
		}
		result.FeedItems = len(doc.Items)
	}
	if s.cfg.GenerateSitemap {
		if err := s.writeText(ctx, "sitemap.xml", buildSitemap(s.cfg.BaseURL, result.Rendered, generatedAt)); err != nil {
			return nil, err
		}
	}
	if s.cfg.GenerateRobots {
		if err := s.writeText(ctx, "robots.txt", buildRobots(s.cfg.BaseURL, s.cfg.GenerateSitemap)); err != nil {
			return nil, err
		}
	}

	result.Duration = s.now().Sub(start)
	logger.Info("generator.build_complete",
		"pages", result.PagesBuilt,
		"articles", result.ArticlesBuilt,
		"articles_failed", result.ArticlesFailed,
		"assets", result.AssetsBuilt,
		"duration", result.Duration,
	)
	return result, nil
}

func (s *Service) writeListing(ctx context.Context, renderer *render.Renderer, dirCache map[string]struct{}, route string, filter site.Filter, listing site.Listing, lastModified time.Time) (RenderedPage, error) {
	view := site.BuildListing(site.NewPage(renderer, filter), listing)
	var buf bytes.Buffer
	if err := renderer.Listing(&buf, view); err != nil {
		return RenderedPage{}, err
	}
	return s.writePage(ctx, dirCache, route, buf.Bytes(), lastModified)
}

// newest returns the latest publish date in records, or zero.
func newest(records []posts.Record) time.Time {
	var latest time.Time
	for _, record := range records {
		if record.Published.After(latest) {
			latest = record.Published
		}
	}
	return latest
}

type articleJob struct {
	record posts.Record
	slug   string
}

func (s *Service) writeArticles(ctx context.Context, renderer *render.Renderer, dirCache map[string]struct{}, jobs []articleJob) ([]RenderedPage, map[string]string, []error, error) {
	pages := make([]*RenderedPage, len(jobs))
	failures := make([]error, len(jobs))

	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.workers())
	for i, job := range jobs {
		group.Go(func() error {
			loaded, err := s.deps.Articles.Load(groupCtx, job.record.File)
			if err != nil {
				logging.WithPostContext(s.logger.WithContext(groupCtx), job.record.File, "build").
					Warn("generator.article_failed", "error", err)
				failures[i] = err
				return nil
			}
			view, _ := site.BuildArticle(site.NewPage(renderer, site.Filter{}), loaded, nil)
			var buf bytes.Buffer
			if err := renderer.Article(&buf, view); err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			page, err := s.writePage(groupCtx, dirCache, "/articles/"+job.slug+"/", buf.Bytes(), job.record.Published)
			if err != nil {
				return err
			}
			pages[i] = &page
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, nil, nil, err
	}

	written := make([]RenderedPage, 0, len(jobs))
	links := make(map[string]string, len(jobs))
	var errs []error
	for i, job := range jobs {
		if failures[i] != nil {
			errs = append(errs, failures[i])
			continue
		}
		if pages[i] != nil {
			written = append(written, *pages[i])
			links[job.record.File] = absoluteURL(s.cfg.BaseURL, pages[i].Route)
		}
	}
	return written, links, errs, nil
}

func articleJobs(records []posts.Record, slugs render.SlugTable) []articleJob {
	jobs := make([]articleJob, 0, len(records))
	for _, record := range records {
		jobs = append(jobs, articleJob{record: record, slug: slugs.Article(record.File)})
	}
	return jobs
}

func files(records []posts.Record) []string {
	out := make([]string, 0, len(records))
	for _, record := range records {
		out = append(out, record.File)
	}
	return out
}

func (s *Service) writePage(ctx context.Context, dirCache map[string]struct{}, route string, body []byte, lastModified time.Time) (RenderedPage, error) {
	output := path.Join(strings.Trim(route, "/"), "index.html")
	if err := ensureDir(ctx, s.writer, dirCache, path.Dir(output)); err != nil {
		return RenderedPage{}, err
	}
	if err := s.writer.WriteFile(ctx, writeFileRequest{Path: output, Content: bytes.NewReader(body)}); err != nil {
		return RenderedPage{}, err
	}
	return RenderedPage{Route: route, Output: output, LastModified: lastModified}, nil
}

func (s *Service) writeText(ctx context.Context, name, content string) error {
	return s.writer.WriteFile(ctx, writeFileRequest{Path: name, Content: strings.NewReader(content)})
}

func (s *Service) copyAssets(ctx context.Context, dirCache map[string]struct{}) (int, error) {
	assets := render.Assets()
	copied := 0
	err := fs.WalkDir(assets, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(assets, name)
		if err != nil {
			return err
		}
		output := path.Join("static", name)
		if err := ensureDir(ctx, s.writer, dirCache, path.Dir(output)); err != nil {
			return err
		}
		if err := s.writer.WriteFile(ctx, writeFileRequest{Path: output, Content: bytes.NewReader(data)}); err != nil {
			return err
		}
		copied++
		return nil
	})
	return copied, err
}

func (s *Service) workers() int {
	if s.cfg.Workers > 0 {
		return s.cfg.Workers
	}
	return runtime.NumCPU()
}
