// Package site composes the post repository, the article loader and the
// renderer into listing and article pages.
package site

import (
	"context"
	"io"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blogfront/internal/article"
	"github.com/goliatone/go-blogfront/internal/logging"
	"github.com/goliatone/go-blogfront/internal/posts"
	"github.com/goliatone/go-blogfront/internal/render"
	"github.com/goliatone/go-blogfront/pkg/interfaces"
)

// Repository is the read side of posts.Repository used by pages.
type Repository interface {
	EnsureLoaded(ctx context.Context) error
	All() []posts.Record
	Find(file string) (posts.Record, bool)
	Categories() []string
}

// ArticleLoader loads a single article.
type ArticleLoader interface {
	Load(ctx context.Context, file string) (article.Article, error)
}

// Service renders pages.
type Service struct {
	repo     Repository
	articles ArticleLoader
	renderer *render.Renderer
	logger   interfaces.Logger
}

// NewService wires the page service.
func NewService(repo Repository, articles ArticleLoader, renderer *render.Renderer, logger interfaces.Logger) *Service {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{repo: repo, articles: articles, renderer: renderer, logger: logger}
}

// Renderer returns the renderer pages are written with.
func (s *Service) Renderer() *render.Renderer {
	return s.renderer
}

// Load returns the current records and categories. Err is set when the
// collection could not be loaded.
func (s *Service) Load(ctx context.Context) Listing {
	if err := s.repo.EnsureLoaded(ctx); err != nil {
		s.logger.WithContext(ctx).Error("site.listing_unavailable", "error", err)
		return Listing{Err: err}
	}
	return Listing{Records: s.repo.All(), Categories: s.repo.Categories()}
}

// TextCodePostNotFound marks lookups of files missing from the listing.
const TextCodePostNotFound = "POST_NOT_FOUND"

// Post returns the listing record for file.
func (s *Service) Post(ctx context.Context, file string) (posts.Record, error) {
	if strings.TrimSpace(file) == "" {
		return posts.Record{}, goerrors.New("post parameter is required", goerrors.CategoryBadInput)
	}
	if err := s.repo.EnsureLoaded(ctx); err != nil {
		return posts.Record{}, err
	}
	record, ok := s.repo.Find(file)
	if !ok {
		return posts.Record{}, goerrors.New("post not found", goerrors.CategoryNotFound).
			WithTextCode(TextCodePostNotFound).
			WithMetadata(map[string]any{"file": file})
	}
	return record, nil
}

// Listing writes the listing page for filter and returns its status.
// The returned error only reports template failures.
func (s *Service) Listing(ctx context.Context, w io.Writer, filter Filter) (int, error) {
	listing := s.Load(ctx)
	status := http.StatusOK
	if listing.Err != nil {
		status = http.StatusServiceUnavailable
	}
	view := BuildListing(NewPage(s.renderer, filter), listing)
	return status, s.renderer.Listing(w, view)
}

// Article writes the article page for file and returns its status. Load
// failures are logged and rendered as the failure view. The returned error
// only reports template failures.
func (s *Service) Article(ctx context.Context, w io.Writer, file string) (int, error) {
	loaded, err := s.articles.Load(ctx, file)
	if err != nil {
		logging.WithPostContext(s.logger.WithContext(ctx), file, "render").
			Error("site.article_failed", "error", err)
	}
	view, status := BuildArticle(NewPage(s.renderer, Filter{}), loaded, err)
	return status, s.renderer.Article(w, view)
}

func isBadInput(err error) bool {
	return goerrors.IsCategory(err, goerrors.CategoryBadInput)
}

func isExternal(err error) bool {
	return goerrors.IsCategory(err, goerrors.CategoryExternal)
}
