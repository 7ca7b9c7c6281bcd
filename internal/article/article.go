// Package article loads a single post and prepares its display markup.
package article

import (
	"context"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blogfront/internal/frontmatter"
	"github.com/goliatone/go-blogfront/internal/logging"
	"github.com/goliatone/go-blogfront/internal/posts"
	"github.com/goliatone/go-blogfront/internal/toc"
	"github.com/goliatone/go-blogfront/pkg/interfaces"
)

// TextCodeUnavailable marks every article load failure.
const TextCodeUnavailable = "ARTICLE_UNAVAILABLE"

// ErrArticleUnavailable is the template for article load failures.
var ErrArticleUnavailable = goerrors.New("article unavailable", goerrors.CategoryExternal).
	WithTextCode(TextCodeUnavailable)

// Fetcher returns the raw document for a post file.
type Fetcher interface {
	Document(ctx context.Context, file string) ([]byte, error)
}

// Article is a loaded post ready for display.
type Article struct {
	File       string
	Title      string
	Date       string
	Published  time.Time
	Categories []string
	Tags       []string
	Excerpt    string
	// Markdown is the body before conversion.
	Markdown string
	// HTML is the converted body with heading ids and code labels applied.
	HTML string
	TOC  toc.Result
}

// Service loads articles from a Fetcher and renders them with a markdown
// parser.
type Service struct {
	fetcher Fetcher
	parser  interfaces.MarkdownParser
	logger  interfaces.Logger
}

// NewService wires the article loader.
func NewService(fetcher Fetcher, parser interfaces.MarkdownParser, logger interfaces.Logger) *Service {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{fetcher: fetcher, parser: parser, logger: logger}
}

// Load fetches file and converts it. Every failure carries the
// TextCodeUnavailable text code. Missing documents keep the not_found
// category.
func (s *Service) Load(ctx context.Context, file string) (Article, error) {
	file = strings.TrimSpace(file)
	if file == "" {
		return Article{}, goerrors.New("missing post parameter", goerrors.CategoryBadInput).
			WithTextCode(TextCodeUnavailable)
	}
	logger := logging.WithPostContext(s.logger.WithContext(ctx), file, "load")

	raw, err := s.fetcher.Document(ctx, file)
	if err != nil {
		logger.Error("article.fetch_failed", "error", err)
		return Article{}, unavailable(err, "fetch article")
	}

	fm := frontmatter.Parse(raw)
	published, _ := posts.ParseDate(fm.Date)
	article := Article{
		File:       file,
		Title:      fm.Title,
		Date:       fm.Date,
		Published:  published,
		Categories: fm.Categories,
		Tags:       fm.Tags,
		Excerpt:    posts.Excerpt(fm.Content),
		Markdown:   fm.Content,
	}

	html, err := s.parser.Parse([]byte(strings.Replace(fm.Content, posts.CutMarker, "", 1)))
	if err != nil {
		logger.Error("article.render_failed", "error", err)
		return Article{}, unavailable(err, "render article")
	}

	labelled, err := LabelCodeBlocks(string(html))
	if err != nil {
		return Article{}, unavailable(err, "label code blocks")
	}
	contents, err := toc.Build(labelled)
	if err != nil {
		return Article{}, unavailable(err, "build table of contents")
	}

	article.HTML = contents.HTML
	article.TOC = contents
	logger.Debug("article.loaded", "headings", len(contents.Entries))
	return article, nil
}

func unavailable(cause error, message string) error {
	return goerrors.Wrap(cause, goerrors.CategoryExternal, message).
		WithTextCode(TextCodeUnavailable)
}

// IsUnavailable reports whether err came from Load.
func IsUnavailable(err error) bool {
	var e *goerrors.Error
	return goerrors.As(err, &e) && e.TextCode == ErrArticleUnavailable.TextCode
}

// IsNotFound reports whether the article document does not exist.
func IsNotFound(err error) bool {
	return goerrors.IsNotFound(err)
}
