package article

import (
	"context"
	"errors"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blogfront/internal/markdown"
	"github.com/goliatone/go-blogfront/pkg/interfaces"
)

type mapFetcher map[string]string

func (m mapFetcher) Document(_ context.Context, file string) ([]byte, error) {
	doc, ok := m[file]
	if !ok {
		return nil, goerrors.New(file+" not found", goerrors.CategoryNotFound)
	}
	return []byte(doc), nil
}

type failingFetcher struct{}

func (failingFetcher) Document(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection reset")
}

const sampleDoc = "---\n" +
	"title: Building Things\n" +
	"date: 2024-04-01\n" +
	"categories: [go]\n" +
	"tags: [build]\n" +
	"---\n" +
	"Intro text <!--more--> continues.\n\n" +
	"## Setup\n\n" +
	"```go\nfmt.Println(\"hi\")\n```\n\n" +
	"### Details\n\n" +
	"```\nplain\n```\n"

func newService(fetcher Fetcher) *Service {
	return NewService(fetcher, markdown.NewGoldmarkParser(interfaces.ParseOptions{}), nil)
}

func TestLoadRendersBodyAndTableOfContents(t *testing.T) {
	svc := newService(mapFetcher{"build.md": sampleDoc})

	article, err := svc.Load(context.Background(), "build.md")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if article.Title != "Building Things" || article.Date != "2024-04-01" {
		t.Fatalf("unexpected metadata %q / %q", article.Title, article.Date)
	}
	if article.Published.IsZero() {
		t.Fatal("expected published date to parse")
	}
	if len(article.TOC.Entries) != 2 {
		t.Fatalf("expected 2 toc entries, got %d", len(article.TOC.Entries))
	}
	if article.TOC.Entries[1].Class() != "toc-sub" {
		t.Fatalf("expected h3 entry to be indented, got %q", article.TOC.Entries[1].Class())
	}
	if !strings.Contains(article.HTML, `<h2 id="header-0">Setup</h2>`) {
		t.Fatalf("expected rewritten heading id, got %s", article.HTML)
	}
	if !strings.Contains(article.HTML, `<pre data-lang="GO">`) {
		t.Fatalf("expected go code label, got %s", article.HTML)
	}
	if !strings.Contains(article.HTML, `<pre data-lang="CODE">`) {
		t.Fatalf("expected default code label, got %s", article.HTML)
	}
	if got := strings.Count(article.HTML, CopyButton); got != 2 {
		t.Fatalf("expected a copy button per code block, got %d", got)
	}
	if strings.Contains(article.HTML, "more--") {
		t.Fatalf("expected cut marker to be removed, got %s", article.HTML)
	}
	if article.Excerpt != "Intro text" {
		t.Fatalf("expected excerpt, got %q", article.Excerpt)
	}
}

func TestLoadMissingDocumentKeepsNotFoundCategory(t *testing.T) {
	_, err := newService(mapFetcher{}).Load(context.Background(), "nope.md")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsNotFound(err) {
		t.Fatalf("expected not found category, got %v", err)
	}
	var e *goerrors.Error
	if !goerrors.As(err, &e) || e.TextCode != TextCodeUnavailable {
		t.Fatalf("expected article text code, got %v", err)
	}
}

func TestLoadNetworkFailureIsExternal(t *testing.T) {
	_, err := newService(failingFetcher{}).Load(context.Background(), "a.md")
	if err == nil || IsNotFound(err) {
		t.Fatalf("expected non not-found failure, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryExternal) {
		t.Fatalf("expected external category, got %v", err)
	}
}

func TestLoadRejectsBlankFile(t *testing.T) {
	_, err := newService(mapFetcher{}).Load(context.Background(), "  ")
	if !goerrors.IsCategory(err, goerrors.CategoryBadInput) {
		t.Fatalf("expected bad input, got %v", err)
	}
}

func TestLabelCodeBlocksLeavesPlainMarkupAlone(t *testing.T) {
	body := "<p>no code here</p>"
	got, err := LabelCodeBlocks(body)
	if err != nil {
		t.Fatalf("LabelCodeBlocks: %v", err)
	}
	if got != body {
		t.Fatalf("expected untouched body, got %q", got)
	}
}

func TestLabelCodeBlocksAppendsCopyButton(t *testing.T) {
	got, err := LabelCodeBlocks(`<pre><code class="language-sh">ls -la
</code></pre><p>after</p>`)
	if err != nil {
		t.Fatalf("LabelCodeBlocks: %v", err)
	}
	want := `<pre data-lang="SH"><code class="language-sh">ls -la
</code>` + CopyButton + `</pre><p>after</p>`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
