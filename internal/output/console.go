// Package output prints command results to a terminal.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/goliatone/go-blogfront/internal/article"
	"github.com/goliatone/go-blogfront/internal/generator"
	"github.com/goliatone/go-blogfront/internal/posts"
	"github.com/goliatone/go-blogfront/internal/render"
	"github.com/goliatone/go-blogfront/internal/toc"
)

// Console writes styled command output.
type Console struct {
	w        io.Writer
	colorize bool
}

// NewConsole returns a console writing to w. colorize enables lipgloss
// colours.
func NewConsole(w io.Writer, colorize bool) *Console {
	return &Console{w: w, colorize: colorize}
}

func (c *Console) style(color string) lipgloss.Style {
	if !c.colorize {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// Posts prints one table row per record.
func (c *Console) Posts(records []posts.Record) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(c.w, c.style("8").Render(render.NoResults))
		return err
	}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		date := record.Date
		if strings.TrimSpace(date) == "" {
			date = render.UnknownDate
		}
		rows = append(rows, []string{
			record.Title,
			date,
			strings.Join(record.Categories, ", "),
			strings.Join(record.Tags, ", "),
			record.File,
		})
	}

	header := c.style("10").Bold(true)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(c.style("8")).
		Headers("TITLE", "DATE", "CATEGORIES", "TAGS", "FILE").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	if _, err := fmt.Fprintln(c.w, t.Render()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(c.w, "%d posts\n", len(records))
	return err
}

// Article prints metadata, the table of contents and the excerpt.
func (c *Console) Article(a article.Article) error {
	title := c.style("10").Bold(true)
	muted := c.style("8")

	var b strings.Builder
	b.WriteString(title.Render(a.Title) + "\n")
	date := a.Date
	if strings.TrimSpace(date) == "" {
		date = render.UnknownDate
	}
	b.WriteString(muted.Render(date) + "\n")
	labels := posts.Record{Categories: a.Categories, Tags: a.Tags}.Labels()
	if len(labels) > 0 {
		b.WriteString("#" + strings.Join(labels, " #") + "\n")
	}
	b.WriteString("\n")
	if a.TOC.Empty() {
		b.WriteString(muted.Render(toc.Placeholder) + "\n")
	}
	for _, entry := range a.TOC.Entries {
		indent := ""
		if entry.Sub() {
			indent = "  "
		}
		fmt.Fprintf(&b, "%s- %s %s\n", indent, entry.Text, muted.Render("#"+entry.ID))
	}
	if a.Excerpt != "" {
		b.WriteString("\n" + a.Excerpt + "\n")
	}
	_, err := io.WriteString(c.w, b.String())
	return err
}

// Build prints the generator summary.
func (c *Console) Build(outputDir string, result *generator.BuildResult) error {
	ok := c.style("10")
	warn := c.style("3")

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", ok.Render("built"), outputDir)
	fmt.Fprintf(&b, "  pages:      %d\n", result.PagesBuilt)
	fmt.Fprintf(&b, "  categories: %d\n", result.CategoriesBuilt)
	fmt.Fprintf(&b, "  articles:   %d\n", result.ArticlesBuilt)
	fmt.Fprintf(&b, "  assets:     %d\n", result.AssetsBuilt)
	fmt.Fprintf(&b, "  feed items: %d\n", result.FeedItems)
	fmt.Fprintf(&b, "  duration:   %s\n", result.Duration)
	if result.ArticlesFailed > 0 {
		fmt.Fprintf(&b, "%s %d articles failed\n", warn.Render("warning"), result.ArticlesFailed)
		for _, err := range result.Errors {
			fmt.Fprintf(&b, "  - %v\n", err)
		}
	}
	_, err := io.WriteString(c.w, b.String())
	return err
}

// Index prints the result of writing a manifest.
func (c *Console) Index(path string, files []string) error {
	_, err := fmt.Fprintf(c.w, "%s %s (%d posts)\n", c.style("10").Render("wrote"), path, len(files))
	return err
}
